package dto

import "strings"

// attachmentPathSegment is where ticket attachments live under the uploads host.
const attachmentPathSegment = "/uploads/support-ticket-attachments/"

// AttachmentResolver turns stored attachment values into URLs. Values that
// are already absolute pass through untouched.
type AttachmentResolver struct {
	BaseURL string
}

// Resolve returns the public URL for a stored attachment value.
func (r AttachmentResolver) Resolve(stored string) string {
	if strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://") {
		return stored
	}
	return strings.TrimRight(r.BaseURL, "/") + attachmentPathSegment + stored
}
