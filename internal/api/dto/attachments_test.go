package dto

import "testing"

func TestAttachmentResolverResolve(t *testing.T) {
	resolver := AttachmentResolver{BaseURL: "https://cdn.example.com"}

	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{"bare file name", "receipt.pdf", "https://cdn.example.com/uploads/support-ticket-attachments/receipt.pdf"},
		{"absolute https passes through", "https://elsewhere.example.com/a.png", "https://elsewhere.example.com/a.png"},
		{"absolute http passes through", "http://elsewhere.example.com/a.png", "http://elsewhere.example.com/a.png"},
		{"nested key", "2024/06/screenshot.png", "https://cdn.example.com/uploads/support-ticket-attachments/2024/06/screenshot.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolver.Resolve(tt.stored); got != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.stored, got, tt.want)
			}
		})
	}
}

func TestAttachmentResolverTrailingSlashBase(t *testing.T) {
	resolver := AttachmentResolver{BaseURL: "https://cdn.example.com/"}
	got := resolver.Resolve("file.txt")
	want := "https://cdn.example.com/uploads/support-ticket-attachments/file.txt"
	if got != want {
		t.Fatalf("Resolve with trailing slash base = %q, want %q", got, want)
	}
}
