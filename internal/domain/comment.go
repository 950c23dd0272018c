package domain

import "time"

// Comment is a message on a ticket thread. Replies reference their parent but
// are rendered flat. Internal comments are visible to staff only.
type Comment struct {
	ID              string
	TicketID        string
	ParentCommentID *string
	IsInternal      bool
	Body            string
	AuthorID        string
	AuthorType      ActorType
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
