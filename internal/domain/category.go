package domain

import "time"

// DefaultCategoryColor is applied when a category is created without an
// explicit color, such as the create-on-search-miss flow.
const DefaultCategoryColor = "#6B7280"

// Category labels tickets for filtering and display.
type Category struct {
	ID          string
	Name        string
	Color       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
