package catalog

import "time"

// Course is a top-level grouping (e.g. a semester). Courses are always
// roots of the content tree; they never carry a parent reference.
type Course struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Icon        string    `json:"icon,omitempty" db:"icon"`
	Order       int       `json:"order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
