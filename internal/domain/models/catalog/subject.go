package catalog

import "time"

// Subject belongs to a course. FolderID is a legacy parent reference
// that some stored records still carry; when present it wins over
// CourseID during normalization (see content.BuildContainers).
type Subject struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CourseID  *string   `json:"course_id" db:"course_id"`
	FolderID  *string   `json:"folder_id,omitempty" db:"folder_id"`
	Icon      string    `json:"icon,omitempty" db:"icon"`
	Order     int       `json:"order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
