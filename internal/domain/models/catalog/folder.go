package catalog

import "time"

// Folder lives under a subject or under another folder. Exactly one of
// the three parent references is meaningful at a time; normalization
// resolves them with ParentID taking precedence over SubjectID, and
// SubjectID over CourseID.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *string   `json:"parent_id" db:"parent_id"`
	SubjectID *string   `json:"subject_id" db:"subject_id"`
	CourseID  *string   `json:"course_id,omitempty" db:"course_id"`
	Order     int       `json:"order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
