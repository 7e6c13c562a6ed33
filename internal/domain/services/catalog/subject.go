package catalog

import (
	"context"

	"medquiz/internal/domain/models/catalog"
)

// SubjectService handles subject business logic
type SubjectService interface {
	// CreateSubject creates a new subject under a course
	CreateSubject(ctx context.Context, req *CreateSubjectRequest) (*catalog.Subject, error)

	// GetSubject retrieves a subject by ID
	GetSubject(ctx context.Context, id string) (*catalog.Subject, error)

	// UpdateSubject updates a subject
	UpdateSubject(ctx context.Context, id string, req *UpdateSubjectRequest) (*catalog.Subject, error)

	// DeleteSubject deletes a subject; subjects with folders are refused
	DeleteSubject(ctx context.Context, id string) error

	// ListSubjects lists all subjects
	ListSubjects(ctx context.Context) ([]catalog.Subject, error)
}

// CreateSubjectRequest represents a subject creation request
type CreateSubjectRequest struct {
	Name     string  `json:"name"`
	CourseID *string `json:"course_id,omitempty"`
	Icon     string  `json:"icon,omitempty"`
	Order    int     `json:"order,omitempty"`
}

// UpdateSubjectRequest represents a subject update request
type UpdateSubjectRequest struct {
	Name     *string `json:"name,omitempty"`
	CourseID *string `json:"course_id,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Order    *int    `json:"order,omitempty"`
}
