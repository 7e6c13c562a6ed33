package catalog

import (
	"context"

	"medquiz/internal/domain/models/catalog"
)

// SubjectRepository defines data access operations for subjects.
type SubjectRepository interface {
	// Create creates a new subject
	Create(ctx context.Context, subject *catalog.Subject) error

	// GetByID retrieves a subject by ID
	GetByID(ctx context.Context, id string) (*catalog.Subject, error)

	// Update updates a subject
	Update(ctx context.Context, subject *catalog.Subject) error

	// Delete deletes a subject
	Delete(ctx context.Context, id string) error

	// List retrieves all subjects ordered by sort order then name
	List(ctx context.Context) ([]catalog.Subject, error)

	// ListByCourse retrieves the subjects owned by a course
	ListByCourse(ctx context.Context, courseID string) ([]catalog.Subject, error)

	// Move reparents a subject under a course and clears any legacy
	// folder reference
	Move(ctx context.Context, id string, courseID *string) error
}
