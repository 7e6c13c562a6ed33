package catalog

import (
	"context"

	"medquiz/internal/domain/models/catalog"
)

// CourseRepository defines data access operations for courses.
type CourseRepository interface {
	// Create creates a new course
	Create(ctx context.Context, course *catalog.Course) error

	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id string) (*catalog.Course, error)

	// Update updates a course
	Update(ctx context.Context, course *catalog.Course) error

	// Delete deletes a course
	Delete(ctx context.Context, id string) error

	// List retrieves all courses ordered by sort order then name
	List(ctx context.Context) ([]catalog.Course, error)
}
