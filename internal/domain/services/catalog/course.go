package catalog

import (
	"context"

	"medquiz/internal/domain/models/catalog"
)

// CourseService handles course business logic
type CourseService interface {
	// CreateCourse creates a new course
	CreateCourse(ctx context.Context, req *CreateCourseRequest) (*catalog.Course, error)

	// GetCourse retrieves a course by ID
	GetCourse(ctx context.Context, id string) (*catalog.Course, error)

	// UpdateCourse updates a course
	UpdateCourse(ctx context.Context, id string, req *UpdateCourseRequest) (*catalog.Course, error)

	// DeleteCourse deletes a course; courses with subjects are refused
	DeleteCourse(ctx context.Context, id string) error

	// ListCourses lists all courses
	ListCourses(ctx context.Context) ([]catalog.Course, error)
}

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// UpdateCourseRequest represents a course update request
type UpdateCourseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Order       *int    `json:"order,omitempty"`
}
