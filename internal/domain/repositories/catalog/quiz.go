package catalog

import (
	"context"

	"medquiz/internal/domain/models/catalog"
)

// QuizRepository defines data access operations for quizzes.
type QuizRepository interface {
	// Create creates a new quiz
	Create(ctx context.Context, quiz *catalog.Quiz) error

	// GetByID retrieves a quiz by ID, questions included
	GetByID(ctx context.Context, id string) (*catalog.Quiz, error)

	// Update updates a quiz
	Update(ctx context.Context, quiz *catalog.Quiz) error

	// Delete deletes a quiz
	Delete(ctx context.Context, id string) error

	// List retrieves all quizzes ordered by title
	List(ctx context.Context) ([]catalog.Quiz, error)

	// ListByFolder retrieves the quizzes in a folder
	ListByFolder(ctx context.Context, folderID string) ([]catalog.Quiz, error)

	// Move reparents a quiz into a folder
	Move(ctx context.Context, id string, folderID *string) error
}
