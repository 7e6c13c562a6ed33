package catalog

import (
	"context"
	"encoding/json"

	"medquiz/internal/domain/models/catalog"
)

// QuizService handles quiz business logic
type QuizService interface {
	// CreateQuiz creates a new quiz in a folder
	CreateQuiz(ctx context.Context, req *CreateQuizRequest) (*catalog.Quiz, error)

	// GetQuiz retrieves a quiz by ID
	GetQuiz(ctx context.Context, id string) (*catalog.Quiz, error)

	// UpdateQuiz updates a quiz
	UpdateQuiz(ctx context.Context, id string, req *UpdateQuizRequest) (*catalog.Quiz, error)

	// DeleteQuiz deletes a quiz
	DeleteQuiz(ctx context.Context, id string) error

	// ListQuizzes lists all quizzes
	ListQuizzes(ctx context.Context) ([]catalog.Quiz, error)
}

// QuizImporter validates and imports a pasted quiz payload, accepting
// both the full format and the compact single-letter format.
type QuizImporter interface {
	// ImportQuiz validates the payload against its schema and creates
	// the quiz
	ImportQuiz(ctx context.Context, req *ImportQuizRequest) (*catalog.Quiz, error)
}

// QuizGenerator produces a quiz draft for a topic. The real generator
// calls a model provider; the mock produces deterministic questions.
type QuizGenerator interface {
	// GenerateQuiz creates a quiz draft
	GenerateQuiz(ctx context.Context, req *GenerateQuizRequest) (*catalog.Quiz, error)
}

// CreateQuizRequest represents a quiz creation request
type CreateQuizRequest struct {
	Title     string             `json:"title"`
	FolderID  *string            `json:"folder_id,omitempty"`
	SubjectID *string            `json:"subject_id,omitempty"`
	Questions []catalog.Question `json:"questions"`
}

// UpdateQuizRequest represents a quiz update request
type UpdateQuizRequest struct {
	Title     *string             `json:"title,omitempty"`
	Questions *[]catalog.Question `json:"questions,omitempty"`
}

// ImportQuizRequest represents a quiz import request. Payload is the
// raw pasted JSON.
type ImportQuizRequest struct {
	FolderID *string         `json:"folder_id,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// GenerateQuizRequest represents a quiz generation request
type GenerateQuizRequest struct {
	Topic         string  `json:"topic"`
	FolderID      *string `json:"folder_id,omitempty"`
	QuestionCount int     `json:"question_count,omitempty"`
}
