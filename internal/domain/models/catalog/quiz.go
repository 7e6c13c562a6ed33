package catalog

import "time"

// Quiz is the leaf item of the tree. Quizzes live only inside folders;
// FolderID is the sole valid parent reference. SubjectID is retained as
// denormalized metadata for attempt bookkeeping, it plays no role in
// tree placement.
type Quiz struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	FolderID  *string    `json:"folder_id" db:"folder_id"`
	SubjectID *string    `json:"subject_id,omitempty" db:"subject_id"`
	Questions []Question `json:"questions" db:"questions"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// Question is a single multiple-choice question.
type Question struct {
	Text          string         `json:"question"`
	AnswerOptions []AnswerOption `json:"answerOptions"`
	Hint          string         `json:"hint,omitempty"`
}

// AnswerOption is one selectable answer. Rationale is shown after
// answering, when present.
type AnswerOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Rationale string `json:"rationale,omitempty"`
}
