package memory

import (
	"context"
	"time"

	"medquiz/internal/domain/models/catalog"
	repos "medquiz/internal/domain/repositories/catalog"
)

// QuizRepository is the map-backed QuizRepository.
type QuizRepository struct {
	store *Store[catalog.Quiz]
}

// NewQuizRepository creates an empty in-memory quiz repository.
func NewQuizRepository() repos.QuizRepository {
	return &QuizRepository{store: NewStore(Meta[catalog.Quiz]{
		ID:    func(q *catalog.Quiz) string { return q.ID },
		SetID: func(q *catalog.Quiz, id string) { q.ID = id },
		Stamp: func(q *catalog.Quiz, t time.Time, created bool) {
			if created {
				q.CreatedAt = t
			}
			q.UpdatedAt = t
		},
		Fields: func(q *catalog.Quiz) map[string]interface{} {
			return map[string]interface{}{
				"title":      q.Title,
				"folder_id":  q.FolderID,
				"subject_id": q.SubjectID,
				"created_at": q.CreatedAt,
			}
		},
	})}
}

func (r *QuizRepository) Create(_ context.Context, quiz *catalog.Quiz) error {
	r.store.Create(quiz)
	return nil
}

func (r *QuizRepository) GetByID(_ context.Context, id string) (*catalog.Quiz, error) {
	quiz, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Update(_ context.Context, quiz *catalog.Quiz) error {
	return r.store.Update(quiz.ID, func(q *catalog.Quiz) {
		*q = *quiz
	})
}

func (r *QuizRepository) Delete(_ context.Context, id string) error {
	return r.store.Delete(id)
}

func (r *QuizRepository) List(_ context.Context) ([]catalog.Quiz, error) {
	return r.store.List("title"), nil
}

func (r *QuizRepository) ListByFolder(_ context.Context, folderID string) ([]catalog.Quiz, error) {
	return r.store.Filter(map[string]interface{}{"folder_id": folderID}, "title"), nil
}

func (r *QuizRepository) Move(_ context.Context, id string, folderID *string) error {
	return r.store.Update(id, func(q *catalog.Quiz) {
		q.FolderID = folderID
	})
}
