package memory

import (
	"context"
	"time"

	"medquiz/internal/domain/models/catalog"
	repos "medquiz/internal/domain/repositories/catalog"
)

// SubjectRepository is the map-backed SubjectRepository.
type SubjectRepository struct {
	store *Store[catalog.Subject]
}

// NewSubjectRepository creates an empty in-memory subject repository.
func NewSubjectRepository() repos.SubjectRepository {
	return &SubjectRepository{store: NewStore(Meta[catalog.Subject]{
		ID:    func(s *catalog.Subject) string { return s.ID },
		SetID: func(s *catalog.Subject, id string) { s.ID = id },
		Stamp: func(s *catalog.Subject, t time.Time, created bool) {
			if created {
				s.CreatedAt = t
			}
			s.UpdatedAt = t
		},
		Fields: func(s *catalog.Subject) map[string]interface{} {
			return map[string]interface{}{
				"name":       s.Name,
				"course_id":  s.CourseID,
				"folder_id":  s.FolderID,
				"sort_order": s.Order,
				"created_at": s.CreatedAt,
			}
		},
	})}
}

func (r *SubjectRepository) Create(_ context.Context, subject *catalog.Subject) error {
	r.store.Create(subject)
	return nil
}

func (r *SubjectRepository) GetByID(_ context.Context, id string) (*catalog.Subject, error) {
	subject, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) Update(_ context.Context, subject *catalog.Subject) error {
	return r.store.Update(subject.ID, func(s *catalog.Subject) {
		*s = *subject
	})
}

func (r *SubjectRepository) Delete(_ context.Context, id string) error {
	return r.store.Delete(id)
}

func (r *SubjectRepository) List(_ context.Context) ([]catalog.Subject, error) {
	return r.store.List("sort_order"), nil
}

func (r *SubjectRepository) ListByCourse(_ context.Context, courseID string) ([]catalog.Subject, error) {
	return r.store.Filter(map[string]interface{}{"course_id": courseID}, "sort_order"), nil
}

func (r *SubjectRepository) Move(_ context.Context, id string, courseID *string) error {
	return r.store.Update(id, func(s *catalog.Subject) {
		s.CourseID = courseID
		s.FolderID = nil
	})
}
