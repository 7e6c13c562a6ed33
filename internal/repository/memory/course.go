package memory

import (
	"context"
	"time"

	"medquiz/internal/domain/models/catalog"
	repos "medquiz/internal/domain/repositories/catalog"
)

// CourseRepository is the map-backed CourseRepository.
type CourseRepository struct {
	store *Store[catalog.Course]
}

// NewCourseRepository creates an empty in-memory course repository.
func NewCourseRepository() repos.CourseRepository {
	return &CourseRepository{store: NewStore(Meta[catalog.Course]{
		ID:    func(c *catalog.Course) string { return c.ID },
		SetID: func(c *catalog.Course, id string) { c.ID = id },
		Stamp: func(c *catalog.Course, t time.Time, created bool) {
			if created {
				c.CreatedAt = t
			}
			c.UpdatedAt = t
		},
		Fields: func(c *catalog.Course) map[string]interface{} {
			return map[string]interface{}{
				"name":       c.Name,
				"sort_order": c.Order,
				"created_at": c.CreatedAt,
			}
		},
	})}
}

func (r *CourseRepository) Create(_ context.Context, course *catalog.Course) error {
	r.store.Create(course)
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id string) (*catalog.Course, error) {
	course, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Update(_ context.Context, course *catalog.Course) error {
	return r.store.Update(course.ID, func(c *catalog.Course) {
		*c = *course
	})
}

func (r *CourseRepository) Delete(_ context.Context, id string) error {
	return r.store.Delete(id)
}

func (r *CourseRepository) List(_ context.Context) ([]catalog.Course, error) {
	return r.store.List("sort_order"), nil
}
