package memory

import (
	"context"
	"fmt"
	"time"

	"medquiz/internal/domain"
	"medquiz/internal/domain/models/catalog"
	repos "medquiz/internal/domain/repositories/catalog"
)

// FolderRepository is the map-backed FolderRepository.
type FolderRepository struct {
	store *Store[catalog.Folder]
}

// NewFolderRepository creates an empty in-memory folder repository.
func NewFolderRepository() repos.FolderRepository {
	return &FolderRepository{store: NewStore(Meta[catalog.Folder]{
		ID:    func(f *catalog.Folder) string { return f.ID },
		SetID: func(f *catalog.Folder, id string) { f.ID = id },
		Stamp: func(f *catalog.Folder, t time.Time, created bool) {
			if created {
				f.CreatedAt = t
			}
			f.UpdatedAt = t
		},
		Fields: func(f *catalog.Folder) map[string]interface{} {
			return map[string]interface{}{
				"name":       f.Name,
				"parent_id":  f.ParentID,
				"subject_id": f.SubjectID,
				"course_id":  f.CourseID,
				"sort_order": f.Order,
				"created_at": f.CreatedAt,
			}
		},
	})}
}

func (r *FolderRepository) Create(_ context.Context, folder *catalog.Folder) error {
	r.store.Create(folder)
	return nil
}

func (r *FolderRepository) GetByID(_ context.Context, id string) (*catalog.Folder, error) {
	folder, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepository) Update(_ context.Context, folder *catalog.Folder) error {
	return r.store.Update(folder.ID, func(f *catalog.Folder) {
		*f = *folder
	})
}

func (r *FolderRepository) Delete(_ context.Context, id string) error {
	return r.store.Delete(id)
}

func (r *FolderRepository) List(_ context.Context) ([]catalog.Folder, error) {
	return r.store.List("sort_order"), nil
}

func (r *FolderRepository) ListChildren(_ context.Context, parentID string) ([]catalog.Folder, error) {
	return r.store.Filter(map[string]interface{}{"parent_id": parentID}, "sort_order"), nil
}

func (r *FolderRepository) Move(_ context.Context, id string, parentID *string, parentType catalog.ItemType) error {
	switch parentType {
	case catalog.TypeSubject:
		return r.store.Update(id, func(f *catalog.Folder) {
			f.SubjectID = parentID
			f.ParentID = nil
			f.CourseID = nil
		})
	case catalog.TypeFolder:
		return r.store.Update(id, func(f *catalog.Folder) {
			f.ParentID = parentID
			f.SubjectID = nil
			f.CourseID = nil
		})
	default:
		return fmt.Errorf("folder cannot be placed under %q: %w", parentType, domain.ErrValidation)
	}
}
