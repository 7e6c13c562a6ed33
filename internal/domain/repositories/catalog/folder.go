package catalog

import (
	"context"

	"medquiz/internal/domain/models/catalog"
)

// FolderRepository defines data access operations for folders.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *catalog.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*catalog.Folder, error)

	// Update updates a folder
	Update(ctx context.Context, folder *catalog.Folder) error

	// Delete deletes a folder
	Delete(ctx context.Context, id string) error

	// List retrieves all folders ordered by sort order then name
	List(ctx context.Context) ([]catalog.Folder, error)

	// ListChildren retrieves the immediate subfolders of a folder
	ListChildren(ctx context.Context, parentID string) ([]catalog.Folder, error)

	// Move reparents a folder. parentType selects which linkage is
	// written: a subject parent sets subject_id and clears parent_id,
	// a folder parent sets parent_id and clears subject_id. The stale
	// course_id linkage is cleared either way.
	Move(ctx context.Context, id string, parentID *string, parentType catalog.ItemType) error
}
