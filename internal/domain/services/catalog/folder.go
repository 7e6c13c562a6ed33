package catalog

import (
	"context"

	"medquiz/internal/domain/models/catalog"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder under a subject or folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*catalog.Folder, error)

	// GetFolder retrieves a folder by ID
	GetFolder(ctx context.Context, id string) (*catalog.Folder, error)

	// UpdateFolder updates a folder
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*catalog.Folder, error)

	// DeleteFolder deletes a folder and everything inside it
	DeleteFolder(ctx context.Context, id string) error

	// ListFolders lists all folders
	ListFolders(ctx context.Context) ([]catalog.Folder, error)
}

// CreateFolderRequest represents a folder creation request. Exactly one
// of SubjectID or ParentID must be set.
type CreateFolderRequest struct {
	Name      string  `json:"name"`
	SubjectID *string `json:"subject_id,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	Order     int     `json:"order,omitempty"`
}

// UpdateFolderRequest represents a folder update request
type UpdateFolderRequest struct {
	Name  *string `json:"name,omitempty"`
	Order *int    `json:"order,omitempty"`
}
