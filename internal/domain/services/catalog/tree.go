package catalog

import (
	"context"

	"medquiz/internal/domain/models/catalog"
)

// TreeService assembles the content hierarchy for the explorer view.
type TreeService interface {
	// GetContainers returns the flat normalized container list
	GetContainers(ctx context.Context) ([]catalog.Container, error)

	// GetTree returns the fully nested tree with quizzes attached to
	// their folders
	GetTree(ctx context.Context) (*catalog.TreeNode, error)
}
