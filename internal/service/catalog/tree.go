package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"medquiz/internal/content"
	models "medquiz/internal/domain/models/catalog"
	catalogRepo "medquiz/internal/domain/repositories/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
)

// treeService implements the TreeService interface
type treeService struct {
	courseRepo  catalogRepo.CourseRepository
	subjectRepo catalogRepo.SubjectRepository
	folderRepo  catalogRepo.FolderRepository
	quizRepo    catalogRepo.QuizRepository
	logger      *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	courseRepo catalogRepo.CourseRepository,
	subjectRepo catalogRepo.SubjectRepository,
	folderRepo catalogRepo.FolderRepository,
	quizRepo catalogRepo.QuizRepository,
	logger *slog.Logger,
) catalogSvc.TreeService {
	return &treeService{
		courseRepo:  courseRepo,
		subjectRepo: subjectRepo,
		folderRepo:  folderRepo,
		quizRepo:    quizRepo,
		logger:      logger,
	}
}

// GetContainers returns the flat normalized container list
func (s *treeService) GetContainers(ctx context.Context) ([]models.Container, error) {
	courses, folders, subjects, err := s.loadContainers(ctx)
	if err != nil {
		return nil, err
	}
	return content.BuildContainers(courses, folders, subjects), nil
}

// GetTree returns the fully nested tree. It is built in two passes
// over the flat container list: first a node per container, then
// children linked to parents. Containers whose parent is missing from
// the snapshot surface at the root rather than disappearing.
func (s *treeService) GetTree(ctx context.Context) (*models.TreeNode, error) {
	courses, folders, subjects, err := s.loadContainers(ctx)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}

	containers := content.BuildContainers(courses, folders, subjects)

	nodes := make(map[string]*models.ContainerTreeNode, len(containers))
	for _, c := range containers {
		nodes[c.ID] = &models.ContainerTreeNode{Container: c}
	}

	tree := &models.TreeNode{Containers: []*models.ContainerTreeNode{}}
	for _, c := range containers {
		node := nodes[c.ID]
		if c.ParentID == nil {
			tree.Containers = append(tree.Containers, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			s.logger.Warn("container parent missing, surfacing at root",
				"id", c.ID, "type", c.Type, "parent_id", *c.ParentID)
			tree.Containers = append(tree.Containers, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	for i := range quizzes {
		q := &quizzes[i]
		if q.FolderID == nil {
			continue
		}
		folder, ok := nodes[*q.FolderID]
		if !ok {
			s.logger.Warn("quiz folder missing", "id", q.ID, "folder_id", *q.FolderID)
			continue
		}
		folder.Quizzes = append(folder.Quizzes, models.QuizTreeNode{
			ID:            q.ID,
			Title:         q.Title,
			FolderID:      q.FolderID,
			QuestionCount: len(q.Questions),
		})
	}

	return tree, nil
}

func (s *treeService) loadContainers(ctx context.Context) ([]models.Course, []models.Folder, []models.Subject, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list courses: %w", err)
	}
	folders, err := s.folderRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list folders: %w", err)
	}
	subjects, err := s.subjectRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list subjects: %w", err)
	}
	return courses, folders, subjects, nil
}
