package catalog

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"medquiz/internal/config"
	"medquiz/internal/domain"
	models "medquiz/internal/domain/models/catalog"
	"medquiz/internal/domain/repositories"
	catalogRepo "medquiz/internal/domain/repositories/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
)

// folderService implements the FolderService interface
type folderService struct {
	folderRepo  catalogRepo.FolderRepository
	subjectRepo catalogRepo.SubjectRepository
	quizRepo    catalogRepo.QuizRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo catalogRepo.FolderRepository,
	subjectRepo catalogRepo.SubjectRepository,
	quizRepo catalogRepo.QuizRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) catalogSvc.FolderService {
	return &folderService{
		folderRepo:  folderRepo,
		subjectRepo: subjectRepo,
		quizRepo:    quizRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateFolder creates a new folder under a subject or another folder
func (s *folderService) CreateFolder(ctx context.Context, req *catalogSvc.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty strings to nil
	if req.SubjectID != nil && *req.SubjectID == "" {
		req.SubjectID = nil
	}
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if req.SubjectID == nil && req.ParentID == nil {
		return nil, fmt.Errorf("%w: folder needs a subject or a parent folder", domain.ErrValidation)
	}
	if req.SubjectID != nil && req.ParentID != nil {
		return nil, fmt.Errorf("%w: folder cannot have both a subject and a parent folder", domain.ErrValidation)
	}

	if req.SubjectID != nil {
		if _, err := s.subjectRepo.GetByID(ctx, *req.SubjectID); err != nil {
			return nil, fmt.Errorf("subject not found: %w", err)
		}
	}
	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID); err != nil {
			return nil, fmt.Errorf("parent folder not found: %w", err)
		}
	}

	folder := &models.Folder{
		Name:      req.Name,
		SubjectID: req.SubjectID,
		ParentID:  req.ParentID,
		Order:     req.Order,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"subject_id", req.SubjectID,
		"parent_id", req.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// UpdateFolder updates a folder. Reparenting goes through the move
// orchestrator, not here.
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *catalogSvc.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name == nil && req.Order == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validation.Validate(*req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
		folder.Name = *req.Name
	}
	if req.Order != nil {
		folder.Order = *req.Order
	}

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated", "id", folder.ID, "name", folder.Name)

	return folder, nil
}

// DeleteFolder deletes a folder with its subfolders and quizzes, all
// inside one transaction.
func (s *folderService) DeleteFolder(ctx context.Context, id string) error {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.deleteRecursive(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id, "name", folder.Name)

	return nil
}

// deleteRecursive removes a folder subtree bottom-up so foreign keys
// never dangle mid-transaction.
func (s *folderService) deleteRecursive(ctx context.Context, id string) error {
	children, err := s.folderRepo.ListChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("list subfolders: %w", err)
	}
	for i := range children {
		if err := s.deleteRecursive(ctx, children[i].ID); err != nil {
			return err
		}
	}

	quizzes, err := s.quizRepo.ListByFolder(ctx, id)
	if err != nil {
		return fmt.Errorf("list quizzes: %w", err)
	}
	for i := range quizzes {
		if err := s.quizRepo.Delete(ctx, quizzes[i].ID); err != nil {
			return err
		}
	}

	return s.folderRepo.Delete(ctx, id)
}

// ListFolders lists all folders
func (s *folderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folderRepo.List(ctx)
}

func (s *folderService) validateCreateRequest(req *catalogSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Order, validation.Min(0)),
	)
}
