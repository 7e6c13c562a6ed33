package catalog

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"medquiz/internal/config"
	"medquiz/internal/domain"
	models "medquiz/internal/domain/models/catalog"
	catalogRepo "medquiz/internal/domain/repositories/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
)

// subjectService implements the SubjectService interface
type subjectService struct {
	subjectRepo catalogRepo.SubjectRepository
	courseRepo  catalogRepo.CourseRepository
	folderRepo  catalogRepo.FolderRepository
	logger      *slog.Logger
}

// NewSubjectService creates a new subject service
func NewSubjectService(
	subjectRepo catalogRepo.SubjectRepository,
	courseRepo catalogRepo.CourseRepository,
	folderRepo catalogRepo.FolderRepository,
	logger *slog.Logger,
) catalogSvc.SubjectService {
	return &subjectService{
		subjectRepo: subjectRepo,
		courseRepo:  courseRepo,
		folderRepo:  folderRepo,
		logger:      logger,
	}
}

// CreateSubject creates a new subject under a course
func (s *subjectService) CreateSubject(ctx context.Context, req *catalogSvc.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for unfiled subjects
	if req.CourseID != nil && *req.CourseID == "" {
		req.CourseID = nil
	}

	if req.CourseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *req.CourseID); err != nil {
			return nil, fmt.Errorf("course not found: %w", err)
		}
	}

	subject := &models.Subject{
		Name:     req.Name,
		CourseID: req.CourseID,
		Icon:     req.Icon,
		Order:    req.Order,
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info("subject created",
		"id", subject.ID,
		"name", subject.Name,
		"course_id", req.CourseID,
	)

	return subject, nil
}

// GetSubject retrieves a subject by ID
func (s *subjectService) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// UpdateSubject updates a subject
func (s *subjectService) UpdateSubject(ctx context.Context, id string, req *catalogSvc.UpdateSubjectRequest) (*models.Subject, error) {
	if req.Name == nil && req.CourseID == nil && req.Icon == nil && req.Order == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validation.Validate(*req.Name,
			validation.Required,
			validation.Length(1, config.MaxSubjectNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
		subject.Name = *req.Name
	}
	if req.CourseID != nil {
		if *req.CourseID != "" {
			if _, err := s.courseRepo.GetByID(ctx, *req.CourseID); err != nil {
				return nil, fmt.Errorf("course not found: %w", err)
			}
			subject.CourseID = req.CourseID
		} else {
			subject.CourseID = nil
		}
		// A reassignment supersedes any legacy folder placement.
		subject.FolderID = nil
	}
	if req.Icon != nil {
		subject.Icon = *req.Icon
	}
	if req.Order != nil {
		subject.Order = *req.Order
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info("subject updated", "id", subject.ID, "name", subject.Name)

	return subject, nil
}

// DeleteSubject deletes a subject. Subjects still holding folders are
// refused.
func (s *subjectService) DeleteSubject(ctx context.Context, id string) error {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	folders, err := s.folderRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check folders: %w", err)
	}
	count := 0
	for i := range folders {
		if folders[i].SubjectID != nil && *folders[i].SubjectID == id {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("%w: subject contains %d folders", domain.ErrConflict, count)
	}

	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("subject deleted", "id", id, "name", subject.Name)

	return nil
}

// ListSubjects lists all subjects
func (s *subjectService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return s.subjectRepo.List(ctx)
}

func (s *subjectService) validateCreateRequest(req *catalogSvc.CreateSubjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxSubjectNameLength),
		),
		validation.Field(&req.Order, validation.Min(0)),
	)
}
