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

// courseService implements the CourseService interface
type courseService struct {
	courseRepo  catalogRepo.CourseRepository
	subjectRepo catalogRepo.SubjectRepository
	logger      *slog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo catalogRepo.CourseRepository,
	subjectRepo catalogRepo.SubjectRepository,
	logger *slog.Logger,
) catalogSvc.CourseService {
	return &courseService{
		courseRepo:  courseRepo,
		subjectRepo: subjectRepo,
		logger:      logger,
	}
}

// CreateCourse creates a new course
func (s *courseService) CreateCourse(ctx context.Context, req *catalogSvc.CreateCourseRequest) (*models.Course, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.checkDuplicateName(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Order:       req.Order,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", "id", course.ID, "name", course.Name)

	return course, nil
}

// GetCourse retrieves a course by ID
func (s *courseService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// UpdateCourse updates a course
func (s *courseService) UpdateCourse(ctx context.Context, id string, req *catalogSvc.UpdateCourseRequest) (*models.Course, error) {
	if req.Name == nil && req.Description == nil && req.Icon == nil && req.Order == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validation.Validate(*req.Name,
			validation.Required,
			validation.Length(1, config.MaxCourseNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
		if *req.Name != course.Name {
			if err := s.checkDuplicateName(ctx, *req.Name, id); err != nil {
				return nil, err
			}
		}
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Icon != nil {
		course.Icon = *req.Icon
	}
	if req.Order != nil {
		course.Order = *req.Order
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course updated", "id", course.ID, "name", course.Name)

	return course, nil
}

// DeleteCourse deletes a course. Courses still holding subjects are
// refused so content cannot be orphaned silently.
func (s *courseService) DeleteCourse(ctx context.Context, id string) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	subjects, err := s.subjectRepo.ListByCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check subjects: %w", err)
	}
	if len(subjects) > 0 {
		return fmt.Errorf("%w: course contains %d subjects", domain.ErrConflict, len(subjects))
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("course deleted", "id", id, "name", course.Name)

	return nil
}

// ListCourses lists all courses
func (s *courseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.List(ctx)
}

// checkDuplicateName returns a ConflictError carrying the existing
// course so the handler can respond with it.
func (s *courseService) checkDuplicateName(ctx context.Context, name, excludeID string) error {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return err
	}
	for i := range courses {
		if courses[i].Name == name && courses[i].ID != excludeID {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("course '%s' already exists", name),
				ResourceType: "course",
				ResourceID:   courses[i].ID,
			}
		}
	}
	return nil
}

func (s *courseService) validateCreateRequest(req *catalogSvc.CreateCourseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxCourseNameLength),
		),
		validation.Field(&req.Order, validation.Min(0)),
	)
}
