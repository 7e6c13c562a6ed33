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

// quizService implements the QuizService interface
type quizService struct {
	quizRepo   catalogRepo.QuizRepository
	folderRepo catalogRepo.FolderRepository
	logger     *slog.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(
	quizRepo catalogRepo.QuizRepository,
	folderRepo catalogRepo.FolderRepository,
	logger *slog.Logger,
) catalogSvc.QuizService {
	return &quizService{
		quizRepo:   quizRepo,
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// CreateQuiz creates a new quiz in a folder
func (s *quizService) CreateQuiz(ctx context.Context, req *catalogSvc.CreateQuizRequest) (*models.Quiz, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID); err != nil {
			return nil, fmt.Errorf("folder not found: %w", err)
		}
	}

	if err := validateQuestions(req.Questions); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	quiz := &models.Quiz{
		Title:     req.Title,
		FolderID:  req.FolderID,
		SubjectID: req.SubjectID,
		Questions: req.Questions,
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}

	s.logger.Info("quiz created",
		"id", quiz.ID,
		"title", quiz.Title,
		"folder_id", req.FolderID,
		"questions", len(quiz.Questions),
	)

	return quiz, nil
}

// GetQuiz retrieves a quiz by ID
func (s *quizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	return s.quizRepo.GetByID(ctx, id)
}

// UpdateQuiz updates a quiz
func (s *quizService) UpdateQuiz(ctx context.Context, id string, req *catalogSvc.UpdateQuizRequest) (*models.Quiz, error) {
	if req.Title == nil && req.Questions == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validation.Validate(*req.Title,
			validation.Required,
			validation.Length(1, config.MaxQuizTitleLength),
		); err != nil {
			return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
		}
		quiz.Title = *req.Title
	}
	if req.Questions != nil {
		if err := validateQuestions(*req.Questions); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		quiz.Questions = *req.Questions
	}

	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}

	s.logger.Info("quiz updated", "id", quiz.ID, "title", quiz.Title)

	return quiz, nil
}

// DeleteQuiz deletes a quiz
func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.quizRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("quiz deleted", "id", id, "title", quiz.Title)

	return nil
}

// ListQuizzes lists all quizzes
func (s *quizService) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.quizRepo.List(ctx)
}

func (s *quizService) validateCreateRequest(req *catalogSvc.CreateQuizRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxQuizTitleLength),
		),
	)
}

// validateQuestions enforces the structural rules every quiz shares:
// bounded size, at least two options and exactly one correct option
// per question.
func validateQuestions(questions []models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz needs at least one question")
	}
	if len(questions) > config.MaxQuestionsPerQuiz {
		return fmt.Errorf("quiz exceeds %d questions", config.MaxQuestionsPerQuiz)
	}
	for i, q := range questions {
		if q.Text == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
		if len(q.AnswerOptions) < 2 {
			return fmt.Errorf("question %d needs at least two options", i+1)
		}
		if len(q.AnswerOptions) > config.MaxOptionsPerQuestion {
			return fmt.Errorf("question %d exceeds %d options", i+1, config.MaxOptionsPerQuestion)
		}
		correct := 0
		for _, opt := range q.AnswerOptions {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("question %d must have exactly one correct option, has %d", i+1, correct)
		}
	}
	return nil
}
