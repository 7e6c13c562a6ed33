package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"medquiz/internal/config"
	"medquiz/internal/domain"
	models "medquiz/internal/domain/models/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
)

// mockQuizGenerator produces deterministic placeholder quizzes. It
// stands in for a model-backed generator in local development and
// tests; the handler wiring only sees the QuizGenerator interface.
type mockQuizGenerator struct {
	quizService catalogSvc.QuizService
	logger      *slog.Logger
}

// NewMockQuizGenerator creates a generator that fabricates questions
// from the topic text.
func NewMockQuizGenerator(quizService catalogSvc.QuizService, logger *slog.Logger) catalogSvc.QuizGenerator {
	return &mockQuizGenerator{quizService: quizService, logger: logger}
}

// GenerateQuiz creates a quiz draft with deterministic content.
func (g *mockQuizGenerator) GenerateQuiz(ctx context.Context, req *catalogSvc.GenerateQuizRequest) (*models.Quiz, error) {
	if req.Topic == "" {
		return nil, fmt.Errorf("%w: topic is required", domain.ErrValidation)
	}

	count := req.QuestionCount
	if count <= 0 {
		count = config.DefaultGeneratedQuestions
	}
	if count > config.MaxGeneratedQuestions {
		return nil, fmt.Errorf("%w: at most %d questions per request", domain.ErrValidation, config.MaxGeneratedQuestions)
	}

	questions := make([]models.Question, count)
	for i := range questions {
		questions[i] = models.Question{
			Text: fmt.Sprintf("Placeholder question %d about %s", i+1, req.Topic),
			AnswerOptions: []models.AnswerOption{
				{Text: fmt.Sprintf("Correct statement about %s", req.Topic), IsCorrect: true, Rationale: "Placeholder rationale."},
				{Text: "Plausible distractor A", IsCorrect: false},
				{Text: "Plausible distractor B", IsCorrect: false},
				{Text: "Plausible distractor C", IsCorrect: false},
			},
			Hint: fmt.Sprintf("Review your notes on %s.", req.Topic),
		}
	}

	quiz, err := g.quizService.CreateQuiz(ctx, &catalogSvc.CreateQuizRequest{
		Title:     fmt.Sprintf("%s (draft)", req.Topic),
		FolderID:  req.FolderID,
		Questions: questions,
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info("quiz generated", "id", quiz.ID, "topic", req.Topic, "questions", count)

	return quiz, nil
}
