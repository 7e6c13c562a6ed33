package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"medquiz/internal/content"
	"medquiz/internal/domain"
	models "medquiz/internal/domain/models/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
)

//go:embed schemas/quiz_full.json
var quizFullSchema string

//go:embed schemas/quiz_compact.json
var quizCompactSchema string

// quizImporter validates pasted quiz JSON against an embedded schema
// and creates the quiz through the quiz service so the structural
// rules apply to imports too.
type quizImporter struct {
	quizService   catalogSvc.QuizService
	fullSchema    *gojsonschema.Schema
	compactSchema *gojsonschema.Schema
	logger        *slog.Logger
}

// NewQuizImporter creates a new quiz importer. Schema compilation
// happens once at startup; a broken embedded schema is a build defect,
// so it panics.
func NewQuizImporter(quizService catalogSvc.QuizService, logger *slog.Logger) catalogSvc.QuizImporter {
	full, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(quizFullSchema))
	if err != nil {
		panic(fmt.Sprintf("compile quiz schema: %v", err))
	}
	compact, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(quizCompactSchema))
	if err != nil {
		panic(fmt.Sprintf("compile compact quiz schema: %v", err))
	}
	return &quizImporter{
		quizService:   quizService,
		fullSchema:    full,
		compactSchema: compact,
		logger:        logger,
	}
}

// ImportQuiz validates the payload and creates the quiz. The compact
// single-letter format is detected by its "t" title key.
func (s *quizImporter) ImportQuiz(ctx context.Context, req *catalogSvc.ImportQuizRequest) (*models.Quiz, error) {
	if len(req.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrValidation)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(req.Payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object: %v", domain.ErrValidation, err)
	}

	_, isCompact := probe["t"]

	schema := s.fullSchema
	format := "full"
	if isCompact {
		schema = s.compactSchema
		format = "compact"
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(req.Payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, formatSchemaErrors(result))
	}

	var title string
	var questions []models.Question

	if isCompact {
		var compact content.CompactQuiz
		if err := json.Unmarshal(req.Payload, &compact); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		title, questions, err = content.ExpandCompact(compact)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	} else {
		var full struct {
			Title     string            `json:"title"`
			Questions []models.Question `json:"questions"`
		}
		if err := json.Unmarshal(req.Payload, &full); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		title = full.Title
		questions = full.Questions
	}

	quiz, err := s.quizService.CreateQuiz(ctx, &catalogSvc.CreateQuizRequest{
		Title:     title,
		FolderID:  req.FolderID,
		Questions: questions,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quiz imported",
		"id", quiz.ID,
		"title", quiz.Title,
		"format", format,
		"questions", len(quiz.Questions),
	)

	return quiz, nil
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	var parts []string
	for _, desc := range result.Errors() {
		parts = append(parts, desc.String())
	}
	return strings.Join(parts, "; ")
}
