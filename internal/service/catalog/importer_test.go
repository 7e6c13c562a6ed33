package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"medquiz/internal/domain"
	catalogSvc "medquiz/internal/domain/services/catalog"
	"medquiz/internal/repository/memory"
)

func newImporter() catalogSvc.QuizImporter {
	quizRepo := memory.NewQuizRepository()
	folderRepo := memory.NewFolderRepository()
	quizService := NewQuizService(quizRepo, folderRepo, testLogger())
	return NewQuizImporter(quizService, testLogger())
}

func TestImportQuizFullFormat(t *testing.T) {
	importer := newImporter()

	payload := `{
		"title": "Cardiac physiology",
		"questions": [
			{
				"question": "Which valve closes at the start of systole?",
				"answerOptions": [
					{"text": "Mitral", "isCorrect": true, "rationale": "S1 is mitral and tricuspid closure."},
					{"text": "Aortic", "isCorrect": false}
				],
				"hint": "Think about S1."
			}
		]
	}`

	quiz, err := importer.ImportQuiz(context.Background(), &catalogSvc.ImportQuizRequest{
		Payload: json.RawMessage(payload),
	})
	if err != nil {
		t.Fatalf("ImportQuiz: %v", err)
	}
	if quiz.Title != "Cardiac physiology" {
		t.Errorf("title = %q", quiz.Title)
	}
	if len(quiz.Questions) != 1 || len(quiz.Questions[0].AnswerOptions) != 2 {
		t.Fatalf("questions = %+v", quiz.Questions)
	}
	if !quiz.Questions[0].AnswerOptions[0].IsCorrect {
		t.Error("first option should be correct")
	}
}

func TestImportQuizCompactFormat(t *testing.T) {
	importer := newImporter()

	payload := `{
		"t": "Renal",
		"q": [
			{"q": "Where is most sodium reabsorbed?", "o": ["Proximal tubule", "Loop of Henle", "Collecting duct"], "c": 0, "r": ["Around two thirds of filtered sodium.", "", ""], "h": "Early nephron."}
		]
	}`

	quiz, err := importer.ImportQuiz(context.Background(), &catalogSvc.ImportQuizRequest{
		Payload: json.RawMessage(payload),
	})
	if err != nil {
		t.Fatalf("ImportQuiz: %v", err)
	}
	if quiz.Title != "Renal" {
		t.Errorf("title = %q", quiz.Title)
	}
	opts := quiz.Questions[0].AnswerOptions
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if !opts[0].IsCorrect || opts[1].IsCorrect || opts[2].IsCorrect {
		t.Error("only option 0 should be correct")
	}
	if opts[0].Rationale == "" {
		t.Error("rationale lost in expansion")
	}
	if quiz.Questions[0].Hint != "Early nephron." {
		t.Errorf("hint = %q", quiz.Questions[0].Hint)
	}
}

func TestImportQuizRejections(t *testing.T) {
	importer := newImporter()
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `not json at all`},
		{"empty object", `{}`},
		{"full format without questions", `{"title": "x"}`},
		{"full format with empty options", `{"title": "x", "questions": [{"question": "q", "answerOptions": []}]}`},
		{"compact with single option", `{"t": "x", "q": [{"q": "q", "o": ["only"], "c": 0}]}`},
		{"compact with out of range index", `{"t": "x", "q": [{"q": "q", "o": ["a", "b"], "c": 5}]}`},
		{"unknown extra key", `{"title": "x", "questions": [], "extra": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.ImportQuiz(ctx, &catalogSvc.ImportQuizRequest{
				Payload: json.RawMessage(tt.payload),
			})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestImportQuizMultipleCorrectRejected(t *testing.T) {
	importer := newImporter()

	// Passes the schema but violates the single-correct rule enforced
	// by the quiz service.
	payload := `{
		"title": "x",
		"questions": [
			{
				"question": "q",
				"answerOptions": [
					{"text": "a", "isCorrect": true},
					{"text": "b", "isCorrect": true}
				]
			}
		]
	}`

	_, err := importer.ImportQuiz(context.Background(), &catalogSvc.ImportQuizRequest{
		Payload: json.RawMessage(payload),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
