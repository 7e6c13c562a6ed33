package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "medquiz/internal/domain/services/catalog"
	"medquiz/internal/httputil"
)

// QuizHandler handles HTTP requests for quizzes, including paste-import
// and draft generation
type QuizHandler struct {
	quizService catalogSvc.QuizService
	importer    catalogSvc.QuizImporter
	generator   catalogSvc.QuizGenerator
	logger      *slog.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService catalogSvc.QuizService, importer catalogSvc.QuizImporter, generator catalogSvc.QuizGenerator, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		importer:    importer,
		generator:   generator,
		logger:      logger,
	}
}

// CreateQuiz creates a new quiz
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.CreateQuizRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.quizService.CreateQuiz(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, quiz)
}

// GetQuiz retrieves a quiz by ID
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizService.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, quiz)
}

// ListQuizzes lists all quizzes
func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizService.ListQuizzes(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, quizzes)
}

// UpdateQuiz updates a quiz
func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.UpdateQuizRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.quizService.UpdateQuiz(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, quiz)
}

// DeleteQuiz deletes a quiz
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.quizService.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImportQuiz validates a pasted quiz payload and creates the quiz
func (h *QuizHandler) ImportQuiz(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.ImportQuizRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.importer.ImportQuiz(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, quiz)
}

// GenerateQuiz produces a quiz draft for a topic
func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.GenerateQuizRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.generator.GenerateQuiz(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, quiz)
}
