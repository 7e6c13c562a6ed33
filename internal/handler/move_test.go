package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medquiz/internal/content"
	models "medquiz/internal/domain/models/catalog"
	"medquiz/internal/repository/memory"
	serviceCatalog "medquiz/internal/service/catalog"
)

type moveTestEnv struct {
	handler *MoveHandler

	course    models.Course
	subject   models.Subject
	folder    models.Folder
	subfolder models.Folder
	quiz      models.Quiz

	quizzes func(t *testing.T) []models.Quiz
}

func newMoveTestEnv(t *testing.T) *moveTestEnv {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	courseRepo := memory.NewCourseRepository()
	subjectRepo := memory.NewSubjectRepository()
	folderRepo := memory.NewFolderRepository()
	quizRepo := memory.NewQuizRepository()

	course := models.Course{Name: "Cuarto Semestre"}
	if err := courseRepo.Create(ctx, &course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	subject := models.Subject{Name: "Farmacología", CourseID: &course.ID}
	if err := subjectRepo.Create(ctx, &subject); err != nil {
		t.Fatalf("create subject: %v", err)
	}
	folder := models.Folder{Name: "Primer Parcial", SubjectID: &subject.ID}
	if err := folderRepo.Create(ctx, &folder); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	subfolder := models.Folder{Name: "Casos", ParentID: &folder.ID}
	if err := folderRepo.Create(ctx, &subfolder); err != nil {
		t.Fatalf("create subfolder: %v", err)
	}
	quiz := models.Quiz{Title: "Repaso", FolderID: &folder.ID}
	if err := quizRepo.Create(ctx, &quiz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	treeService := serviceCatalog.NewTreeService(courseRepo, subjectRepo, folderRepo, quizRepo, logger)
	mover := serviceCatalog.NewItemMover(subjectRepo, folderRepo, quizRepo, logger)
	orchestrator := content.NewOrchestrator(mover, logger)

	return &moveTestEnv{
		handler:   NewMoveHandler(orchestrator, treeService, logger),
		course:    course,
		subject:   subject,
		folder:    folder,
		subfolder: subfolder,
		quiz:      quiz,
		quizzes: func(t *testing.T) []models.Quiz {
			t.Helper()
			quizzes, err := quizRepo.List(ctx)
			if err != nil {
				t.Fatalf("list quizzes: %v", err)
			}
			return quizzes
		},
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestMoveEndpointSingleItem(t *testing.T) {
	env := newMoveTestEnv(t)

	body := `{
		"dragged": {"type": "quiz", "id": "` + env.quiz.ID + `"},
		"source": {"type": "folder", "id": "` + env.folder.ID + `"},
		"dest": {"type": "folder", "id": "` + env.subfolder.ID + `"}
	}`
	rec := postJSON(t, env.handler.Move, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Moved []models.ItemRef `json:"moved"`
		NoOp  bool             `json:"no_op"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Moved) != 1 || resp.Moved[0].ID != env.quiz.ID {
		t.Fatalf("unexpected moved set: %+v", resp.Moved)
	}

	quizzes := env.quizzes(t)
	if *quizzes[0].FolderID != env.subfolder.ID {
		t.Errorf("quiz folder = %v, want %s", *quizzes[0].FolderID, env.subfolder.ID)
	}
}

func TestMoveEndpointFolderToRootRejected(t *testing.T) {
	env := newMoveTestEnv(t)

	body := `{
		"dragged": {"type": "folder", "id": "` + env.folder.ID + `"},
		"source": {"type": "subject", "id": "` + env.subject.ID + `"},
		"dest": {}
	}`
	rec := postJSON(t, env.handler.Move, body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestMoveEndpointBatchRejectedKeepsState(t *testing.T) {
	env := newMoveTestEnv(t)

	// The subject makes the whole batch illegal for a folder target.
	body := `{
		"dragged": {"type": "quiz", "id": "` + env.quiz.ID + `"},
		"source": {"type": "folder", "id": "` + env.folder.ID + `"},
		"dest": {"type": "folder", "id": "` + env.subfolder.ID + `"},
		"selection": [
			{"type": "quiz", "id": "` + env.quiz.ID + `"},
			{"type": "subject", "id": "` + env.subject.ID + `"}
		]
	}`
	rec := postJSON(t, env.handler.Move, body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	quizzes := env.quizzes(t)
	if *quizzes[0].FolderID != env.folder.ID {
		t.Error("quiz moved despite batch rejection")
	}

	// The rejected batch stays selected for a retry.
	selReq := httptest.NewRequest(http.MethodGet, "/", nil)
	selRec := httptest.NewRecorder()
	env.handler.GetSelection(selRec, selReq)
	var selResp struct {
		Selection []models.ItemRef `json:"selection"`
	}
	if err := json.Unmarshal(selRec.Body.Bytes(), &selResp); err != nil {
		t.Fatalf("decode selection: %v", err)
	}
	if len(selResp.Selection) != 2 {
		t.Errorf("selection length = %d, want 2", len(selResp.Selection))
	}
}

func TestTransferEndpointEmptySelectionNoOp(t *testing.T) {
	env := newMoveTestEnv(t)

	body := `{"dest": {"type": "folder", "id": "` + env.subfolder.ID + `"}}`
	rec := postJSON(t, env.handler.Transfer, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		NoOp bool `json:"no_op"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.NoOp {
		t.Error("expected no-op for empty selection")
	}
}

func TestMoveEndpointMissingDragged(t *testing.T) {
	env := newMoveTestEnv(t)

	rec := postJSON(t, env.handler.Move, `{"dest": {}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
