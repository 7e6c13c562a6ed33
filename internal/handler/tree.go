package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "medquiz/internal/domain/services/catalog"
	"medquiz/internal/httputil"
)

// TreeHandler handles HTTP requests for the content hierarchy views
type TreeHandler struct {
	treeService catalogSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService catalogSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the nested course/subject/folder/quiz tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetTree(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// GetContainers returns the flat normalized container list
func (h *TreeHandler) GetContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := h.treeService.GetContainers(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, containers)
}

// HealthCheck reports service liveness
func (h *TreeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
