package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"medquiz/internal/content"
	models "medquiz/internal/domain/models/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
	"medquiz/internal/httputil"
)

// MoveHandler exposes the batch move orchestrator over HTTP. The
// orchestrator holds the selection between requests, so clients may
// either toggle items ahead of time or send the selection inline with
// the drop.
type MoveHandler struct {
	orchestrator *content.Orchestrator
	treeService  catalogSvc.TreeService
	logger       *slog.Logger
}

// NewMoveHandler creates a new move handler
func NewMoveHandler(orchestrator *content.Orchestrator, treeService catalogSvc.TreeService, logger *slog.Logger) *MoveHandler {
	return &MoveHandler{
		orchestrator: orchestrator,
		treeService:  treeService,
		logger:       logger,
	}
}

type itemRefPayload struct {
	Type models.ItemType `json:"type"`
	ID   string          `json:"id"`
}

func (p itemRefPayload) ref() models.ItemRef {
	return models.ItemRef{Type: p.Type, ID: p.ID}
}

type targetPayload struct {
	Type models.ItemType `json:"type,omitempty"`
	ID   string          `json:"id,omitempty"`
}

func (p targetPayload) target() content.Target {
	return content.Target{Type: p.Type, ID: p.ID}
}

type moveRequest struct {
	Dragged   itemRefPayload   `json:"dragged"`
	Source    targetPayload    `json:"source"`
	Dest      targetPayload    `json:"dest"`
	Selection []itemRefPayload `json:"selection,omitempty"`
}

type transferRequest struct {
	Dest      targetPayload    `json:"dest"`
	Selection []itemRefPayload `json:"selection,omitempty"`
}

type moveResponse struct {
	Moved []models.ItemRef `json:"moved"`
	NoOp  bool             `json:"no_op"`
}

// Move handles a drag-drop request
func (h *MoveHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Dragged.ID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "dragged item is required")
		return
	}

	h.replaceSelection(req.Selection)

	containers, err := h.treeService.GetContainers(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.orchestrator.ResolveMoveRequest(r.Context(), req.Dragged.ref(), req.Source.target(), req.Dest.target(), containers)
	if err != nil {
		h.handleMoveError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, moveResponse{Moved: result.Moved, NoOp: result.NoOp})
}

// Transfer moves the selection to a destination picked in the transfer
// dialog
func (h *MoveHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.replaceSelection(req.Selection)

	containers, err := h.treeService.GetContainers(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.orchestrator.ResolveTransferRequest(r.Context(), req.Dest.target(), containers)
	if err != nil {
		h.handleMoveError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, moveResponse{Moved: result.Moved, NoOp: result.NoOp})
}

// Select toggles an item in the server-side selection
func (h *MoveHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req itemRefPayload
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "item id is required")
		return
	}

	h.orchestrator.ToggleSelect(req.ref())
	httputil.RespondJSON(w, http.StatusOK, h.selectionBody())
}

// GetSelection returns the current selection in insertion order
func (h *MoveHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.selectionBody())
}

// ClearSelection empties the selection
func (h *MoveHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.orchestrator.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

// replaceSelection swaps in an inline selection when the client sends
// one. A nil selection keeps whatever was toggled previously.
func (h *MoveHandler) replaceSelection(selection []itemRefPayload) {
	if selection == nil {
		return
	}
	h.orchestrator.ClearSelection()
	for _, item := range selection {
		h.orchestrator.ToggleSelect(item.ref())
	}
}

func (h *MoveHandler) selectionBody() map[string]any {
	items := h.orchestrator.SelectedItems()
	if items == nil {
		items = []models.ItemRef{}
	}
	return map[string]any{"selection": items}
}

func (h *MoveHandler) handleMoveError(w http.ResponseWriter, err error) {
	var rejected *content.RejectedError
	switch {
	case errors.Is(err, content.ErrMoveInFlight):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &rejected):
		httputil.RespondError(w, http.StatusBadRequest, rejected.Error())
	default:
		handleError(w, err)
	}
}
