package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "medquiz/internal/domain/services/catalog"
	"medquiz/internal/httputil"
)

// SubjectHandler handles HTTP requests for subjects
type SubjectHandler struct {
	subjectService catalogSvc.SubjectService
	logger         *slog.Logger
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjectService catalogSvc.SubjectService, logger *slog.Logger) *SubjectHandler {
	return &SubjectHandler{
		subjectService: subjectService,
		logger:         logger,
	}
}

// CreateSubject creates a new subject
func (h *SubjectHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.CreateSubjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	subject, err := h.subjectService.CreateSubject(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, subject)
}

// GetSubject retrieves a subject by ID
func (h *SubjectHandler) GetSubject(w http.ResponseWriter, r *http.Request) {
	subject, err := h.subjectService.GetSubject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, subject)
}

// ListSubjects lists all subjects
func (h *SubjectHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjectService.ListSubjects(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, subjects)
}

// updateSubjectPayload uses OptionalString for course_id so PATCH can
// distinguish "leave as is" (absent) from "unfile" (null).
type updateSubjectPayload struct {
	Name     *string                 `json:"name,omitempty"`
	CourseID httputil.OptionalString `json:"course_id"`
	Icon     *string                 `json:"icon,omitempty"`
	Order    *int                    `json:"order,omitempty"`
}

// UpdateSubject updates a subject
func (h *SubjectHandler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	var payload updateSubjectPayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := catalogSvc.UpdateSubjectRequest{
		Name:  payload.Name,
		Icon:  payload.Icon,
		Order: payload.Order,
	}
	if payload.CourseID.Present {
		if payload.CourseID.Value != nil {
			req.CourseID = payload.CourseID.Value
		} else {
			empty := ""
			req.CourseID = &empty
		}
	}

	subject, err := h.subjectService.UpdateSubject(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, subject)
}

// DeleteSubject deletes a subject
func (h *SubjectHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	if err := h.subjectService.DeleteSubject(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
