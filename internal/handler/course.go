package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"medquiz/internal/domain"
	models "medquiz/internal/domain/models/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
	"medquiz/internal/httputil"
)

// CourseHandler handles HTTP requests for courses
type CourseHandler struct {
	courseService catalogSvc.CourseService
	logger        *slog.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService catalogSvc.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// CreateCourse creates a new course. A duplicate name returns the
// existing course with 409.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.CreateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, err, func() (*models.Course, error) {
			return h.findCourseByName(r, req.Name)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, course)
}

// GetCourse retrieves a course by ID
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.GetCourse(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// ListCourses lists all courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, courses)
}

// UpdateCourse updates a course
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.UpdateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courseService.UpdateCourse(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse deletes a course
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courseService.DeleteCourse(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) findCourseByName(r *http.Request, name string) (*models.Course, error) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].Name == name {
			return &courses[i], nil
		}
	}
	return nil, fmt.Errorf("course '%s': %w", name, domain.ErrNotFound)
}
