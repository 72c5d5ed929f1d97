package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/dbservice"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/progress"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/frahmantamala/safety-lms/internal/transport"
)

// Handler exposes the data layer over HTTP. Every response body is a Result.
type Handler struct {
	*transport.BaseHandler
	api dbservice.API
}

func NewHandler(api dbservice.API, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		api:         api,
	}
}

// caller returns the authenticated user; AuthMiddleware guarantees one.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (internal.UserContext, bool) {
	uc, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.NewUnauthorizedError("missing authorization token"))
		return internal.UserContext{}, false
	}
	return *uc, true
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	q := newQuery(r.URL.Query())
	filter := profile.ListFilter{
		Pagination: q.pagination(),
		Search:     q.str("search"),
		Status:     q.str("status"),
		PlantID:    q.str("plantId"),
	}
	details := q.boolean("details")
	if err := q.Err(); err != nil {
		h.WriteError(w, err)
		return
	}

	if details != nil && *details {
		transport.WriteResult(h.BaseHandler, w, h.api.GetUsersWithDetails(r.Context(), uc, filter))
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.ListProfiles(r.Context(), uc, filter))
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.GetProfile(r.Context(), uc, chi.URLParam(r, "id")))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	var dto profile.UpdateProfileDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.UpdateProfile(r.Context(), uc, chi.URLParam(r, "id"), dto))
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	filter := course.ListFilter{
		Pagination:  q.pagination(),
		Search:      q.str("search"),
		IsPublished: q.boolean("isPublished"),
	}
	if err := q.Err(); err != nil {
		h.WriteError(w, err)
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.ListCourses(r.Context(), filter))
}

func (h *Handler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	q := newQuery(r.URL.Query())
	filter := enrollment.ListFilter{
		Pagination: q.pagination(),
		Status:     q.str("status"),
		CourseID:   q.str("courseId"),
		UserID:     q.str("userId"),
		PlantID:    q.str("plantId"),
	}
	details := q.boolean("details")
	if err := q.Err(); err != nil {
		h.WriteError(w, err)
		return
	}

	if details != nil && *details {
		transport.WriteResult(h.BaseHandler, w, h.api.GetEnrollmentsWithDetails(r.Context(), uc, filter))
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.ListEnrollments(r.Context(), uc, filter))
}

func (h *Handler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	var dto enrollment.CreateEnrollmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}
	if !h.writable(w, uc, dto.PlantID) {
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.CreateEnrollment(r.Context(), dto))
}

func (h *Handler) UpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	var dto enrollment.UpdateEnrollmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.UpdateEnrollment(r.Context(), uc, chi.URLParam(r, "id"), dto))
}

func (h *Handler) ListProgress(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	q := newQuery(r.URL.Query())
	filter := progress.ListFilter{
		Pagination:  q.pagination(),
		CourseID:    q.str("courseId"),
		UserID:      q.str("userId"),
		PlantID:     q.str("plantId"),
		MinProgress: q.float("minProgress"),
		MaxProgress: q.float("maxProgress"),
	}
	details := q.boolean("details")
	if err := q.Err(); err != nil {
		h.WriteError(w, err)
		return
	}

	if details != nil && *details {
		transport.WriteResult(h.BaseHandler, w, h.api.GetProgressWithDetails(r.Context(), uc, filter))
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.ListProgress(r.Context(), uc, filter))
}

func (h *Handler) CreateProgress(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	var dto progress.CreateProgressDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}
	if !h.writable(w, uc, dto.PlantID) {
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.CreateProgress(r.Context(), dto))
}

func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	var dto progress.UpdateProgressDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.UpdateProgress(r.Context(), uc, chi.URLParam(r, "id"), dto))
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.GetDetailedAnalytics(r.Context(), &uc))
}

func (h *Handler) GetPlantDashboard(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.caller(w, r)
	if !ok {
		return
	}
	plantID := chi.URLParam(r, "id")
	if !tenant.ValidateAccess(uc, plantID) {
		h.WriteError(w, internal.NewNotFoundError("Plant not found"))
		return
	}
	transport.WriteResult(h.BaseHandler, w, h.api.GetDashboardStats(r.Context(), plantID))
}

// writable rejects creates into a plant outside the caller's scope with FORBIDDEN.
func (h *Handler) writable(w http.ResponseWriter, uc internal.UserContext, plantID string) bool {
	if plantID == "" || tenant.ValidateAccess(uc, plantID) {
		return true
	}
	h.WriteError(w, internal.NewForbiddenError("plant is outside your access"))
	return false
}
