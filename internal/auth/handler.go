package auth

import (
	"net/http"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/transport"
	"github.com/frahmantamala/safety-lms/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     svc,
	}
}

// Me returns the authorization context of the caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	uc, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.NewUnauthorizedError("missing authorization token"))
		return
	}
	h.WriteJSON(w, http.StatusOK, internal.Ok(*uc))
}

// AuthMiddleware resolves the bearer token into a UserContext stored on the
// request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uc, err := h.Service.Authenticate(r.Context(), h.ExtractTokenFromHeader(r))
		if err != nil {
			h.WriteError(w, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), uc)
		ctx = logger.With(ctx, "user_id", uc.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
