package middleware

import (
	"net/http"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/transport"
	"github.com/frahmantamala/safety-lms/pkg/logger"
)

// RequireGlobalAdmin rejects callers holding no role without a plant restriction.
func RequireGlobalAdmin(h *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uc, ok := internal.UserFromContext(r.Context())
			if !ok {
				h.WriteError(w, internal.NewUnauthorizedError("missing authorization token"))
				return
			}
			if !uc.IsGlobalAdmin() {
				logger.From(r.Context()).Warn("access denied: global admin required", "user_id", uc.UserID)
				h.WriteError(w, internal.NewForbiddenError("global admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole admits callers holding any of roles, whatever their plant.
func RequireRole(h *transport.BaseHandler, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uc, ok := internal.UserFromContext(r.Context())
			if !ok {
				h.WriteError(w, internal.NewUnauthorizedError("missing authorization token"))
				return
			}
			for _, role := range roles {
				if uc.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.From(r.Context()).Warn("access denied: missing role", "user_id", uc.UserID, "required_roles", roles)
			h.WriteError(w, internal.NewForbiddenError("insufficient role"))
		})
	}
}
