package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/transport"
	"github.com/frahmantamala/safety-lms/pkg/logger"
)

// RecoveryMiddleware turns a handler panic into a DATABASE_ERROR result.
func RecoveryMiddleware(h *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					logger.From(r.Context()).Error("panic recovered",
						"error", v,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()))
					transport.WriteResult(h, w, internal.Recovered[any](v))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
