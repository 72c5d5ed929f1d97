package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/frahmantamala/safety-lms/pkg/logger"
)

const TraceHeader = "X-Trace-ID"

// RequestID binds a trace id to the request logger and echoes it back.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.NewString()
		}

		ctx := logger.WithTrace(r.Context(), traceID)
		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
