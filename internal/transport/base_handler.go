package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes err in the Result envelope. Database failures never expose
// their message.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewDatabaseError("unexpected failure", err)
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("http error", "code", appErr.Code, "error", err)
	} else {
		h.Logger.Debug("http error", "code", appErr.Code, "message", appErr.Message)
	}
	h.WriteJSON(w, appErr.StatusCode, internal.Fail[any](publicError(appErr)))
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

// WriteResult writes res with the status derived from its code.
func WriteResult[T any](h *BaseHandler, w http.ResponseWriter, res internal.Result[T]) {
	if !res.Success && res.Code == internal.ErrCodeDatabase {
		h.Logger.Error("data layer failure", "error", res.Error)
		res.Error = "Internal server error"
	}
	h.WriteJSON(w, res.StatusCode(), res)
}

func publicError(e *internal.AppError) *internal.AppError {
	if e.Type != internal.ErrorTypeDatabase {
		return e
	}
	return &internal.AppError{
		Type:       e.Type,
		Code:       e.Code,
		Message:    "Internal server error",
		StatusCode: e.StatusCode,
	}
}
