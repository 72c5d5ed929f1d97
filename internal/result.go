package internal

import (
	"fmt"
	"net/http"
)

// Result is the tagged union returned by every data-layer operation:
// {success: true, data} or {success: false, error, code}.
type Result[T any] struct {
	Success bool        `json:"success"`
	Data    T           `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    ErrorCode   `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`

	status int
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail converts any error into a failed Result. Errors that are not AppErrors are
// reported as DATABASE_ERROR.
func Fail[T any](err error) Result[T] {
	appErr, ok := IsAppError(err)
	if !ok {
		appErr = NewDatabaseError("database operation failed", err)
	}
	return Result[T]{
		Success: false,
		Error:   appErr.GetDetailedMessage(),
		Code:    appErr.Code,
		Details: appErr.Details,
		status:  appErr.StatusCode,
	}
}

// ResultOf is the boundary conversion used by the facade.
func ResultOf[T any](data T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(data)
}

// Recovered turns a recovered panic value into a failed Result.
func Recovered[T any](v interface{}) Result[T] {
	return Fail[T](NewDatabaseError("unexpected failure", fmt.Errorf("panic: %v", v)))
}

// StatusCode is the HTTP status equivalent of the result.
func (r Result[T]) StatusCode() int {
	if r.Success {
		return http.StatusOK
	}
	if r.status != 0 {
		return r.status
	}
	switch r.Code {
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
