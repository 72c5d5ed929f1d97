package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/frahmantamala/safety-lms/internal"
)

// query reads typed values from a URL query, remembering the first bad one.
type query struct {
	values url.Values
	err    *internal.AppError
}

func newQuery(values url.Values) *query {
	return &query{values: values}
}

func (q *query) str(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

func (q *query) integer(key string) int {
	raw := q.str(key)
	if raw == "" || q.err != nil {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(key, "must be an integer")
		return 0
	}
	return n
}

func (q *query) float(key string) *float64 {
	raw := q.str(key)
	if raw == "" || q.err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.fail(key, "must be a number")
		return nil
	}
	return &f
}

func (q *query) boolean(key string) *bool {
	raw := q.str(key)
	if raw == "" || q.err != nil {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail(key, "must be true or false")
		return nil
	}
	return &b
}

func (q *query) pagination() internal.Pagination {
	return internal.Pagination{Page: q.integer("page"), Limit: q.integer("limit")}
}

func (q *query) fail(key, message string) {
	q.err = internal.NewValidationFieldError(key, fmt.Sprintf("%s %s", key, message), internal.ErrCodeValidationFailed)
}

// Err returns the first parse failure, or nil.
func (q *query) Err() error {
	if q.err == nil {
		return nil
	}
	return q.err
}
