// Package legacy is the sqlx data layer that predates the gorm repositories. It
// implements the same repository interfaces with hand-written SQL and stays the
// fallback target of the migration switch.
package legacy

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/frahmantamala/safety-lms/internal/core/database"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/jmoiron/sqlx"
)

// where accumulates AND-ed predicates written with ? placeholders.
type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) add(clause string, args ...interface{}) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

// scope adds the tenant predicate on column. Slices are expanded by sqlx.In.
func (w *where) scope(scope tenant.Scope, column string) {
	switch {
	case scope.Unrestricted:
	case len(scope.PlantIDs) == 0:
		w.add("1 = 0")
	default:
		w.add(column+" IN (?)", scope.PlantIDs)
	}
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

type store struct {
	db *sqlx.DB
}

// bind expands IN clauses and rebinds placeholders for the driver.
func (s *store) bind(query string, args []interface{}) (string, []interface{}, error) {
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to expand query: %w", err)
	}
	return s.db.Rebind(q), expanded, nil
}

func (s *store) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	q, expanded, err := s.bind(query, args)
	if err != nil {
		return err
	}
	return database.TranslateSQL(s.db.GetContext(ctx, dest, q, expanded...))
}

func (s *store) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	q, expanded, err := s.bind(query, args)
	if err != nil {
		return err
	}
	return database.TranslateSQL(s.db.SelectContext(ctx, dest, q, expanded...))
}

func (s *store) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	q, expanded, err := s.bind(query, args)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, q, expanded...)
	if err != nil {
		return 0, database.TranslateSQL(err)
	}
	return res.RowsAffected()
}

func (s *store) insert(ctx context.Context, query string, row interface{}) error {
	_, err := s.db.NamedExecContext(ctx, query, row)
	return database.TranslateSQL(err)
}

// update runs UPDATE table SET fields WHERE w. Columns are written in sorted order.
func (s *store) update(ctx context.Context, table string, fields map[string]interface{}, w *where) (int64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("no fields to update on %s", table)
	}
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	sets := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns)+len(w.args))
	for _, column := range columns {
		sets = append(sets, column+" = ?")
		args = append(args, fields[column])
	}
	args = append(args, w.args...)

	return s.exec(ctx, "UPDATE "+table+" SET "+strings.Join(sets, ", ")+w.String(), args...)
}

// count runs SELECT COUNT(*) over from with the predicate of w.
func (s *store) count(ctx context.Context, from string, w *where) (int64, error) {
	var total int64
	if err := s.get(ctx, &total, "SELECT COUNT(*) FROM "+from+w.String(), w.args...); err != nil {
		return 0, err
	}
	return total, nil
}

func page(limit, offset int) string {
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}
