package legacy

import (
	"context"
	"fmt"

	"github.com/frahmantamala/safety-lms/internal/analytics"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/jmoiron/sqlx"
)

type AnalyticsStore struct {
	store
}

func NewAnalyticsStore(db *sqlx.DB) analytics.Repository {
	return &AnalyticsStore{store{db: db}}
}

func groupColumn(by analytics.GroupBy) (string, error) {
	switch by {
	case analytics.ByCourse, analytics.ByPlant:
		return string(by), nil
	}
	return "", fmt.Errorf("unsupported grouping %q", by)
}

func (s *AnalyticsStore) EnrollmentCounts(ctx context.Context, scope tenant.Scope, by analytics.GroupBy) ([]analytics.EnrollmentCounts, error) {
	column, err := groupColumn(by)
	if err != nil {
		return nil, err
	}
	w := &where{}
	w.scope(scope, "plant_id")

	rows := []analytics.EnrollmentCounts{}
	err = s.selectAll(ctx, &rows, `SELECT `+column+` AS group_key,
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress
		FROM enrollments`+w.String()+` GROUP BY `+column, w.args...)
	return rows, err
}

func (s *AnalyticsStore) ProgressSums(ctx context.Context, scope tenant.Scope, by analytics.GroupBy) ([]analytics.ProgressSums, error) {
	column, err := groupColumn(by)
	if err != nil {
		return nil, err
	}
	w := &where{}
	w.scope(scope, "plant_id")

	rows := []analytics.ProgressSums{}
	err = s.selectAll(ctx, &rows, `SELECT `+column+` AS group_key,
			CAST(COALESCE(SUM(progress_percent), 0) AS DOUBLE PRECISION) AS total,
			COUNT(*) AS rows_count
		FROM progress`+w.String()+` GROUP BY `+column, w.args...)
	return rows, err
}

func (s *AnalyticsStore) UserCountsByPlant(ctx context.Context, scope tenant.Scope) ([]analytics.UserCounts, error) {
	w := &where{}
	w.scope(scope, "p.plant_id")

	rows := []analytics.UserCounts{}
	err := s.selectAll(ctx, &rows, `SELECT p.plant_id AS group_key,
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN p.status = 'active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN EXISTS (SELECT 1 FROM enrollments e WHERE e.user_id = p.id)
				AND NOT EXISTS (SELECT 1 FROM enrollments e WHERE e.user_id = p.id AND e.status <> 'completed')
				THEN 1 ELSE 0 END), 0) AS compliant
		FROM profiles p`+w.String()+` GROUP BY p.plant_id`, w.args...)
	return rows, err
}

func (s *AnalyticsStore) Courses(ctx context.Context) ([]analytics.Named, error) {
	rows := []analytics.Named{}
	err := s.selectAll(ctx, &rows, "SELECT id, title AS name FROM courses ORDER BY title ASC, id ASC")
	return rows, err
}

func (s *AnalyticsStore) Plants(ctx context.Context, scope tenant.Scope) ([]analytics.Named, error) {
	w := &where{}
	w.scope(scope, "id")

	rows := []analytics.Named{}
	err := s.selectAll(ctx, &rows, "SELECT id, name FROM plants"+w.String()+" ORDER BY name ASC, id ASC", w.args...)
	return rows, err
}
