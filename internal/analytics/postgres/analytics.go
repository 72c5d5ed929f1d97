package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/safety-lms/internal/analytics"
	"github.com/frahmantamala/safety-lms/internal/core/database"
	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	enrollmentDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/enrollment"
	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	progressDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/progress"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"gorm.io/gorm"
)

const compliantUsersSQL = `SUM(CASE WHEN EXISTS (SELECT 1 FROM enrollments e WHERE e.user_id = profiles.id)
	AND NOT EXISTS (SELECT 1 FROM enrollments e WHERE e.user_id = profiles.id AND e.status <> 'completed')
	THEN 1 ELSE 0 END) AS compliant`

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) analytics.Repository {
	return &AnalyticsRepository{db: db}
}

func groupColumn(by analytics.GroupBy) (string, error) {
	switch by {
	case analytics.ByCourse, analytics.ByPlant:
		return string(by), nil
	}
	return "", fmt.Errorf("unsupported grouping %q", by)
}

func (r *AnalyticsRepository) EnrollmentCounts(ctx context.Context, scope tenant.Scope, by analytics.GroupBy) ([]analytics.EnrollmentCounts, error) {
	column, err := groupColumn(by)
	if err != nil {
		return nil, err
	}

	var rows []analytics.EnrollmentCounts
	err = r.db.WithContext(ctx).
		Model(&enrollmentDatamodel.Enrollment{}).
		Scopes(database.Scoped(scope, "plant_id")).
		Select(column + " AS group_key, COUNT(*) AS total, " +
			"SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed, " +
			"SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END) AS in_progress").
		Group(column).
		Scan(&rows).Error
	return rows, database.TranslateGorm(err)
}

func (r *AnalyticsRepository) ProgressSums(ctx context.Context, scope tenant.Scope, by analytics.GroupBy) ([]analytics.ProgressSums, error) {
	column, err := groupColumn(by)
	if err != nil {
		return nil, err
	}

	var rows []analytics.ProgressSums
	err = r.db.WithContext(ctx).
		Model(&progressDatamodel.Progress{}).
		Scopes(database.Scoped(scope, "plant_id")).
		Select(column + " AS group_key, CAST(COALESCE(SUM(progress_percent), 0) AS DOUBLE PRECISION) AS total, COUNT(*) AS rows_count").
		Group(column).
		Scan(&rows).Error
	return rows, database.TranslateGorm(err)
}

func (r *AnalyticsRepository) UserCountsByPlant(ctx context.Context, scope tenant.Scope) ([]analytics.UserCounts, error) {
	var rows []analytics.UserCounts
	err := r.db.WithContext(ctx).
		Model(&profileDatamodel.Profile{}).
		Scopes(database.Scoped(scope, "plant_id")).
		Select("plant_id AS group_key, COUNT(*) AS total, " +
			"SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END) AS active, " +
			compliantUsersSQL).
		Group("plant_id").
		Scan(&rows).Error
	return rows, database.TranslateGorm(err)
}

func (r *AnalyticsRepository) Courses(ctx context.Context) ([]analytics.Named, error) {
	var rows []analytics.Named
	err := r.db.WithContext(ctx).
		Model(&courseDatamodel.Course{}).
		Select("id, title AS name").
		Order("title ASC").
		Order("id ASC").
		Scan(&rows).Error
	return rows, database.TranslateGorm(err)
}

func (r *AnalyticsRepository) Plants(ctx context.Context, scope tenant.Scope) ([]analytics.Named, error) {
	var rows []analytics.Named
	err := r.db.WithContext(ctx).
		Model(&plantDatamodel.Plant{}).
		Scopes(database.Scoped(scope, "id")).
		Select("id, name").
		Order("name ASC").
		Order("id ASC").
		Scan(&rows).Error
	return rows, database.TranslateGorm(err)
}
