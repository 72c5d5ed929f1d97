package postgres

import (
	"context"

	"github.com/frahmantamala/safety-lms/internal/core/database"
	progressDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/progress"
	"github.com/frahmantamala/safety-lms/internal/progress"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) progress.Repository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(ctx context.Context, p *progressDatamodel.Progress) error {
	return database.TranslateGorm(r.db.WithContext(ctx).Omit("Profile", "Course").Create(p).Error)
}

func (r *ProgressRepository) GetByID(ctx context.Context, id string) (*progressDatamodel.Progress, error) {
	var p progressDatamodel.Progress
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &p, nil
}

func (r *ProgressRepository) FindByUserCourse(ctx context.Context, userID, courseID string) (*progressDatamodel.Progress, error) {
	var p progressDatamodel.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&p).Error
	if err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &p, nil
}

func (r *ProgressRepository) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&progressDatamodel.Progress{}).
		Scopes(database.Scoped(scope, "plant_id")).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *ProgressRepository) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(database.Scoped(scope, "plant_id")).
		Where("id = ?", id).
		Delete(&progressDatamodel.Progress{})
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *ProgressRepository) filtered(ctx context.Context, filter progress.ListFilter, scope tenant.Scope) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&progressDatamodel.Progress{}).
		Scopes(database.Scoped(scope, "plant_id"))
	if filter.CourseID != "" {
		q = q.Where("course_id = ?", filter.CourseID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.MinProgress != nil {
		q = q.Where("progress_percent >= ?", *filter.MinProgress)
	}
	if filter.MaxProgress != nil {
		q = q.Where("progress_percent <= ?", *filter.MaxProgress)
	}
	return q
}

func (r *ProgressRepository) list(ctx context.Context, filter progress.ListFilter, scope tenant.Scope, preload bool) ([]*progressDatamodel.Progress, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter, scope).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateGorm(err)
	}

	q := r.filtered(ctx, filter, scope)
	if preload {
		q = q.Preload("Profile").Preload("Course")
	}

	var rows []*progressDatamodel.Progress
	err := q.Order("last_active_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	return rows, total, database.TranslateGorm(err)
}

func (r *ProgressRepository) List(ctx context.Context, filter progress.ListFilter, scope tenant.Scope) ([]*progressDatamodel.Progress, int64, error) {
	return r.list(ctx, filter, scope, false)
}

func (r *ProgressRepository) ListDetailed(ctx context.Context, filter progress.ListFilter, scope tenant.Scope) ([]*progressDatamodel.Progress, int64, error) {
	return r.list(ctx, filter, scope, true)
}
