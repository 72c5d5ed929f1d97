package postgres

import (
	"context"

	"github.com/frahmantamala/safety-lms/internal/core/database"
	enrollmentDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/enrollment"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) enrollment.Repository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *enrollmentDatamodel.Enrollment) error {
	return database.TranslateGorm(r.db.WithContext(ctx).Omit("Profile", "Course").Create(e).Error)
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id string) (*enrollmentDatamodel.Enrollment, error) {
	var e enrollmentDatamodel.Enrollment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &e, nil
}

func (r *EnrollmentRepository) FindByUserCourse(ctx context.Context, userID, courseID string) (*enrollmentDatamodel.Enrollment, error) {
	var e enrollmentDatamodel.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	if err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &e, nil
}

func (r *EnrollmentRepository) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&enrollmentDatamodel.Enrollment{}).
		Scopes(database.Scoped(scope, "plant_id")).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(database.Scoped(scope, "plant_id")).
		Where("id = ?", id).
		Delete(&enrollmentDatamodel.Enrollment{})
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *EnrollmentRepository) filtered(ctx context.Context, filter enrollment.ListFilter, scope tenant.Scope) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&enrollmentDatamodel.Enrollment{}).
		Scopes(database.Scoped(scope, "plant_id"))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CourseID != "" {
		q = q.Where("course_id = ?", filter.CourseID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	return q
}

func (r *EnrollmentRepository) list(ctx context.Context, filter enrollment.ListFilter, scope tenant.Scope, preload bool) ([]*enrollmentDatamodel.Enrollment, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter, scope).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateGorm(err)
	}

	q := r.filtered(ctx, filter, scope)
	if preload {
		q = q.Preload("Profile").Preload("Course")
	}

	var rows []*enrollmentDatamodel.Enrollment
	err := q.Order("enrolled_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	return rows, total, database.TranslateGorm(err)
}

func (r *EnrollmentRepository) List(ctx context.Context, filter enrollment.ListFilter, scope tenant.Scope) ([]*enrollmentDatamodel.Enrollment, int64, error) {
	return r.list(ctx, filter, scope, false)
}

func (r *EnrollmentRepository) ListDetailed(ctx context.Context, filter enrollment.ListFilter, scope tenant.Scope) ([]*enrollmentDatamodel.Enrollment, int64, error) {
	return r.list(ctx, filter, scope, true)
}
