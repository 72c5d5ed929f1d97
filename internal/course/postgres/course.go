package postgres

import (
	"context"

	"github.com/frahmantamala/safety-lms/internal/core/database"
	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	"github.com/frahmantamala/safety-lms/internal/course"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) course.Repository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, c *courseDatamodel.Course) error {
	return database.TranslateGorm(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*courseDatamodel.Course, error) {
	var c courseDatamodel.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &c, nil
}

func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (*courseDatamodel.Course, error) {
	var c courseDatamodel.Course
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &c, nil
}

func (r *CourseRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&courseDatamodel.Course{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&courseDatamodel.Course{})
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *CourseRepository) filtered(ctx context.Context, filter course.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&courseDatamodel.Course{})
	if pattern := filter.SearchPattern(); pattern != "" {
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(slug) LIKE ?)", pattern, pattern)
	}
	if filter.IsPublished != nil {
		q = q.Where("is_published = ?", *filter.IsPublished)
	}
	return q
}

func (r *CourseRepository) List(ctx context.Context, filter course.ListFilter) ([]*courseDatamodel.Course, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateGorm(err)
	}

	var courses []*courseDatamodel.Course
	err := r.filtered(ctx, filter).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&courses).Error
	return courses, total, database.TranslateGorm(err)
}
