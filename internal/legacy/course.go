package legacy

import (
	"context"

	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/jmoiron/sqlx"
)

const courseColumns = "id, slug, title, version, is_published, created_at, updated_at"

type CourseStore struct {
	store
}

func NewCourseStore(db *sqlx.DB) course.Repository {
	return &CourseStore{store{db: db}}
}

func (s *CourseStore) Create(ctx context.Context, c *courseDatamodel.Course) error {
	return s.insert(ctx, `INSERT INTO courses (`+courseColumns+`)
		VALUES (:id, :slug, :title, :version, :is_published, :created_at, :updated_at)`, c)
}

func (s *CourseStore) GetByID(ctx context.Context, id string) (*courseDatamodel.Course, error) {
	var c courseDatamodel.Course
	if err := s.get(ctx, &c, "SELECT "+courseColumns+" FROM courses WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CourseStore) GetBySlug(ctx context.Context, slug string) (*courseDatamodel.Course, error) {
	var c courseDatamodel.Course
	if err := s.get(ctx, &c, "SELECT "+courseColumns+" FROM courses WHERE slug = ?", slug); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CourseStore) Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	w := &where{}
	w.add("id = ?", id)
	return s.update(ctx, "courses", fields, w)
}

func (s *CourseStore) Delete(ctx context.Context, id string) (int64, error) {
	return s.exec(ctx, "DELETE FROM courses WHERE id = ?", id)
}

func (s *CourseStore) List(ctx context.Context, filter course.ListFilter) ([]*courseDatamodel.Course, int64, error) {
	w := &where{}
	if pattern := filter.SearchPattern(); pattern != "" {
		w.add("(LOWER(title) LIKE ? OR LOWER(slug) LIKE ?)", pattern, pattern)
	}
	if filter.IsPublished != nil {
		w.add("is_published = ?", *filter.IsPublished)
	}

	total, err := s.count(ctx, "courses", w)
	if err != nil {
		return nil, 0, err
	}

	courses := []*courseDatamodel.Course{}
	err = s.selectAll(ctx, &courses, "SELECT "+courseColumns+" FROM courses"+w.String()+
		" ORDER BY created_at DESC, id DESC"+page(filter.Limit, filter.Offset()), w.args...)
	return courses, total, err
}
