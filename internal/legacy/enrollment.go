package legacy

import (
	"context"

	enrollmentDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/enrollment"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/jmoiron/sqlx"
)

const enrollmentColumns = "id, user_id, course_id, plant_id, status, enrolled_at, completed_at, updated_at"

type EnrollmentStore struct {
	store
	related relations
}

func NewEnrollmentStore(db *sqlx.DB) enrollment.Repository {
	return &EnrollmentStore{store: store{db: db}, related: relations{store{db: db}}}
}

func (s *EnrollmentStore) Create(ctx context.Context, e *enrollmentDatamodel.Enrollment) error {
	return s.insert(ctx, `INSERT INTO enrollments (`+enrollmentColumns+`)
		VALUES (:id, :user_id, :course_id, :plant_id, :status, :enrolled_at, :completed_at, :updated_at)`, e)
}

func (s *EnrollmentStore) GetByID(ctx context.Context, id string) (*enrollmentDatamodel.Enrollment, error) {
	var e enrollmentDatamodel.Enrollment
	if err := s.get(ctx, &e, "SELECT "+enrollmentColumns+" FROM enrollments WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EnrollmentStore) FindByUserCourse(ctx context.Context, userID, courseID string) (*enrollmentDatamodel.Enrollment, error) {
	var e enrollmentDatamodel.Enrollment
	err := s.get(ctx, &e, "SELECT "+enrollmentColumns+" FROM enrollments WHERE user_id = ? AND course_id = ?", userID, courseID)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EnrollmentStore) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	w := &where{}
	w.add("id = ?", id)
	w.scope(scope, "plant_id")
	return s.update(ctx, "enrollments", fields, w)
}

func (s *EnrollmentStore) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	w := &where{}
	w.add("id = ?", id)
	w.scope(scope, "plant_id")
	return s.exec(ctx, "DELETE FROM enrollments"+w.String(), w.args...)
}

func (s *EnrollmentStore) List(ctx context.Context, filter enrollment.ListFilter, scope tenant.Scope) ([]*enrollmentDatamodel.Enrollment, int64, error) {
	w := &where{}
	w.scope(scope, "plant_id")
	if filter.Status != "" {
		w.add("status = ?", filter.Status)
	}
	if filter.CourseID != "" {
		w.add("course_id = ?", filter.CourseID)
	}
	if filter.UserID != "" {
		w.add("user_id = ?", filter.UserID)
	}

	total, err := s.count(ctx, "enrollments", w)
	if err != nil {
		return nil, 0, err
	}

	rows := []*enrollmentDatamodel.Enrollment{}
	err = s.selectAll(ctx, &rows, "SELECT "+enrollmentColumns+" FROM enrollments"+w.String()+
		" ORDER BY enrolled_at DESC, id DESC"+page(filter.Limit, filter.Offset()), w.args...)
	return rows, total, err
}

func (s *EnrollmentStore) ListDetailed(ctx context.Context, filter enrollment.ListFilter, scope tenant.Scope) ([]*enrollmentDatamodel.Enrollment, int64, error) {
	rows, total, err := s.List(ctx, filter, scope)
	if err != nil || len(rows) == 0 {
		return rows, total, err
	}

	userIDs := make([]string, 0, len(rows))
	courseIDs := make([]string, 0, len(rows))
	for _, e := range rows {
		userIDs = append(userIDs, e.UserID)
		courseIDs = append(courseIDs, e.CourseID)
	}
	profiles, courses, err := s.related.load(ctx, userIDs, courseIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, e := range rows {
		e.Profile = profiles[e.UserID]
		e.Course = courses[e.CourseID]
	}
	return rows, total, nil
}
