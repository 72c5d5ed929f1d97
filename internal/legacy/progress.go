package legacy

import (
	"context"

	progressDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/progress"
	"github.com/frahmantamala/safety-lms/internal/progress"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/jmoiron/sqlx"
)

const progressColumns = "id, user_id, course_id, plant_id, progress_percent, current_section, last_active_at, created_at"

type ProgressStore struct {
	store
	related relations
}

func NewProgressStore(db *sqlx.DB) progress.Repository {
	return &ProgressStore{store: store{db: db}, related: relations{store{db: db}}}
}

func (s *ProgressStore) Create(ctx context.Context, p *progressDatamodel.Progress) error {
	return s.insert(ctx, `INSERT INTO progress (`+progressColumns+`)
		VALUES (:id, :user_id, :course_id, :plant_id, :progress_percent, :current_section, :last_active_at, :created_at)`, p)
}

func (s *ProgressStore) GetByID(ctx context.Context, id string) (*progressDatamodel.Progress, error) {
	var p progressDatamodel.Progress
	if err := s.get(ctx, &p, "SELECT "+progressColumns+" FROM progress WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProgressStore) FindByUserCourse(ctx context.Context, userID, courseID string) (*progressDatamodel.Progress, error) {
	var p progressDatamodel.Progress
	err := s.get(ctx, &p, "SELECT "+progressColumns+" FROM progress WHERE user_id = ? AND course_id = ?", userID, courseID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProgressStore) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	w := &where{}
	w.add("id = ?", id)
	w.scope(scope, "plant_id")
	return s.update(ctx, "progress", fields, w)
}

func (s *ProgressStore) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	w := &where{}
	w.add("id = ?", id)
	w.scope(scope, "plant_id")
	return s.exec(ctx, "DELETE FROM progress"+w.String(), w.args...)
}

func (s *ProgressStore) List(ctx context.Context, filter progress.ListFilter, scope tenant.Scope) ([]*progressDatamodel.Progress, int64, error) {
	w := &where{}
	w.scope(scope, "plant_id")
	if filter.CourseID != "" {
		w.add("course_id = ?", filter.CourseID)
	}
	if filter.UserID != "" {
		w.add("user_id = ?", filter.UserID)
	}
	if filter.MinProgress != nil {
		w.add("progress_percent >= ?", *filter.MinProgress)
	}
	if filter.MaxProgress != nil {
		w.add("progress_percent <= ?", *filter.MaxProgress)
	}

	total, err := s.count(ctx, "progress", w)
	if err != nil {
		return nil, 0, err
	}

	rows := []*progressDatamodel.Progress{}
	err = s.selectAll(ctx, &rows, "SELECT "+progressColumns+" FROM progress"+w.String()+
		" ORDER BY last_active_at DESC, id DESC"+page(filter.Limit, filter.Offset()), w.args...)
	return rows, total, err
}

func (s *ProgressStore) ListDetailed(ctx context.Context, filter progress.ListFilter, scope tenant.Scope) ([]*progressDatamodel.Progress, int64, error) {
	rows, total, err := s.List(ctx, filter, scope)
	if err != nil || len(rows) == 0 {
		return rows, total, err
	}

	userIDs := make([]string, 0, len(rows))
	courseIDs := make([]string, 0, len(rows))
	for _, p := range rows {
		userIDs = append(userIDs, p.UserID)
		courseIDs = append(courseIDs, p.CourseID)
	}
	profiles, courses, err := s.related.load(ctx, userIDs, courseIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range rows {
		p.Profile = profiles[p.UserID]
		p.Course = courses[p.CourseID]
	}
	return rows, total, nil
}
