package analytics

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
	"github.com/frahmantamala/safety-lms/internal/tenant"
)

// GroupBy is the grouping column of an aggregate query.
type GroupBy string

const (
	ByCourse GroupBy = "course_id"
	ByPlant  GroupBy = "plant_id"
)

type EnrollmentCounts struct {
	Key        string `db:"group_key" gorm:"column:group_key"`
	Total      int64  `db:"total" gorm:"column:total"`
	Completed  int64  `db:"completed" gorm:"column:completed"`
	InProgress int64  `db:"in_progress" gorm:"column:in_progress"`
}

type ProgressSums struct {
	Key   string  `db:"group_key" gorm:"column:group_key"`
	Sum   float64 `db:"total" gorm:"column:total"`
	Count int64   `db:"rows_count" gorm:"column:rows_count"`
}

type UserCounts struct {
	Key       string `db:"group_key" gorm:"column:group_key"`
	Total     int64  `db:"total" gorm:"column:total"`
	Active    int64  `db:"active" gorm:"column:active"`
	Compliant int64  `db:"compliant" gorm:"column:compliant"`
}

type Named struct {
	ID   string `db:"id" gorm:"column:id"`
	Name string `db:"name" gorm:"column:name"`
}

// Repository issues the grouped aggregate queries. Every scoped method ANDs the
// scope with the plant column of the table it reads.
type Repository interface {
	EnrollmentCounts(ctx context.Context, scope tenant.Scope, by GroupBy) ([]EnrollmentCounts, error)
	ProgressSums(ctx context.Context, scope tenant.Scope, by GroupBy) ([]ProgressSums, error)
	// UserCountsByPlant also counts compliant users: at least one enrollment, all completed.
	UserCountsByPlant(ctx context.Context, scope tenant.Scope) ([]UserCounts, error)
	Courses(ctx context.Context) ([]Named, error)
	Plants(ctx context.Context, scope tenant.Scope) ([]Named, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetDetailedAnalytics aggregates over the plants visible to uc, or over every
// plant when uc is nil.
func (s *Service) GetDetailedAnalytics(ctx context.Context, uc *internal.UserContext) (*Report, error) {
	scope := tenant.ScopeForOptional(uc)
	report := emptyReport()
	if scope.IsEmpty() {
		return report, nil
	}

	byPlant, err := s.repo.EnrollmentCounts(ctx, scope, ByPlant)
	if err != nil {
		return nil, s.fail("plant enrollment counts", err)
	}
	byCourse, err := s.repo.EnrollmentCounts(ctx, scope, ByCourse)
	if err != nil {
		return nil, s.fail("course enrollment counts", err)
	}
	progressByPlant, err := s.repo.ProgressSums(ctx, scope, ByPlant)
	if err != nil {
		return nil, s.fail("plant progress sums", err)
	}
	progressByCourse, err := s.repo.ProgressSums(ctx, scope, ByCourse)
	if err != nil {
		return nil, s.fail("course progress sums", err)
	}
	users, err := s.repo.UserCountsByPlant(ctx, scope)
	if err != nil {
		return nil, s.fail("user counts", err)
	}
	courses, err := s.repo.Courses(ctx)
	if err != nil {
		return nil, s.fail("courses", err)
	}
	plants, err := s.repo.Plants(ctx, scope)
	if err != nil {
		return nil, s.fail("plants", err)
	}

	enrollmentsByPlant := indexEnrollments(byPlant)
	enrollmentsByCourse := indexEnrollments(byCourse)
	sumsByPlant := indexProgress(progressByPlant)
	sumsByCourse := indexProgress(progressByCourse)
	usersByPlant := make(map[string]UserCounts, len(users))
	for _, u := range users {
		usersByPlant[u.Key] = u
		report.Overview.TotalUsers += u.Total
		report.Overview.ActiveUsers += u.Active
	}
	for _, e := range byPlant {
		report.Overview.TotalEnrollments += e.Total
		report.Overview.CompletedCourses += e.Completed
	}
	report.Overview.OverallCompletionRate = Percent(report.Overview.CompletedCourses, report.Overview.TotalEnrollments)

	for _, c := range courses {
		e := enrollmentsByCourse[c.ID]
		p := sumsByCourse[c.ID]
		report.CoursePerformance = append(report.CoursePerformance, CoursePerformance{
			CourseID:             c.ID,
			CourseTitle:          c.Name,
			TotalEnrollments:     e.Total,
			CompletedEnrollments: e.Completed,
			AverageProgress:      Mean(p.Sum, p.Count),
			CompletionRate:       Percent(e.Completed, e.Total),
		})
	}

	for _, pl := range plants {
		e := enrollmentsByPlant[pl.ID]
		p := sumsByPlant[pl.ID]
		u := usersByPlant[pl.ID]
		report.PlantPerformance = append(report.PlantPerformance, PlantPerformance{
			PlantID:              pl.ID,
			PlantName:            pl.Name,
			TotalUsers:           u.Total,
			TotalEnrollments:     e.Total,
			CompletedEnrollments: e.Completed,
			AverageProgress:      Mean(p.Sum, p.Count),
			CompletionRate:       Percent(e.Completed, e.Total),
		})
		report.ComplianceTracking = append(report.ComplianceTracking, ComplianceRecord{
			PlantID:        pl.ID,
			PlantName:      pl.Name,
			TotalUsers:     u.Total,
			CompliantUsers: u.Compliant,
			ComplianceRate: Percent(u.Compliant, u.Total),
		})
	}

	s.logger.Debug("analytics computed",
		"plants", len(report.PlantPerformance),
		"courses", len(report.CoursePerformance),
		"unrestricted", scope.Unrestricted)
	return report, nil
}

// GetDashboardStats summarises the enrollments of one plant.
func (s *Service) GetDashboardStats(ctx context.Context, plantID string) (*DashboardStats, error) {
	if err := validation.ValidateID("plant_id", plantID); err != nil {
		return nil, err
	}

	counts, err := s.repo.EnrollmentCounts(ctx, tenant.Plants(plantID), ByPlant)
	if err != nil {
		return nil, s.fail("dashboard counts", err)
	}

	stats := &DashboardStats{PlantID: plantID}
	for _, c := range counts {
		stats.TotalEnrollments += c.Total
		stats.CompletedEnrollments += c.Completed
		stats.InProgressEnrollments += c.InProgress
	}
	stats.CompletionRate = Percent(stats.CompletedEnrollments, stats.TotalEnrollments)
	return stats, nil
}

func (s *Service) fail(query string, err error) error {
	s.logger.Error("analytics query failed", "query", query, "error", err)
	return internal.NewDatabaseError("failed to compute analytics", err)
}

func indexEnrollments(rows []EnrollmentCounts) map[string]EnrollmentCounts {
	m := make(map[string]EnrollmentCounts, len(rows))
	for _, r := range rows {
		m[r.Key] = r
	}
	return m
}

func indexProgress(rows []ProgressSums) map[string]ProgressSums {
	m := make(map[string]ProgressSums, len(rows))
	for _, r := range rows {
		m[r.Key] = r
	}
	return m
}
