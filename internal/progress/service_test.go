package progress_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	progressDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/progress"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/progress"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProgress(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Progress Suite")
}

type mockRepository struct {
	rows        map[string]*progressDatamodel.Progress
	createCalls int
	createErr   error
}

func (m *mockRepository) Create(ctx context.Context, p *progressDatamodel.Progress) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	m.rows[p.ID] = p
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*progressDatamodel.Progress, error) {
	if p, ok := m.rows[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockRepository) FindByUserCourse(ctx context.Context, userID, courseID string) (*progressDatamodel.Progress, error) {
	for _, p := range m.rows {
		if p.UserID == userID && p.CourseID == courseID {
			return p, nil
		}
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockRepository) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	p, ok := m.rows[id]
	if !ok || !scope.Allows(p.PlantID) {
		return 0, nil
	}
	if v, ok := fields["progress_percent"].(float64); ok {
		p.ProgressPercent = v
	}
	if v, ok := fields["current_section"].(string); ok {
		p.CurrentSection = &v
	}
	if v, ok := fields["last_active_at"].(time.Time); ok {
		p.LastActiveAt = v
	}
	return 1, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	p, ok := m.rows[id]
	if !ok || !scope.Allows(p.PlantID) {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

func (m *mockRepository) List(ctx context.Context, filter progress.ListFilter, scope tenant.Scope) ([]*progressDatamodel.Progress, int64, error) {
	var rows []*progressDatamodel.Progress
	for _, p := range m.rows {
		if !scope.Allows(p.PlantID) {
			continue
		}
		if filter.MinProgress != nil && p.ProgressPercent < *filter.MinProgress {
			continue
		}
		if filter.MaxProgress != nil && p.ProgressPercent > *filter.MaxProgress {
			continue
		}
		rows = append(rows, p)
	}
	return rows, int64(len(rows)), nil
}

func (m *mockRepository) ListDetailed(ctx context.Context, filter progress.ListFilter, scope tenant.Scope) ([]*progressDatamodel.Progress, int64, error) {
	return m.List(ctx, filter, scope)
}

type profiles map[string]*profile.Profile

func (p profiles) LookupProfile(ctx context.Context, id string) (*profile.Profile, error) {
	if found, ok := p[id]; ok {
		return found, nil
	}
	return nil, internal.NewNotFoundError("Profile not found")
}

type courses map[string]*course.Course

func (c courses) GetCourse(ctx context.Context, id string) (*course.Course, error) {
	if found, ok := c[id]; ok {
		return found, nil
	}
	return nil, internal.NewNotFoundError("Course not found")
}

func floatPtr(f float64) *float64 { return &f }

func appError(err error) *internal.AppError {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue(), "expected *internal.AppError, got %v", err)
	return appErr
}

var _ = Describe("Service", func() {
	var (
		ctx      context.Context
		repo     *mockRepository
		logs     *bytes.Buffer
		service  *progress.Service
		plantID  string
		learner  *profile.Profile
		courseID string
		uc       internal.UserContext
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = &mockRepository{rows: make(map[string]*progressDatamodel.Progress)}
		logs = &bytes.Buffer{}
		plantID = uuid.NewString()
		learner = &profile.Profile{ID: uuid.NewString(), PlantID: plantID}
		courseID = uuid.NewString()
		service = progress.NewService(repo,
			profiles{learner.ID: learner},
			courses{courseID: {ID: courseID}},
			slog.New(slog.NewTextHandler(logs, nil)))
		uc = tenant.BuildUserContext(uuid.NewString(), plantID, nil)
	})

	start := func(percent float64) *progress.Progress {
		p, err := service.CreateProgress(ctx, progress.CreateProgressDTO{
			UserID: learner.ID, CourseID: courseID, PlantID: plantID, ProgressPercent: floatPtr(percent),
		})
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	Describe("CreateProgress", func() {
		It("defaults to zero percent", func() {
			p, err := service.CreateProgress(ctx, progress.CreateProgressDTO{
				UserID: learner.ID, CourseID: courseID, PlantID: plantID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ProgressPercent).To(BeZero())
			Expect(p.IsComplete()).To(BeFalse())
		})

		It("rejects a second row for the same user and course", func() {
			start(10)
			_, err := service.CreateProgress(ctx, progress.CreateProgressDTO{
				UserID: learner.ID, CourseID: courseID, PlantID: plantID,
			})
			Expect(appError(err).Code).To(Equal(internal.ErrCodeConflict))
			Expect(repo.createCalls).To(Equal(1))
		})

		DescribeTable("percent bounds",
			func(percent float64, valid bool) {
				_, err := service.CreateProgress(ctx, progress.CreateProgressDTO{
					UserID: learner.ID, CourseID: courseID, PlantID: plantID, ProgressPercent: floatPtr(percent),
				})
				if valid {
					Expect(err).NotTo(HaveOccurred())
					return
				}
				appErr := appError(err)
				Expect(appErr.Field()).To(Equal("progress_percent"))
				Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Code).To(Equal(string(internal.ErrCodeOutOfRange)))
			},
			Entry("lower bound", 0.0, true),
			Entry("upper bound", 100.0, true),
			Entry("negative", -0.5, false),
			Entry("above hundred", 100.1, false),
			Entry("not a number", math.NaN(), false),
			Entry("infinite", math.Inf(1), false),
		)

		It("reports a unique violation missed by the pre-check as a conflict", func() {
			repo.createErr = internal.ErrDuplicateRecord
			_, err := service.CreateProgress(ctx, progress.CreateProgressDTO{
				UserID: learner.ID, CourseID: courseID, PlantID: plantID,
			})
			appErr := appError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeConflict))
			Expect(appErr.Message).To(Equal("Progress already exists for this user and course"))
			Expect(repo.createCalls).To(Equal(1))
		})
	})

	Describe("UpdateProgress", func() {
		It("accepts a decrease and logs a warning", func() {
			p := start(80)
			updated, err := service.UpdateProgress(ctx, uc, p.ID, progress.UpdateProgressDTO{ProgressPercent: floatPtr(40)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ProgressPercent).To(Equal(40.0))
			Expect(logs.String()).To(ContainSubstring("progress decreased"))
		})

		It("bumps last activity", func() {
			p := start(10)
			updated, err := service.UpdateProgress(ctx, uc, p.ID, progress.UpdateProgressDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.LastActiveAt).To(BeTemporally(">=", p.LastActiveAt))
		})

		It("rejects a percent that is not a number", func() {
			p := start(10)
			_, err := service.UpdateProgress(ctx, uc, p.ID, progress.UpdateProgressDTO{ProgressPercent: floatPtr(math.NaN())})
			appErr := appError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
			Expect(appErr.Field()).To(Equal("progress_percent"))
			Expect(repo.rows[p.ID].ProgressPercent).To(Equal(10.0))
		})

		It("is not found outside the caller's scope", func() {
			p := start(10)
			outsider := tenant.BuildUserContext(uuid.NewString(), uuid.NewString(), nil)
			_, err := service.UpdateProgress(ctx, outsider, p.ID, progress.UpdateProgressDTO{ProgressPercent: floatPtr(90)})
			Expect(appError(err).Code).To(Equal(internal.ErrCodeNotFound))
			Expect(repo.rows[p.ID].ProgressPercent).To(Equal(10.0))
		})
	})

	Describe("ListProgress", func() {
		It("rejects an out of range filter", func() {
			_, err := service.ListProgress(ctx, uc, progress.ListFilter{MinProgress: floatPtr(-1)})
			Expect(appError(err).Field()).To(Equal("min_progress"))
		})

		It("rejects a bound that is not a number", func() {
			_, err := service.ListProgress(ctx, uc, progress.ListFilter{MaxProgress: floatPtr(math.NaN())})
			appErr := appError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
			Expect(appErr.Field()).To(Equal("max_progress"))
		})

		It("applies inclusive bounds", func() {
			start(50)
			page, err := service.ListProgress(ctx, uc, progress.ListFilter{MinProgress: floatPtr(50), MaxProgress: floatPtr(50)})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Data).To(HaveLen(1))
		})
	})

	Describe("DeleteProgress", func() {
		It("is not found for an unknown id", func() {
			Expect(appError(service.DeleteProgress(ctx, uc, uuid.NewString())).Code).To(Equal(internal.ErrCodeNotFound))
		})
	})
})
