package enrollment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	enrollmentDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/enrollment"
	"github.com/frahmantamala/safety-lms/internal/core/events"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEnrollment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Enrollment Suite")
}

type mockRepository struct {
	rows        map[string]*enrollmentDatamodel.Enrollment
	createCalls int
	listCalls   int
	createErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{rows: make(map[string]*enrollmentDatamodel.Enrollment)}
}

func (m *mockRepository) Create(ctx context.Context, e *enrollmentDatamodel.Enrollment) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	m.rows[e.ID] = e
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*enrollmentDatamodel.Enrollment, error) {
	if e, ok := m.rows[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockRepository) FindByUserCourse(ctx context.Context, userID, courseID string) (*enrollmentDatamodel.Enrollment, error) {
	for _, e := range m.rows {
		if e.UserID == userID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockRepository) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	e, ok := m.rows[id]
	if !ok || !scope.Allows(e.PlantID) {
		return 0, nil
	}
	if v, ok := fields["status"].(string); ok {
		e.Status = v
	}
	if v, ok := fields["completed_at"].(time.Time); ok {
		e.CompletedAt = &v
	}
	return 1, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	e, ok := m.rows[id]
	if !ok || !scope.Allows(e.PlantID) {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

func (m *mockRepository) List(ctx context.Context, filter enrollment.ListFilter, scope tenant.Scope) ([]*enrollmentDatamodel.Enrollment, int64, error) {
	m.listCalls++
	var rows []*enrollmentDatamodel.Enrollment
	for _, e := range m.rows {
		if scope.Allows(e.PlantID) {
			rows = append(rows, e)
		}
	}
	return rows, int64(len(rows)), nil
}

func (m *mockRepository) ListDetailed(ctx context.Context, filter enrollment.ListFilter, scope tenant.Scope) ([]*enrollmentDatamodel.Enrollment, int64, error) {
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

type recordingPublisher struct {
	events []events.Event
}

func (r *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	r.events = append(r.events, event)
	return nil
}

func (r *recordingPublisher) types() []string {
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.EventType())
	}
	return types
}

func strPtr(s string) *string { return &s }

func appError(err error) *internal.AppError {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue(), "expected *internal.AppError, got %v", err)
	return appErr
}

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		repo      *mockRepository
		publisher *recordingPublisher
		service   *enrollment.Service
		plantID   string
		learner   *profile.Profile
		courseID  string
		uc        internal.UserContext
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockRepository()
		publisher = &recordingPublisher{}
		plantID = uuid.NewString()
		learner = &profile.Profile{ID: uuid.NewString(), PlantID: plantID, Status: profile.StatusActive}
		courseID = uuid.NewString()
		service = enrollment.NewService(repo,
			profiles{learner.ID: learner},
			courses{courseID: {ID: courseID, Slug: "lockout-tagout"}},
			publisher,
			slog.New(slog.NewTextHandler(io.Discard, nil)))
		uc = tenant.BuildUserContext(uuid.NewString(), plantID, nil)
	})

	enroll := func() *enrollment.Enrollment {
		e, err := service.CreateEnrollment(ctx, enrollment.CreateEnrollmentDTO{
			UserID: learner.ID, CourseID: courseID, PlantID: plantID,
		})
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	Describe("CreateEnrollment", func() {
		It("starts enrolled and publishes a created event", func() {
			e := enroll()
			Expect(e.Status).To(Equal(enrollment.StatusEnrolled))
			Expect(e.CompletedAt).To(BeNil())
			Expect(publisher.types()).To(Equal([]string{events.EventTypeEnrollmentCreated}))
		})

		It("rejects a second enrollment before inserting", func() {
			enroll()
			_, err := service.CreateEnrollment(ctx, enrollment.CreateEnrollmentDTO{
				UserID: learner.ID, CourseID: courseID, PlantID: plantID,
			})
			appErr := appError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeConflict))
			Expect(appErr.Message).To(Equal("User is already enrolled in this course"))
			Expect(repo.createCalls).To(Equal(1))
			Expect(repo.rows).To(HaveLen(1))
		})

		It("reports a unique violation missed by the pre-check as a conflict", func() {
			repo.createErr = internal.ErrDuplicateRecord
			_, err := service.CreateEnrollment(ctx, enrollment.CreateEnrollmentDTO{
				UserID: learner.ID, CourseID: courseID, PlantID: plantID,
			})
			appErr := appError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeConflict))
			Expect(appErr.Message).To(Equal("User is already enrolled in this course"))
			Expect(repo.createCalls).To(Equal(1))
			Expect(publisher.types()).To(BeEmpty())
		})

		It("requires the plant to match the user's plant", func() {
			_, err := service.CreateEnrollment(ctx, enrollment.CreateEnrollmentDTO{
				UserID: learner.ID, CourseID: courseID, PlantID: uuid.NewString(),
			})
			appErr := appError(err)
			Expect(appErr.Field()).To(Equal("plant_id"))
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Code).To(Equal(string(internal.ErrCodePlantMismatch)))
			Expect(repo.createCalls).To(BeZero())
		})

		It("fails when the course does not exist", func() {
			_, err := service.CreateEnrollment(ctx, enrollment.CreateEnrollmentDTO{
				UserID: learner.ID, CourseID: uuid.NewString(), PlantID: plantID,
			})
			Expect(appError(err).Code).To(Equal(internal.ErrCodeNotFound))
		})

		It("stamps completedAt when created completed", func() {
			e, err := service.CreateEnrollment(ctx, enrollment.CreateEnrollmentDTO{
				UserID: learner.ID, CourseID: courseID, PlantID: plantID, Status: strPtr(enrollment.StatusCompleted),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.CompletedAt).NotTo(BeNil())
			Expect(publisher.types()).To(ConsistOf(events.EventTypeEnrollmentCreated, events.EventTypeEnrollmentCompleted))
		})
	})

	Describe("UpdateEnrollment", func() {
		It("moves forward and stamps completion once", func() {
			e := enroll()

			updated, err := service.UpdateEnrollment(ctx, uc, e.ID, enrollment.UpdateEnrollmentDTO{Status: strPtr(enrollment.StatusInProgress)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(enrollment.StatusInProgress))
			Expect(updated.CompletedAt).To(BeNil())

			updated, err = service.UpdateEnrollment(ctx, uc, e.ID, enrollment.UpdateEnrollmentDTO{Status: strPtr(enrollment.StatusCompleted)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.CompletedAt).NotTo(BeNil())
			Expect(publisher.types()).To(ContainElement(events.EventTypeEnrollmentCompleted))
		})

		It("rejects a backwards transition", func() {
			e := enroll()
			_, err := service.UpdateEnrollment(ctx, uc, e.ID, enrollment.UpdateEnrollmentDTO{Status: strPtr(enrollment.StatusCompleted)})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.UpdateEnrollment(ctx, uc, e.ID, enrollment.UpdateEnrollmentDTO{Status: strPtr(enrollment.StatusEnrolled)})
			appErr := appError(err)
			Expect(appErr.Field()).To(Equal("status"))
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Code).To(Equal(string(internal.ErrCodeInvalidTransition)))
		})

		It("is not found for a caller of another plant", func() {
			e := enroll()
			outsider := tenant.BuildUserContext(uuid.NewString(), uuid.NewString(), nil)
			_, err := service.UpdateEnrollment(ctx, outsider, e.ID, enrollment.UpdateEnrollmentDTO{Status: strPtr(enrollment.StatusInProgress)})
			Expect(appError(err).Code).To(Equal(internal.ErrCodeNotFound))
			Expect(repo.rows[e.ID].Status).To(Equal(enrollment.StatusEnrolled))
		})
	})

	Describe("DeleteEnrollment", func() {
		It("only deletes inside the caller's scope", func() {
			e := enroll()
			outsider := tenant.BuildUserContext(uuid.NewString(), uuid.NewString(), nil)
			Expect(appError(service.DeleteEnrollment(ctx, outsider, e.ID)).Code).To(Equal(internal.ErrCodeNotFound))
			Expect(service.DeleteEnrollment(ctx, uc, e.ID)).To(Succeed())
			Expect(repo.rows).To(BeEmpty())
		})
	})

	Describe("ListEnrollments", func() {
		It("skips storage for an empty scope", func() {
			enroll()
			nobody := internal.UserContext{UserID: uuid.NewString(), AccessiblePlants: []string{}}
			page, err := service.ListEnrollments(ctx, nobody, enrollment.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Data).To(BeEmpty())
			Expect(page.Total).To(BeZero())
			Expect(repo.listCalls).To(BeZero())
		})

		It("lists the caller's enrollments", func() {
			enroll()
			page, err := service.GetEnrollmentsWithDetails(ctx, uc, enrollment.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Data).To(HaveLen(1))
			Expect(page.TotalPages).To(Equal(1))
		})
	})

	It("treats a nil publisher as discard", func() {
		svc := enrollment.NewService(repo, profiles{learner.ID: learner}, courses{courseID: {ID: courseID}}, nil,
			slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := svc.CreateEnrollment(ctx, enrollment.CreateEnrollmentDTO{UserID: learner.ID, CourseID: courseID, PlantID: plantID})
		Expect(err).NotTo(HaveOccurred())
	})
})
