package enrollment

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
	enrollmentDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/enrollment"
	"github.com/frahmantamala/safety-lms/internal/core/events"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
)

const conflictMessage = "User is already enrolled in this course"

// Repository is implemented by the gorm and the legacy sqlx data layers. Update
// and Delete only touch rows whose plant is inside scope and return the number of
// rows affected.
type Repository interface {
	Create(ctx context.Context, e *enrollmentDatamodel.Enrollment) error
	GetByID(ctx context.Context, id string) (*enrollmentDatamodel.Enrollment, error)
	FindByUserCourse(ctx context.Context, userID, courseID string) (*enrollmentDatamodel.Enrollment, error)
	Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error)
	List(ctx context.Context, filter ListFilter, scope tenant.Scope) ([]*enrollmentDatamodel.Enrollment, int64, error)
	// ListDetailed is List with Profile and Course populated.
	ListDetailed(ctx context.Context, filter ListFilter, scope tenant.Scope) ([]*enrollmentDatamodel.Enrollment, int64, error)
}

type ProfileLookup interface {
	LookupProfile(ctx context.Context, id string) (*profile.Profile, error)
}

type CourseLookup interface {
	GetCourse(ctx context.Context, id string) (*course.Course, error)
}

type Service struct {
	repo      Repository
	profiles  ProfileLookup
	courses   CourseLookup
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, profiles ProfileLookup, courses CourseLookup, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:      repo,
		profiles:  profiles,
		courses:   courses,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) CreateEnrollment(ctx context.Context, dto CreateEnrollmentDTO) (*Enrollment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.profiles.LookupProfile(ctx, dto.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.courses.GetCourse(ctx, dto.CourseID); err != nil {
		return nil, err
	}
	if owner.PlantID != dto.PlantID {
		return nil, internal.NewValidationFieldError("plant_id", "plant_id must match the user's plant", internal.ErrCodePlantMismatch)
	}

	existing, err := s.repo.FindByUserCourse(ctx, dto.UserID, dto.CourseID)
	if err != nil && !internal.IsRecordNotFound(err) {
		return nil, internal.FromStorage(err, "Enrollment", conflictMessage)
	}
	if existing != nil {
		s.logger.Warn("duplicate enrollment rejected", "user_id", dto.UserID, "course_id", dto.CourseID)
		return nil, internal.NewConflictError(conflictMessage)
	}

	now := time.Now().UTC()
	e := &Enrollment{
		ID:         uuid.NewString(),
		UserID:     dto.UserID,
		CourseID:   dto.CourseID,
		PlantID:    dto.PlantID,
		Status:     StatusEnrolled,
		EnrolledAt: now,
		UpdatedAt:  now,
	}
	if dto.Status != nil {
		e.Status = *dto.Status
	}
	if e.IsCompleted() {
		e.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, ToDataModel(e)); err != nil {
		s.logger.Error("failed to create enrollment", "error", err, "user_id", e.UserID, "course_id", e.CourseID)
		return nil, internal.FromStorage(err, "Enrollment", conflictMessage)
	}

	s.logger.Info("enrollment created", "enrollment_id", e.ID, "user_id", e.UserID, "course_id", e.CourseID)
	s.publish(ctx, events.NewEnrollmentCreatedEvent(e.ID, e.UserID, e.CourseID, e.PlantID))
	if e.IsCompleted() {
		s.publish(ctx, events.NewEnrollmentCompletedEvent(e.ID, e.UserID, e.CourseID, now))
	}
	return e, nil
}

func (s *Service) GetEnrollment(ctx context.Context, uc internal.UserContext, id string) (*Enrollment, error) {
	if err := validation.ValidateID("id", id); err != nil {
		return nil, err
	}
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.FromStorage(err, "Enrollment", conflictMessage)
	}
	if !tenant.ValidateAccess(uc, data.PlantID) {
		return nil, internal.NewNotFoundError("Enrollment not found")
	}
	return FromDataModel(data), nil
}

// UpdateEnrollment applies a status transition. completedAt is set when the
// enrollment becomes completed.
func (s *Service) UpdateEnrollment(ctx context.Context, uc internal.UserContext, id string, dto UpdateEnrollmentDTO) (*Enrollment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	current, err := s.GetEnrollment(ctx, uc, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{"updated_at": now}
	completedNow := false
	if dto.Status != nil {
		if !current.CanTransitionTo(*dto.Status) {
			return nil, internal.NewValidationFieldError("status",
				"cannot change status from "+current.Status+" to "+*dto.Status, internal.ErrCodeInvalidTransition)
		}
		fields["status"] = *dto.Status
		if *dto.Status == StatusCompleted && !current.IsCompleted() {
			fields["completed_at"] = now
			completedNow = true
		}
	}

	affected, err := s.repo.Update(ctx, id, tenant.ScopeFor(uc, ""), fields)
	if err != nil {
		s.logger.Error("failed to update enrollment", "error", err, "enrollment_id", id)
		return nil, internal.FromStorage(err, "Enrollment", conflictMessage)
	}
	if affected == 0 {
		return nil, internal.NewNotFoundError("Enrollment not found")
	}

	updated, err := s.GetEnrollment(ctx, uc, id)
	if err != nil {
		return nil, err
	}
	if completedNow {
		s.logger.Info("enrollment completed", "enrollment_id", id, "user_id", updated.UserID)
		s.publish(ctx, events.NewEnrollmentCompletedEvent(updated.ID, updated.UserID, updated.CourseID, now))
	}
	return updated, nil
}

func (s *Service) DeleteEnrollment(ctx context.Context, uc internal.UserContext, id string) error {
	if err := validation.ValidateID("id", id); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id, tenant.ScopeFor(uc, ""))
	if err != nil {
		s.logger.Error("failed to delete enrollment", "error", err, "enrollment_id", id)
		return internal.FromStorage(err, "Enrollment", conflictMessage)
	}
	if affected == 0 {
		return internal.NewNotFoundError("Enrollment not found")
	}
	return nil
}

func (s *Service) ListEnrollments(ctx context.Context, uc internal.UserContext, filter ListFilter) (internal.Page[*Enrollment], error) {
	filter.Pagination = filter.Pagination.Normalize()
	scope := tenant.ScopeFor(uc, filter.PlantID)
	if scope.IsEmpty() {
		return internal.NewPage[*Enrollment](nil, 0, filter.Pagination), nil
	}

	rows, total, err := s.repo.List(ctx, filter, scope)
	if err != nil {
		s.logger.Error("failed to list enrollments", "error", err)
		return internal.Page[*Enrollment]{}, internal.FromStorage(err, "Enrollment", conflictMessage)
	}

	list := make([]*Enrollment, 0, len(rows))
	for _, row := range rows {
		list = append(list, FromDataModel(row))
	}
	return internal.NewPage(list, total, filter.Pagination), nil
}

// GetEnrollmentsWithDetails lists enrollments with user and course summaries.
func (s *Service) GetEnrollmentsWithDetails(ctx context.Context, uc internal.UserContext, filter ListFilter) (internal.Page[*WithDetails], error) {
	filter.Pagination = filter.Pagination.Normalize()
	scope := tenant.ScopeFor(uc, filter.PlantID)
	if scope.IsEmpty() {
		return internal.NewPage[*WithDetails](nil, 0, filter.Pagination), nil
	}

	rows, total, err := s.repo.ListDetailed(ctx, filter, scope)
	if err != nil {
		s.logger.Error("failed to list detailed enrollments", "error", err)
		return internal.Page[*WithDetails]{}, internal.FromStorage(err, "Enrollment", conflictMessage)
	}

	list := make([]*WithDetails, 0, len(rows))
	for _, row := range rows {
		list = append(list, DetailsFromDataModel(row))
	}
	return internal.NewPage(list, total, filter.Pagination), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
