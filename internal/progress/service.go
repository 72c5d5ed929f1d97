package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
	progressDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/progress"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
)

const conflictMessage = "Progress already exists for this user and course"

// Repository is implemented by the gorm and the legacy sqlx data layers. Update
// and Delete only touch rows whose plant is inside scope and return the number of
// rows affected.
type Repository interface {
	Create(ctx context.Context, p *progressDatamodel.Progress) error
	GetByID(ctx context.Context, id string) (*progressDatamodel.Progress, error)
	FindByUserCourse(ctx context.Context, userID, courseID string) (*progressDatamodel.Progress, error)
	Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error)
	List(ctx context.Context, filter ListFilter, scope tenant.Scope) ([]*progressDatamodel.Progress, int64, error)
	// ListDetailed is List with Profile and Course populated.
	ListDetailed(ctx context.Context, filter ListFilter, scope tenant.Scope) ([]*progressDatamodel.Progress, int64, error)
}

type ProfileLookup interface {
	LookupProfile(ctx context.Context, id string) (*profile.Profile, error)
}

type CourseLookup interface {
	GetCourse(ctx context.Context, id string) (*course.Course, error)
}

type Service struct {
	repo     Repository
	profiles ProfileLookup
	courses  CourseLookup
	logger   *slog.Logger
}

func NewService(repo Repository, profiles ProfileLookup, courses CourseLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		courses:  courses,
		logger:   logger,
	}
}

func (s *Service) CreateProgress(ctx context.Context, dto CreateProgressDTO) (*Progress, error) {
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
		return nil, internal.FromStorage(err, "Progress", conflictMessage)
	}
	if existing != nil {
		return nil, internal.NewConflictError(conflictMessage)
	}

	now := time.Now().UTC()
	p := &Progress{
		ID:             uuid.NewString(),
		UserID:         dto.UserID,
		CourseID:       dto.CourseID,
		PlantID:        dto.PlantID,
		CurrentSection: dto.CurrentSection,
		LastActiveAt:   now,
		CreatedAt:      now,
	}
	if dto.ProgressPercent != nil {
		p.ProgressPercent = *dto.ProgressPercent
	}

	if err := s.repo.Create(ctx, ToDataModel(p)); err != nil {
		s.logger.Error("failed to create progress", "error", err, "user_id", p.UserID, "course_id", p.CourseID)
		return nil, internal.FromStorage(err, "Progress", conflictMessage)
	}

	s.logger.Info("progress created", "progress_id", p.ID, "user_id", p.UserID, "course_id", p.CourseID)
	return p, nil
}

func (s *Service) GetProgress(ctx context.Context, uc internal.UserContext, id string) (*Progress, error) {
	if err := validation.ValidateID("id", id); err != nil {
		return nil, err
	}
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.FromStorage(err, "Progress", conflictMessage)
	}
	if !tenant.ValidateAccess(uc, data.PlantID) {
		return nil, internal.NewNotFoundError("Progress not found")
	}
	return FromDataModel(data), nil
}

// UpdateProgress records activity. A lower percent is accepted and logged.
func (s *Service) UpdateProgress(ctx context.Context, uc internal.UserContext, id string, dto UpdateProgressDTO) (*Progress, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	current, err := s.GetProgress(ctx, uc, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"last_active_at": time.Now().UTC()}
	if dto.ProgressPercent != nil {
		if *dto.ProgressPercent < current.ProgressPercent {
			s.logger.Warn("progress decreased",
				"progress_id", id,
				"user_id", current.UserID,
				"from", current.ProgressPercent,
				"to", *dto.ProgressPercent)
		}
		fields["progress_percent"] = *dto.ProgressPercent
	}
	if dto.CurrentSection != nil {
		fields["current_section"] = *dto.CurrentSection
	}

	affected, err := s.repo.Update(ctx, id, tenant.ScopeFor(uc, ""), fields)
	if err != nil {
		s.logger.Error("failed to update progress", "error", err, "progress_id", id)
		return nil, internal.FromStorage(err, "Progress", conflictMessage)
	}
	if affected == 0 {
		return nil, internal.NewNotFoundError("Progress not found")
	}
	return s.GetProgress(ctx, uc, id)
}

func (s *Service) DeleteProgress(ctx context.Context, uc internal.UserContext, id string) error {
	if err := validation.ValidateID("id", id); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id, tenant.ScopeFor(uc, ""))
	if err != nil {
		s.logger.Error("failed to delete progress", "error", err, "progress_id", id)
		return internal.FromStorage(err, "Progress", conflictMessage)
	}
	if affected == 0 {
		return internal.NewNotFoundError("Progress not found")
	}
	return nil
}

func (s *Service) ListProgress(ctx context.Context, uc internal.UserContext, filter ListFilter) (internal.Page[*Progress], error) {
	if err := filter.Validate(); err != nil {
		return internal.Page[*Progress]{}, err
	}
	filter.Pagination = filter.Pagination.Normalize()
	scope := tenant.ScopeFor(uc, filter.PlantID)
	if scope.IsEmpty() {
		return internal.NewPage[*Progress](nil, 0, filter.Pagination), nil
	}

	rows, total, err := s.repo.List(ctx, filter, scope)
	if err != nil {
		s.logger.Error("failed to list progress", "error", err)
		return internal.Page[*Progress]{}, internal.FromStorage(err, "Progress", conflictMessage)
	}

	list := make([]*Progress, 0, len(rows))
	for _, row := range rows {
		list = append(list, FromDataModel(row))
	}
	return internal.NewPage(list, total, filter.Pagination), nil
}

// GetProgressWithDetails lists progress rows with user and course summaries.
func (s *Service) GetProgressWithDetails(ctx context.Context, uc internal.UserContext, filter ListFilter) (internal.Page[*WithDetails], error) {
	if err := filter.Validate(); err != nil {
		return internal.Page[*WithDetails]{}, err
	}
	filter.Pagination = filter.Pagination.Normalize()
	scope := tenant.ScopeFor(uc, filter.PlantID)
	if scope.IsEmpty() {
		return internal.NewPage[*WithDetails](nil, 0, filter.Pagination), nil
	}

	rows, total, err := s.repo.ListDetailed(ctx, filter, scope)
	if err != nil {
		s.logger.Error("failed to list detailed progress", "error", err)
		return internal.Page[*WithDetails]{}, internal.FromStorage(err, "Progress", conflictMessage)
	}

	list := make([]*WithDetails, 0, len(rows))
	for _, row := range rows {
		list = append(list, DetailsFromDataModel(row))
	}
	return internal.NewPage(list, total, filter.Pagination), nil
}
