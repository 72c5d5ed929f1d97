package course

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	"github.com/google/uuid"
)

const slugConflictMessage = "Course with this slug already exists"

// Repository is implemented by the gorm and the legacy sqlx data layers. Courses
// are a shared catalog and carry no plant.
type Repository interface {
	Create(ctx context.Context, c *courseDatamodel.Course) error
	GetByID(ctx context.Context, id string) (*courseDatamodel.Course, error)
	GetBySlug(ctx context.Context, slug string) (*courseDatamodel.Course, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]*courseDatamodel.Course, int64, error)
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

func (s *Service) CreateCourse(ctx context.Context, dto CreateCourseDTO) (*Course, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkSlugAvailable(ctx, dto.Slug, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &Course{
		ID:        uuid.NewString(),
		Slug:      dto.Slug,
		Title:     strings.TrimSpace(dto.Title),
		Version:   DefaultVersion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if dto.Version != nil {
		c.Version = *dto.Version
	}
	if dto.IsPublished != nil {
		c.IsPublished = *dto.IsPublished
	}

	if err := s.repo.Create(ctx, ToDataModel(c)); err != nil {
		s.logger.Error("failed to create course", "error", err, "slug", c.Slug)
		return nil, internal.FromStorage(err, "Course", slugConflictMessage)
	}

	s.logger.Info("course created", "course_id", c.ID, "slug", c.Slug)
	return c, nil
}

func (s *Service) GetCourse(ctx context.Context, id string) (*Course, error) {
	if err := validation.ValidateID("id", id); err != nil {
		return nil, err
	}
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.FromStorage(err, "Course", slugConflictMessage)
	}
	return FromDataModel(data), nil
}

func (s *Service) GetCourseBySlug(ctx context.Context, slug string) (*Course, error) {
	validator := validation.NewValidator()
	validator.Field("slug", slug).Required()
	if err := validator.Validate(); err != nil {
		return nil, err
	}
	data, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, internal.FromStorage(err, "Course", slugConflictMessage)
	}
	return FromDataModel(data), nil
}

func (s *Service) UpdateCourse(ctx context.Context, id string, dto UpdateCourseDTO) (*Course, error) {
	if err := validation.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.Slug != nil {
		if err := s.checkSlugAvailable(ctx, *dto.Slug, id); err != nil {
			return nil, err
		}
	}

	fields := dto.Fields()
	fields["updated_at"] = time.Now().UTC()
	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error("failed to update course", "error", err, "course_id", id)
		return nil, internal.FromStorage(err, "Course", slugConflictMessage)
	}
	if affected == 0 {
		return nil, internal.NewNotFoundError("Course not found")
	}
	return s.GetCourse(ctx, id)
}

func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	if err := validation.ValidateID("id", id); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete course", "error", err, "course_id", id)
		return internal.FromStorage(err, "Course", slugConflictMessage)
	}
	if affected == 0 {
		return internal.NewNotFoundError("Course not found")
	}
	s.logger.Info("course deleted", "course_id", id)
	return nil
}

func (s *Service) ListCourses(ctx context.Context, filter ListFilter) (internal.Page[*Course], error) {
	filter.Pagination = filter.Pagination.Normalize()
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list courses", "error", err)
		return internal.Page[*Course]{}, internal.FromStorage(err, "Course", slugConflictMessage)
	}

	courses := make([]*Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, FromDataModel(row))
	}
	return internal.NewPage(courses, total, filter.Pagination), nil
}

func (s *Service) checkSlugAvailable(ctx context.Context, slug, selfID string) error {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if internal.IsRecordNotFound(err) {
			return nil
		}
		return internal.FromStorage(err, "Course", slugConflictMessage)
	}
	if existing.ID != selfID {
		return internal.NewConflictError(slugConflictMessage)
	}
	return nil
}
