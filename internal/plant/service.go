package plant

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
)

const conflictMessage = "Plant already exists"

// Repository is implemented by the gorm and the legacy sqlx data layers.
type Repository interface {
	Create(ctx context.Context, p *plantDatamodel.Plant) error
	GetByID(ctx context.Context, id string) (*plantDatamodel.Plant, error)
	// Update returns the number of rows changed.
	Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	List(ctx context.Context, scope tenant.Scope) ([]*plantDatamodel.Plant, error)
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

func (s *Service) CreatePlant(ctx context.Context, dto CreatePlantDTO) (*Plant, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Plant{
		ID:        uuid.NewString(),
		Name:      dto.Name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}

	if err := s.repo.Create(ctx, ToDataModel(p)); err != nil {
		s.logger.Error("failed to create plant", "error", err)
		return nil, internal.FromStorage(err, "Plant", conflictMessage)
	}

	s.logger.Info("plant created", "plant_id", p.ID)
	return p, nil
}

func (s *Service) GetPlant(ctx context.Context, uc internal.UserContext, id string) (*Plant, error) {
	if err := validation.ValidateID("id", id); err != nil {
		return nil, err
	}
	if !tenant.ValidateAccess(uc, id) {
		return nil, internal.NewNotFoundError("Plant not found")
	}
	return s.find(ctx, id)
}

// Exists reports whether a plant row exists regardless of its active flag.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.find(ctx, id)
	if err == nil {
		return true, nil
	}
	if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
		return false, nil
	}
	return false, err
}

func (s *Service) find(ctx context.Context, id string) (*Plant, error) {
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.FromStorage(err, "Plant", conflictMessage)
	}
	return FromDataModel(data), nil
}

func (s *Service) UpdatePlant(ctx context.Context, id string, dto UpdatePlantDTO) (*Plant, error) {
	if err := validation.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := dto.Fields()
	fields["updated_at"] = time.Now().UTC()
	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error("failed to update plant", "error", err, "plant_id", id)
		return nil, internal.FromStorage(err, "Plant", conflictMessage)
	}
	if affected == 0 {
		return nil, internal.NewNotFoundError("Plant not found")
	}
	return s.find(ctx, id)
}

// ListPlants returns the plants visible to uc ordered by name.
func (s *Service) ListPlants(ctx context.Context, uc internal.UserContext) ([]*Plant, error) {
	scope := tenant.ScopeFor(uc, "")
	if scope.IsEmpty() {
		return []*Plant{}, nil
	}

	rows, err := s.repo.List(ctx, scope)
	if err != nil {
		s.logger.Error("failed to list plants", "error", err)
		return nil, internal.FromStorage(err, "Plant", conflictMessage)
	}

	plants := make([]*Plant, 0, len(rows))
	for _, row := range rows {
		plants = append(plants, FromDataModel(row))
	}
	return plants, nil
}
