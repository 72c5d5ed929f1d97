package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
)

const (
	emailConflictMessage = "A user with this email already exists"
	roleConflictMessage  = "Admin role already exists"
)

// Repository is implemented by the gorm and the legacy sqlx data layers. Update
// and Delete only touch rows whose plant is inside scope and return the number of
// rows affected.
type Repository interface {
	Create(ctx context.Context, p *profileDatamodel.Profile) error
	GetByID(ctx context.Context, id string) (*profileDatamodel.Profile, error)
	GetByEmail(ctx context.Context, email string) (*profileDatamodel.Profile, error)
	Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error)
	List(ctx context.Context, filter ListFilter, scope tenant.Scope) ([]*profileDatamodel.Profile, int64, error)
	// ListDetailed is List with Plant and AdminRoles populated.
	ListDetailed(ctx context.Context, filter ListFilter, scope tenant.Scope) ([]*profileDatamodel.Profile, int64, error)

	CreateRole(ctx context.Context, r *profileDatamodel.AdminRole) error
	GetRole(ctx context.Context, id string) (*profileDatamodel.AdminRole, error)
	FindRole(ctx context.Context, userID, role string, plantID *string) (*profileDatamodel.AdminRole, error)
	ListRoles(ctx context.Context, userID string) ([]*profileDatamodel.AdminRole, error)
	DeleteRole(ctx context.Context, id string) (int64, error)
}

// PlantChecker resolves plant references.
type PlantChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo   Repository
	plants PlantChecker
	logger *slog.Logger
}

func NewService(repo Repository, plants PlantChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		plants: plants,
		logger: logger,
	}
}

func (s *Service) CreateProfile(ctx context.Context, dto CreateProfileDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.requirePlant(ctx, dto.PlantID); err != nil {
		return nil, err
	}

	email := normalizeEmail(dto.Email)
	if err := s.checkEmailAvailable(ctx, email, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Profile{
		ID:        uuid.NewString(),
		PlantID:   dto.PlantID,
		FirstName: strings.TrimSpace(dto.FirstName),
		LastName:  strings.TrimSpace(dto.LastName),
		Email:     email,
		JobTitle:  dto.JobTitle,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}

	if err := s.repo.Create(ctx, ToDataModel(p)); err != nil {
		s.logger.Error("failed to create profile", "error", err, "plant_id", p.PlantID)
		return nil, internal.FromStorage(err, "Profile", emailConflictMessage)
	}

	s.logger.Info("profile created", "user_id", p.ID, "plant_id", p.PlantID)
	return p, nil
}

func (s *Service) GetProfile(ctx context.Context, uc internal.UserContext, id string) (*Profile, error) {
	if err := validation.ValidateID("id", id); err != nil {
		return nil, err
	}
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tenant.ValidateAccess(uc, p.PlantID) {
		return nil, internal.NewNotFoundError("Profile not found")
	}
	return p, nil
}

// LookupProfile fetches a profile without tenant checks, for reference validation.
func (s *Service) LookupProfile(ctx context.Context, id string) (*Profile, error) {
	if err := validation.ValidateID("user_id", id); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *Service) find(ctx context.Context, id string) (*Profile, error) {
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.FromStorage(err, "Profile", emailConflictMessage)
	}
	return FromDataModel(data), nil
}

func (s *Service) UpdateProfile(ctx context.Context, uc internal.UserContext, id string, dto UpdateProfileDTO) (*Profile, error) {
	if err := validation.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.Email != nil {
		if err := s.checkEmailAvailable(ctx, normalizeEmail(*dto.Email), id); err != nil {
			return nil, err
		}
	}

	fields := dto.Fields()
	fields["updated_at"] = time.Now().UTC()
	affected, err := s.repo.Update(ctx, id, tenant.ScopeFor(uc, ""), fields)
	if err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", id)
		return nil, internal.FromStorage(err, "Profile", emailConflictMessage)
	}
	if affected == 0 {
		return nil, internal.NewNotFoundError("Profile not found")
	}
	return s.find(ctx, id)
}

func (s *Service) DeleteProfile(ctx context.Context, uc internal.UserContext, id string) error {
	if err := validation.ValidateID("id", id); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id, tenant.ScopeFor(uc, ""))
	if err != nil {
		s.logger.Error("failed to delete profile", "error", err, "user_id", id)
		return internal.FromStorage(err, "Profile", emailConflictMessage)
	}
	if affected == 0 {
		return internal.NewNotFoundError("Profile not found")
	}
	s.logger.Info("profile deleted", "user_id", id)
	return nil
}

func (s *Service) ListProfiles(ctx context.Context, uc internal.UserContext, filter ListFilter) (internal.Page[*Profile], error) {
	filter.Pagination = filter.Pagination.Normalize()
	scope := tenant.ScopeFor(uc, filter.PlantID)
	if scope.IsEmpty() {
		return internal.NewPage[*Profile](nil, 0, filter.Pagination), nil
	}

	rows, total, err := s.repo.List(ctx, filter, scope)
	if err != nil {
		s.logger.Error("failed to list profiles", "error", err)
		return internal.Page[*Profile]{}, internal.FromStorage(err, "Profile", emailConflictMessage)
	}

	profiles := make([]*Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, FromDataModel(row))
	}
	return internal.NewPage(profiles, total, filter.Pagination), nil
}

// GetUsersWithDetails lists profiles with their plant summary and admin roles.
func (s *Service) GetUsersWithDetails(ctx context.Context, uc internal.UserContext, filter ListFilter) (internal.Page[*WithDetails], error) {
	filter.Pagination = filter.Pagination.Normalize()
	scope := tenant.ScopeFor(uc, filter.PlantID)
	if scope.IsEmpty() {
		return internal.NewPage[*WithDetails](nil, 0, filter.Pagination), nil
	}

	rows, total, err := s.repo.ListDetailed(ctx, filter, scope)
	if err != nil {
		s.logger.Error("failed to list detailed profiles", "error", err)
		return internal.Page[*WithDetails]{}, internal.FromStorage(err, "Profile", emailConflictMessage)
	}

	details := make([]*WithDetails, 0, len(rows))
	for _, row := range rows {
		details = append(details, DetailsFromDataModel(row))
	}
	return internal.NewPage(details, total, filter.Pagination), nil
}

func (s *Service) AssignAdminRole(ctx context.Context, uc internal.UserContext, dto AssignAdminRoleDTO) (*AdminRole, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetProfile(ctx, uc, dto.UserID); err != nil {
		return nil, err
	}
	if dto.PlantID != nil {
		if err := s.requirePlant(ctx, *dto.PlantID); err != nil {
			return nil, err
		}
	}

	existing, err := s.repo.FindRole(ctx, dto.UserID, dto.Role, dto.PlantID)
	if err != nil && !internal.IsRecordNotFound(err) {
		return nil, internal.FromStorage(err, "Admin role", roleConflictMessage)
	}
	if existing != nil {
		return nil, internal.NewConflictError(roleConflictMessage)
	}

	role := &AdminRole{
		ID:        uuid.NewString(),
		UserID:    dto.UserID,
		Role:      dto.Role,
		PlantID:   dto.PlantID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateRole(ctx, RoleToDataModel(role)); err != nil {
		s.logger.Error("failed to assign admin role", "error", err, "user_id", dto.UserID, "role", dto.Role)
		return nil, internal.FromStorage(err, "Admin role", roleConflictMessage)
	}

	s.logger.Info("admin role assigned", "user_id", role.UserID, "role", role.Role, "global", role.IsGlobal())
	return role, nil
}

func (s *Service) ListAdminRoles(ctx context.Context, uc internal.UserContext, userID string) ([]*AdminRole, error) {
	if _, err := s.GetProfile(ctx, uc, userID); err != nil {
		return nil, err
	}
	return s.roles(ctx, userID)
}

func (s *Service) roles(ctx context.Context, userID string) ([]*AdminRole, error) {
	rows, err := s.repo.ListRoles(ctx, userID)
	if err != nil {
		return nil, internal.FromStorage(err, "Admin role", roleConflictMessage)
	}
	roles := make([]*AdminRole, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, RoleFromDataModel(row))
	}
	return roles, nil
}

func (s *Service) RevokeAdminRole(ctx context.Context, uc internal.UserContext, id string) error {
	if err := validation.ValidateID("id", id); err != nil {
		return err
	}
	row, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return internal.FromStorage(err, "Admin role", roleConflictMessage)
	}
	if _, err := s.GetProfile(ctx, uc, row.UserID); err != nil {
		return internal.NewNotFoundError("Admin role not found")
	}

	affected, err := s.repo.DeleteRole(ctx, id)
	if err != nil {
		s.logger.Error("failed to revoke admin role", "error", err, "role_id", id)
		return internal.FromStorage(err, "Admin role", roleConflictMessage)
	}
	if affected == 0 {
		return internal.NewNotFoundError("Admin role not found")
	}
	s.logger.Info("admin role revoked", "role_id", id, "user_id", row.UserID)
	return nil
}

// ResolveUserContext builds the authorization context of a persisted profile.
// Suspended profiles are rejected.
func (s *Service) ResolveUserContext(ctx context.Context, userID string) (internal.UserContext, error) {
	if err := validation.ValidateID("user_id", userID); err != nil {
		return internal.UserContext{}, err
	}
	p, err := s.find(ctx, userID)
	if err != nil {
		return internal.UserContext{}, err
	}
	if !p.IsActive() {
		return internal.UserContext{}, internal.NewUnauthorizedError("Profile is suspended")
	}

	roles, err := s.roles(ctx, userID)
	if err != nil {
		return internal.UserContext{}, err
	}
	grants := make([]internal.RoleGrant, 0, len(roles))
	for _, r := range roles {
		grants = append(grants, r.ToGrant())
	}
	return tenant.BuildUserContext(p.ID, p.PlantID, grants), nil
}

func (s *Service) requirePlant(ctx context.Context, plantID string) error {
	ok, err := s.plants.Exists(ctx, plantID)
	if err != nil {
		return err
	}
	if !ok {
		return internal.NewValidationFieldError("plant_id", "plant does not exist", internal.ErrCodeUnknownPlant)
	}
	return nil
}

// checkEmailAvailable fails with CONFLICT when another profile owns email.
func (s *Service) checkEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if internal.IsRecordNotFound(err) {
			return nil
		}
		return internal.FromStorage(err, "Profile", emailConflictMessage)
	}
	if existing.ID != selfID {
		s.logger.Warn("profile email conflict", "email", email)
		return internal.NewConflictError(emailConflictMessage)
	}
	return nil
}
