package postgres

import (
	"context"

	"github.com/frahmantamala/safety-lms/internal/core/database"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) profile.Repository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *profileDatamodel.Profile) error {
	return database.TranslateGorm(r.db.WithContext(ctx).Omit("Plant", "AdminRoles").Create(p).Error)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profileDatamodel.Profile, error) {
	var p profileDatamodel.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &p, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*profileDatamodel.Profile, error) {
	var p profileDatamodel.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&profileDatamodel.Profile{}).
		Scopes(database.Scoped(scope, "plant_id")).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *ProfileRepository) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(database.Scoped(scope, "plant_id")).
		Where("id = ?", id).
		Delete(&profileDatamodel.Profile{})
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *ProfileRepository) filtered(ctx context.Context, filter profile.ListFilter, scope tenant.Scope) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&profileDatamodel.Profile{}).
		Scopes(database.Scoped(scope, "plant_id"))
	if pattern := filter.SearchPattern(); pattern != "" {
		q = q.Where("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern, pattern)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}

func (r *ProfileRepository) list(ctx context.Context, filter profile.ListFilter, scope tenant.Scope, preload bool) ([]*profileDatamodel.Profile, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter, scope).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateGorm(err)
	}

	q := r.filtered(ctx, filter, scope)
	if preload {
		q = q.Preload("Plant").Preload("AdminRoles", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		})
	}

	var profiles []*profileDatamodel.Profile
	err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&profiles).Error
	return profiles, total, database.TranslateGorm(err)
}

func (r *ProfileRepository) List(ctx context.Context, filter profile.ListFilter, scope tenant.Scope) ([]*profileDatamodel.Profile, int64, error) {
	return r.list(ctx, filter, scope, false)
}

func (r *ProfileRepository) ListDetailed(ctx context.Context, filter profile.ListFilter, scope tenant.Scope) ([]*profileDatamodel.Profile, int64, error) {
	return r.list(ctx, filter, scope, true)
}

func (r *ProfileRepository) CreateRole(ctx context.Context, role *profileDatamodel.AdminRole) error {
	return database.TranslateGorm(r.db.WithContext(ctx).Create(role).Error)
}

func (r *ProfileRepository) GetRole(ctx context.Context, id string) (*profileDatamodel.AdminRole, error) {
	var role profileDatamodel.AdminRole
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &role, nil
}

func (r *ProfileRepository) FindRole(ctx context.Context, userID, role string, plantID *string) (*profileDatamodel.AdminRole, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND role = ?", userID, role)
	if plantID == nil {
		q = q.Where("plant_id IS NULL")
	} else {
		q = q.Where("plant_id = ?", *plantID)
	}

	var found profileDatamodel.AdminRole
	if err := q.First(&found).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &found, nil
}

func (r *ProfileRepository) ListRoles(ctx context.Context, userID string) ([]*profileDatamodel.AdminRole, error) {
	var roles []*profileDatamodel.AdminRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&roles).Error
	return roles, database.TranslateGorm(err)
}

func (r *ProfileRepository) DeleteRole(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&profileDatamodel.AdminRole{})
	return res.RowsAffected, database.TranslateGorm(res.Error)
}
