package postgres

import (
	"context"

	"github.com/frahmantamala/safety-lms/internal/core/database"
	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	"github.com/frahmantamala/safety-lms/internal/plant"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"gorm.io/gorm"
)

type PlantRepository struct {
	db *gorm.DB
}

func NewPlantRepository(db *gorm.DB) plant.Repository {
	return &PlantRepository{db: db}
}

func (r *PlantRepository) Create(ctx context.Context, p *plantDatamodel.Plant) error {
	return database.TranslateGorm(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PlantRepository) GetByID(ctx context.Context, id string) (*plantDatamodel.Plant, error) {
	var p plantDatamodel.Plant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, database.TranslateGorm(err)
	}
	return &p, nil
}

func (r *PlantRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&plantDatamodel.Plant{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, database.TranslateGorm(res.Error)
}

func (r *PlantRepository) List(ctx context.Context, scope tenant.Scope) ([]*plantDatamodel.Plant, error) {
	var plants []*plantDatamodel.Plant
	err := r.db.WithContext(ctx).
		Scopes(database.Scoped(scope, "id")).
		Order("name ASC").
		Order("id ASC").
		Find(&plants).Error
	return plants, database.TranslateGorm(err)
}
