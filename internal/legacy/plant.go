package legacy

import (
	"context"

	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	"github.com/frahmantamala/safety-lms/internal/plant"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/jmoiron/sqlx"
)

const plantColumns = "id, name, is_active, created_at, updated_at"

type PlantStore struct {
	store
}

func NewPlantStore(db *sqlx.DB) plant.Repository {
	return &PlantStore{store{db: db}}
}

func (s *PlantStore) Create(ctx context.Context, p *plantDatamodel.Plant) error {
	return s.insert(ctx, `INSERT INTO plants (`+plantColumns+`)
		VALUES (:id, :name, :is_active, :created_at, :updated_at)`, p)
}

func (s *PlantStore) GetByID(ctx context.Context, id string) (*plantDatamodel.Plant, error) {
	var p plantDatamodel.Plant
	if err := s.get(ctx, &p, "SELECT "+plantColumns+" FROM plants WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlantStore) Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	w := &where{}
	w.add("id = ?", id)
	return s.update(ctx, "plants", fields, w)
}

func (s *PlantStore) List(ctx context.Context, scope tenant.Scope) ([]*plantDatamodel.Plant, error) {
	w := &where{}
	w.scope(scope, "id")

	plants := []*plantDatamodel.Plant{}
	err := s.selectAll(ctx, &plants, "SELECT "+plantColumns+" FROM plants"+w.String()+" ORDER BY name ASC, id ASC", w.args...)
	return plants, err
}
