package legacy

import (
	"context"

	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/jmoiron/sqlx"
)

const (
	profileColumns = "id, plant_id, first_name, last_name, email, job_title, status, created_at, updated_at"
	roleColumns    = "id, user_id, role, plant_id, created_at"
)

type ProfileStore struct {
	store
}

func NewProfileStore(db *sqlx.DB) profile.Repository {
	return &ProfileStore{store{db: db}}
}

func (s *ProfileStore) Create(ctx context.Context, p *profileDatamodel.Profile) error {
	return s.insert(ctx, `INSERT INTO profiles (`+profileColumns+`)
		VALUES (:id, :plant_id, :first_name, :last_name, :email, :job_title, :status, :created_at, :updated_at)`, p)
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (*profileDatamodel.Profile, error) {
	var p profileDatamodel.Profile
	if err := s.get(ctx, &p, "SELECT "+profileColumns+" FROM profiles WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) GetByEmail(ctx context.Context, email string) (*profileDatamodel.Profile, error) {
	var p profileDatamodel.Profile
	if err := s.get(ctx, &p, "SELECT "+profileColumns+" FROM profiles WHERE email = ?", email); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	w := &where{}
	w.add("id = ?", id)
	w.scope(scope, "plant_id")
	return s.update(ctx, "profiles", fields, w)
}

func (s *ProfileStore) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	w := &where{}
	w.add("id = ?", id)
	w.scope(scope, "plant_id")
	return s.exec(ctx, "DELETE FROM profiles"+w.String(), w.args...)
}

func profileFilter(filter profile.ListFilter, scope tenant.Scope) *where {
	w := &where{}
	w.scope(scope, "plant_id")
	if pattern := filter.SearchPattern(); pattern != "" {
		w.add("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern, pattern)
	}
	if filter.Status != "" {
		w.add("status = ?", filter.Status)
	}
	return w
}

func (s *ProfileStore) List(ctx context.Context, filter profile.ListFilter, scope tenant.Scope) ([]*profileDatamodel.Profile, int64, error) {
	w := profileFilter(filter, scope)
	total, err := s.count(ctx, "profiles", w)
	if err != nil {
		return nil, 0, err
	}

	profiles := []*profileDatamodel.Profile{}
	err = s.selectAll(ctx, &profiles, "SELECT "+profileColumns+" FROM profiles"+w.String()+
		" ORDER BY created_at DESC, id DESC"+page(filter.Limit, filter.Offset()), w.args...)
	return profiles, total, err
}

func (s *ProfileStore) ListDetailed(ctx context.Context, filter profile.ListFilter, scope tenant.Scope) ([]*profileDatamodel.Profile, int64, error) {
	profiles, total, err := s.List(ctx, filter, scope)
	if err != nil || len(profiles) == 0 {
		return profiles, total, err
	}

	userIDs := make([]string, 0, len(profiles))
	plantIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.ID)
		plantIDs = append(plantIDs, p.PlantID)
	}

	plants := []*plantDatamodel.Plant{}
	if err := s.selectAll(ctx, &plants, "SELECT "+plantColumns+" FROM plants WHERE id IN (?)", plantIDs); err != nil {
		return nil, 0, err
	}
	roles := []profileDatamodel.AdminRole{}
	if err := s.selectAll(ctx, &roles, "SELECT "+roleColumns+" FROM admin_roles WHERE user_id IN (?) ORDER BY created_at ASC, id ASC", userIDs); err != nil {
		return nil, 0, err
	}

	plantByID := make(map[string]*plantDatamodel.Plant, len(plants))
	for _, pl := range plants {
		plantByID[pl.ID] = pl
	}
	rolesByUser := make(map[string][]profileDatamodel.AdminRole)
	for _, r := range roles {
		rolesByUser[r.UserID] = append(rolesByUser[r.UserID], r)
	}
	for _, p := range profiles {
		p.Plant = plantByID[p.PlantID]
		p.AdminRoles = rolesByUser[p.ID]
	}
	return profiles, total, nil
}

func (s *ProfileStore) CreateRole(ctx context.Context, r *profileDatamodel.AdminRole) error {
	return s.insert(ctx, `INSERT INTO admin_roles (`+roleColumns+`)
		VALUES (:id, :user_id, :role, :plant_id, :created_at)`, r)
}

func (s *ProfileStore) GetRole(ctx context.Context, id string) (*profileDatamodel.AdminRole, error) {
	var r profileDatamodel.AdminRole
	if err := s.get(ctx, &r, "SELECT "+roleColumns+" FROM admin_roles WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ProfileStore) FindRole(ctx context.Context, userID, role string, plantID *string) (*profileDatamodel.AdminRole, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	w.add("role = ?", role)
	if plantID == nil {
		w.add("plant_id IS NULL")
	} else {
		w.add("plant_id = ?", *plantID)
	}

	var r profileDatamodel.AdminRole
	if err := s.get(ctx, &r, "SELECT "+roleColumns+" FROM admin_roles"+w.String()+" LIMIT 1", w.args...); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ProfileStore) ListRoles(ctx context.Context, userID string) ([]*profileDatamodel.AdminRole, error) {
	roles := []*profileDatamodel.AdminRole{}
	err := s.selectAll(ctx, &roles, "SELECT "+roleColumns+" FROM admin_roles WHERE user_id = ? ORDER BY created_at ASC, id ASC", userID)
	return roles, err
}

func (s *ProfileStore) DeleteRole(ctx context.Context, id string) (int64, error) {
	return s.exec(ctx, "DELETE FROM admin_roles WHERE id = ?", id)
}
