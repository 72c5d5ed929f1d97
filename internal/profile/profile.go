package profile

import (
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	"github.com/frahmantamala/safety-lms/internal/plant"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type Profile struct {
	ID        string    `json:"id"`
	PlantID   string    `json:"plantId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	JobTitle  *string   `json:"jobTitle,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Profile) IsActive() bool {
	return p.Status == StatusActive
}

func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p *Profile) ToSummary() Summary {
	return Summary{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}
}

type AdminRole struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	PlantID   *string   `json:"plantId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsGlobal reports a role granted without a plant restriction.
func (r *AdminRole) IsGlobal() bool {
	return r.PlantID == nil
}

func (r *AdminRole) ToGrant() internal.RoleGrant {
	return internal.RoleGrant{Role: r.Role, PlantID: r.PlantID}
}

// WithDetails is a profile with its plant summary and admin roles attached.
type WithDetails struct {
	Profile
	Plant      *plant.Summary `json:"plant,omitempty"`
	AdminRoles []*AdminRole   `json:"adminRoles"`
}

func ToDataModel(p *Profile) *profileDatamodel.Profile {
	return &profileDatamodel.Profile{
		ID:        p.ID,
		PlantID:   p.PlantID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		JobTitle:  p.JobTitle,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromDataModel(p *profileDatamodel.Profile) *Profile {
	return &Profile{
		ID:        p.ID,
		PlantID:   p.PlantID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		JobTitle:  p.JobTitle,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func DetailsFromDataModel(p *profileDatamodel.Profile) *WithDetails {
	d := &WithDetails{
		Profile:    *FromDataModel(p),
		AdminRoles: make([]*AdminRole, 0, len(p.AdminRoles)),
	}
	if p.Plant != nil {
		d.Plant = &plant.Summary{ID: p.Plant.ID, Name: p.Plant.Name}
	}
	for i := range p.AdminRoles {
		d.AdminRoles = append(d.AdminRoles, RoleFromDataModel(&p.AdminRoles[i]))
	}
	return d
}

func RoleToDataModel(r *AdminRole) *profileDatamodel.AdminRole {
	return &profileDatamodel.AdminRole{
		ID:        r.ID,
		UserID:    r.UserID,
		Role:      r.Role,
		PlantID:   r.PlantID,
		CreatedAt: r.CreatedAt,
	}
}

func RoleFromDataModel(r *profileDatamodel.AdminRole) *AdminRole {
	return &AdminRole{
		ID:        r.ID,
		UserID:    r.UserID,
		Role:      r.Role,
		PlantID:   r.PlantID,
		CreatedAt: r.CreatedAt,
	}
}
