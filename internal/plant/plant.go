package plant

import (
	"time"

	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
)

type Plant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Plant) ToSummary() Summary {
	return Summary{ID: p.ID, Name: p.Name}
}

func ToDataModel(p *Plant) *plantDatamodel.Plant {
	return &plantDatamodel.Plant{
		ID:        p.ID,
		Name:      p.Name,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromDataModel(p *plantDatamodel.Plant) *Plant {
	return &Plant{
		ID:        p.ID,
		Name:      p.Name,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
