package course

import (
	"time"

	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
)

const DefaultVersion = "1.0"

type Course struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Version     string    `json:"version"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Course) ToSummary() Summary {
	return Summary{ID: c.ID, Slug: c.Slug, Title: c.Title}
}

func ToDataModel(c *Course) *courseDatamodel.Course {
	return &courseDatamodel.Course{
		ID:          c.ID,
		Slug:        c.Slug,
		Title:       c.Title,
		Version:     c.Version,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromDataModel(c *courseDatamodel.Course) *Course {
	return &Course{
		ID:          c.ID,
		Slug:        c.Slug,
		Title:       c.Title,
		Version:     c.Version,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
