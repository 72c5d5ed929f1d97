package progress

import (
	"time"

	progressDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/progress"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/profile"
)

const (
	MinPercent = 0.0
	MaxPercent = 100.0
)

type Progress struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	CourseID        string    `json:"courseId"`
	PlantID         string    `json:"plantId"`
	ProgressPercent float64   `json:"progressPercent"`
	CurrentSection  *string   `json:"currentSection,omitempty"`
	LastActiveAt    time.Time `json:"lastActiveAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (p *Progress) IsComplete() bool {
	return p.ProgressPercent >= MaxPercent
}

// WithDetails is a progress row with user and course summaries attached.
type WithDetails struct {
	Progress
	User   *profile.Summary `json:"user,omitempty"`
	Course *course.Summary  `json:"course,omitempty"`
}

func ToDataModel(p *Progress) *progressDatamodel.Progress {
	return &progressDatamodel.Progress{
		ID:              p.ID,
		UserID:          p.UserID,
		CourseID:        p.CourseID,
		PlantID:         p.PlantID,
		ProgressPercent: p.ProgressPercent,
		CurrentSection:  p.CurrentSection,
		LastActiveAt:    p.LastActiveAt,
		CreatedAt:       p.CreatedAt,
	}
}

func FromDataModel(p *progressDatamodel.Progress) *Progress {
	return &Progress{
		ID:              p.ID,
		UserID:          p.UserID,
		CourseID:        p.CourseID,
		PlantID:         p.PlantID,
		ProgressPercent: p.ProgressPercent,
		CurrentSection:  p.CurrentSection,
		LastActiveAt:    p.LastActiveAt,
		CreatedAt:       p.CreatedAt,
	}
}

func DetailsFromDataModel(p *progressDatamodel.Progress) *WithDetails {
	d := &WithDetails{Progress: *FromDataModel(p)}
	if p.Profile != nil {
		d.User = &profile.Summary{
			ID:        p.Profile.ID,
			FirstName: p.Profile.FirstName,
			LastName:  p.Profile.LastName,
			Email:     p.Profile.Email,
		}
	}
	if p.Course != nil {
		d.Course = &course.Summary{ID: p.Course.ID, Slug: p.Course.Slug, Title: p.Course.Title}
	}
	return d
}
