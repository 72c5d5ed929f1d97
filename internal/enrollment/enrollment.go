package enrollment

import (
	"time"

	enrollmentDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/enrollment"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/profile"
)

const (
	StatusEnrolled   = "enrolled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

var statusRank = map[string]int{
	StatusEnrolled:   0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

type Enrollment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CourseID    string     `json:"courseId"`
	PlantID     string     `json:"plantId"`
	Status      string     `json:"status"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (e *Enrollment) IsCompleted() bool {
	return e.Status == StatusCompleted
}

// CanTransitionTo reports whether status only moves forward
// (enrolled -> in_progress -> completed). Staying put is allowed.
func (e *Enrollment) CanTransitionTo(next string) bool {
	from, ok := statusRank[e.Status]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	return ok && to >= from
}

// WithDetails is an enrollment with user and course summaries attached.
type WithDetails struct {
	Enrollment
	User   *profile.Summary `json:"user,omitempty"`
	Course *course.Summary  `json:"course,omitempty"`
}

func ToDataModel(e *Enrollment) *enrollmentDatamodel.Enrollment {
	return &enrollmentDatamodel.Enrollment{
		ID:          e.ID,
		UserID:      e.UserID,
		CourseID:    e.CourseID,
		PlantID:     e.PlantID,
		Status:      e.Status,
		EnrolledAt:  e.EnrolledAt,
		CompletedAt: e.CompletedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *enrollmentDatamodel.Enrollment) *Enrollment {
	return &Enrollment{
		ID:          e.ID,
		UserID:      e.UserID,
		CourseID:    e.CourseID,
		PlantID:     e.PlantID,
		Status:      e.Status,
		EnrolledAt:  e.EnrolledAt,
		CompletedAt: e.CompletedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func DetailsFromDataModel(e *enrollmentDatamodel.Enrollment) *WithDetails {
	d := &WithDetails{Enrollment: *FromDataModel(e)}
	if e.Profile != nil {
		d.User = &profile.Summary{
			ID:        e.Profile.ID,
			FirstName: e.Profile.FirstName,
			LastName:  e.Profile.LastName,
			Email:     e.Profile.Email,
		}
	}
	if e.Course != nil {
		d.Course = &course.Summary{ID: e.Course.ID, Slug: e.Course.Slug, Title: e.Course.Title}
	}
	return d
}
