package enrollment

import (
	"time"

	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
)

type Enrollment struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" db:"id"`
	UserID      string     `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:uniq_enrollments_user_course" db:"user_id"`
	CourseID    string     `gorm:"column:course_id;type:varchar(36);not null;uniqueIndex:uniq_enrollments_user_course" db:"course_id"`
	PlantID     string     `gorm:"column:plant_id;type:varchar(36);not null;index" db:"plant_id"`
	Status      string     `gorm:"column:status;not null;default:enrolled" db:"status"`
	EnrolledAt  time.Time  `gorm:"column:enrolled_at;not null" db:"enrolled_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" db:"completed_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`

	Profile *profileDatamodel.Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" db:"-"`
	Course  *courseDatamodel.Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" db:"-"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
