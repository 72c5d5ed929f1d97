package progress

import (
	"time"

	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
)

type Progress struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" db:"id"`
	UserID          string    `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:uniq_progress_user_course" db:"user_id"`
	CourseID        string    `gorm:"column:course_id;type:varchar(36);not null;uniqueIndex:uniq_progress_user_course" db:"course_id"`
	PlantID         string    `gorm:"column:plant_id;type:varchar(36);not null;index" db:"plant_id"`
	ProgressPercent float64   `gorm:"column:progress_percent;type:double precision;not null;default:0" db:"progress_percent"`
	CurrentSection  *string   `gorm:"column:current_section" db:"current_section"`
	LastActiveAt    time.Time `gorm:"column:last_active_at;not null" db:"last_active_at"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`

	Profile *profileDatamodel.Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" db:"-"`
	Course  *courseDatamodel.Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" db:"-"`
}

func (Progress) TableName() string {
	return "progress"
}
