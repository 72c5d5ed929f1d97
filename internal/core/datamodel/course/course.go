package course

import "time"

type Course struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" db:"id"`
	Slug        string    `gorm:"column:slug;uniqueIndex;not null" db:"slug"`
	Title       string    `gorm:"column:title;not null" db:"title"`
	Version     string    `gorm:"column:version;not null;default:'1.0'" db:"version"`
	IsPublished bool      `gorm:"column:is_published;default:false" db:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}
