package plant

import "time"

type Plant struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" db:"id"`
	Name      string    `gorm:"column:name;not null" db:"name"`
	IsActive  bool      `gorm:"column:is_active;not null" db:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`
}

func (Plant) TableName() string {
	return "plants"
}
