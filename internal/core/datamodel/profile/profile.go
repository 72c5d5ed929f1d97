package profile

import (
	"time"

	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
)

type Profile struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" db:"id"`
	PlantID   string    `gorm:"column:plant_id;type:varchar(36);not null;index" db:"plant_id"`
	FirstName string    `gorm:"column:first_name;not null" db:"first_name"`
	LastName  string    `gorm:"column:last_name;not null" db:"last_name"`
	Email     string    `gorm:"column:email;uniqueIndex;not null" db:"email"`
	JobTitle  *string   `gorm:"column:job_title" db:"job_title"`
	Status    string    `gorm:"column:status;not null;default:active" db:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`

	Plant      *plantDatamodel.Plant `gorm:"foreignKey:PlantID" db:"-"`
	AdminRoles []AdminRole           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" db:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

type AdminRole struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" db:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:uniq_admin_roles_grant" db:"user_id"`
	Role      string    `gorm:"column:role;not null;uniqueIndex:uniq_admin_roles_grant" db:"role"`
	PlantID   *string   `gorm:"column:plant_id;type:varchar(36);uniqueIndex:uniq_admin_roles_grant" db:"plant_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
}

func (AdminRole) TableName() string {
	return "admin_roles"
}
