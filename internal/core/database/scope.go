package database

import (
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"gorm.io/gorm"
)

// Scoped ANDs the tenant predicate on column into a gorm query. An empty scope
// matches no rows.
func Scoped(scope tenant.Scope, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.Unrestricted {
			return db
		}
		if len(scope.PlantIDs) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where(column+" IN ?", scope.PlantIDs)
	}
}
