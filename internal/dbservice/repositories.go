package dbservice

import (
	"github.com/frahmantamala/safety-lms/internal/analytics"
	analyticsPostgres "github.com/frahmantamala/safety-lms/internal/analytics/postgres"
	"github.com/frahmantamala/safety-lms/internal/course"
	coursePostgres "github.com/frahmantamala/safety-lms/internal/course/postgres"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	enrollmentPostgres "github.com/frahmantamala/safety-lms/internal/enrollment/postgres"
	"github.com/frahmantamala/safety-lms/internal/legacy"
	"github.com/frahmantamala/safety-lms/internal/plant"
	plantPostgres "github.com/frahmantamala/safety-lms/internal/plant/postgres"
	"github.com/frahmantamala/safety-lms/internal/profile"
	profilePostgres "github.com/frahmantamala/safety-lms/internal/profile/postgres"
	"github.com/frahmantamala/safety-lms/internal/progress"
	progressPostgres "github.com/frahmantamala/safety-lms/internal/progress/postgres"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Repositories is the storage an Implementation runs on.
type Repositories struct {
	Plants      plant.Repository
	Profiles    profile.Repository
	Courses     course.Repository
	Enrollments enrollment.Repository
	Progress    progress.Repository
	Analytics   analytics.Repository
}

// GormRepositories is the storage of the next implementation.
func GormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Plants:      plantPostgres.NewPlantRepository(db),
		Profiles:    profilePostgres.NewProfileRepository(db),
		Courses:     coursePostgres.NewCourseRepository(db),
		Enrollments: enrollmentPostgres.NewEnrollmentRepository(db),
		Progress:    progressPostgres.NewProgressRepository(db),
		Analytics:   analyticsPostgres.NewAnalyticsRepository(db),
	}
}

// LegacyRepositories is the storage of the legacy implementation.
func LegacyRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Plants:      legacy.NewPlantStore(db),
		Profiles:    legacy.NewProfileStore(db),
		Courses:     legacy.NewCourseStore(db),
		Enrollments: legacy.NewEnrollmentStore(db),
		Progress:    legacy.NewProgressStore(db),
		Analytics:   legacy.NewAnalyticsStore(db),
	}
}
