package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/database"
	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	progressDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/progress"
	"github.com/frahmantamala/safety-lms/internal/progress"
	progressPostgres "github.com/frahmantamala/safety-lms/internal/progress/postgres"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProgressPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Progress Postgres Suite")
}

var _ = Describe("Progress PostgreSQL Repository", func() {
	var (
		ctx       context.Context
		repo      progress.Repository
		plantID   string
		learnerID string
		courseIDs []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, sdb, err := database.OpenMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(sdb.Close)
		repo = progressPostgres.NewProgressRepository(db)

		plantID = uuid.NewString()
		learnerID = uuid.NewString()
		Expect(db.Create(&plantDatamodel.Plant{ID: plantID, Name: "North", IsActive: true}).Error).To(Succeed())
		Expect(db.Omit("Plant", "AdminRoles").Create(&profileDatamodel.Profile{
			ID: learnerID, PlantID: plantID, FirstName: "Ana", LastName: "Doe",
			Email: "ana@example.com", Status: "active",
		}).Error).To(Succeed())

		courseIDs = nil
		for _, slug := range []string{"forklift", "fire", "ladder"} {
			c := &courseDatamodel.Course{ID: uuid.NewString(), Slug: slug, Title: slug, Version: "1.0"}
			Expect(db.Create(c).Error).To(Succeed())
			courseIDs = append(courseIDs, c.ID)
		}
	})

	record := func(courseID string, percent float64) *progressDatamodel.Progress {
		p := &progressDatamodel.Progress{
			ID: uuid.NewString(), UserID: learnerID, CourseID: courseID, PlantID: plantID,
			ProgressPercent: percent, LastActiveAt: time.Now(),
		}
		Expect(repo.Create(ctx, p)).To(Succeed())
		return p
	}

	floatPtr := func(f float64) *float64 { return &f }
	page := internal.Pagination{Page: 1, Limit: 10}

	It("should translate a second row for the same user and course", func() {
		record(courseIDs[0], 10)
		err := repo.Create(ctx, &progressDatamodel.Progress{
			ID: uuid.NewString(), UserID: learnerID, CourseID: courseIDs[0], PlantID: plantID, LastActiveAt: time.Now(),
		})
		Expect(err).To(MatchError(internal.ErrDuplicateRecord))
	})

	It("should apply inclusive percent bounds", func() {
		record(courseIDs[0], 25)
		record(courseIDs[1], 50)
		record(courseIDs[2], 75)

		rows, total, err := repo.List(ctx, progress.ListFilter{
			Pagination: page, MinProgress: floatPtr(25), MaxProgress: floatPtr(50),
		}, tenant.Plants(plantID))
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(2)))
		for _, r := range rows {
			Expect(r.ProgressPercent).To(BeNumerically("<=", 50))
		}
	})

	It("should update the percent inside the scope", func() {
		p := record(courseIDs[0], 10)

		n, err := repo.Update(ctx, p.ID, tenant.Plants(plantID), map[string]interface{}{"progress_percent": 60.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))

		found, err := repo.GetByID(ctx, p.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.ProgressPercent).To(Equal(60.0))
	})

	It("should not delete outside the scope", func() {
		p := record(courseIDs[0], 10)

		n, err := repo.Delete(ctx, p.ID, tenant.Plants(uuid.NewString()))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())

		n, err = repo.Delete(ctx, p.ID, tenant.Global())
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))
	})

	It("should attach the user and course in the detailed listing", func() {
		record(courseIDs[1], 40)

		rows, _, err := repo.ListDetailed(ctx, progress.ListFilter{Pagination: page}, tenant.Global())
		Expect(err).NotTo(HaveOccurred())
		Expect(rows[0].Profile.ID).To(Equal(learnerID))
		Expect(rows[0].Course.Slug).To(Equal("fire"))
	})
})
