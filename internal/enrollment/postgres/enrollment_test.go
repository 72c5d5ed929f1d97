package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/database"
	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	enrollmentDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/enrollment"
	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	enrollmentPostgres "github.com/frahmantamala/safety-lms/internal/enrollment/postgres"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEnrollmentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Enrollment Postgres Suite")
}

var _ = Describe("Enrollment PostgreSQL Repository", func() {
	var (
		ctx     context.Context
		repo    enrollment.Repository
		plantID string
		learner *profileDatamodel.Profile
		first   *courseDatamodel.Course
		second  *courseDatamodel.Course
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, sdb, err := database.OpenMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(sdb.Close)
		repo = enrollmentPostgres.NewEnrollmentRepository(db)

		plantID = uuid.NewString()
		Expect(db.Create(&plantDatamodel.Plant{ID: plantID, Name: "North", IsActive: true}).Error).To(Succeed())
		learner = &profileDatamodel.Profile{
			ID: uuid.NewString(), PlantID: plantID, FirstName: "Ana", LastName: "Doe",
			Email: "ana@example.com", Status: "active",
		}
		Expect(db.Omit("Plant", "AdminRoles").Create(learner).Error).To(Succeed())
		first = &courseDatamodel.Course{ID: uuid.NewString(), Slug: "forklift", Title: "Forklift", Version: "1.0"}
		second = &courseDatamodel.Course{ID: uuid.NewString(), Slug: "fire", Title: "Fire", Version: "1.0"}
		Expect(db.Create(first).Error).To(Succeed())
		Expect(db.Create(second).Error).To(Succeed())
	})

	enroll := func(courseID string, at time.Time) *enrollmentDatamodel.Enrollment {
		e := &enrollmentDatamodel.Enrollment{
			ID: uuid.NewString(), UserID: learner.ID, CourseID: courseID, PlantID: plantID,
			Status: enrollment.StatusEnrolled, EnrolledAt: at,
		}
		Expect(repo.Create(ctx, e)).To(Succeed())
		return e
	}

	page := internal.Pagination{Page: 1, Limit: 10}

	Describe("Create", func() {
		It("should find the enrollment by user and course", func() {
			e := enroll(first.ID, time.Now())

			found, err := repo.FindByUserCourse(ctx, learner.ID, first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(e.ID))

			_, err = repo.FindByUserCourse(ctx, learner.ID, second.ID)
			Expect(err).To(MatchError(internal.ErrRecordNotFound))
		})

		It("should translate a second enrollment for the same pair", func() {
			enroll(first.ID, time.Now())
			err := repo.Create(ctx, &enrollmentDatamodel.Enrollment{
				ID: uuid.NewString(), UserID: learner.ID, CourseID: first.ID, PlantID: plantID,
				Status: enrollment.StatusEnrolled, EnrolledAt: time.Now(),
			})
			Expect(err).To(MatchError(internal.ErrDuplicateRecord))
		})
	})

	Describe("Update", func() {
		It("should only update inside the scope", func() {
			e := enroll(first.ID, time.Now())
			fields := map[string]interface{}{"status": enrollment.StatusInProgress}

			n, err := repo.Update(ctx, e.ID, tenant.Plants(uuid.NewString()), fields)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())

			n, err = repo.Update(ctx, e.ID, tenant.Plants(plantID), fields)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			found, _ := repo.GetByID(ctx, e.ID)
			Expect(found.Status).To(Equal(enrollment.StatusInProgress))
		})
	})

	Describe("List", func() {
		It("should order by enrollment time, newest first", func() {
			older := enroll(first.ID, time.Now().Add(-time.Hour))
			newer := enroll(second.ID, time.Now())

			rows, total, err := repo.List(ctx, enrollment.ListFilter{Pagination: page}, tenant.Plants(plantID))
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(rows[0].ID).To(Equal(newer.ID))
			Expect(rows[1].ID).To(Equal(older.ID))
		})

		It("should filter by course", func() {
			enroll(first.ID, time.Now())
			enroll(second.ID, time.Now())

			rows, total, err := repo.List(ctx, enrollment.ListFilter{Pagination: page, CourseID: second.ID}, tenant.Global())
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(rows[0].CourseID).To(Equal(second.ID))
		})

		It("should attach the user and course in the detailed listing", func() {
			enroll(first.ID, time.Now())

			rows, _, err := repo.ListDetailed(ctx, enrollment.ListFilter{Pagination: page}, tenant.Global())
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].Profile.Email).To(Equal("ana@example.com"))
			Expect(rows[0].Course.Slug).To(Equal("forklift"))
		})

		It("should match nothing for an empty scope", func() {
			enroll(first.ID, time.Now())

			rows, total, err := repo.List(ctx, enrollment.ListFilter{Pagination: page}, tenant.Scope{})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
			Expect(rows).To(BeEmpty())
		})
	})
})
