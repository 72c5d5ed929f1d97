package postgres_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/database"
	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	"github.com/frahmantamala/safety-lms/internal/plant"
	plantPostgres "github.com/frahmantamala/safety-lms/internal/plant/postgres"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPlantPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Plant Postgres Suite")
}

var _ = Describe("Plant PostgreSQL Repository", func() {
	var (
		ctx  context.Context
		repo plant.Repository
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, sdb, err := database.OpenMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(sdb.Close)
		repo = plantPostgres.NewPlantRepository(db)
	})

	create := func(name string) *plantDatamodel.Plant {
		p := &plantDatamodel.Plant{ID: uuid.NewString(), Name: name, IsActive: true}
		Expect(repo.Create(ctx, p)).To(Succeed())
		return p
	}

	It("should create and fetch a plant", func() {
		p := create("North")
		Expect(p.CreatedAt).NotTo(BeZero())

		found, err := repo.GetByID(ctx, p.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.Name).To(Equal("North"))
	})

	It("should return ErrRecordNotFound for an unknown id", func() {
		_, err := repo.GetByID(ctx, uuid.NewString())
		Expect(err).To(MatchError(internal.ErrRecordNotFound))
	})

	It("should report the rows touched by an update", func() {
		p := create("North")
		n, err := repo.Update(ctx, p.ID, map[string]interface{}{"name": "North Yard"})
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))

		n, err = repo.Update(ctx, uuid.NewString(), map[string]interface{}{"name": "Nowhere"})
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
	})

	It("should list plants by name within the scope", func() {
		south := create("South")
		north := create("North")
		create("East")

		plants, err := repo.List(ctx, tenant.Plants(south.ID, north.ID))
		Expect(err).NotTo(HaveOccurred())
		Expect(plants).To(HaveLen(2))
		Expect(plants[0].Name).To(Equal("North"))
		Expect(plants[1].Name).To(Equal("South"))

		all, err := repo.List(ctx, tenant.Global())
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(3))

		none, err := repo.List(ctx, tenant.Scope{})
		Expect(err).NotTo(HaveOccurred())
		Expect(none).To(BeEmpty())
	})
})
