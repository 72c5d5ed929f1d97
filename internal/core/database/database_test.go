package database_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/database"
	plantDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	"github.com/frahmantamala/safety-lms/internal/tenant"
)

func TestDatabase(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Database Suite")
}

var _ = Describe("OpenMemory", func() {
	var (
		db  *gorm.DB
		sdb *sqlx.DB
	)

	BeforeEach(func() {
		var err error
		db, sdb, err = database.OpenMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(sdb.Close)

		now := time.Now().UTC()
		for _, id := range []string{"p1", "p2", "p3"} {
			Expect(db.Create(&plantDatamodel.Plant{ID: id, Name: "Plant " + id, IsActive: true, CreatedAt: now, UpdatedAt: now}).Error).To(Succeed())
		}
	})

	It("shares one database between the gorm and sqlx handles", func() {
		var count int
		Expect(sdb.Get(&count, "SELECT COUNT(*) FROM plants")).To(Succeed())
		Expect(count).To(Equal(3))
	})

	It("translates duplicate keys from both handles", func() {
		dup := &plantDatamodel.Plant{ID: "p1", Name: "again"}
		Expect(database.TranslateGorm(db.Create(dup).Error)).To(MatchError(internal.ErrDuplicateRecord))

		_, err := sdb.Exec("INSERT INTO plants (id, name, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			"p1", "again", true, time.Now().UTC(), time.Now().UTC())
		Expect(database.TranslateSQL(err)).To(MatchError(internal.ErrDuplicateRecord))
	})

	It("translates missing rows", func() {
		var p plantDatamodel.Plant
		Expect(database.TranslateGorm(db.First(&p, "id = ?", "nope").Error)).To(MatchError(internal.ErrRecordNotFound))

		var name string
		Expect(database.TranslateSQL(sdb.Get(&name, "SELECT name FROM plants WHERE id = ?", "nope"))).To(MatchError(internal.ErrRecordNotFound))
	})

	DescribeTable("Scoped",
		func(scope tenant.Scope, expected []string) {
			var ids []string
			Expect(db.Model(&plantDatamodel.Plant{}).Scopes(database.Scoped(scope, "id")).Order("id").Pluck("id", &ids).Error).To(Succeed())
			if len(expected) == 0 {
				Expect(ids).To(BeEmpty())
			} else {
				Expect(ids).To(Equal(expected))
			}
		},
		Entry("unrestricted", tenant.Global(), []string{"p1", "p2", "p3"}),
		Entry("subset", tenant.Plants("p1", "p3"), []string{"p1", "p3"}),
		Entry("empty scope matches nothing", tenant.Scope{}, nil),
		Entry("unknown plant", tenant.Plants("p9"), nil),
	)
})

var _ = Describe("IsUniqueViolation", func() {
	It("recognises postgres unique violations", func() {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
		Expect(database.IsUniqueViolation(err)).To(BeTrue())
		Expect(database.TranslateSQL(err)).To(MatchError(internal.ErrDuplicateRecord))
	})

	It("ignores other postgres errors", func() {
		Expect(database.IsUniqueViolation(&pgconn.PgError{Code: "23503"})).To(BeFalse())
		Expect(database.IsUniqueViolation(errors.New("boom"))).To(BeFalse())
	})

	It("passes unknown errors through", func() {
		cause := errors.New("boom")
		Expect(database.TranslateGorm(cause)).To(Equal(cause))
		Expect(database.TranslateSQL(nil)).To(BeNil())
	})
})

var _ = Describe("SQLDriverName", func() {
	It("maps configured drivers to database/sql names", func() {
		Expect(database.SQLDriverName(internal.DriverSQLite)).To(Equal("sqlite3"))
		Expect(database.SQLDriverName(internal.DriverPostgres)).To(Equal("pgx"))
	})
})
