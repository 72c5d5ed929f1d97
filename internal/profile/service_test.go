package profile_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/frahmantamala/safety-lms/internal"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/tenant"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProfile(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Profile Suite")
}

type mockRepository struct {
	profiles    map[string]*profileDatamodel.Profile
	roles       map[string]*profileDatamodel.AdminRole
	createCalls int
	failWith    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		profiles: make(map[string]*profileDatamodel.Profile),
		roles:    make(map[string]*profileDatamodel.AdminRole),
	}
}

func (m *mockRepository) Create(ctx context.Context, p *profileDatamodel.Profile) error {
	m.createCalls++
	if m.failWith != nil {
		return m.failWith
	}
	m.profiles[p.ID] = p
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*profileDatamodel.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*profileDatamodel.Profile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockRepository) Update(ctx context.Context, id string, scope tenant.Scope, fields map[string]interface{}) (int64, error) {
	p, ok := m.profiles[id]
	if !ok || !scope.Allows(p.PlantID) {
		return 0, nil
	}
	if v, ok := fields["first_name"].(string); ok {
		p.FirstName = v
	}
	if v, ok := fields["email"].(string); ok {
		p.Email = v
	}
	if v, ok := fields["status"].(string); ok {
		p.Status = v
	}
	return 1, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string, scope tenant.Scope) (int64, error) {
	p, ok := m.profiles[id]
	if !ok || !scope.Allows(p.PlantID) {
		return 0, nil
	}
	delete(m.profiles, id)
	return 1, nil
}

func (m *mockRepository) List(ctx context.Context, filter profile.ListFilter, scope tenant.Scope) ([]*profileDatamodel.Profile, int64, error) {
	var rows []*profileDatamodel.Profile
	for _, p := range m.profiles {
		if scope.Allows(p.PlantID) {
			rows = append(rows, p)
		}
	}
	return rows, int64(len(rows)), nil
}

func (m *mockRepository) ListDetailed(ctx context.Context, filter profile.ListFilter, scope tenant.Scope) ([]*profileDatamodel.Profile, int64, error) {
	return m.List(ctx, filter, scope)
}

func (m *mockRepository) CreateRole(ctx context.Context, r *profileDatamodel.AdminRole) error {
	m.roles[r.ID] = r
	return nil
}

func (m *mockRepository) GetRole(ctx context.Context, id string) (*profileDatamodel.AdminRole, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockRepository) FindRole(ctx context.Context, userID, role string, plantID *string) (*profileDatamodel.AdminRole, error) {
	for _, r := range m.roles {
		if r.UserID != userID || r.Role != role {
			continue
		}
		if (r.PlantID == nil) != (plantID == nil) {
			continue
		}
		if r.PlantID == nil || *r.PlantID == *plantID {
			return r, nil
		}
	}
	return nil, internal.ErrRecordNotFound
}

func (m *mockRepository) ListRoles(ctx context.Context, userID string) ([]*profileDatamodel.AdminRole, error) {
	var rows []*profileDatamodel.AdminRole
	for _, r := range m.roles {
		if r.UserID == userID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (m *mockRepository) DeleteRole(ctx context.Context, id string) (int64, error) {
	if _, ok := m.roles[id]; !ok {
		return 0, nil
	}
	delete(m.roles, id)
	return 1, nil
}

type plantSet map[string]bool

func (p plantSet) Exists(ctx context.Context, id string) (bool, error) {
	return p[id], nil
}

func strPtr(s string) *string { return &s }

func appError(err error) *internal.AppError {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue(), "expected *internal.AppError, got %v", err)
	return appErr
}

var _ = Describe("Service", func() {
	var (
		ctx     context.Context
		repo    *mockRepository
		service *profile.Service
		plantA  string
		plantB  string
		uc      internal.UserContext
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockRepository()
		plantA = uuid.NewString()
		plantB = uuid.NewString()
		service = profile.NewService(repo, plantSet{plantA: true, plantB: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
		uc = tenant.BuildUserContext(uuid.NewString(), plantA, nil)
	})

	create := func(plantID, email string) *profile.Profile {
		p, err := service.CreateProfile(ctx, profile.CreateProfileDTO{
			PlantID:   plantID,
			FirstName: "Dana",
			LastName:  "Reyes",
			Email:     email,
		})
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	Describe("CreateProfile", func() {
		It("normalizes the email and defaults to active", func() {
			p := create(plantA, "  Dana.Reyes@Example.com ")
			Expect(p.Email).To(Equal("dana.reyes@example.com"))
			Expect(p.Status).To(Equal(profile.StatusActive))
			Expect(repo.profiles).To(HaveKey(p.ID))
		})

		It("rejects an unknown plant on plant_id", func() {
			_, err := service.CreateProfile(ctx, profile.CreateProfileDTO{
				PlantID: uuid.NewString(), FirstName: "A", LastName: "B", Email: "a@b.io",
			})
			appErr := appError(err)
			Expect(appErr.Field()).To(Equal("plant_id"))
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Code).To(Equal(string(internal.ErrCodeUnknownPlant)))
			Expect(repo.createCalls).To(BeZero())
		})

		It("reports a duplicate email as a conflict without inserting", func() {
			create(plantA, "dup@example.com")
			_, err := service.CreateProfile(ctx, profile.CreateProfileDTO{
				PlantID: plantB, FirstName: "X", LastName: "Y", Email: "DUP@example.com",
			})
			appErr := appError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeConflict))
			Expect(appErr.Message).To(Equal("A user with this email already exists"))
			Expect(repo.createCalls).To(Equal(1))
		})

		It("maps a storage unique violation to a conflict", func() {
			repo.failWith = internal.ErrDuplicateRecord
			_, err := service.CreateProfile(ctx, profile.CreateProfileDTO{
				PlantID: plantA, FirstName: "X", LastName: "Y", Email: "race@example.com",
			})
			Expect(appError(err).Code).To(Equal(internal.ErrCodeConflict))
		})

		It("maps any other storage failure to a database error", func() {
			repo.failWith = errors.New("connection reset")
			_, err := service.CreateProfile(ctx, profile.CreateProfileDTO{
				PlantID: plantA, FirstName: "X", LastName: "Y", Email: "x@example.com",
			})
			Expect(appError(err).Type).To(Equal(internal.ErrorTypeDatabase))
		})

		It("validates the payload before touching storage", func() {
			_, err := service.CreateProfile(ctx, profile.CreateProfileDTO{PlantID: "nope", Email: "bad"})
			Expect(appError(err).Type).To(Equal(internal.ErrorTypeValidation))
			Expect(repo.createCalls).To(BeZero())
		})
	})

	Describe("GetProfile", func() {
		It("hides profiles of other plants as not found", func() {
			other := create(plantB, "other@example.com")
			_, err := service.GetProfile(ctx, uc, other.ID)
			Expect(appError(err).Code).To(Equal(internal.ErrCodeNotFound))
		})

		It("returns profiles of an accessible plant", func() {
			own := create(plantA, "own@example.com")
			p, err := service.GetProfile(ctx, uc, own.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(Equal(own.ID))
		})

		It("rejects a malformed id", func() {
			_, err := service.GetProfile(ctx, uc, "42")
			Expect(appError(err).Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("UpdateProfile", func() {
		It("is not found outside the caller's scope", func() {
			other := create(plantB, "other@example.com")
			_, err := service.UpdateProfile(ctx, uc, other.ID, profile.UpdateProfileDTO{FirstName: strPtr("Z")})
			Expect(appError(err).Code).To(Equal(internal.ErrCodeNotFound))
			Expect(repo.profiles[other.ID].FirstName).To(Equal("Dana"))
		})

		It("keeps its own email without a conflict", func() {
			own := create(plantA, "own@example.com")
			p, err := service.UpdateProfile(ctx, uc, own.ID, profile.UpdateProfileDTO{Email: strPtr("OWN@example.com")})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Email).To(Equal("own@example.com"))
		})

		It("conflicts on another profile's email", func() {
			create(plantA, "taken@example.com")
			own := create(plantA, "own@example.com")
			_, err := service.UpdateProfile(ctx, uc, own.ID, profile.UpdateProfileDTO{Email: strPtr("taken@example.com")})
			Expect(appError(err).Code).To(Equal(internal.ErrCodeConflict))
		})
	})

	Describe("DeleteProfile", func() {
		It("is not found for an unknown id", func() {
			err := service.DeleteProfile(ctx, uc, uuid.NewString())
			Expect(appError(err).Code).To(Equal(internal.ErrCodeNotFound))
		})
	})

	Describe("ListProfiles", func() {
		It("returns an empty page for a plant outside the caller's access", func() {
			create(plantB, "other@example.com")
			page, err := service.ListProfiles(ctx, uc, profile.ListFilter{PlantID: plantB})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Data).To(BeEmpty())
			Expect(page.Total).To(BeZero())
			Expect(page.Page).To(Equal(1))
			Expect(page.Limit).To(Equal(internal.DefaultPageLimit))
		})

		It("only lists the caller's plants", func() {
			create(plantA, "a@example.com")
			create(plantB, "b@example.com")
			page, err := service.ListProfiles(ctx, uc, profile.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Data).To(HaveLen(1))
			Expect(page.Data[0].PlantID).To(Equal(plantA))
		})
	})

	Describe("admin roles", func() {
		var admin internal.UserContext

		BeforeEach(func() {
			admin = tenant.BuildUserContext(uuid.NewString(), plantA, []internal.RoleGrant{{Role: internal.RoleDevAdmin}})
		})

		It("conflicts on a repeated grant", func() {
			p := create(plantA, "hr@example.com")
			dto := profile.AssignAdminRoleDTO{UserID: p.ID, Role: internal.RoleHRAdmin, PlantID: &plantB}
			_, err := service.AssignAdminRole(ctx, admin, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AssignAdminRole(ctx, admin, dto)
			appErr := appError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeConflict))
			Expect(appErr.Message).To(Equal("Admin role already exists"))
		})

		It("rejects an unknown role", func() {
			p := create(plantA, "hr@example.com")
			_, err := service.AssignAdminRole(ctx, admin, profile.AssignAdminRoleDTO{UserID: p.ID, Role: "root"})
			Expect(appError(err).Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("revokes a role and then reports it missing", func() {
			p := create(plantA, "hr@example.com")
			role, err := service.AssignAdminRole(ctx, admin, profile.AssignAdminRoleDTO{UserID: p.ID, Role: internal.RolePlantManager, PlantID: &plantA})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.RevokeAdminRole(ctx, admin, role.ID)).To(Succeed())
			Expect(appError(service.RevokeAdminRole(ctx, admin, role.ID)).Code).To(Equal(internal.ErrCodeNotFound))
		})
	})

	Describe("ResolveUserContext", func() {
		It("adds plants granted by scoped roles", func() {
			p := create(plantA, "pm@example.com")
			repo.roles["r1"] = &profileDatamodel.AdminRole{ID: "r1", UserID: p.ID, Role: internal.RolePlantManager, PlantID: strPtr(plantB)}

			resolved, err := service.ResolveUserContext(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.AccessiblePlants).To(ConsistOf(plantA, plantB))
			Expect(resolved.HasRole(internal.RolePlantManager)).To(BeTrue())
		})

		It("grants every plant to a global role", func() {
			p := create(plantA, "dev@example.com")
			repo.roles["r1"] = &profileDatamodel.AdminRole{ID: "r1", UserID: p.ID, Role: internal.RoleDevAdmin}

			resolved, err := service.ResolveUserContext(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.AccessiblePlants).To(Equal([]string{internal.AllPlants}))
		})

		It("rejects a suspended profile", func() {
			p := create(plantA, "gone@example.com")
			repo.profiles[p.ID].Status = profile.StatusSuspended

			_, err := service.ResolveUserContext(ctx, p.ID)
			Expect(appError(err).Code).To(Equal(internal.ErrCodeUnauthorized))
		})

		It("is not found for an unknown profile", func() {
			_, err := service.ResolveUserContext(ctx, uuid.NewString())
			Expect(appError(err).Code).To(Equal(internal.ErrCodeNotFound))
		})
	})
})
