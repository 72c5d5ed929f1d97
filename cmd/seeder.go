package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/dbservice"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	"github.com/frahmantamala/safety-lms/internal/plant"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/progress"
	"github.com/frahmantamala/safety-lms/internal/tenant"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed plants, courses, profiles, admin roles, enrollments and progress through the data layer. Re-running is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		deps, err := initializeDataLayer(cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		return seed(context.Background(), deps.Facade)
	},
}

// systemContext is a global caller used for seeding.
var systemContext = tenant.BuildUserContext("system", "", []internal.RoleGrant{{Role: internal.RoleDevAdmin}})

type seedProfile struct {
	plant     string
	firstName string
	lastName  string
	email     string
	jobTitle  string
	role      string
	global    bool
}

func seed(ctx context.Context, api dbservice.API) error {
	plants, err := seedPlants(ctx, api, "North Refinery", "South Assembly")
	if err != nil {
		return err
	}

	courses := make([]*course.Course, 0, 3)
	for _, c := range []course.CreateCourseDTO{
		{Slug: "fire-safety", Title: "Fire Safety Basics", IsPublished: boolPtr(true)},
		{Slug: "working-at-height", Title: "Working at Height", IsPublished: boolPtr(true)},
		{Slug: "chemical-handling", Title: "Chemical Handling"},
	} {
		created, err := seedCourse(ctx, api, c)
		if err != nil {
			return err
		}
		courses = append(courses, created)
	}

	people := []seedProfile{
		{plant: "North Refinery", firstName: "Ana", lastName: "Lopez", email: "ana.lopez@example.com", jobTitle: "HR Director", role: internal.RoleHRAdmin, global: true},
		{plant: "North Refinery", firstName: "Ben", lastName: "Okafor", email: "ben.okafor@example.com", jobTitle: "Plant Manager", role: internal.RolePlantManager},
		{plant: "North Refinery", firstName: "Chen", lastName: "Wei", email: "chen.wei@example.com", jobTitle: "Operator"},
		{plant: "South Assembly", firstName: "Dana", lastName: "Novak", email: "dana.novak@example.com", jobTitle: "Technician"},
	}

	for i, person := range people {
		p, err := seedPerson(ctx, api, plants[person.plant], person)
		if err != nil {
			return err
		}

		c := courses[i%2]
		enrolled := api.CreateEnrollment(ctx, enrollment.CreateEnrollmentDTO{UserID: p.ID, CourseID: c.ID, PlantID: p.PlantID})
		if err := ignoreConflict(enrolled, "enrollment", p.Email); err != nil {
			return err
		}
		tracked := api.CreateProgress(ctx, progress.CreateProgressDTO{
			UserID:          p.ID,
			CourseID:        c.ID,
			PlantID:         p.PlantID,
			ProgressPercent: floatPtr(float64(25 * (i + 1))),
		})
		if err := ignoreConflict(tracked, "progress", p.Email); err != nil {
			return err
		}
	}

	fmt.Println("seed completed")
	return nil
}

func seedPlants(ctx context.Context, api dbservice.API, names ...string) (map[string]string, error) {
	existing := api.ListPlants(ctx, systemContext)
	if !existing.Success {
		return nil, fmt.Errorf("list plants: %s", existing.Error)
	}

	ids := make(map[string]string, len(names))
	for _, p := range existing.Data {
		ids[p.Name] = p.ID
	}
	for _, name := range names {
		if _, ok := ids[name]; ok {
			continue
		}
		res := api.CreatePlant(ctx, plant.CreatePlantDTO{Name: name})
		if !res.Success {
			return nil, fmt.Errorf("create plant %s: %s", name, res.Error)
		}
		ids[name] = res.Data.ID
		fmt.Println("seeded plant:", name)
	}
	return ids, nil
}

func seedCourse(ctx context.Context, api dbservice.API, dto course.CreateCourseDTO) (*course.Course, error) {
	res := api.CreateCourse(ctx, dto)
	if res.Success {
		fmt.Println("seeded course:", dto.Slug)
		return res.Data, nil
	}
	if res.Code != internal.ErrCodeConflict {
		return nil, fmt.Errorf("create course %s: %s", dto.Slug, res.Error)
	}
	found := api.GetCourseBySlug(ctx, dto.Slug)
	if !found.Success {
		return nil, fmt.Errorf("load course %s: %s", dto.Slug, found.Error)
	}
	return found.Data, nil
}

func seedPerson(ctx context.Context, api dbservice.API, plantID string, person seedProfile) (*profile.Profile, error) {
	res := api.CreateProfile(ctx, profile.CreateProfileDTO{
		PlantID:   plantID,
		FirstName: person.firstName,
		LastName:  person.lastName,
		Email:     person.email,
		JobTitle:  &person.jobTitle,
	})
	p := res.Data
	switch {
	case res.Success:
		fmt.Println("seeded profile:", person.email)
	case res.Code == internal.ErrCodeConflict:
		page := api.ListProfiles(ctx, systemContext, profile.ListFilter{Search: person.email})
		if !page.Success || len(page.Data.Data) == 0 {
			return nil, fmt.Errorf("load profile %s: %s", person.email, page.Error)
		}
		p = page.Data.Data[0]
	default:
		return nil, fmt.Errorf("create profile %s: %s", person.email, res.Error)
	}

	if person.role == "" {
		return p, nil
	}
	dto := profile.AssignAdminRoleDTO{UserID: p.ID, Role: person.role}
	if !person.global {
		dto.PlantID = &plantID
	}
	if err := ignoreConflict(api.AssignAdminRole(ctx, systemContext, dto), "admin role", person.email); err != nil {
		return nil, err
	}
	return p, nil
}

func ignoreConflict[T any](res internal.Result[T], what, email string) error {
	if res.Success || res.Code == internal.ErrCodeConflict {
		return nil
	}
	return fmt.Errorf("seed %s for %s: %s", what, email, res.Error)
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
