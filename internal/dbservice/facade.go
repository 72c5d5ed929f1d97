package dbservice

import (
	"context"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/analytics"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	"github.com/frahmantamala/safety-lms/internal/migration"
	"github.com/frahmantamala/safety-lms/internal/plant"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/progress"
)

// Facade routes every operation through the migration manager to the next or
// the legacy implementation.
type Facade struct {
	next      API
	legacy    API
	migration *migration.Manager
}

var _ API = (*Facade)(nil)

func NewFacade(next, legacy API, manager *migration.Manager) *Facade {
	return &Facade{
		next:      next,
		legacy:    legacy,
		migration: manager,
	}
}

// Migration exposes the routing configuration to operators.
func (f *Facade) Migration() *migration.Manager {
	return f.migration
}

func route[T any](ctx context.Context, f *Facade, op string, call func(api API, ctx context.Context) internal.Result[T]) internal.Result[T] {
	return migration.Route(ctx, f.migration, op,
		func(ctx context.Context) internal.Result[T] { return call(f.next, ctx) },
		func(ctx context.Context) internal.Result[T] { return call(f.legacy, ctx) },
	)
}

func (f *Facade) CreatePlant(ctx context.Context, dto plant.CreatePlantDTO) internal.Result[*plant.Plant] {
	return route(ctx, f, "CreatePlant", func(api API, ctx context.Context) internal.Result[*plant.Plant] {
		return api.CreatePlant(ctx, dto)
	})
}

func (f *Facade) GetPlant(ctx context.Context, uc internal.UserContext, id string) internal.Result[*plant.Plant] {
	return route(ctx, f, "GetPlant", func(api API, ctx context.Context) internal.Result[*plant.Plant] {
		return api.GetPlant(ctx, uc, id)
	})
}

func (f *Facade) UpdatePlant(ctx context.Context, id string, dto plant.UpdatePlantDTO) internal.Result[*plant.Plant] {
	return route(ctx, f, "UpdatePlant", func(api API, ctx context.Context) internal.Result[*plant.Plant] {
		return api.UpdatePlant(ctx, id, dto)
	})
}

func (f *Facade) ListPlants(ctx context.Context, uc internal.UserContext) internal.Result[[]*plant.Plant] {
	return route(ctx, f, "ListPlants", func(api API, ctx context.Context) internal.Result[[]*plant.Plant] {
		return api.ListPlants(ctx, uc)
	})
}

func (f *Facade) CreateProfile(ctx context.Context, dto profile.CreateProfileDTO) internal.Result[*profile.Profile] {
	return route(ctx, f, "CreateProfile", func(api API, ctx context.Context) internal.Result[*profile.Profile] {
		return api.CreateProfile(ctx, dto)
	})
}

func (f *Facade) GetProfile(ctx context.Context, uc internal.UserContext, id string) internal.Result[*profile.Profile] {
	return route(ctx, f, "GetProfile", func(api API, ctx context.Context) internal.Result[*profile.Profile] {
		return api.GetProfile(ctx, uc, id)
	})
}

func (f *Facade) UpdateProfile(ctx context.Context, uc internal.UserContext, id string, dto profile.UpdateProfileDTO) internal.Result[*profile.Profile] {
	return route(ctx, f, "UpdateProfile", func(api API, ctx context.Context) internal.Result[*profile.Profile] {
		return api.UpdateProfile(ctx, uc, id, dto)
	})
}

func (f *Facade) DeleteProfile(ctx context.Context, uc internal.UserContext, id string) internal.Result[string] {
	return route(ctx, f, "DeleteProfile", func(api API, ctx context.Context) internal.Result[string] {
		return api.DeleteProfile(ctx, uc, id)
	})
}

func (f *Facade) ListProfiles(ctx context.Context, uc internal.UserContext, filter profile.ListFilter) internal.Result[internal.Page[*profile.Profile]] {
	return route(ctx, f, "ListProfiles", func(api API, ctx context.Context) internal.Result[internal.Page[*profile.Profile]] {
		return api.ListProfiles(ctx, uc, filter)
	})
}

func (f *Facade) GetUsersWithDetails(ctx context.Context, uc internal.UserContext, filter profile.ListFilter) internal.Result[internal.Page[*profile.WithDetails]] {
	return route(ctx, f, "GetUsersWithDetails", func(api API, ctx context.Context) internal.Result[internal.Page[*profile.WithDetails]] {
		return api.GetUsersWithDetails(ctx, uc, filter)
	})
}

func (f *Facade) ResolveUserContext(ctx context.Context, userID string) internal.Result[internal.UserContext] {
	return route(ctx, f, "ResolveUserContext", func(api API, ctx context.Context) internal.Result[internal.UserContext] {
		return api.ResolveUserContext(ctx, userID)
	})
}

func (f *Facade) AssignAdminRole(ctx context.Context, uc internal.UserContext, dto profile.AssignAdminRoleDTO) internal.Result[*profile.AdminRole] {
	return route(ctx, f, "AssignAdminRole", func(api API, ctx context.Context) internal.Result[*profile.AdminRole] {
		return api.AssignAdminRole(ctx, uc, dto)
	})
}

func (f *Facade) ListAdminRoles(ctx context.Context, uc internal.UserContext, userID string) internal.Result[[]*profile.AdminRole] {
	return route(ctx, f, "ListAdminRoles", func(api API, ctx context.Context) internal.Result[[]*profile.AdminRole] {
		return api.ListAdminRoles(ctx, uc, userID)
	})
}

func (f *Facade) RevokeAdminRole(ctx context.Context, uc internal.UserContext, id string) internal.Result[string] {
	return route(ctx, f, "RevokeAdminRole", func(api API, ctx context.Context) internal.Result[string] {
		return api.RevokeAdminRole(ctx, uc, id)
	})
}

func (f *Facade) CreateCourse(ctx context.Context, dto course.CreateCourseDTO) internal.Result[*course.Course] {
	return route(ctx, f, "CreateCourse", func(api API, ctx context.Context) internal.Result[*course.Course] {
		return api.CreateCourse(ctx, dto)
	})
}

func (f *Facade) GetCourse(ctx context.Context, id string) internal.Result[*course.Course] {
	return route(ctx, f, "GetCourse", func(api API, ctx context.Context) internal.Result[*course.Course] {
		return api.GetCourse(ctx, id)
	})
}

func (f *Facade) GetCourseBySlug(ctx context.Context, slug string) internal.Result[*course.Course] {
	return route(ctx, f, "GetCourseBySlug", func(api API, ctx context.Context) internal.Result[*course.Course] {
		return api.GetCourseBySlug(ctx, slug)
	})
}

func (f *Facade) UpdateCourse(ctx context.Context, id string, dto course.UpdateCourseDTO) internal.Result[*course.Course] {
	return route(ctx, f, "UpdateCourse", func(api API, ctx context.Context) internal.Result[*course.Course] {
		return api.UpdateCourse(ctx, id, dto)
	})
}

func (f *Facade) DeleteCourse(ctx context.Context, id string) internal.Result[string] {
	return route(ctx, f, "DeleteCourse", func(api API, ctx context.Context) internal.Result[string] {
		return api.DeleteCourse(ctx, id)
	})
}

func (f *Facade) ListCourses(ctx context.Context, filter course.ListFilter) internal.Result[internal.Page[*course.Course]] {
	return route(ctx, f, "ListCourses", func(api API, ctx context.Context) internal.Result[internal.Page[*course.Course]] {
		return api.ListCourses(ctx, filter)
	})
}

func (f *Facade) CreateEnrollment(ctx context.Context, dto enrollment.CreateEnrollmentDTO) internal.Result[*enrollment.Enrollment] {
	return route(ctx, f, "CreateEnrollment", func(api API, ctx context.Context) internal.Result[*enrollment.Enrollment] {
		return api.CreateEnrollment(ctx, dto)
	})
}

func (f *Facade) GetEnrollment(ctx context.Context, uc internal.UserContext, id string) internal.Result[*enrollment.Enrollment] {
	return route(ctx, f, "GetEnrollment", func(api API, ctx context.Context) internal.Result[*enrollment.Enrollment] {
		return api.GetEnrollment(ctx, uc, id)
	})
}

func (f *Facade) UpdateEnrollment(ctx context.Context, uc internal.UserContext, id string, dto enrollment.UpdateEnrollmentDTO) internal.Result[*enrollment.Enrollment] {
	return route(ctx, f, "UpdateEnrollment", func(api API, ctx context.Context) internal.Result[*enrollment.Enrollment] {
		return api.UpdateEnrollment(ctx, uc, id, dto)
	})
}

func (f *Facade) DeleteEnrollment(ctx context.Context, uc internal.UserContext, id string) internal.Result[string] {
	return route(ctx, f, "DeleteEnrollment", func(api API, ctx context.Context) internal.Result[string] {
		return api.DeleteEnrollment(ctx, uc, id)
	})
}

func (f *Facade) ListEnrollments(ctx context.Context, uc internal.UserContext, filter enrollment.ListFilter) internal.Result[internal.Page[*enrollment.Enrollment]] {
	return route(ctx, f, "ListEnrollments", func(api API, ctx context.Context) internal.Result[internal.Page[*enrollment.Enrollment]] {
		return api.ListEnrollments(ctx, uc, filter)
	})
}

func (f *Facade) GetEnrollmentsWithDetails(ctx context.Context, uc internal.UserContext, filter enrollment.ListFilter) internal.Result[internal.Page[*enrollment.WithDetails]] {
	return route(ctx, f, "GetEnrollmentsWithDetails", func(api API, ctx context.Context) internal.Result[internal.Page[*enrollment.WithDetails]] {
		return api.GetEnrollmentsWithDetails(ctx, uc, filter)
	})
}

func (f *Facade) CreateProgress(ctx context.Context, dto progress.CreateProgressDTO) internal.Result[*progress.Progress] {
	return route(ctx, f, "CreateProgress", func(api API, ctx context.Context) internal.Result[*progress.Progress] {
		return api.CreateProgress(ctx, dto)
	})
}

func (f *Facade) GetProgress(ctx context.Context, uc internal.UserContext, id string) internal.Result[*progress.Progress] {
	return route(ctx, f, "GetProgress", func(api API, ctx context.Context) internal.Result[*progress.Progress] {
		return api.GetProgress(ctx, uc, id)
	})
}

func (f *Facade) UpdateProgress(ctx context.Context, uc internal.UserContext, id string, dto progress.UpdateProgressDTO) internal.Result[*progress.Progress] {
	return route(ctx, f, "UpdateProgress", func(api API, ctx context.Context) internal.Result[*progress.Progress] {
		return api.UpdateProgress(ctx, uc, id, dto)
	})
}

func (f *Facade) DeleteProgress(ctx context.Context, uc internal.UserContext, id string) internal.Result[string] {
	return route(ctx, f, "DeleteProgress", func(api API, ctx context.Context) internal.Result[string] {
		return api.DeleteProgress(ctx, uc, id)
	})
}

func (f *Facade) ListProgress(ctx context.Context, uc internal.UserContext, filter progress.ListFilter) internal.Result[internal.Page[*progress.Progress]] {
	return route(ctx, f, "ListProgress", func(api API, ctx context.Context) internal.Result[internal.Page[*progress.Progress]] {
		return api.ListProgress(ctx, uc, filter)
	})
}

func (f *Facade) GetProgressWithDetails(ctx context.Context, uc internal.UserContext, filter progress.ListFilter) internal.Result[internal.Page[*progress.WithDetails]] {
	return route(ctx, f, "GetProgressWithDetails", func(api API, ctx context.Context) internal.Result[internal.Page[*progress.WithDetails]] {
		return api.GetProgressWithDetails(ctx, uc, filter)
	})
}

func (f *Facade) GetDetailedAnalytics(ctx context.Context, uc *internal.UserContext) internal.Result[*analytics.Report] {
	return route(ctx, f, "GetDetailedAnalytics", func(api API, ctx context.Context) internal.Result[*analytics.Report] {
		return api.GetDetailedAnalytics(ctx, uc)
	})
}

func (f *Facade) GetDashboardStats(ctx context.Context, plantID string) internal.Result[*analytics.DashboardStats] {
	return route(ctx, f, "GetDashboardStats", func(api API, ctx context.Context) internal.Result[*analytics.DashboardStats] {
		return api.GetDashboardStats(ctx, plantID)
	})
}
