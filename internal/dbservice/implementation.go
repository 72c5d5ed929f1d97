package dbservice

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/analytics"
	"github.com/frahmantamala/safety-lms/internal/core/events"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	"github.com/frahmantamala/safety-lms/internal/plant"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/progress"
)

// Implementation composes the domain services over one set of repositories and
// converts their errors into Results.
type Implementation struct {
	plants      *plant.Service
	profiles    *profile.Service
	courses     *course.Service
	enrollments *enrollment.Service
	progress    *progress.Service
	analytics   *analytics.Service
}

var _ API = (*Implementation)(nil)

func NewImplementation(repos Repositories, publisher events.Publisher, logger *slog.Logger) *Implementation {
	plants := plant.NewService(repos.Plants, logger)
	profiles := profile.NewService(repos.Profiles, plants, logger)
	courses := course.NewService(repos.Courses, logger)
	return &Implementation{
		plants:      plants,
		profiles:    profiles,
		courses:     courses,
		enrollments: enrollment.NewService(repos.Enrollments, profiles, courses, publisher, logger),
		progress:    progress.NewService(repos.Progress, profiles, courses, logger),
		analytics:   analytics.NewService(repos.Analytics, logger),
	}
}

func deleted(id string, err error) internal.Result[string] {
	return internal.ResultOf(id, err)
}

func (i *Implementation) CreatePlant(ctx context.Context, dto plant.CreatePlantDTO) internal.Result[*plant.Plant] {
	return internal.ResultOf(i.plants.CreatePlant(ctx, dto))
}

func (i *Implementation) GetPlant(ctx context.Context, uc internal.UserContext, id string) internal.Result[*plant.Plant] {
	return internal.ResultOf(i.plants.GetPlant(ctx, uc, id))
}

func (i *Implementation) UpdatePlant(ctx context.Context, id string, dto plant.UpdatePlantDTO) internal.Result[*plant.Plant] {
	return internal.ResultOf(i.plants.UpdatePlant(ctx, id, dto))
}

func (i *Implementation) ListPlants(ctx context.Context, uc internal.UserContext) internal.Result[[]*plant.Plant] {
	return internal.ResultOf(i.plants.ListPlants(ctx, uc))
}

func (i *Implementation) CreateProfile(ctx context.Context, dto profile.CreateProfileDTO) internal.Result[*profile.Profile] {
	return internal.ResultOf(i.profiles.CreateProfile(ctx, dto))
}

func (i *Implementation) GetProfile(ctx context.Context, uc internal.UserContext, id string) internal.Result[*profile.Profile] {
	return internal.ResultOf(i.profiles.GetProfile(ctx, uc, id))
}

func (i *Implementation) UpdateProfile(ctx context.Context, uc internal.UserContext, id string, dto profile.UpdateProfileDTO) internal.Result[*profile.Profile] {
	return internal.ResultOf(i.profiles.UpdateProfile(ctx, uc, id, dto))
}

func (i *Implementation) DeleteProfile(ctx context.Context, uc internal.UserContext, id string) internal.Result[string] {
	return deleted(id, i.profiles.DeleteProfile(ctx, uc, id))
}

func (i *Implementation) ListProfiles(ctx context.Context, uc internal.UserContext, filter profile.ListFilter) internal.Result[internal.Page[*profile.Profile]] {
	return internal.ResultOf(i.profiles.ListProfiles(ctx, uc, filter))
}

func (i *Implementation) GetUsersWithDetails(ctx context.Context, uc internal.UserContext, filter profile.ListFilter) internal.Result[internal.Page[*profile.WithDetails]] {
	return internal.ResultOf(i.profiles.GetUsersWithDetails(ctx, uc, filter))
}

func (i *Implementation) ResolveUserContext(ctx context.Context, userID string) internal.Result[internal.UserContext] {
	return internal.ResultOf(i.profiles.ResolveUserContext(ctx, userID))
}

func (i *Implementation) AssignAdminRole(ctx context.Context, uc internal.UserContext, dto profile.AssignAdminRoleDTO) internal.Result[*profile.AdminRole] {
	return internal.ResultOf(i.profiles.AssignAdminRole(ctx, uc, dto))
}

func (i *Implementation) ListAdminRoles(ctx context.Context, uc internal.UserContext, userID string) internal.Result[[]*profile.AdminRole] {
	return internal.ResultOf(i.profiles.ListAdminRoles(ctx, uc, userID))
}

func (i *Implementation) RevokeAdminRole(ctx context.Context, uc internal.UserContext, id string) internal.Result[string] {
	return deleted(id, i.profiles.RevokeAdminRole(ctx, uc, id))
}

func (i *Implementation) CreateCourse(ctx context.Context, dto course.CreateCourseDTO) internal.Result[*course.Course] {
	return internal.ResultOf(i.courses.CreateCourse(ctx, dto))
}

func (i *Implementation) GetCourse(ctx context.Context, id string) internal.Result[*course.Course] {
	return internal.ResultOf(i.courses.GetCourse(ctx, id))
}

func (i *Implementation) GetCourseBySlug(ctx context.Context, slug string) internal.Result[*course.Course] {
	return internal.ResultOf(i.courses.GetCourseBySlug(ctx, slug))
}

func (i *Implementation) UpdateCourse(ctx context.Context, id string, dto course.UpdateCourseDTO) internal.Result[*course.Course] {
	return internal.ResultOf(i.courses.UpdateCourse(ctx, id, dto))
}

func (i *Implementation) DeleteCourse(ctx context.Context, id string) internal.Result[string] {
	return deleted(id, i.courses.DeleteCourse(ctx, id))
}

func (i *Implementation) ListCourses(ctx context.Context, filter course.ListFilter) internal.Result[internal.Page[*course.Course]] {
	return internal.ResultOf(i.courses.ListCourses(ctx, filter))
}

func (i *Implementation) CreateEnrollment(ctx context.Context, dto enrollment.CreateEnrollmentDTO) internal.Result[*enrollment.Enrollment] {
	return internal.ResultOf(i.enrollments.CreateEnrollment(ctx, dto))
}

func (i *Implementation) GetEnrollment(ctx context.Context, uc internal.UserContext, id string) internal.Result[*enrollment.Enrollment] {
	return internal.ResultOf(i.enrollments.GetEnrollment(ctx, uc, id))
}

func (i *Implementation) UpdateEnrollment(ctx context.Context, uc internal.UserContext, id string, dto enrollment.UpdateEnrollmentDTO) internal.Result[*enrollment.Enrollment] {
	return internal.ResultOf(i.enrollments.UpdateEnrollment(ctx, uc, id, dto))
}

func (i *Implementation) DeleteEnrollment(ctx context.Context, uc internal.UserContext, id string) internal.Result[string] {
	return deleted(id, i.enrollments.DeleteEnrollment(ctx, uc, id))
}

func (i *Implementation) ListEnrollments(ctx context.Context, uc internal.UserContext, filter enrollment.ListFilter) internal.Result[internal.Page[*enrollment.Enrollment]] {
	return internal.ResultOf(i.enrollments.ListEnrollments(ctx, uc, filter))
}

func (i *Implementation) GetEnrollmentsWithDetails(ctx context.Context, uc internal.UserContext, filter enrollment.ListFilter) internal.Result[internal.Page[*enrollment.WithDetails]] {
	return internal.ResultOf(i.enrollments.GetEnrollmentsWithDetails(ctx, uc, filter))
}

func (i *Implementation) CreateProgress(ctx context.Context, dto progress.CreateProgressDTO) internal.Result[*progress.Progress] {
	return internal.ResultOf(i.progress.CreateProgress(ctx, dto))
}

func (i *Implementation) GetProgress(ctx context.Context, uc internal.UserContext, id string) internal.Result[*progress.Progress] {
	return internal.ResultOf(i.progress.GetProgress(ctx, uc, id))
}

func (i *Implementation) UpdateProgress(ctx context.Context, uc internal.UserContext, id string, dto progress.UpdateProgressDTO) internal.Result[*progress.Progress] {
	return internal.ResultOf(i.progress.UpdateProgress(ctx, uc, id, dto))
}

func (i *Implementation) DeleteProgress(ctx context.Context, uc internal.UserContext, id string) internal.Result[string] {
	return deleted(id, i.progress.DeleteProgress(ctx, uc, id))
}

func (i *Implementation) ListProgress(ctx context.Context, uc internal.UserContext, filter progress.ListFilter) internal.Result[internal.Page[*progress.Progress]] {
	return internal.ResultOf(i.progress.ListProgress(ctx, uc, filter))
}

func (i *Implementation) GetProgressWithDetails(ctx context.Context, uc internal.UserContext, filter progress.ListFilter) internal.Result[internal.Page[*progress.WithDetails]] {
	return internal.ResultOf(i.progress.GetProgressWithDetails(ctx, uc, filter))
}

func (i *Implementation) GetDetailedAnalytics(ctx context.Context, uc *internal.UserContext) internal.Result[*analytics.Report] {
	return internal.ResultOf(i.analytics.GetDetailedAnalytics(ctx, uc))
}

func (i *Implementation) GetDashboardStats(ctx context.Context, plantID string) internal.Result[*analytics.DashboardStats] {
	return internal.ResultOf(i.analytics.GetDashboardStats(ctx, plantID))
}
