// Package dbservice is the single entry point of the data layer. Every operation
// returns an internal.Result and never panics.
package dbservice

import (
	"context"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/analytics"
	"github.com/frahmantamala/safety-lms/internal/course"
	"github.com/frahmantamala/safety-lms/internal/enrollment"
	"github.com/frahmantamala/safety-lms/internal/plant"
	"github.com/frahmantamala/safety-lms/internal/profile"
	"github.com/frahmantamala/safety-lms/internal/progress"
)

type API interface {
	CreatePlant(ctx context.Context, dto plant.CreatePlantDTO) internal.Result[*plant.Plant]
	GetPlant(ctx context.Context, uc internal.UserContext, id string) internal.Result[*plant.Plant]
	UpdatePlant(ctx context.Context, id string, dto plant.UpdatePlantDTO) internal.Result[*plant.Plant]
	ListPlants(ctx context.Context, uc internal.UserContext) internal.Result[[]*plant.Plant]

	CreateProfile(ctx context.Context, dto profile.CreateProfileDTO) internal.Result[*profile.Profile]
	GetProfile(ctx context.Context, uc internal.UserContext, id string) internal.Result[*profile.Profile]
	UpdateProfile(ctx context.Context, uc internal.UserContext, id string, dto profile.UpdateProfileDTO) internal.Result[*profile.Profile]
	DeleteProfile(ctx context.Context, uc internal.UserContext, id string) internal.Result[string]
	ListProfiles(ctx context.Context, uc internal.UserContext, filter profile.ListFilter) internal.Result[internal.Page[*profile.Profile]]
	GetUsersWithDetails(ctx context.Context, uc internal.UserContext, filter profile.ListFilter) internal.Result[internal.Page[*profile.WithDetails]]
	ResolveUserContext(ctx context.Context, userID string) internal.Result[internal.UserContext]

	AssignAdminRole(ctx context.Context, uc internal.UserContext, dto profile.AssignAdminRoleDTO) internal.Result[*profile.AdminRole]
	ListAdminRoles(ctx context.Context, uc internal.UserContext, userID string) internal.Result[[]*profile.AdminRole]
	RevokeAdminRole(ctx context.Context, uc internal.UserContext, id string) internal.Result[string]

	CreateCourse(ctx context.Context, dto course.CreateCourseDTO) internal.Result[*course.Course]
	GetCourse(ctx context.Context, id string) internal.Result[*course.Course]
	GetCourseBySlug(ctx context.Context, slug string) internal.Result[*course.Course]
	UpdateCourse(ctx context.Context, id string, dto course.UpdateCourseDTO) internal.Result[*course.Course]
	DeleteCourse(ctx context.Context, id string) internal.Result[string]
	ListCourses(ctx context.Context, filter course.ListFilter) internal.Result[internal.Page[*course.Course]]

	CreateEnrollment(ctx context.Context, dto enrollment.CreateEnrollmentDTO) internal.Result[*enrollment.Enrollment]
	GetEnrollment(ctx context.Context, uc internal.UserContext, id string) internal.Result[*enrollment.Enrollment]
	UpdateEnrollment(ctx context.Context, uc internal.UserContext, id string, dto enrollment.UpdateEnrollmentDTO) internal.Result[*enrollment.Enrollment]
	DeleteEnrollment(ctx context.Context, uc internal.UserContext, id string) internal.Result[string]
	ListEnrollments(ctx context.Context, uc internal.UserContext, filter enrollment.ListFilter) internal.Result[internal.Page[*enrollment.Enrollment]]
	GetEnrollmentsWithDetails(ctx context.Context, uc internal.UserContext, filter enrollment.ListFilter) internal.Result[internal.Page[*enrollment.WithDetails]]

	CreateProgress(ctx context.Context, dto progress.CreateProgressDTO) internal.Result[*progress.Progress]
	GetProgress(ctx context.Context, uc internal.UserContext, id string) internal.Result[*progress.Progress]
	UpdateProgress(ctx context.Context, uc internal.UserContext, id string, dto progress.UpdateProgressDTO) internal.Result[*progress.Progress]
	DeleteProgress(ctx context.Context, uc internal.UserContext, id string) internal.Result[string]
	ListProgress(ctx context.Context, uc internal.UserContext, filter progress.ListFilter) internal.Result[internal.Page[*progress.Progress]]
	GetProgressWithDetails(ctx context.Context, uc internal.UserContext, filter progress.ListFilter) internal.Result[internal.Page[*progress.WithDetails]]

	// GetDetailedAnalytics aggregates globally when uc is nil.
	GetDetailedAnalytics(ctx context.Context, uc *internal.UserContext) internal.Result[*analytics.Report]
	GetDashboardStats(ctx context.Context, plantID string) internal.Result[*analytics.DashboardStats]
}
