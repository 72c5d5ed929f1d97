package enrollment

import (
	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
)

type CreateEnrollmentDTO struct {
	UserID   string  `json:"userId"`
	CourseID string  `json:"courseId"`
	PlantID  string  `json:"plantId"`
	Status   *string `json:"status,omitempty"`
}

func (dto CreateEnrollmentDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("user_id", dto.UserID).Required().UUID()
	validator.Field("course_id", dto.CourseID).Required().UUID()
	validator.Field("plant_id", dto.PlantID).Required().UUID()
	validator.Field("status", dto.Status).Optional().OneOf(internal.ErrCodeInvalidStatus,
		StatusEnrolled, StatusInProgress, StatusCompleted)
	return validator.Validate()
}

type UpdateEnrollmentDTO struct {
	Status *string `json:"status,omitempty"`
}

func (dto UpdateEnrollmentDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("status", dto.Status).Optional().OneOf(internal.ErrCodeInvalidStatus,
		StatusEnrolled, StatusInProgress, StatusCompleted)
	return validator.Validate()
}

// ListFilter narrows enrollment listings. PlantID is intersected with the caller's scope.
type ListFilter struct {
	internal.Pagination
	Status   string `json:"status,omitempty"`
	CourseID string `json:"courseId,omitempty"`
	UserID   string `json:"userId,omitempty"`
	PlantID  string `json:"plantId,omitempty"`
}
