package progress

import (
	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
)

type CreateProgressDTO struct {
	UserID          string   `json:"userId"`
	CourseID        string   `json:"courseId"`
	PlantID         string   `json:"plantId"`
	ProgressPercent *float64 `json:"progressPercent,omitempty"`
	CurrentSection  *string  `json:"currentSection,omitempty"`
}

func (dto CreateProgressDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("user_id", dto.UserID).Required().UUID()
	validator.Field("course_id", dto.CourseID).Required().UUID()
	validator.Field("plant_id", dto.PlantID).Required().UUID()
	validator.Field("progress_percent", dto.ProgressPercent).Optional().FloatRange(MinPercent, MaxPercent)
	validator.Field("current_section", dto.CurrentSection).Optional().MaxLength(255)
	return validator.Validate()
}

type UpdateProgressDTO struct {
	ProgressPercent *float64 `json:"progressPercent,omitempty"`
	CurrentSection  *string  `json:"currentSection,omitempty"`
}

func (dto UpdateProgressDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("progress_percent", dto.ProgressPercent).Optional().FloatRange(MinPercent, MaxPercent)
	validator.Field("current_section", dto.CurrentSection).Optional().MaxLength(255)
	return validator.Validate()
}

// ListFilter narrows progress listings. Min/MaxProgress are inclusive and PlantID
// is intersected with the caller's scope.
type ListFilter struct {
	internal.Pagination
	CourseID    string   `json:"courseId,omitempty"`
	UserID      string   `json:"userId,omitempty"`
	PlantID     string   `json:"plantId,omitempty"`
	MinProgress *float64 `json:"minProgress,omitempty"`
	MaxProgress *float64 `json:"maxProgress,omitempty"`
}

func (f ListFilter) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("min_progress", f.MinProgress).Optional().FloatRange(MinPercent, MaxPercent)
	validator.Field("max_progress", f.MaxProgress).Optional().FloatRange(MinPercent, MaxPercent)
	return validator.Validate()
}
