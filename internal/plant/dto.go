package plant

import (
	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
)

// Summary is the plant shape attached to detailed profile listings.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreatePlantDTO struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (dto CreatePlantDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("name", dto.Name).Required().MaxLength(255)
	return validator.Validate()
}

type UpdatePlantDTO struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (dto UpdatePlantDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("name", dto.Name).Optional().Required().MaxLength(255)
	return validator.Validate()
}

// Fields returns the columns touched by the patch.
func (dto UpdatePlantDTO) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.IsActive != nil {
		fields["is_active"] = *dto.IsActive
	}
	return fields
}
