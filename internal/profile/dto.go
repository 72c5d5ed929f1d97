package profile

import (
	"strings"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
)

// Summary is the user shape attached to enrollment and progress listings.
type Summary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CreateProfileDTO struct {
	PlantID   string  `json:"plantId"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	JobTitle  *string `json:"jobTitle,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (dto CreateProfileDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("plant_id", dto.PlantID).Required().UUID()
	validator.Field("first_name", dto.FirstName).Required().MaxLength(100)
	validator.Field("last_name", dto.LastName).Required().MaxLength(100)
	validator.Field("email", normalizeEmail(dto.Email)).Required().Email().MaxLength(255)
	validator.Field("job_title", dto.JobTitle).Optional().MaxLength(255)
	validator.Field("status", dto.Status).Optional().OneOf(internal.ErrCodeInvalidStatus, StatusActive, StatusSuspended)
	return validator.Validate()
}

type UpdateProfileDTO struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	JobTitle  *string `json:"jobTitle,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (dto UpdateProfileDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("first_name", dto.FirstName).Optional().Required().MaxLength(100)
	validator.Field("last_name", dto.LastName).Optional().Required().MaxLength(100)
	var email *string
	if dto.Email != nil {
		e := normalizeEmail(*dto.Email)
		email = &e
	}
	validator.Field("email", email).Optional().Required().Email().MaxLength(255)
	validator.Field("job_title", dto.JobTitle).Optional().MaxLength(255)
	validator.Field("status", dto.Status).Optional().OneOf(internal.ErrCodeInvalidStatus, StatusActive, StatusSuspended)
	return validator.Validate()
}

// Fields returns the columns touched by the patch.
func (dto UpdateProfileDTO) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if dto.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*dto.FirstName)
	}
	if dto.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*dto.LastName)
	}
	if dto.Email != nil {
		fields["email"] = normalizeEmail(*dto.Email)
	}
	if dto.JobTitle != nil {
		fields["job_title"] = *dto.JobTitle
	}
	if dto.Status != nil {
		fields["status"] = *dto.Status
	}
	return fields
}

// ListFilter narrows profile listings. PlantID is intersected with the caller's scope.
type ListFilter struct {
	internal.Pagination
	Search  string `json:"search,omitempty"`
	Status  string `json:"status,omitempty"`
	PlantID string `json:"plantId,omitempty"`
}

// SearchPattern is the lower-cased LIKE pattern for Search, or "".
func (f ListFilter) SearchPattern() string {
	s := strings.TrimSpace(f.Search)
	if s == "" {
		return ""
	}
	return "%" + strings.ToLower(s) + "%"
}

type AssignAdminRoleDTO struct {
	UserID  string  `json:"userId"`
	Role    string  `json:"role"`
	PlantID *string `json:"plantId,omitempty"`
}

func (dto AssignAdminRoleDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("user_id", dto.UserID).Required().UUID()
	validator.Field("role", dto.Role).Required().OneOf(internal.ErrCodeInvalidRole,
		internal.RoleHRAdmin, internal.RoleDevAdmin, internal.RolePlantManager)
	validator.Field("plant_id", dto.PlantID).Optional().UUID()
	return validator.Validate()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
