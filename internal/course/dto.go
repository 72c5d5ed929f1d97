package course

import (
	"regexp"
	"strings"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Summary is the course shape attached to enrollment and progress listings.
type Summary struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type CreateCourseDTO struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Version     *string `json:"version,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

func (dto CreateCourseDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("slug", dto.Slug).Required().MaxLength(255).Custom(validSlug("slug"))
	validator.Field("title", dto.Title).Required().MaxLength(255)
	validator.Field("version", dto.Version).Optional().Required().MaxLength(20)
	return validator.Validate()
}

type UpdateCourseDTO struct {
	Slug        *string `json:"slug,omitempty"`
	Title       *string `json:"title,omitempty"`
	Version     *string `json:"version,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

func (dto UpdateCourseDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("slug", dto.Slug).Optional().Required().MaxLength(255).Custom(validSlug("slug"))
	validator.Field("title", dto.Title).Optional().Required().MaxLength(255)
	validator.Field("version", dto.Version).Optional().Required().MaxLength(20)
	return validator.Validate()
}

// Fields returns the columns touched by the patch.
func (dto UpdateCourseDTO) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if dto.Slug != nil {
		fields["slug"] = *dto.Slug
	}
	if dto.Title != nil {
		fields["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Version != nil {
		fields["version"] = *dto.Version
	}
	if dto.IsPublished != nil {
		fields["is_published"] = *dto.IsPublished
	}
	return fields
}

type ListFilter struct {
	internal.Pagination
	Search      string `json:"search,omitempty"`
	IsPublished *bool  `json:"isPublished,omitempty"`
}

// SearchPattern is the lower-cased LIKE pattern for Search, or "".
func (f ListFilter) SearchPattern() string {
	s := strings.TrimSpace(f.Search)
	if s == "" {
		return ""
	}
	return "%" + strings.ToLower(s) + "%"
}

func validSlug(field string) func(interface{}) *internal.AppError {
	return func(value interface{}) *internal.AppError {
		var slug string
		switch v := value.(type) {
		case string:
			slug = v
		case *string:
			if v == nil {
				return nil
			}
			slug = *v
		}
		if !slugPattern.MatchString(slug) {
			return internal.NewValidationFieldError(field, "slug must contain lower-case letters, digits and dashes", internal.ErrCodeValidationFailed)
		}
		return nil
	}
}
