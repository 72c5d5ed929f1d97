package validation_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/common/validation"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func fields(err *internal.AppError) []internal.ValidationError {
	Expect(err).NotTo(BeNil())
	details, ok := err.Details.(internal.ValidationErrors)
	Expect(ok).To(BeTrue())
	return details.Errors
}

var _ = Describe("ValidationBuilder", func() {
	It("passes when every field is valid", func() {
		v := validation.NewValidator()
		v.Field("email", "ana@example.com").Required().Email()
		v.Field("id", uuid.NewString()).Required().UUID()
		v.Field("status", "active").OneOf(internal.ErrCodeInvalidStatus, "active", "suspended")
		Expect(v.Validate()).To(BeNil())
	})

	It("reports the first failure of each field", func() {
		v := validation.NewValidator()
		v.Field("email", "").Required().Email()
		v.Field("name", "x").MaxLength(0)

		errs := fields(v.Validate())
		Expect(errs).To(HaveLen(2))
		Expect(errs[0].Field).To(Equal("email"))
		Expect(errs[0].Message).To(Equal("email is required"))
		Expect(errs[1].Field).To(Equal("name"))
	})

	It("uses the VALIDATION_FAILED code with a 400 status", func() {
		v := validation.NewValidator()
		v.Field("id", "not-an-id").UUID()
		err := v.Validate()
		Expect(err.Code).To(Equal(internal.ErrCodeValidationFailed))
		Expect(err.StatusCode).To(Equal(400))
		Expect(fields(err)[0].Code).To(Equal(string(internal.ErrCodeInvalidID)))
	})

	It("skips optional nil pointers", func() {
		var title *string
		var percent *float64
		v := validation.NewValidator()
		v.Field("title", title).Optional().Required()
		v.Field("percent", percent).Optional().FloatRange(0, 100)
		Expect(v.Validate()).To(BeNil())
	})

	It("validates optional values that are present", func() {
		blank := "  "
		v := validation.NewValidator()
		v.Field("title", &blank).Optional().Required()
		Expect(fields(v.Validate())[0].Field).To(Equal("title"))
	})

	DescribeTable("FloatRange",
		func(value float64, ok bool) {
			v := validation.NewValidator()
			v.Field("progress_percent", value).FloatRange(0, 100)
			if ok {
				Expect(v.Validate()).To(BeNil())
			} else {
				Expect(fields(v.Validate())[0].Code).To(Equal(string(internal.ErrCodeOutOfRange)))
			}
		},
		Entry("lower bound", 0.0, true),
		Entry("upper bound", 100.0, true),
		Entry("below", -0.5, false),
		Entry("above", 100.01, false),
		Entry("NaN", math.NaN(), false),
		Entry("positive infinity", math.Inf(1), false),
		Entry("negative infinity", math.Inf(-1), false),
	)

	DescribeTable("Email",
		func(value string, ok bool) {
			v := validation.NewValidator()
			v.Field("email", value).Email()
			Expect(v.Validate() == nil).To(Equal(ok))
		},
		Entry("plain address", "ana@example.com", true),
		Entry("missing domain", "ana@", false),
		Entry("display name form", "Ana <ana@example.com>", false),
		Entry("no at sign", "ana.example.com", false),
	)

	It("rejects values outside OneOf with the given code", func() {
		v := validation.NewValidator()
		v.Field("role", "root").OneOf(internal.ErrCodeInvalidRole, internal.RoleHRAdmin, internal.RoleDevAdmin)
		Expect(fields(v.Validate())[0].Code).To(Equal(string(internal.ErrCodeInvalidRole)))
	})
})

var _ = Describe("ValidateID", func() {
	It("accepts a uuid", func() {
		Expect(validation.ValidateID("id", uuid.NewString())).To(BeNil())
	})

	It("rejects empty and malformed ids", func() {
		Expect(validation.ValidateID("id", "")).NotTo(BeNil())
		Expect(validation.ValidateID("user_id", "42").Field()).To(Equal("user_id"))
	})
})
