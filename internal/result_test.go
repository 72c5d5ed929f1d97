package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/safety-lms/internal"
)

var _ = Describe("Result", func() {
	It("wraps data on success", func() {
		res := internal.ResultOf("ok", nil)
		Expect(res.Success).To(BeTrue())
		Expect(res.Data).To(Equal("ok"))
		Expect(res.StatusCode()).To(Equal(http.StatusOK))
	})

	DescribeTable("maps errors onto codes and statuses",
		func(err error, code internal.ErrorCode, status int) {
			res := internal.ResultOf[*struct{}](nil, err)
			Expect(res.Success).To(BeFalse())
			Expect(res.Code).To(Equal(code))
			Expect(res.StatusCode()).To(Equal(status))
		},
		Entry("conflict", internal.NewConflictError("dup"), internal.ErrCodeConflict, http.StatusConflict),
		Entry("not found", internal.NewNotFoundError("gone"), internal.ErrCodeNotFound, http.StatusNotFound),
		Entry("validation", internal.NewValidationFieldError("email", "bad", internal.ErrCodeInvalidEmail), internal.ErrCodeValidationFailed, http.StatusBadRequest),
		Entry("forbidden", internal.NewForbiddenError("no"), internal.ErrCodeForbidden, http.StatusForbidden),
		Entry("plain error", errors.New("boom"), internal.ErrCodeDatabase, http.StatusInternalServerError),
		Entry("wrapped app error", fmt.Errorf("ctx: %w", internal.NewNotFoundError("gone")), internal.ErrCodeNotFound, http.StatusNotFound),
	)

	It("carries validation details", func() {
		res := internal.Fail[int](internal.NewValidationFieldError("email", "email is invalid", internal.ErrCodeInvalidEmail))
		Expect(res.Error).To(Equal("email is invalid"))
		Expect(res.Details).To(BeAssignableToTypeOf(internal.ValidationErrors{}))
	})

	It("serialises the tagged union", func() {
		body, err := json.Marshal(internal.Fail[*struct{}](internal.NewConflictError("dup")))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(MatchJSON(`{"success":false,"error":"dup","code":"CONFLICT"}`))

		body, err = json.Marshal(internal.Ok(map[string]int{"n": 1}))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(MatchJSON(`{"success":true,"data":{"n":1}}`))
	})

	It("reports recovered panics as database errors", func() {
		res := internal.Recovered[string]("nil map")
		Expect(res.Code).To(Equal(internal.ErrCodeDatabase))
		Expect(res.StatusCode()).To(Equal(http.StatusInternalServerError))
	})
})

var _ = Describe("FromStorage", func() {
	It("keeps nil", func() {
		Expect(internal.FromStorage(nil, "Course", "dup")).To(BeNil())
	})

	It("maps the storage sentinels", func() {
		err := internal.FromStorage(fmt.Errorf("get: %w", internal.ErrRecordNotFound), "Course", "dup")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeNotFound))
		Expect(appErr.Message).To(Equal("Course not found"))

		appErr, _ = internal.IsAppError(internal.FromStorage(internal.ErrDuplicateRecord, "Course", "Course with this slug already exists"))
		Expect(appErr.Code).To(Equal(internal.ErrCodeConflict))
		Expect(appErr.Message).To(Equal("Course with this slug already exists"))
	})

	It("hides driver errors behind DATABASE_ERROR", func() {
		cause := errors.New("connection reset")
		appErr, _ := internal.IsAppError(internal.FromStorage(cause, "Course", "dup"))
		Expect(appErr.Code).To(Equal(internal.ErrCodeDatabase))
		Expect(errors.Is(appErr, cause)).To(BeTrue())

		status, body := appErr.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusInternalServerError))
		Expect(body.(internal.Response).Error.Message).To(Equal("Internal server error"))
	})
})
