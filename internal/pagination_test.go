package internal_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/safety-lms/internal"
)

var _ = Describe("Pagination", func() {
	DescribeTable("Normalize",
		func(page, limit, wantPage, wantLimit, wantOffset int) {
			p := internal.Pagination{Page: page, Limit: limit}
			n := p.Normalize()
			Expect(n.Page).To(Equal(wantPage))
			Expect(n.Limit).To(Equal(wantLimit))
			Expect(p.Offset()).To(Equal(wantOffset))
		},
		Entry("defaults", 0, 0, 1, internal.DefaultPageLimit, 0),
		Entry("negative values", -3, -1, 1, internal.DefaultPageLimit, 0),
		Entry("third page", 3, 10, 3, 10, 20),
		Entry("limit capped", 2, 1000, 2, internal.MaxPageLimit, internal.MaxPageLimit),
		Entry("page capped before the offset overflows", math.MaxInt, 100,
			math.MaxInt/100, 100, (math.MaxInt/100-1)*100),
	)

	It("keeps the offset positive for any page", func() {
		for _, limit := range []int{1, 7, 50, internal.MaxPageLimit} {
			p := internal.Pagination{Page: math.MaxInt, Limit: limit}
			Expect(p.Offset()).To(BeNumerically(">=", 0))
			Expect(p.Offset() + limit).To(BeNumerically(">", p.Offset()))
		}
	})

	DescribeTable("NewPage total pages",
		func(total int64, limit, pages int) {
			page := internal.NewPage[int](nil, total, internal.Pagination{Page: 1, Limit: limit})
			Expect(page.TotalPages).To(Equal(pages))
			Expect(page.Data).NotTo(BeNil())
		},
		Entry("empty", int64(0), 10, 0),
		Entry("exact", int64(20), 10, 2),
		Entry("remainder", int64(21), 10, 3),
		Entry("single", int64(1), 10, 1),
	)
})
