package routing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/routing"
)

var _ = Describe("Route", func() {
	It("should pack link IDs into the low bits", func() {
		route, err := routing.RouteFromIDs(nil, []int{0, 5})
		Expect(err).To(BeNil())
		Expect(uint32(route)).To(Equal(uint32(0b100001)))
	})

	It("should pack processor IDs above the links", func() {
		route, err := routing.RouteFromIDs([]int{0, 17}, nil)
		Expect(err).To(BeNil())
		Expect(uint32(route)).To(Equal(uint32(1<<6 | 1<<23)))
	})

	It("should reject out-of-range IDs", func() {
		_, err := routing.RouteFromIDs(nil, []int{6})
		Expect(err).To(MatchError(machine.ErrInvalidParameter))

		_, err = routing.RouteFromIDs([]int{18}, nil)
		Expect(err).To(MatchError(machine.ErrInvalidParameter))

		_, err = routing.RouteFromIDs([]int{-1}, nil)
		Expect(err).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should reject duplicated IDs", func() {
		_, err := routing.RouteFromIDs(nil, []int{2, 2})
		Expect(err).To(MatchError(machine.ErrAlreadyExists))

		_, err = routing.RouteFromIDs([]int{4, 4}, nil)
		Expect(err).To(MatchError(machine.ErrAlreadyExists))
	})

	It("should unpack what it packed", func() {
		route, err := routing.RouteFromIDs([]int{1, 3, 17}, []int{0, 2, 5})
		Expect(err).To(BeNil())

		Expect(route.ProcessorIDs()).To(Equal([]int{1, 3, 17}))
		Expect(route.LinkIDs()).To(Equal([]int{0, 2, 5}))
		Expect(route.HasProcessor(3)).To(BeTrue())
		Expect(route.HasProcessor(2)).To(BeFalse())
		Expect(route.HasLink(2)).To(BeTrue())
		Expect(route.HasLink(1)).To(BeFalse())
	})

	It("should merge as a set union", func() {
		a, _ := routing.RouteFromIDs([]int{1}, []int{0})
		b, _ := routing.RouteFromIDs([]int{2}, []int{0, 3})

		merged := a.Merge(b)
		Expect(merged.ProcessorIDs()).To(Equal([]int{1, 2}))
		Expect(merged.LinkIDs()).To(Equal([]int{0, 3}))
	})

	It("should print sorted destination sets", func() {
		route, _ := routing.RouteFromIDs([]int{4, 2}, []int{5, 1})
		Expect(route.String()).To(Equal("{2, 4}:{1, 5}"))
	})
})
