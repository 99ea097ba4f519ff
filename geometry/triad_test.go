package geometry_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/geometry"
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
)

var _ = Describe("Spinn5 geometry", func() {
	var g *geometry.TriadGeometry

	BeforeEach(func() {
		g = geometry.Spinn5()
	})

	It("should describe the standard triad", func() {
		Expect(g.TriadWidth()).To(Equal(12))
		Expect(g.TriadHeight()).To(Equal(12))
		Expect(g.BoardWidth()).To(Equal(8))
		Expect(g.BoardHeight()).To(Equal(8))
		Expect(g.Roots()).To(Equal([]machine.XY{
			{X: 0, Y: 0}, {X: 4, Y: 8}, {X: 8, Y: 4},
		}))
	})

	It("should be a shared instance", func() {
		Expect(geometry.Spinn5()).To(BeIdenticalTo(g))
	})

	It("should put each root at local (0, 0)", func() {
		root := machine.XY{X: 0, Y: 0}
		for _, chip := range g.Roots() {
			Expect(g.LocalChipCoordinate(chip, root)).To(
				Equal(machine.XY{X: 0, Y: 0}))
		}
	})

	It("should locate a chip within its owning board", func() {
		root := machine.XY{X: 0, Y: 0}
		Expect(g.LocalChipCoordinate(machine.XY{X: 1, Y: 1}, root)).To(
			Equal(machine.XY{X: 1, Y: 1}))
		Expect(g.LocalChipCoordinate(machine.XY{X: 5, Y: 9}, root)).To(
			Equal(machine.XY{X: 1, Y: 1}))
		Expect(g.LocalChipCoordinate(machine.XY{X: 8, Y: 4}, root)).To(
			Equal(machine.XY{X: 0, Y: 0}))
	})

	It("should find the owning ethernet chip", func() {
		root := machine.XY{X: 0, Y: 0}
		Expect(g.EthernetChipCoordinates(
			machine.XY{X: 1, Y: 1}, 12, 12, root)).To(
			Equal(machine.XY{X: 0, Y: 0}))
		Expect(g.EthernetChipCoordinates(
			machine.XY{X: 5, Y: 9}, 12, 12, root)).To(
			Equal(machine.XY{X: 4, Y: 8}))
		Expect(g.EthernetChipCoordinates(
			machine.XY{X: 9, Y: 5}, 12, 12, root)).To(
			Equal(machine.XY{X: 8, Y: 4}))
	})

	It("should split a triad into three equal boards", func() {
		root := machine.XY{X: 0, Y: 0}
		owned := make(map[machine.XY]int)
		for x := 0; x < 12; x++ {
			for y := 0; y < 12; y++ {
				ethernet := g.EthernetChipCoordinates(
					machine.XY{X: x, Y: y}, 12, 12, root)
				owned[ethernet]++
			}
		}

		Expect(owned).To(Equal(map[machine.XY]int{
			{X: 0, Y: 0}: 48,
			{X: 4, Y: 8}: 48,
			{X: 8, Y: 4}: 48,
		}))
	})

	It("should follow the boot chip offset", func() {
		root := machine.XY{X: 4, Y: 8}
		Expect(g.LocalChipCoordinate(machine.XY{X: 4, Y: 8}, root)).To(
			Equal(machine.XY{X: 0, Y: 0}))
		Expect(g.EthernetChipCoordinates(
			machine.XY{X: 5, Y: 9}, 12, 12, root)).To(
			Equal(machine.XY{X: 4, Y: 8}))
	})
})

var _ = Describe("PotentialEthernetChips", func() {
	var g *geometry.TriadGeometry

	BeforeEach(func() {
		g = geometry.Spinn5()
	})

	It("should give a single board only its origin", func() {
		Expect(g.PotentialEthernetChips(2, 2)).To(
			Equal([]machine.XY{{X: 0, Y: 0}}))
		Expect(g.PotentialEthernetChips(8, 8)).To(
			Equal([]machine.XY{{X: 0, Y: 0}}))
	})

	It("should give a triad its three roots", func() {
		Expect(g.PotentialEthernetChips(12, 12)).To(
			Equal([]machine.XY{
				{X: 0, Y: 0}, {X: 4, Y: 8}, {X: 8, Y: 4},
			}))
	})

	It("should give an unwrapped triad its three roots", func() {
		Expect(g.PotentialEthernetChips(16, 16)).To(ConsistOf(
			machine.XY{X: 0, Y: 0},
			machine.XY{X: 4, Y: 8},
			machine.XY{X: 8, Y: 4},
		))
	})

	It("should tile larger machines by triads", func() {
		Expect(g.PotentialEthernetChips(24, 24)).To(HaveLen(12))
		Expect(g.PotentialEthernetChips(24, 24)).To(ContainElements(
			machine.XY{X: 12, Y: 0},
			machine.XY{X: 16, Y: 8},
			machine.XY{X: 20, Y: 16},
		))
	})
})
