package geometry_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/iti/rngstream"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/geometry"
)

func pathSteps(p geometry.XYZ) int {
	steps := 0
	for _, component := range [3]int{p.X, p.Y, p.Z} {
		if component < 0 {
			steps -= component
		} else {
			steps += component
		}
	}

	return steps
}

var _ = Describe("XYZ", func() {
	It("should convert a plain coordinate", func() {
		Expect(geometry.ToXYZ([2]int{3, 2})).To(
			Equal(geometry.XYZ{X: 3, Y: 2, Z: 0}))
	})

	It("should minimise to two components of opposite signs", func() {
		Expect(geometry.XYZ{X: 3, Y: 2, Z: 0}.Minimise()).To(
			Equal(geometry.XYZ{X: 1, Y: 0, Z: -2}))
		Expect(geometry.XYZ{X: 1, Y: 1, Z: 1}.Minimise()).To(
			Equal(geometry.XYZ{X: 0, Y: 0, Z: 0}))
		Expect(geometry.XYZ{X: -2, Y: -2, Z: 0}.Minimise()).To(
			Equal(geometry.XYZ{X: 0, Y: 0, Z: 2}))
	})
})

var _ = Describe("Mesh paths", func() {
	It("should measure the hexagonal distance", func() {
		source := geometry.XYZ{X: 0, Y: 0, Z: 0}
		Expect(geometry.ShortestMeshPathLength(
			source, geometry.XYZ{X: 3, Y: 2, Z: 0})).To(Equal(3))
		Expect(geometry.ShortestMeshPathLength(
			source, geometry.XYZ{X: 1, Y: -1, Z: 0})).To(Equal(2))
		Expect(geometry.ShortestMeshPathLength(
			source, geometry.XYZ{X: 5, Y: 5, Z: 0})).To(Equal(5))
	})

	It("should be symmetric", func() {
		a := geometry.XYZ{X: 2, Y: 7, Z: 0}
		b := geometry.XYZ{X: 10, Y: 1, Z: 0}
		Expect(geometry.ShortestMeshPathLength(a, b)).To(
			Equal(geometry.ShortestMeshPathLength(b, a)))
	})

	It("should produce a minimal vector of the right length", func() {
		source := geometry.XYZ{X: 1, Y: 2, Z: 0}
		destination := geometry.XYZ{X: 7, Y: 5, Z: 0}

		path := geometry.ShortestMeshPath(source, destination)
		Expect(path).To(Equal(geometry.XYZ{X: 3, Y: 0, Z: -3}))
		Expect(pathSteps(path)).To(
			Equal(geometry.ShortestMeshPathLength(source, destination)))
	})
})

var _ = Describe("Torus paths", func() {
	samples := []geometry.XYZ{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 11, Y: 0, Z: 0},
		{X: 0, Y: 11, Z: 0}, {X: 6, Y: 6, Z: 0}, {X: 3, Y: 10, Z: 0},
		{X: 9, Y: 2, Z: 0},
	}

	It("should take wraparound shortcuts", func() {
		source := geometry.XYZ{X: 0, Y: 0, Z: 0}
		Expect(geometry.ShortestTorusPathLength(
			source, geometry.XYZ{X: 11, Y: 0, Z: 0}, 12, 12)).To(Equal(1))
		Expect(geometry.ShortestTorusPathLength(
			source, geometry.XYZ{X: 11, Y: 11, Z: 0}, 12, 12)).To(Equal(1))
		Expect(geometry.ShortestTorusPathLength(
			source, geometry.XYZ{X: 6, Y: 6, Z: 0}, 12, 12)).To(Equal(6))
	})

	It("should be symmetric", func() {
		for _, a := range samples {
			for _, b := range samples {
				Expect(geometry.ShortestTorusPathLength(a, b, 12, 12)).To(
					Equal(geometry.ShortestTorusPathLength(b, a, 12, 12)))
			}
		}
	})

	It("should never beat the mesh going the other way", func() {
		for _, a := range samples {
			for _, b := range samples {
				Expect(geometry.ShortestTorusPathLength(a, b, 12, 12)).To(
					BeNumerically("<=",
						geometry.ShortestMeshPathLength(a, b)))
			}
		}
	})

	It("should produce a path of the reported length", func() {
		rng := rngstream.New("torus path length")
		for _, a := range samples {
			for _, b := range samples {
				path := geometry.ShortestTorusPath(a, b, 12, 12, rng)
				Expect(pathSteps(path)).To(Equal(
					geometry.ShortestTorusPathLength(a, b, 12, 12)))
			}
		}
	})

	It("should produce a path that reaches the destination", func() {
		rng := rngstream.New("torus path destination")
		for _, a := range samples {
			for _, b := range samples {
				path := geometry.ShortestTorusPath(a, b, 12, 12, rng)

				// A step on z moves both x and y, so project the path
				// onto the plain coordinates and compare modulo the
				// torus dimensions.
				dx := (a.X - a.Z + path.X - path.Z) - (b.X - b.Z)
				dy := (a.Y - a.Z + path.Y - path.Z) - (b.Y - b.Z)
				Expect(((dx % 12) + 12) % 12).To(Equal(0))
				Expect(((dy % 12) + 12) % 12).To(Equal(0))
			}
		}
	})
})
