package geometry

import "github.com/iti/rngstream"

// An XYZ is a point on the three non-orthogonal axes of a hexagonal torus.
// A step on the z axis is a simultaneous step on x and y.
type XYZ struct {
	X, Y, Z int
}

// ToXYZ converts an (x, y) coordinate into its (x, y, 0) form.
func ToXYZ(xy [2]int) XYZ {
	return XYZ{xy[0], xy[1], 0}
}

// Minimise reduces the coordinate to its minimal form, with at most two
// non-zero components of opposite signs. Adding or subtracting (1, 1, 1)
// does not change the point described.
func (p XYZ) Minimise() XYZ {
	m := max(min(p.X, p.Y), min(max(p.X, p.Y), p.Z))
	return XYZ{p.X - m, p.Y - m, p.Z - m}
}

// ShortestMeshPathLength is the length of a shortest path from source to
// destination without using wraparound links.
func ShortestMeshPathLength(source, destination XYZ) int {
	x := destination.X - source.X
	y := destination.Y - source.Y
	z := destination.Z - source.Z

	// A minimal vector has at most two non-zero components with opposite
	// signs, so its magnitude is the range of its components, and
	// minimising never changes the range.
	maximum := x
	if y > maximum {
		maximum = y
	}
	if z > maximum {
		maximum = z
	}

	minimum := x
	if y < minimum {
		minimum = y
	}
	if z < minimum {
		minimum = z
	}

	return maximum - minimum
}

// ShortestMeshPath is a shortest vector from source to destination without
// using wraparound links.
func ShortestMeshPath(source, destination XYZ) XYZ {
	return XYZ{
		destination.X - source.X,
		destination.Y - source.Y,
		destination.Z - source.Z,
	}.Minimise()
}

// ShortestTorusPathLength is the length of a shortest path from source to
// destination using wraparound links on a width x height torus.
//
// See http://jhnet.co.uk/articles/torus_paths for an explanation of how
// this method works.
func ShortestTorusPathLength(source, destination XYZ, width, height int) int {
	// The (x, y) vector from source to destination as if the source was
	// at (0, 0), with both components non-negative.
	x := destination.X - source.X
	y := destination.Y - source.Y
	z := destination.Z - source.Z
	x, y = x-z, y-z
	x = mod(x, width)
	y = mod(y, height)

	// No wrap.
	length := x
	if y > length {
		length = y
	}

	// Wrap x only.
	if wrapX := width - x + y; wrapX < length {
		length = wrapX
	}

	// Wrap y only.
	if wrapY := x + height - y; wrapY < length {
		length = wrapY
	}

	// Wrap both.
	wrapXY := width - x
	if height-y > wrapXY {
		wrapXY = height - y
	}
	if wrapXY < length {
		return wrapXY
	}
	return length
}

// ShortestTorusPath is a shortest vector from source to destination using
// wraparound links on a width x height torus. When multiple shortest paths
// exist, one is chosen at random with uniform probability using rng.
//
// See http://jhnet.co.uk/articles/torus_paths for an explanation of how
// this method works.
func ShortestTorusPath(
	source, destination XYZ,
	width, height int,
	rng *rngstream.RngStream,
) XYZ {
	sx, sy := source.X-source.Z, source.Y-source.Z

	// Translate the destination as if the source was at (0, 0, 0), in
	// (x, y, 0) form with both components non-negative.
	dx := mod(destination.X-destination.Z-sx, width)
	dy := mod(destination.Y-destination.Z-sy, height)

	approaches := [4]struct {
		distance int
		vector   XYZ
	}{
		{max(dx, dy), XYZ{dx, dy, 0}},
		{width - dx + dy, XYZ{-(width - dx), dy, 0}},
		{dx + height - dy, XYZ{dx, -(height - dy), 0}},
		{max(width-dx, height-dy),
			XYZ{-(width - dx), -(height - dy), 0}},
	}

	// Select a minimal approach, breaking ties at random.
	best := approaches[0].vector
	bestKey := float64(approaches[0].distance) + rng.RandU01()
	for _, approach := range approaches[1:] {
		key := float64(approach.distance) + rng.RandU01()
		if key < bestKey {
			bestKey = key
			best = approach.vector
		}
	}
	minimised := best.Minimise()
	x, y, z := minimised.X, minimised.Y, minimised.Z

	// Fold in a random number of spirals on the z axis where possible.
	if abs(x) >= height {
		top := x
		if x < 0 {
			top = x + height - 1
		}
		maxSpirals := floorDiv(top, height)
		d := rng.RandInt(min(0, maxSpirals), max(0, maxSpirals)) *
			height
		x -= d
		z -= d
	} else if abs(y) >= width {
		top := y
		if y < 0 {
			top = y + width - 1
		}
		maxSpirals := floorDiv(top, width)
		d := rng.RandInt(min(0, maxSpirals), max(0, maxSpirals)) *
			width
		y -= d
		z -= d
	}

	return XYZ{x, y, z}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// floorDiv rounds towards negative infinity.
func floorDiv(a, n int) int {
	q := a / n
	if (a%n != 0) && ((a < 0) != (n < 0)) {
		q--
	}
	return q
}
