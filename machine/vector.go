package machine

// A Vector is a (dx, dy, dz) step count over the three link axes of a
// hexagonal grid. A positive dz is a move along both x and y at once, so a
// minimised vector has at most two non-zero components and they have
// opposite signs.
type Vector struct {
	DX, DY, DZ int
}

// minimizeVector reduces an (x, y) displacement to its minimal three-axis
// form by replacing matching-sign x and y moves with diagonal z moves.
func minimizeVector(x, y int) Vector {
	if x > 0 {
		if y > 0 {
			// Both positive, use a diagonal for the shorter of the two.
			if x > y {
				return Vector{x - y, 0, -y}
			}
			return Vector{0, y - x, -x}
		}
		// Opposite signs, nothing to cancel.
		return Vector{x, y, 0}
	}
	if y > 0 {
		return Vector{x, y, 0}
	}
	// Both negative, use a diagonal for the one closer to zero.
	if x > y {
		return Vector{0, y - x, -x}
	}
	return Vector{x - y, 0, -y}
}

// VectorLength returns the hop count of the shortest path from source to
// destination, wraparound links included where the machine has them.
func (m *Machine) VectorLength(source, destination XY) int {
	switch m.wrap {
	case FullWrap:
		return m.fullWrapVectorLength(source, destination)
	case HorizontalWrap:
		return m.horizontalWrapVectorLength(source, destination)
	case VerticalWrap:
		return m.verticalWrapVectorLength(source, destination)
	default:
		return noWrapVectorLength(source, destination)
	}
}

// Vector returns a minimised (dx, dy, dz) of a shortest path from source to
// destination, wraparound links included where the machine has them. When
// several paths tie, the choice between them is fixed but arbitrary.
func (m *Machine) Vector(source, destination XY) Vector {
	switch m.wrap {
	case FullWrap:
		return m.fullWrapVector(source, destination)
	case HorizontalWrap:
		return m.horizontalWrapVector(source, destination)
	case VerticalWrap:
		return m.verticalWrapVector(source, destination)
	default:
		return minimizeVector(
			destination.X-source.X, destination.Y-source.Y)
	}
}

func noWrapVectorLength(source, destination XY) int {
	x := destination.X - source.X
	y := destination.Y - source.Y

	// With matching signs an x and a y step merge into one z step, so the
	// length is the greater magnitude. With opposite signs nothing merges
	// and the length is the sum of the magnitudes.
	if x > 0 {
		if y > 0 {
			if x > y {
				return x
			}
			return y
		}
		return x - y
	}
	if y > 0 {
		return y - x
	}
	if x > y {
		return -y
	}
	return -x
}

func (m *Machine) fullWrapVectorLength(source, destination XY) int {
	w, h := m.width, m.height

	xUp := mod(destination.X-source.X, w)
	xDown := xUp - w
	yRight := mod(destination.Y-source.Y, h)
	yLeft := yRight - h

	// Both deltas positive, so the greater.
	length := xUp
	if yRight > length {
		length = yRight
	}

	// Negative x with positive y, sum of magnitudes.
	if negX := yRight - xDown; negX < length {
		length = negX
	}

	// Positive x with negative y, sum of magnitudes.
	if negY := xUp - yLeft; negY < length {
		length = negY
	}

	// Both negative, so the greater magnitude.
	negXY := -xDown
	if xDown > yLeft {
		negXY = -yLeft
	}
	if negXY < length {
		return negXY
	}
	return length
}

func (m *Machine) fullWrapVector(source, destination XY) Vector {
	w, h := m.width, m.height

	xUp := mod(destination.X-source.X, w)
	xDown := xUp - w
	yRight := mod(destination.Y-source.Y, h)
	yLeft := yRight - h

	length := xUp
	if yRight > length {
		length = yRight
	}
	dx, dy := xUp, yRight

	if negX := yRight - xDown; negX < length {
		length = negX
		dx = xDown
	}

	if negY := xUp - yLeft; negY < length {
		length = negY
		dx = xUp
		dy = yLeft
	}

	negXY := -xDown
	if xDown > yLeft {
		negXY = -yLeft
	}
	if negXY < length {
		return minimizeVector(xDown, yLeft)
	}
	return minimizeVector(dx, dy)
}

func (m *Machine) horizontalWrapVectorLength(source, destination XY) int {
	xRight := mod(destination.X-source.X, m.width)
	xLeft := xRight - m.width
	y := destination.Y - source.Y

	lenRight, lenLeft := horizontalWrapLengths(xRight, xLeft, y)
	if lenRight < lenLeft {
		return lenRight
	}
	return lenLeft
}

func (m *Machine) horizontalWrapVector(source, destination XY) Vector {
	xRight := mod(destination.X-source.X, m.width)
	xLeft := xRight - m.width
	y := destination.Y - source.Y

	lenRight, lenLeft := horizontalWrapLengths(xRight, xLeft, y)
	if lenRight < lenLeft {
		return minimizeVector(xRight, y)
	}
	return minimizeVector(xLeft, y)
}

func horizontalWrapLengths(xRight, xLeft, y int) (lenRight, lenLeft int) {
	if y > 0 {
		lenRight = xRight
		if y > lenRight {
			lenRight = y
		}
		lenLeft = y - xLeft
	} else {
		lenRight = xRight - y
		if xLeft > y {
			lenLeft = -y
		} else {
			lenLeft = -xLeft
		}
	}
	return lenRight, lenLeft
}

func (m *Machine) verticalWrapVectorLength(source, destination XY) int {
	x := destination.X - source.X
	yUp := mod(destination.Y-source.Y, m.height)
	yDown := yUp - m.height

	lenUp, lenDown := verticalWrapLengths(x, yUp, yDown)
	if lenUp < lenDown {
		return lenUp
	}
	return lenDown
}

func (m *Machine) verticalWrapVector(source, destination XY) Vector {
	x := destination.X - source.X
	yUp := mod(destination.Y-source.Y, m.height)
	yDown := yUp - m.height

	lenUp, lenDown := verticalWrapLengths(x, yUp, yDown)
	if lenUp < lenDown {
		return minimizeVector(x, yUp)
	}
	return minimizeVector(x, yDown)
}

func verticalWrapLengths(x, yUp, yDown int) (lenUp, lenDown int) {
	if x > 0 {
		lenUp = x
		if yUp > lenUp {
			lenUp = yUp
		}
		lenDown = x - yDown
	} else {
		lenUp = yUp - x
		if x > yDown {
			lenDown = -yDown
		} else {
			lenDown = -x
		}
	}
	return lenUp, lenDown
}

// mod is the non-negative remainder.
func mod(a, n int) int {
	return ((a % n) + n) % n
}

// ConcentricXYs produces the coordinates of concentric hexagonal rings
// around start, out to the given radius, with wraparound applied per the
// machine's wrap. The chips at the produced coordinates may not exist, and
// on machines without full wrap the coordinates may fall outside the
// machine or even be negative.
func (m *Machine) ConcentricXYs(radius int, start XY) []XY {
	xys := basicConcentricXYs(radius, start)
	for i, xy := range xys {
		if m.wrap.Horizontal() {
			xy.X = mod(xy.X, m.width)
		}
		if m.wrap.Vertical() {
			xy.Y = mod(xy.Y, m.height)
		}
		xys[i] = xy
	}

	return xys
}

var ringWalk = [MaxLinksPerRouter]XY{
	{1, 1}, {0, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, 0},
}

func basicConcentricXYs(radius int, start XY) []XY {
	xys := []XY{start}
	x, y := start.X, start.Y
	for r := 1; r <= radius; r++ {
		// Step out to the next ring.
		y--
		for _, step := range ringWalk {
			for i := 0; i < r; i++ {
				xys = append(xys, XY{x, y})
				x += step.X
				y += step.Y
			}
		}
	}

	return xys
}
