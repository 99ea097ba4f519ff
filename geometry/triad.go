// Package geometry holds the coordinate mathematics of hexagonal boards
// arranged in triads, plus path calculations over the toroidal grids the
// triads tile into.
package geometry

import (
	"math"
	"sync"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
)

// A TriadGeometry describes a "triad" of hexagonal boards: the dimensions
// of the triad, the dimensions of one board, and where the
// ethernet-connected root chips of the three boards sit within the triad.
type TriadGeometry struct {
	triadWidth  int
	triadHeight int
	boardWidth  int
	boardHeight int
	roots       []machine.XY

	// ethernetOffset[y][x] is the position of chip (x, y) relative to the
	// root of the board that owns it. Note the index order.
	ethernetOffset [][]machine.XY
}

var (
	spinn5Once     sync.Once
	spinn5Geometry *TriadGeometry
)

// Spinn5 returns the geometry of the standard SpiNN-5 triad: 12 x 12 chips
// per triad, three 8 x 8 boards rooted at (0, 0), (4, 8) and (8, 4). The
// same object is returned every time.
func Spinn5() *TriadGeometry {
	spinn5Once.Do(func() {
		// The centre is slightly offset to force which edges belong to
		// which board.
		spinn5Geometry = NewTriadGeometry(
			12, 12, 8, 8,
			[]machine.XY{{X: 0, Y: 0}, {X: 4, Y: 8}, {X: 8, Y: 4}},
			3.6, 3.4)
	})

	return spinn5Geometry
}

// NewTriadGeometry builds the geometry of a triad of hexagonal boards.
// roots locates the ethernet-connected chip of each board within the
// triad; (centreX, centreY) is the distance from each root to the
// theoretical centre of its hexagon, which need not be an actual chip.
func NewTriadGeometry(
	triadWidth, triadHeight, boardWidth, boardHeight int,
	roots []machine.XY,
	centreX, centreY float64,
) *TriadGeometry {
	g := &TriadGeometry{
		triadWidth:  triadWidth,
		triadHeight: triadHeight,
		boardWidth:  boardWidth,
		boardHeight: boardHeight,
		roots:       roots,
	}

	// Copy the root locations to the surrounding triads so the nearest
	// root to an edge chip may be found in a neighbouring triad.
	var extendedRoots []machine.XY
	for _, root := range roots {
		for _, x1 := range [3]int{-triadWidth, 0, triadWidth} {
			for _, y1 := range [3]int{-triadHeight, 0, triadHeight} {
				extendedRoots = append(
					extendedRoots, machine.XY{X: root.X + x1, Y: root.Y + y1})
			}
		}
	}

	g.ethernetOffset = make([][]machine.XY, triadHeight)
	for y := 0; y < triadHeight; y++ {
		g.ethernetOffset[y] = make([]machine.XY, triadWidth)
		for x := 0; x < triadWidth; x++ {
			nearest := locateNearestRoot(
				machine.XY{X: x, Y: y}, extendedRoots, centreX, centreY)
			g.ethernetOffset[y][x] = machine.XY{
				X: x - nearest.X, Y: y - nearest.Y}
		}
	}

	return g
}

// hexagonalMetricDistance is the distance of a point from the centre of a
// hexagon: the max of the magnitudes of the dot products with the normal
// vectors (1,0), (0,1) and (1,-1) of the hexagon sides.
func hexagonalMetricDistance(x, y int, centreX, centreY float64) float64 {
	dx := float64(x) - centreX
	dy := float64(y) - centreY
	return math.Max(math.Abs(dx), math.Max(math.Abs(dy), math.Abs(dx-dy)))
}

// locateNearestRoot finds the root whose board owns a chip: the one whose
// nominal board centre the chip is closest to in the hexagonal metric.
func locateNearestRoot(
	xy machine.XY, roots []machine.XY, centreX, centreY float64,
) machine.XY {
	best := roots[0]
	bestDistance := math.Inf(1)
	for _, root := range roots {
		d := hexagonalMetricDistance(
			xy.X, xy.Y, float64(root.X)+centreX, float64(root.Y)+centreY)
		if d < bestDistance {
			bestDistance = d
			best = root
		}
	}

	return best
}

// LocalChipCoordinate returns the position of a chip relative to the
// ethernet-connected chip of the board that owns it, for a machine whose
// boot chip is at root.
func (g *TriadGeometry) LocalChipCoordinate(xy, root machine.XY) machine.XY {
	dx := mod(xy.X-root.X, g.triadWidth)
	dy := mod(xy.Y-root.Y, g.triadHeight)
	return g.ethernetOffset[dy][dx]
}

// EthernetChipCoordinates returns the coordinates of the
// ethernet-connected chip of the board that owns a chip, wrapped into a
// width x height machine whose boot chip is at root. The chip at the
// result may not actually be working.
func (g *TriadGeometry) EthernetChipCoordinates(
	xy machine.XY, width, height int, root machine.XY,
) machine.XY {
	local := g.LocalChipCoordinate(xy, root)
	return machine.XY{
		X: mod(xy.X-local.X, width),
		Y: mod(xy.Y-local.Y, height),
	}
}

// PotentialEthernetChips returns the coordinates at which a width x height
// machine may carry ethernet-connected chips.
func (g *TriadGeometry) PotentialEthernetChips(
	width, height int,
) []machine.XY {
	ethWidth := width
	if width%g.triadWidth != 0 {
		ethWidth = width - g.boardWidth + 1
	}
	ethHeight := height
	if height%g.triadHeight != 0 {
		ethHeight = height - g.boardHeight + 1
	}

	// Single boards, like the 2 x 2, only ever have a root at the origin.
	if ethWidth <= 0 || ethHeight <= 0 {
		return []machine.XY{{X: 0, Y: 0}}
	}

	var chips []machine.XY
	for _, root := range g.roots {
		for y := root.Y; y < ethHeight; y += g.triadHeight {
			for x := root.X; x < ethWidth; x += g.triadWidth {
				chips = append(chips, machine.XY{X: x, Y: y})
			}
		}
	}

	return chips
}

// TriadWidth returns the width of the triad in chips.
func (g *TriadGeometry) TriadWidth() int {
	return g.triadWidth
}

// TriadHeight returns the height of the triad in chips.
func (g *TriadGeometry) TriadHeight() int {
	return g.triadHeight
}

// BoardWidth returns the width of one board in chips.
func (g *TriadGeometry) BoardWidth() int {
	return g.boardWidth
}

// BoardHeight returns the height of one board in chips.
func (g *TriadGeometry) BoardHeight() int {
	return g.boardHeight
}

// Roots returns the root chip locations within the triad.
func (g *TriadGeometry) Roots() []machine.XY {
	return g.roots
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
