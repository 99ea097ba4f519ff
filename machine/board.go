package machine

// Dimensions of the boards of the standard family.
const (
	// SizeXOfOneBoard and SizeYOfOneBoard bound the local coordinates of a
	// 48-chip board.
	SizeXOfOneBoard = 8
	SizeYOfOneBoard = 8

	// TriadWidth and TriadHeight are the dimensions of the repeating
	// three-board tiling unit, in chips.
	TriadWidth  = 12
	TriadHeight = 12

	// MaxChipsPer48Board and MaxChipsPer4ChipBoard are the chip counts of
	// the two physical board sizes.
	MaxChipsPer48Board    = 48
	MaxChipsPer4ChipBoard = 4

	// DefaultMaxCoresPerChip is the core count of a chip with no broken
	// cores.
	DefaultMaxCoresPerChip = 18
)

// chipsPerBoard48 maps the local coordinates of the 48 chips of a standard
// board to the typical number of working cores in that position. The
// million-core machine was built with the 17-core chips placed in the same
// position on nearly every board.
var chipsPerBoard48 = map[XY]int{
	{0, 0}: 18, {0, 1}: 18, {0, 2}: 18, {0, 3}: 18, {1, 0}: 18, {1, 1}: 17,
	{1, 2}: 18, {1, 3}: 17, {1, 4}: 18, {2, 0}: 18, {2, 1}: 18, {2, 2}: 18,
	{2, 3}: 18, {2, 4}: 18, {2, 5}: 18, {3, 0}: 18, {3, 1}: 17, {3, 2}: 18,
	{3, 3}: 17, {3, 4}: 18, {3, 5}: 17, {3, 6}: 18, {4, 0}: 18, {4, 1}: 18,
	{4, 2}: 18, {4, 3}: 18, {4, 4}: 18, {4, 5}: 18, {4, 6}: 18, {4, 7}: 18,
	{5, 1}: 18, {5, 2}: 17, {5, 3}: 18, {5, 4}: 17, {5, 5}: 18, {5, 6}: 17,
	{5, 7}: 18, {6, 2}: 18, {6, 3}: 18, {6, 4}: 18, {6, 5}: 18, {6, 6}: 18,
	{6, 7}: 18, {7, 3}: 18, {7, 4}: 18, {7, 5}: 18, {7, 6}: 18, {7, 7}: 18,
}

// board48ChipOrder lists the local coordinates of chipsPerBoard48 in a fixed
// column-major order so board iteration is deterministic.
var board48ChipOrder = func() []XY {
	var order []XY
	for x := 0; x < SizeXOfOneBoard; x++ {
		for y := 0; y < SizeYOfOneBoard; y++ {
			if _, ok := chipsPerBoard48[XY{x, y}]; ok {
				order = append(order, XY{x, y})
			}
		}
	}

	return order
}()

// fullGridChipOrder lists every coordinate of a width x height grid, used as
// the board layout of machines that are not built from 48-chip boards.
func fullGridChipOrder(width, height int) []XY {
	order := make([]XY, 0, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			order = append(order, XY{x, y})
		}
	}

	return order
}
