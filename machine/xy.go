package machine

import "fmt"

// XY identifies a chip by its position in the two-dimensional grid of chips.
type XY struct {
	X, Y int
}

func (xy XY) String() string {
	return fmt.Sprintf("(%d, %d)", xy.X, xy.Y)
}

// linkAddTable gives the amount to add to the x and y coordinates to get the
// coordinate down the given link (0=E, 1=NE, 2=N, 3=W, 4=SW, 5=S).
var linkAddTable = [MaxLinksPerRouter]XY{
	{1, 0}, {1, 1}, {0, 1}, {-1, 0}, {-1, -1}, {0, -1},
}
