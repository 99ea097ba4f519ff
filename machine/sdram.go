package machine

import "fmt"

// DefaultSDRAMBytes is the amount of SDRAM on a production chip.
const DefaultSDRAMBytes = 123469792

// SDRAM is the off-die memory shared between the cores of one chip.
type SDRAM struct {
	size int
}

// NewSDRAM creates an SDRAM of the given capacity in bytes. The capacity
// cannot be negative.
func NewSDRAM(size int) (SDRAM, error) {
	if size < 0 {
		return SDRAM{}, fmt.Errorf(
			"%w: SDRAM size %d is negative", ErrInvalidParameter, size)
	}

	return SDRAM{size: size}, nil
}

// Size returns the capacity of the SDRAM in bytes.
func (s SDRAM) Size() int {
	return s.size
}

func (s SDRAM) String() string {
	return fmt.Sprintf("%d MB", s.size/(1024*1024))
}
