package machine

// Wrap selects how coordinate arithmetic behaves at the edges of a machine.
// A machine that uses every board of a toroidal cabling loop wraps in that
// axis; a machine that is a subsection of a larger one does not.
type Wrap int

const (
	// NoWrap is a bounded mesh with no wraparound in either axis.
	NoWrap Wrap = iota

	// HorizontalWrap wraps x coordinates modulo the machine width only.
	HorizontalWrap

	// VerticalWrap wraps y coordinates modulo the machine height only.
	VerticalWrap

	// FullWrap wraps both axes, giving a full torus.
	FullWrap
)

// WrapForSize returns the wrap that the standard board family implies for a
// machine of the given dimensions. A dimension is wrapped when it is an
// exact multiple of the triad size; the single 4-chip board is cabled as a
// torus.
func WrapForSize(width, height int) Wrap {
	if width == 2 && height == 2 {
		return FullWrap
	}

	switch {
	case width%TriadWidth == 0 && height%TriadHeight == 0:
		return FullWrap
	case width%TriadWidth == 0:
		return HorizontalWrap
	case height%TriadHeight == 0:
		return VerticalWrap
	default:
		return NoWrap
	}
}

// Horizontal reports whether x coordinates wrap.
func (w Wrap) Horizontal() bool {
	return w == HorizontalWrap || w == FullWrap
}

// Vertical reports whether y coordinates wrap.
func (w Wrap) Vertical() bool {
	return w == VerticalWrap || w == FullWrap
}

func (w Wrap) String() string {
	switch w {
	case NoWrap:
		return "NoWrap"
	case HorizontalWrap:
		return "HorWrap"
	case VerticalWrap:
		return "VerWrap"
	case FullWrap:
		return "Wrapped"
	default:
		return "UnknownWrap"
	}
}
