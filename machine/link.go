package machine

import "fmt"

const noDefaultLink = -1

// A Link is one directional connection from a chip's router towards a
// neighbouring chip. Links are owned by the router that holds them and
// neighbours are recorded by coordinate, never by pointer.
type Link struct {
	source       XY
	sourceLinkID int
	destination  XY

	// Link IDs that unrouted multicast traffic is forwarded from and to.
	// Each is set at most once.
	multicastDefaultFrom int
	multicastDefaultTo   int
}

// NewLink creates a link leaving the chip at source through sourceLinkID
// towards the chip at destination. The link ID must be one of the six
// hexagonal directions 0 to 5.
func NewLink(source XY, sourceLinkID int, destination XY) (*Link, error) {
	if sourceLinkID < 0 || sourceLinkID >= MaxLinksPerRouter {
		return nil, fmt.Errorf(
			"%w: link ID %d is not in the range 0 to %d",
			ErrInvalidParameter, sourceLinkID, MaxLinksPerRouter-1)
	}

	return &Link{
		source:               source,
		sourceLinkID:         sourceLinkID,
		destination:          destination,
		multicastDefaultFrom: noDefaultLink,
		multicastDefaultTo:   noDefaultLink,
	}, nil
}

// Source returns the coordinate of the chip the link leaves.
func (l *Link) Source() XY {
	return l.source
}

// SourceLinkID returns the ID of the link on the source chip.
func (l *Link) SourceLinkID() int {
	return l.sourceLinkID
}

// Destination returns the coordinate of the chip the link enters.
func (l *Link) Destination() XY {
	return l.destination
}

// SetMulticastDefaultFrom records the link ID whose unrouted multicast
// traffic is forwarded out of this link by the hardware default route. It
// may only be set once.
func (l *Link) SetMulticastDefaultFrom(linkID int) error {
	return setOnce(&l.multicastDefaultFrom, linkID, "multicast default from")
}

// SetMulticastDefaultTo records the link ID that this link's unrouted
// multicast traffic is forwarded to by the hardware default route. It may
// only be set once.
func (l *Link) SetMulticastDefaultTo(linkID int) error {
	return setOnce(&l.multicastDefaultTo, linkID, "multicast default to")
}

// MulticastDefaultFrom returns the link ID set by SetMulticastDefaultFrom,
// or false if it was never set.
func (l *Link) MulticastDefaultFrom() (int, bool) {
	return l.multicastDefaultFrom, l.multicastDefaultFrom != noDefaultLink
}

// MulticastDefaultTo returns the link ID set by SetMulticastDefaultTo, or
// false if it was never set.
func (l *Link) MulticastDefaultTo() (int, bool) {
	return l.multicastDefaultTo, l.multicastDefaultTo != noDefaultLink
}

func setOnce(field *int, linkID int, name string) error {
	if linkID < 0 || linkID >= MaxLinksPerRouter {
		return fmt.Errorf(
			"%w: %s link ID %d is not in the range 0 to %d",
			ErrInvalidParameter, name, linkID, MaxLinksPerRouter-1)
	}

	if *field != noDefaultLink {
		return fmt.Errorf(
			"%w: %s is already set to %d", ErrInvalidParameter, name, *field)
	}

	*field = linkID

	return nil
}

func (l *Link) String() string {
	return fmt.Sprintf(
		"[Link: source_x=%d, source_y=%d, source_link_id=%d, "+
			"destination_x=%d, destination_y=%d]",
		l.source.X, l.source.Y, l.sourceLinkID,
		l.destination.X, l.destination.Y)
}
