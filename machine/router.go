package machine

import "fmt"

const (
	// MaxLinksPerRouter is the number of hexagonal link directions.
	MaxLinksPerRouter = 6

	// MaxCoresPerRouter is the largest processor ID a router can address in
	// a routing entry.
	MaxCoresPerRouter = 18

	// RouterEntries is the number of multicast routing table slots on a
	// production router, less the system-reserved one.
	RouterEntries = 1023

	// RouterClockSpeed is the router clock in Hz.
	RouterClockSpeed = 150 * 1000 * 1000

	linkOpposite = 3
)

// A Router is the per-chip component that owns the chip's links and the
// multicast routing table metadata. It is owned exclusively by its chip.
type Router struct {
	links                      [MaxLinksPerRouter]*Link
	nLinks                     int
	emergencyRouting           bool
	clockSpeed                 int
	nAvailableMulticastEntries int
}

// NewRouter creates a router owning the given links. Two links with the
// same source link ID are rejected.
func NewRouter(links []*Link, nAvailableMulticastEntries int) (*Router, error) {
	r := &Router{
		clockSpeed:                 RouterClockSpeed,
		nAvailableMulticastEntries: nAvailableMulticastEntries,
	}

	for _, link := range links {
		if err := r.addLink(link); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Router) addLink(link *Link) error {
	id := link.SourceLinkID()
	if r.links[id] != nil {
		return fmt.Errorf("%w: link %d", ErrAlreadyExists, id)
	}

	r.links[id] = link
	r.nLinks++

	return nil
}

// HasLink reports whether there is a link with the given source link ID.
func (r *Router) HasLink(sourceLinkID int) bool {
	return sourceLinkID >= 0 && sourceLinkID < MaxLinksPerRouter &&
		r.links[sourceLinkID] != nil
}

// Link returns the link with the given source link ID, or nil if there is
// no such link.
func (r *Router) Link(sourceLinkID int) *Link {
	if sourceLinkID < 0 || sourceLinkID >= MaxLinksPerRouter {
		return nil
	}

	return r.links[sourceLinkID]
}

// Links returns the populated links of the router in link-ID order.
func (r *Router) Links() []*Link {
	links := make([]*Link, 0, r.nLinks)
	for _, link := range r.links {
		if link != nil {
			links = append(links, link)
		}
	}

	return links
}

// NLinks returns the number of populated links.
func (r *Router) NLinks() int {
	return r.nLinks
}

// EmergencyRouting reports whether emergency routing is enabled.
func (r *Router) EmergencyRouting() bool {
	return r.emergencyRouting
}

// ClockSpeed returns the router clock in Hz.
func (r *Router) ClockSpeed() int {
	return r.clockSpeed
}

// NAvailableMulticastEntries returns the number of multicast routing table
// slots not reserved for system purposes.
func (r *Router) NAvailableMulticastEntries() int {
	return r.nAvailableMulticastEntries
}

// NeighbouringChipCoords lists the destination coordinates of the populated
// links, in link-ID order.
func (r *Router) NeighbouringChipCoords() []XY {
	coords := make([]XY, 0, r.nLinks)
	for _, link := range r.links {
		if link != nil {
			coords = append(coords, link.Destination())
		}
	}

	return coords
}

func (r *Router) String() string {
	return fmt.Sprintf("[Router: available_entries=%d, links=%v]",
		r.nAvailableMulticastEntries, r.Links())
}

// OppositeLink returns the link direction directly opposite the given one.
// The input must be a valid link ID.
func OppositeLink(linkID int) int {
	return (linkID + linkOpposite) % MaxLinksPerRouter
}
