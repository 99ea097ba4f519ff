package routing

import "fmt"

// A FixedRouteEntry is the sole entry of a chip's fixed-route routing
// table. There is only one fixed route entry per chip.
type FixedRouteEntry struct {
	route Route
}

// NewFixedRouteEntry builds a fixed route from explicit destination IDs.
func NewFixedRouteEntry(processorIDs, linkIDs []int) (FixedRouteEntry, error) {
	route, err := RouteFromIDs(processorIDs, linkIDs)
	if err != nil {
		return FixedRouteEntry{}, err
	}

	return FixedRouteEntry{route: route}, nil
}

// Route returns the encoded hardware route.
func (f FixedRouteEntry) Route() Route {
	return f.route
}

// ProcessorIDs returns the destination processor IDs, in ascending order.
func (f FixedRouteEntry) ProcessorIDs() []int {
	return f.route.ProcessorIDs()
}

// LinkIDs returns the destination link IDs, in ascending order.
func (f FixedRouteEntry) LinkIDs() []int {
	return f.route.LinkIDs()
}

func (f FixedRouteEntry) String() string {
	return fmt.Sprintf("%s:%s",
		idSetString(f.route.LinkIDs()), idSetString(f.route.ProcessorIDs()))
}
