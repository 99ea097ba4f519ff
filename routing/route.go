// Package routing holds the bit-level representation of a chip router's
// routing-table rows: the hardware route codec, multicast entries with
// their key and mask, and the per-chip fixed route.
package routing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
)

// A Route is a routing-table row as the hardware reads it: one bit per
// destination. Link IDs occupy the low six bits; processor IDs occupy the
// bits above them.
type Route uint32

// RouteFromIDs packs destination processor and link IDs into a Route.
// Duplicated or out-of-range IDs are rejected.
func RouteFromIDs(processorIDs, linkIDs []int) (Route, error) {
	var route Route

	for _, id := range linkIDs {
		if id < 0 || id >= machine.MaxLinksPerRouter {
			return 0, fmt.Errorf(
				"%w: link ID %d", machine.ErrInvalidParameter, id)
		}
		if route&(1<<id) != 0 {
			return 0, fmt.Errorf(
				"%w: link ID %d", machine.ErrAlreadyExists, id)
		}
		route |= 1 << id
	}

	for _, id := range processorIDs {
		if id < 0 || id >= machine.MaxCoresPerRouter {
			return 0, fmt.Errorf(
				"%w: processor ID %d", machine.ErrInvalidParameter, id)
		}
		bit := Route(1) << (machine.MaxLinksPerRouter + id)
		if route&bit != 0 {
			return 0, fmt.Errorf(
				"%w: processor ID %d", machine.ErrAlreadyExists, id)
		}
		route |= bit
	}

	return route, nil
}

// ProcessorIDs unpacks the destination processor IDs, in ascending order.
func (r Route) ProcessorIDs() []int {
	var ids []int
	for id := 0; id < machine.MaxCoresPerRouter; id++ {
		if r&(1<<(machine.MaxLinksPerRouter+id)) != 0 {
			ids = append(ids, id)
		}
	}

	return ids
}

// LinkIDs unpacks the destination link IDs, in ascending order.
func (r Route) LinkIDs() []int {
	var ids []int
	for id := 0; id < machine.MaxLinksPerRouter; id++ {
		if r&(1<<id) != 0 {
			ids = append(ids, id)
		}
	}

	return ids
}

// HasProcessor reports whether the route sends to the given processor.
func (r Route) HasProcessor(id int) bool {
	return id >= 0 && id < machine.MaxCoresPerRouter &&
		r&(1<<(machine.MaxLinksPerRouter+id)) != 0
}

// HasLink reports whether the route sends out of the given link.
func (r Route) HasLink(id int) bool {
	return id >= 0 && id < machine.MaxLinksPerRouter && r&(1<<id) != 0
}

// Merge combines the destinations of two routes.
func (r Route) Merge(other Route) Route {
	return r | other
}

func idSetString(ids []int) string {
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprint(id)
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func (r Route) String() string {
	return fmt.Sprintf("%s:%s",
		idSetString(r.ProcessorIDs()), idSetString(r.LinkIDs()))
}
