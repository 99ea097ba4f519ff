package routing

import (
	"fmt"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
)

// An Entry is one row of a chip's multicast routing table, without its key
// and mask. An entry is defaultable if it duplicates the hardware default
// of sending a packet out on the link opposite the one it arrived on,
// without routing it to any processors; the hardware slot it would occupy
// can then be reclaimed.
type Entry struct {
	route       Route
	defaultable bool
}

// NewEntry builds an entry from explicit destination IDs.
func NewEntry(processorIDs, linkIDs []int) (Entry, error) {
	route, err := RouteFromIDs(processorIDs, linkIDs)
	if err != nil {
		return Entry{}, err
	}

	return Entry{route: route}, nil
}

// NewEntryIncoming builds an entry from explicit destination IDs, deriving
// the defaultable flag from the link the routed traffic arrives on. An
// entry is defaultable only when its sole destination is the link opposite
// incomingLink.
func NewEntryIncoming(
	processorIDs, linkIDs []int, incomingLink int,
) (Entry, error) {
	route, err := RouteFromIDs(processorIDs, linkIDs)
	if err != nil {
		return Entry{}, err
	}

	defaultable := len(processorIDs) == 0 && len(linkIDs) == 1 &&
		linkIDs[0] == machine.OppositeLink(incomingLink)

	return Entry{route: route, defaultable: defaultable}, nil
}

// EntryFromRoute builds an entry from an already-encoded route.
func EntryFromRoute(route Route, defaultable bool) Entry {
	return Entry{route: route, defaultable: defaultable}
}

// Route returns the encoded hardware route.
func (e Entry) Route() Route {
	return e.route
}

// ProcessorIDs returns the destination processor IDs, in ascending order.
func (e Entry) ProcessorIDs() []int {
	return e.route.ProcessorIDs()
}

// LinkIDs returns the destination link IDs, in ascending order.
func (e Entry) LinkIDs() []int {
	return e.route.LinkIDs()
}

// Defaultable reports whether this entry duplicates the hardware default
// behaviour.
func (e Entry) Defaultable() bool {
	return e.defaultable
}

// Merge joins the destinations of two entries, as used to add a new
// destination to an existing route. The result is defaultable only if both
// inputs were.
func (e Entry) Merge(other Entry) Entry {
	if e == other {
		return e
	}

	return Entry{
		route:       e.route.Merge(other.route),
		defaultable: e.defaultable && other.defaultable,
	}
}

func (e Entry) String() string {
	if e.defaultable {
		return e.route.String() + "(defaultable)"
	}
	return e.route.String()
}

// A MulticastEntry is a full multicast routing-table row: the key and mask
// that select it plus the entry that routes it.
type MulticastEntry struct {
	key   uint32
	mask  uint32
	entry Entry
}

// NewMulticastEntry builds a multicast routing-table row. The key must be
// unchanged by masking with the mask.
func NewMulticastEntry(key, mask uint32, entry Entry) (MulticastEntry, error) {
	if key&mask != key {
		return MulticastEntry{}, fmt.Errorf(
			"%w: key 0x%08X is changed when masked with mask 0x%08X",
			machine.ErrInvalidParameter, key, mask)
	}

	return MulticastEntry{key: key, mask: mask, entry: entry}, nil
}

// Key returns the routing key.
func (m MulticastEntry) Key() uint32 {
	return m.key
}

// Mask returns the routing mask.
func (m MulticastEntry) Mask() uint32 {
	return m.mask
}

// Entry returns the routing entry.
func (m MulticastEntry) Entry() Entry {
	return m.entry
}

// Merge joins the destinations of two rows with the same key and mask.
func (m MulticastEntry) Merge(other MulticastEntry) (MulticastEntry, error) {
	if other.key != m.key {
		return MulticastEntry{}, fmt.Errorf(
			"%w: key 0x%08X does not match 0x%08X",
			machine.ErrInvalidParameter, other.key, m.key)
	}
	if other.mask != m.mask {
		return MulticastEntry{}, fmt.Errorf(
			"%w: mask 0x%08X does not match 0x%08X",
			machine.ErrInvalidParameter, other.mask, m.mask)
	}

	return MulticastEntry{
		key:   m.key,
		mask:  m.mask,
		entry: m.entry.Merge(other.entry),
	}, nil
}

func (m MulticastEntry) String() string {
	return fmt.Sprintf("0x%08X:0x%08X:%s", m.key, m.mask, m.entry)
}
