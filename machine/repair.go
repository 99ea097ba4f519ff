package machine

import (
	"fmt"
	"log"
)

// UnreachableOutgoingChips detects chips with no working link to any
// neighbour. Groups of chips that are only reachable from each other are
// not detected.
func (m *Machine) UnreachableOutgoingChips() []XY {
	var removable []XY
	for _, xy := range m.chipOrder {
		hasLink := false
		for link := 0; link < MaxLinksPerRouter; link++ {
			if m.chips[xy].Router().HasLink(link) {
				hasLink = true
				break
			}
		}
		if !hasLink {
			removable = append(removable, xy)
		}
	}

	return removable
}

// UnreachableIncomingChips detects chips that no neighbour has a working
// link into. Groups of chips that are only reachable from each other are
// not detected.
func (m *Machine) UnreachableIncomingChips() []XY {
	var removable []XY
	for _, xy := range m.chipOrder {
		hasLink := false
		for link := 0; link < MaxLinksPerRouter; link++ {
			next := XY{
				xy.X + linkAddTable[link].X,
				xy.Y + linkAddTable[link].Y,
			}
			if m.HasLinkAt(next.X, next.Y, OppositeLink(link)) {
				hasLink = true
				break
			}
		}
		if !hasLink {
			removable = append(removable, xy)
		}
	}

	return removable
}

// UnreachableOutgoingLocalChips detects chips with no working link to any
// neighbour on the same board.
func (m *Machine) UnreachableOutgoingLocalChips() []XY {
	var removable []XY
	for _, xy := range m.chipOrder {
		chip := m.chips[xy]
		hasLink := false
		for link := 0; link < MaxLinksPerRouter; link++ {
			if !chip.Router().HasLink(link) {
				continue
			}
			next := XY{
				xy.X + linkAddTable[link].X,
				xy.Y + linkAddTable[link].Y,
			}
			neighbour, ok := m.chips[next]
			if ok && neighbour.nearestEthernet == chip.nearestEthernet {
				hasLink = true
				break
			}
		}
		if !hasLink {
			removable = append(removable, xy)
		}
	}

	return removable
}

// UnreachableIncomingLocalChips detects chips that no neighbour on the
// same board has a working link into.
func (m *Machine) UnreachableIncomingLocalChips() []XY {
	var removable []XY
	for _, xy := range m.chipOrder {
		chip := m.chips[xy]
		hasLink := false
		for opposite := 0; opposite < MaxLinksPerRouter; opposite++ {
			link := OppositeLink(opposite)
			next := XY{
				xy.X + linkAddTable[link].X,
				xy.Y + linkAddTable[link].Y,
			}
			neighbour, ok := m.chips[next]
			if ok && neighbour.Router().HasLink(opposite) &&
				neighbour.nearestEthernet == chip.nearestEthernet {
				hasLink = true
				break
			}
		}
		if !hasLink {
			removable = append(removable, xy)
		}
	}

	return removable
}

// A OneWayLink is a working link whose reverse direction is missing.
type OneWayLink struct {
	Source XY
	Out    int
	Back   int
}

// OneWayLinks finds the links of the machine whose destination chip has no
// working link pointing back at the source.
func (m *Machine) OneWayLinks() []OneWayLink {
	var oneWay []OneWayLink
	for _, xy := range m.chipOrder {
		router := m.chips[xy].Router()
		for out := 0; out < MaxLinksPerRouter; out++ {
			link := router.Link(out)
			if link == nil {
				continue
			}
			back := OppositeLink(out)
			dest := link.Destination()
			if !m.HasLinkAt(dest.X, dest.Y, back) {
				oneWay = append(oneWay, OneWayLink{xy, out, back})
			}
		}
	}

	return oneWay
}

type deadLink struct {
	source XY
	link   int
}

// boardAddressOf names the board a chip sits on for the repair warnings.
// A hardware-reported machine can lack the ethernet chip itself.
func boardAddressOf(m *Machine, chip *Chip) string {
	ethernet := m.ChipAt(chip.nearestEthernet)
	if ethernet == nil {
		return "unknown board"
	}
	return ethernet.IPAddress()
}

// Repair removes the chips that cannot reach, or be reached from, a
// neighbour on the same board, along with any one-way links, repeating
// until nothing more needs removing. removedChips lists coordinates
// already dropped while the machine was built; one-way links into them are
// expected and removed silently. The original machine is never modified;
// it is returned unchanged when no repair is needed.
func Repair(original *Machine, removedChips map[XY]bool) (*Machine, error) {
	deadChips := make(map[XY]bool)
	deadLinks := make(map[deadLink]bool)

	for _, xy := range original.UnreachableIncomingLocalChips() {
		chip := original.ChipAt(xy)
		log.Printf("Your machine has unreachable incoming chips at %s on %s",
			original.LocalXY(chip), boardAddressOf(original, chip))
		deadChips[xy] = true
	}
	for _, xy := range original.UnreachableOutgoingLocalChips() {
		chip := original.ChipAt(xy)
		log.Printf("Your machine has unreachable outgoing chips at %s on %s",
			original.LocalXY(chip), boardAddressOf(original, chip))
		deadChips[xy] = true
	}
	for _, oneWay := range original.OneWayLinks() {
		dest := original.XYOverLink(
			oneWay.Source.X, oneWay.Source.Y, oneWay.Out)
		if !removedChips[dest] {
			log.Printf(
				"Link %d from %s to %s has no back link %d",
				oneWay.Out, oneWay.Source, dest, oneWay.Back)
		}
		deadLinks[deadLink{oneWay.Source, oneWay.Out}] = true
	}

	if len(deadChips) == 0 && len(deadLinks) == 0 {
		return original, nil
	}

	repaired, err := rebuildWithout(original, deadChips, deadLinks)
	if err != nil {
		return nil, err
	}

	return Repair(repaired, nil)
}

// rebuildWithout creates a near copy of the machine without the dead bits.
// SpiNNaker and FPGA links are re-derived, so removing a wraparound link
// can produce an extra external link.
func rebuildWithout(
	original *Machine,
	deadChips map[XY]bool,
	deadLinks map[deadLink]bool,
) (*Machine, error) {
	repaired, err := NewWithWrap(
		original.width, original.height, original.wrap)
	if err != nil {
		return nil, err
	}
	repaired.SetOrigin("Fixed")

	for _, xy := range original.chipOrder {
		if deadChips[xy] {
			continue
		}
		chip := original.chips[xy]

		var links []*Link
		for _, link := range chip.Router().Links() {
			if !deadLinks[deadLink{xy, link.SourceLinkID()}] {
				links = append(links, link)
			}
		}
		router, err := NewRouter(
			links, chip.Router().NAvailableMulticastEntries())
		if err != nil {
			return nil, err
		}

		rebuilt, err := NewChip(ChipDesc{
			X:               chip.x,
			Y:               chip.y,
			NProcessors:     chip.NProcessors(),
			Router:          router,
			SDRAM:           chip.sdram,
			NearestEthernet: chip.nearestEthernet,
			IPAddress:       chip.ipAddress,
			TagIDs:          chip.tagIDs,
			Virtual:         chip.virtual,
		})
		if err != nil {
			return nil, err
		}
		if err := repaired.AddChip(rebuilt); err != nil {
			return nil, fmt.Errorf("rebuilding machine: %w", err)
		}
	}

	repaired.AddSpinnakerLinks()
	repaired.AddFPGALinks()
	if err := repaired.Validate(); err != nil {
		return nil, err
	}

	return repaired, nil
}
