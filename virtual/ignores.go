// Package virtual builds complete synthetic machines of a requested size,
// used for planning execution without any hardware attached.
package virtual

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
)

// typicalPhysicalVirtualMap converts a physical core ID to the virtual ID
// it typically boots as. The mapping in a real machine may be different.
var typicalPhysicalVirtualMap = map[int]int{
	0: 1, 1: 2, 2: 3, 3: 4, 4: 5, 5: 6, 6: 7, 7: 8, 8: 9, 9: 10,
	10: 0, 11: 12, 12: 13, 13: 14, 14: 15, 15: 16, 16: 17, 17: 18,
}

// An IgnoreChip marks a chip to leave out when building a machine,
// typically because it has a fault in its router. When IPAddress is set,
// the coordinates are local to the board with that address.
type IgnoreChip struct {
	X, Y      int
	IPAddress string
}

// An IgnoreCore marks a core to leave out when building a machine. Core is
// the virtual core ID if positive, or the negated physical core ID if not.
// When IPAddress is set, the coordinates are local to the board with that
// address.
type IgnoreCore struct {
	X, Y      int
	Core      int
	IPAddress string
}

// VirtualCore returns the virtual core ID, converting from a physical ID
// with the typical boot-time map when needed.
func (c IgnoreCore) VirtualCore() int {
	if c.Core > 0 {
		return c.Core
	}
	return typicalPhysicalVirtualMap[-c.Core]
}

// An IgnoreLink marks a link to leave out when building a machine. When
// IPAddress is set, the coordinates are local to the board with that
// address.
type IgnoreLink struct {
	X, Y      int
	Link      int
	IPAddress string
}

// splitIgnores breaks a colon-joined ignore string into its items. The
// string "None" (case-insensitive) and the empty string mean no ignores.
func splitIgnores(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") {
		return nil
	}
	return strings.Split(value, ":")
}

func parseIgnoreInt(part string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(part))
	if err != nil {
		return 0, fmt.Errorf(
			"%w: %q is not a number", machine.ErrInvalidParameter, part)
	}
	return n, nil
}

// ParseIgnoreChips converts a string of the form
// "<x>,<y>[,<ip>][:<x>,<y>[,<ip>]]*" into a set of chips to ignore.
func ParseIgnoreChips(value string) ([]IgnoreChip, error) {
	var chips []IgnoreChip
	for _, item := range splitIgnores(value) {
		parts := strings.Split(item, ",")
		if len(parts) != 2 && len(parts) != 3 {
			return nil, fmt.Errorf(
				"%w: unexpected ignore chip %q",
				machine.ErrInvalidParameter, item)
		}
		x, err := parseIgnoreInt(parts[0])
		if err != nil {
			return nil, err
		}
		y, err := parseIgnoreInt(parts[1])
		if err != nil {
			return nil, err
		}
		chip := IgnoreChip{X: x, Y: y}
		if len(parts) == 3 {
			chip.IPAddress = strings.TrimSpace(parts[2])
		}
		chips = append(chips, chip)
	}

	return chips, nil
}

// ParseIgnoreCores converts a string of the form
// "<x>,<y>,<core>[,<ip>][:...]*" into a set of cores to ignore. The core
// may also be a "<from>-<to>" range of virtual core IDs.
func ParseIgnoreCores(value string) ([]IgnoreCore, error) {
	var cores []IgnoreCore
	for _, item := range splitIgnores(value) {
		parts := strings.Split(item, ",")
		if len(parts) != 3 && len(parts) != 4 {
			return nil, fmt.Errorf(
				"%w: unexpected ignore core %q",
				machine.ErrInvalidParameter, item)
		}
		x, err := parseIgnoreInt(parts[0])
		if err != nil {
			return nil, err
		}
		y, err := parseIgnoreInt(parts[1])
		if err != nil {
			return nil, err
		}
		ip := ""
		if len(parts) == 4 {
			ip = strings.TrimSpace(parts[3])
		}

		ids, err := parseCoreField(parts[2])
		if err != nil {
			return nil, err
		}
		for _, core := range ids {
			cores = append(cores, IgnoreCore{
				X: x, Y: y, Core: core, IPAddress: ip})
		}
	}

	return cores, nil
}

// parseCoreField handles a single core ID, including negated physical
// IDs, or a "<from>-<to>" range of virtual IDs.
func parseCoreField(field string) ([]int, error) {
	field = strings.TrimSpace(field)

	if from, to, ok := strings.Cut(field, "-"); ok && from != "" {
		first, err := parseIgnoreInt(from)
		if err != nil {
			return nil, err
		}
		last, err := parseIgnoreInt(to)
		if err != nil {
			return nil, err
		}
		if first > last {
			return nil, fmt.Errorf(
				"%w: core range %q is reversed",
				machine.ErrInvalidParameter, field)
		}
		var ids []int
		for core := first; core <= last; core++ {
			ids = append(ids, core)
		}
		return ids, nil
	}

	core, err := parseIgnoreInt(field)
	if err != nil {
		return nil, err
	}
	return []int{core}, nil
}

// ParseIgnoreLinks converts a string of the form
// "<x>,<y>,<link>[,<ip>][:...]*" into a set of links to ignore.
func ParseIgnoreLinks(value string) ([]IgnoreLink, error) {
	var links []IgnoreLink
	for _, item := range splitIgnores(value) {
		parts := strings.Split(item, ",")
		if len(parts) != 3 && len(parts) != 4 {
			return nil, fmt.Errorf(
				"%w: unexpected ignore link %q",
				machine.ErrInvalidParameter, item)
		}
		x, err := parseIgnoreInt(parts[0])
		if err != nil {
			return nil, err
		}
		y, err := parseIgnoreInt(parts[1])
		if err != nil {
			return nil, err
		}
		link, err := parseIgnoreInt(parts[2])
		if err != nil {
			return nil, err
		}
		if link < 0 || link >= machine.MaxLinksPerRouter {
			return nil, fmt.Errorf(
				"%w: ignore link ID %d", machine.ErrInvalidParameter, link)
		}
		ignore := IgnoreLink{X: x, Y: y, Link: link}
		if len(parts) == 4 {
			ignore.IPAddress = strings.TrimSpace(parts[3])
		}
		links = append(links, ignore)
	}

	return links, nil
}
