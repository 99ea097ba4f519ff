package virtual

import (
	"fmt"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/geometry"
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
)

// A BoardVersion pins the machine to a specific physical board product,
// which fixes its dimensions and link layout.
type BoardVersion int

const (
	// VersionNone leaves the board family to be derived from the
	// requested dimensions.
	VersionNone BoardVersion = 0

	// Version2 and Version3 are the four-chip boards. Their two corner
	// chip pairs are not joined by links.
	Version2 BoardVersion = 2
	Version3 BoardVersion = 3

	// Version5 is the hexagonal 48-chip board.
	Version5 BoardVersion = 5
)

// fourChipDownLinks lists the links that do not exist on the four-chip
// boards, where the corner chips are connected only pairwise.
var fourChipDownLinks = []linkKey{
	{machine.XY{X: 0, Y: 0}, 3}, {machine.XY{X: 0, Y: 0}, 4},
	{machine.XY{X: 0, Y: 1}, 3}, {machine.XY{X: 0, Y: 1}, 4},
	{machine.XY{X: 1, Y: 0}, 0}, {machine.XY{X: 1, Y: 0}, 1},
	{machine.XY{X: 1, Y: 1}, 0}, {machine.XY{X: 1, Y: 1}, 1},
}

type linkKey struct {
	xy   machine.XY
	link int
}

// A Builder creates virtual machines. All fields have usable defaults
// except the dimensions.
type Builder struct {
	width  int
	height int

	version      BoardVersion
	wrap         machine.Wrap
	explicitWrap bool

	nCPUsPerChip int
	sdramPerChip int
	noMonitor    bool
	ignoreChips  []IgnoreChip
	ignoreCores  []IgnoreCore
	ignoreLinks  []IgnoreLink
	validate     bool
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		sdramPerChip: machine.DefaultSDRAMBytes,
		validate:     true,
	}
}

// WithSize sets the dimensions of the machine in chips.
func (b Builder) WithSize(width, height int) Builder {
	b.width = width
	b.height = height
	return b
}

// WithVersion pins the machine to a specific board product.
func (b Builder) WithVersion(version BoardVersion) Builder {
	b.version = version
	return b
}

// WithWrap overrides the wrap derived from the dimensions.
func (b Builder) WithWrap(wrap machine.Wrap) Builder {
	b.wrap = wrap
	b.explicitWrap = true
	return b
}

// WithCPUsPerChip sets a fixed number of CPUs on every chip, instead of
// the per-board-position typical counts.
func (b Builder) WithCPUsPerChip(nCPUs int) Builder {
	b.nCPUsPerChip = nCPUs
	return b
}

// WithSDRAMPerChip sets the SDRAM capacity of every chip in bytes.
func (b Builder) WithSDRAMPerChip(size int) Builder {
	b.sdramPerChip = size
	return b
}

// WithMonitors controls whether core 0 of every chip is reserved as the
// monitor core. Monitors are reserved by default.
func (b Builder) WithMonitors(monitors bool) Builder {
	b.noMonitor = !monitors
	return b
}

// WithIgnoreChips leaves out the given chips.
func (b Builder) WithIgnoreChips(chips []IgnoreChip) Builder {
	b.ignoreChips = chips
	return b
}

// WithIgnoreCores leaves out the given cores.
func (b Builder) WithIgnoreCores(cores []IgnoreCore) Builder {
	b.ignoreCores = cores
	return b
}

// WithIgnoreLinks leaves out the given links.
func (b Builder) WithIgnoreLinks(links []IgnoreLink) Builder {
	b.ignoreLinks = links
	return b
}

// WithValidate controls whether the finished machine is validated. The
// builder constructs machines that validate by construction, so this is
// only worth disabling for speed.
func (b Builder) WithValidate(validate bool) Builder {
	b.validate = validate
	return b
}

func (b Builder) verifySize() error {
	if b.width < 0 || b.height < 0 {
		return fmt.Errorf(
			"%w: negative dimensions %d and %d are not supported",
			machine.ErrInvalidParameter, b.width, b.height)
	}

	switch b.version {
	case Version2, Version3:
		if b.width != 2 || b.height != 2 {
			return fmt.Errorf(
				"%w: a version %d board is 2 x 2, not %d x %d",
				machine.ErrInvalidParameter, b.version, b.width, b.height)
		}
		return nil
	case Version5:
		if b.width != machine.SizeXOfOneBoard ||
			b.height != machine.SizeYOfOneBoard {
			return fmt.Errorf(
				"%w: a version 5 board is 8 x 8, not %d x %d",
				machine.ErrInvalidParameter, b.width, b.height)
		}
		if b.explicitWrap && b.wrap != machine.NoWrap {
			return fmt.Errorf(
				"%w: a single version 5 board has no wraparound links",
				machine.ErrInvalidParameter)
		}
		return nil
	}

	if b.width == 2 && b.height == 2 {
		return nil
	}
	if b.width == machine.SizeXOfOneBoard &&
		b.height == machine.SizeYOfOneBoard {
		return nil
	}
	if b.width%machine.TriadWidth != 0 &&
		(b.width-(machine.TriadWidth-machine.SizeXOfOneBoard))%
			machine.TriadWidth != 0 {
		return fmt.Errorf(
			"%w: a virtual machine must have a width that is divisible by"+
				" 12 or a width - 4 that is divisible by 12, not %d",
			machine.ErrInvalidParameter, b.width)
	}
	if b.height%machine.TriadHeight != 0 &&
		(b.height-(machine.TriadHeight-machine.SizeYOfOneBoard))%
			machine.TriadHeight != 0 {
		return fmt.Errorf(
			"%w: a virtual machine must have a height that is divisible by"+
				" 12 or a height - 4 that is divisible by 12, not %d",
			machine.ErrInvalidParameter, b.height)
	}

	return nil
}

// Build creates the virtual machine.
func (b Builder) Build() (*machine.Machine, error) {
	if err := b.verifySize(); err != nil {
		return nil, err
	}

	var m *machine.Machine
	var err error
	if b.explicitWrap {
		m, err = machine.NewWithWrap(b.width, b.height, b.wrap)
	} else if b.version == Version5 {
		m, err = machine.NewWithWrap(b.width, b.height, machine.NoWrap)
	} else {
		m, err = machine.New(b.width, b.height)
	}
	if err != nil {
		return nil, err
	}
	m.SetOrigin("Virtual")

	// Ethernet-connected chips, assuming the machine tiles with 48-chip
	// boards.
	ethernetChips := geometry.Spinn5().PotentialEthernetChips(
		b.width, b.height)
	ethernetSet := make(map[machine.XY]bool, len(ethernetChips))
	for _, xy := range ethernetChips {
		ethernetSet[xy] = true
	}

	unusedChips, unusedCores, unusedLinks := b.resolveIgnores(
		m, ethernetChips)

	if b.version == Version2 || b.version == Version3 {
		for _, key := range fourChipDownLinks {
			unusedLinks[key] = true
		}
	}

	// The chips that will exist, keyed by coordinate, in the order the
	// boards list them.
	type chipPlan struct {
		ethernet machine.XY
		nCores   int
	}
	var order []machine.XY
	configured := make(map[machine.XY]chipPlan)
	for _, ethernet := range ethernetChips {
		for _, xyCores := range m.XYCoresByEthernet(ethernet.X, ethernet.Y) {
			if unusedChips[xyCores.XY] {
				continue
			}
			nCores := xyCores.NCores
			if b.nCPUsPerChip != 0 {
				nCores = b.nCPUsPerChip
			}
			if _, ok := configured[xyCores.XY]; !ok {
				order = append(order, xyCores.XY)
			}
			configured[xyCores.XY] = chipPlan{ethernet, nCores}
		}
	}

	for _, xy := range order {
		plan := configured[xy]

		var links []*machine.Link
		for linkID := 0; linkID < machine.MaxLinksPerRouter; linkID++ {
			if unusedLinks[linkKey{xy, linkID}] {
				continue
			}
			destination := m.XYOverLink(xy.X, xy.Y, linkID)
			if _, ok := configured[destination]; !ok {
				continue
			}
			link, err := machine.NewLink(xy, linkID, destination)
			if err != nil {
				return nil, err
			}
			// Hardware falls back to the straight-through route for
			// unrouted multicast traffic.
			opposite := machine.OppositeLink(linkID)
			if err := link.SetMulticastDefaultFrom(opposite); err != nil {
				return nil, err
			}
			if err := link.SetMulticastDefaultTo(opposite); err != nil {
				return nil, err
			}
			links = append(links, link)
		}
		router, err := machine.NewRouter(links, machine.RouterEntries)
		if err != nil {
			return nil, err
		}

		desc := machine.ChipDesc{
			X:               xy.X,
			Y:               xy.Y,
			NProcessors:     plan.nCores,
			Router:          router,
			NearestEthernet: plan.ethernet,
			DownCores:       unusedCores[xy],
			NoMonitor:       b.noMonitor,
			Virtual:         false,
		}
		desc.SDRAM, err = machine.NewSDRAM(b.sdramPerChip)
		if err != nil {
			return nil, err
		}
		if ethernetSet[xy] {
			desc.IPAddress = fmt.Sprintf("127.0.%d.%d", xy.X, xy.Y)
		}

		chip, err := machine.NewChip(desc)
		if err != nil {
			return nil, err
		}
		if err := m.AddChip(chip); err != nil {
			return nil, err
		}
	}

	m.AddSpinnakerLinks()
	m.AddFPGALinks()

	if b.validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// resolveIgnores converts the ignore lists into sets of global
// coordinates. Ignores carrying an IP address are local to the board with
// that address; the builder assigns each potential ethernet chip the
// address 127.0.<x>.<y>, and ignores naming any other address match no
// board and are dropped.
func (b Builder) resolveIgnores(
	m *machine.Machine, ethernetChips []machine.XY,
) (map[machine.XY]bool, map[machine.XY][]int, map[linkKey]bool) {
	boardByIP := make(map[string]machine.XY, len(ethernetChips))
	for _, xy := range ethernetChips {
		boardByIP[fmt.Sprintf("127.0.%d.%d", xy.X, xy.Y)] = xy
	}

	resolve := func(x, y int, ip string) (machine.XY, bool) {
		if ip == "" {
			return machine.XY{X: x, Y: y}, true
		}
		ethernet, ok := boardByIP[ip]
		if !ok {
			return machine.XY{}, false
		}
		return m.GlobalXY(x, y, ethernet.X, ethernet.Y), true
	}

	unusedChips := make(map[machine.XY]bool)
	for _, ignore := range b.ignoreChips {
		if xy, ok := resolve(ignore.X, ignore.Y, ignore.IPAddress); ok {
			unusedChips[xy] = true
		}
	}

	unusedCores := make(map[machine.XY][]int)
	for _, ignore := range b.ignoreCores {
		if xy, ok := resolve(ignore.X, ignore.Y, ignore.IPAddress); ok {
			unusedCores[xy] = append(unusedCores[xy], ignore.VirtualCore())
		}
	}

	unusedLinks := make(map[linkKey]bool)
	for _, ignore := range b.ignoreLinks {
		if xy, ok := resolve(ignore.X, ignore.Y, ignore.IPAddress); ok {
			unusedLinks[linkKey{xy, ignore.Link}] = true
		}
	}

	return unusedChips, unusedCores, unusedLinks
}
