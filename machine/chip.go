package machine

import "fmt"

// iptagIDs are the IP-tag slots usable on an ethernet-connected chip.
var iptagIDs = []int{1, 2, 3, 4, 5, 6, 7}

// ChipDesc describes a chip to be created.
type ChipDesc struct {
	X, Y int

	// NProcessors is the number of cores including the monitor core.
	NProcessors int

	Router *Router
	SDRAM  SDRAM

	// NearestEthernet is the coordinate of the ethernet-connected chip of
	// the board this chip is on. It may be the chip's own coordinate.
	NearestEthernet XY

	// IPAddress is set only on ethernet-connected chips.
	IPAddress string

	// TagIDs overrides the IP-tag IDs usable on this chip. When nil, an
	// ethernet-connected chip gets tags 1 to 7 and any other chip none.
	TagIDs []int

	// DownCores lists core IDs that are broken on this chip. Core 0 cannot
	// be down.
	DownCores []int

	// NoMonitor leaves core 0 as a plain user core instead of marking it
	// as the monitor.
	NoMonitor bool

	// Virtual marks a chip that stands in for hardware beyond the declared
	// machine dimensions.
	Virtual bool
}

// A Chip is one compute node of a machine: a set of cores, an SDRAM, and a
// router. A chip exclusively owns the three.
type Chip struct {
	x, y            int
	ids             []int
	processors      map[int]*Processor
	nUserProcessors int
	router          *Router
	sdram           SDRAM
	nearestEthernet XY
	ipAddress       string
	tagIDs          []int
	virtual         bool
}

// cache of the processor maps for chips with no down cores, keyed by core
// count and whether core 0 is the monitor
type processorSetKey struct {
	nProcessors int
	monitor     bool
}

var standardProcessorSets = map[processorSetKey][]*Processor{}

// NewChip creates a chip from its description.
func NewChip(desc ChipDesc) (*Chip, error) {
	if desc.Router == nil {
		return nil, fmt.Errorf("%w: chip %d, %d has no router",
			ErrInvalidParameter, desc.X, desc.Y)
	}

	c := &Chip{
		x:               desc.X,
		y:               desc.Y,
		processors:      make(map[int]*Processor),
		router:          desc.Router,
		sdram:           desc.SDRAM,
		nearestEthernet: desc.NearestEthernet,
		ipAddress:       desc.IPAddress,
		virtual:         desc.Virtual,
	}

	if desc.TagIDs != nil {
		c.tagIDs = desc.TagIDs
	} else if desc.IPAddress != "" {
		c.tagIDs = iptagIDs
	}

	err := c.generateProcessors(
		desc.NProcessors, desc.DownCores, !desc.NoMonitor)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Chip) generateProcessors(
	nProcessors int, downCores []int, monitor bool,
) error {
	if nProcessors < 1 {
		return fmt.Errorf("%w: chip %d, %d needs at least one core",
			ErrInvalidParameter, c.x, c.y)
	}

	nMonitors := 0
	if monitor {
		nMonitors = 1
	}

	if len(downCores) == 0 {
		key := processorSetKey{nProcessors, monitor}
		set, ok := standardProcessorSets[key]
		if !ok {
			set = make([]*Processor, nProcessors)
			set[0] = processorFactory(0, monitor)
			for i := 1; i < nProcessors; i++ {
				set[i] = processorFactory(i, false)
			}
			standardProcessorSets[key] = set
		}

		for i, p := range set {
			c.ids = append(c.ids, i)
			c.processors[i] = p
		}
		c.nUserProcessors = nProcessors - nMonitors

		return nil
	}

	down := make(map[int]bool, len(downCores))
	for _, id := range downCores {
		if id == 0 {
			return fmt.Errorf(
				"%w: core 0 cannot be down", ErrInvalidParameter)
		}
		down[id] = true
	}

	c.ids = append(c.ids, 0)
	c.processors[0] = processorFactory(0, monitor)
	for i := 1; i < nProcessors; i++ {
		if !down[i] {
			c.ids = append(c.ids, i)
			c.processors[i] = processorFactory(i, false)
		}
	}
	c.nUserProcessors = len(c.ids) - nMonitors

	return nil
}

// X returns the x-coordinate of the chip.
func (c *Chip) X() int {
	return c.x
}

// Y returns the y-coordinate of the chip.
func (c *Chip) Y() int {
	return c.y
}

// XY returns the coordinate of the chip.
func (c *Chip) XY() XY {
	return XY{c.x, c.y}
}

// HasProcessor reports whether a core with the given ID exists on the chip.
func (c *Chip) HasProcessor(processorID int) bool {
	_, ok := c.processors[processorID]
	return ok
}

// Processor returns the core with the given ID, or nil if no such core.
func (c *Chip) Processor(processorID int) *Processor {
	return c.processors[processorID]
}

// Processors returns the available cores in core-ID order.
func (c *Chip) Processors() []*Processor {
	ps := make([]*Processor, 0, len(c.ids))
	for _, id := range c.ids {
		ps = append(ps, c.processors[id])
	}

	return ps
}

// NProcessors returns the total number of cores including the monitor.
func (c *Chip) NProcessors() int {
	return len(c.ids)
}

// NUserProcessors returns the number of cores that are not monitors.
func (c *Chip) NUserProcessors() int {
	return c.nUserProcessors
}

// FirstUserProcessor returns the lowest-numbered non-monitor core, or nil
// if every core is a monitor.
func (c *Chip) FirstUserProcessor() *Processor {
	for _, id := range c.ids {
		if p := c.processors[id]; !p.IsMonitor() {
			return p
		}
	}

	return nil
}

// Router returns the router of the chip.
func (c *Chip) Router() *Router {
	return c.router
}

// SDRAM returns the SDRAM of the chip.
func (c *Chip) SDRAM() SDRAM {
	return c.sdram
}

// NearestEthernet returns the coordinate of the ethernet-connected chip on
// the same board.
func (c *Chip) NearestEthernet() XY {
	return c.nearestEthernet
}

// IPAddress returns the IP address of the chip, or "" if no ethernet is
// connected to it.
func (c *Chip) IPAddress() string {
	return c.ipAddress
}

// TagIDs returns the IP-tag IDs usable on this chip.
func (c *Chip) TagIDs() []int {
	return c.tagIDs
}

// Virtual reports whether the chip stands in for hardware beyond the
// declared machine dimensions.
func (c *Chip) Virtual() bool {
	return c.virtual
}

func (c *Chip) String() string {
	return fmt.Sprintf(
		"[Chip: x=%d, y=%d, ip_address=%s, n_cores=%d]",
		c.x, c.y, c.ipAddress, len(c.ids))
}
