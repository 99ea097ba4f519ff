package machine

import "fmt"

// Default hardware properties of a processor core.
const (
	// ProcessorClockSpeed is the clock speed of a core in Hz.
	ProcessorClockSpeed = 200 * 1000 * 1000

	// DTCMAvailable is the Data Tightly Coupled Memory per core in bytes.
	DTCMAvailable = 1 << 16
)

// A Processor is one core of a chip. Processors are immutable once created,
// so the standard monitor and application cores are shared between chips.
type Processor struct {
	id         int
	clockSpeed int
	dtcm       int
	monitor    bool
}

// NewProcessor creates a processor with an explicit clock speed and DTCM
// size. The clock speed and DTCM size cannot be negative.
func NewProcessor(
	id int,
	clockSpeed int,
	monitor bool,
	dtcm int,
) (*Processor, error) {
	if clockSpeed < 0 {
		return nil, fmt.Errorf(
			"%w: clock speed %d is negative", ErrInvalidParameter, clockSpeed)
	}

	if dtcm < 0 {
		return nil, fmt.Errorf(
			"%w: DTCM size %d is negative", ErrInvalidParameter, dtcm)
	}

	return &Processor{
		id:         id,
		clockSpeed: clockSpeed,
		dtcm:       dtcm,
		monitor:    monitor,
	}, nil
}

var standardCores = map[int]*Processor{}
var monitorCores = map[int]*Processor{}

// processorFactory returns the shared processor instance with the default
// clock speed and DTCM size.
func processorFactory(id int, monitor bool) *Processor {
	cache := standardCores
	if monitor {
		cache = monitorCores
	}

	if p, ok := cache[id]; ok {
		return p
	}

	p := &Processor{
		id:         id,
		clockSpeed: ProcessorClockSpeed,
		dtcm:       DTCMAvailable,
		monitor:    monitor,
	}
	cache[id] = p

	return p
}

// ID returns the ID of the processor within its chip.
func (p *Processor) ID() int {
	return p.id
}

// ClockSpeed returns the number of CPU cycles per second.
func (p *Processor) ClockSpeed() int {
	return p.clockSpeed
}

// DTCMAvailable returns the DTCM available to the core, in bytes.
func (p *Processor) DTCMAvailable() int {
	return p.dtcm
}

// IsMonitor reports whether this core is reserved as the monitor core and so
// cannot be allocated to applications.
func (p *Processor) IsMonitor() bool {
	return p.monitor
}

func (p *Processor) String() string {
	return fmt.Sprintf("[CPU: id=%d, clock_speed=%d MHz, monitor=%t]",
		p.id, p.clockSpeed/1000000, p.monitor)
}
