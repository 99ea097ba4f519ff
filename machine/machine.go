// Package machine models the physical topology of a grid of interconnected
// compute chips, each with several cores, local memory, and a hardware
// router. A machine is built once through a sequence of AddChip calls and is
// read-mostly afterwards.
package machine

import "fmt"

// A Machine is the container of the chips of one physical or synthetic
// system. It exclusively owns every chip added to it; adjacency between
// chips is always resolved by coordinate lookup, never by stored pointers.
type Machine struct {
	width  int
	height int
	wrap   Wrap

	chips     map[XY]*Chip
	chipOrder []XY

	ethernetConnectedChips []*Chip
	bootEthernetAddress    string

	virtualChips []*Chip

	spinnakerLinksByAddress map[spinnakerLinkAddrKey]*SpinnakerLinkData
	spinnakerLinksByChip    map[spinnakerLinkChipKey]*SpinnakerLinkData
	fpgaLinksByAddress      map[fpgaLinkAddrKey]*FPGALinkData
	fpgaLinksByChip         map[fpgaLinkChipKey]*FPGALinkData

	// chipCoreMap lists the board-local coordinates a perfect board on this
	// machine would populate, with the typical core count per position.
	chipCoreMap   map[XY]int
	chipCoreOrder []XY

	maxChipX      int
	maxChipY      int
	maxUserCores  int
	originComment string
}

// New creates an empty machine of the given dimensions, choosing the wrap
// implied by the standard board family for that size.
func New(width, height int) (*Machine, error) {
	return NewWithWrap(width, height, WrapForSize(width, height))
}

// NewWithWrap creates an empty machine with an explicit wrap.
func NewWithWrap(width, height int, wrap Wrap) (*Machine, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf(
			"%w: machine dimensions %d x %d are negative",
			ErrInvalidParameter, width, height)
	}

	m := &Machine{
		width:  width,
		height: height,
		wrap:   wrap,

		chips: make(map[XY]*Chip),

		spinnakerLinksByAddress: make(
			map[spinnakerLinkAddrKey]*SpinnakerLinkData),
		spinnakerLinksByChip: make(
			map[spinnakerLinkChipKey]*SpinnakerLinkData),
		fpgaLinksByAddress: make(map[fpgaLinkAddrKey]*FPGALinkData),
		fpgaLinksByChip:    make(map[fpgaLinkChipKey]*FPGALinkData),
	}

	if (width == SizeXOfOneBoard && height == SizeYOfOneBoard) ||
		m.Multiple48ChipBoards() {
		m.chipCoreMap = chipsPerBoard48
		m.chipCoreOrder = board48ChipOrder
	} else {
		m.chipCoreOrder = fullGridChipOrder(width, height)
		m.chipCoreMap = make(map[XY]int, len(m.chipCoreOrder))
		for _, xy := range m.chipCoreOrder {
			m.chipCoreMap[xy] = DefaultMaxCoresPerChip
		}
	}

	return m, nil
}

// SetOrigin records extra information about how this machine was created,
// used only in the String method.
func (m *Machine) SetOrigin(origin string) {
	m.originComment = origin
}

// Width returns the width of the machine in chips, excluding virtual chips.
func (m *Machine) Width() int {
	return m.width
}

// Height returns the height of the machine in chips, excluding virtual
// chips.
func (m *Machine) Height() int {
	return m.height
}

// WrapKind returns the wrap of the machine.
func (m *Machine) WrapKind() Wrap {
	return m.wrap
}

// Multiple48ChipBoards checks that the width and height correspond to the
// expected size of a machine made up of more than one 48-chip board. Any
// size machine is supported, but only these sizes can carry more than one
// ethernet-connected chip.
func (m *Machine) Multiple48ChipBoards() bool {
	w, h := m.width, m.height

	// An unwrapped axis carries the extra half-board overlap, so the
	// repeating unit starts 4 chips in.
	horRemainder := mod(w, TriadWidth)
	if !m.wrap.Horizontal() {
		horRemainder = mod(w-(TriadWidth-SizeXOfOneBoard), TriadWidth)
	}

	verRemainder := mod(h, TriadHeight)
	if !m.wrap.Vertical() {
		verRemainder = mod(h-(TriadHeight-SizeYOfOneBoard), TriadHeight)
	}

	return horRemainder == 0 && verRemainder == 0
}

// AddChip adds a chip to the machine. A chip whose coordinate is already
// occupied is rejected, as is a non-virtual chip outside the declared
// dimensions; the machine is unmodified in both cases.
func (m *Machine) AddChip(chip *Chip) error {
	xy := chip.XY()
	if _, ok := m.chips[xy]; ok {
		return fmt.Errorf("%w: chip %d, %d", ErrAlreadyExists, chip.x, chip.y)
	}

	if !chip.Virtual() {
		if chip.x < 0 || chip.y < 0 ||
			chip.x >= m.width || chip.y >= m.height {
			return fmt.Errorf(
				"%w: chip %d, %d is outside the %d x %d machine",
				ErrInvalidParameter, chip.x, chip.y, m.width, m.height)
		}
	}

	m.chips[xy] = chip
	m.chipOrder = append(m.chipOrder, xy)

	if chip.x > m.maxChipX {
		m.maxChipX = chip.x
	}
	if chip.y > m.maxChipY {
		m.maxChipY = chip.y
	}
	if chip.NUserProcessors() > m.maxUserCores {
		m.maxUserCores = chip.NUserProcessors()
	}

	if chip.Virtual() {
		m.virtualChips = append(m.virtualChips, chip)
	}

	if chip.IPAddress() != "" {
		m.ethernetConnectedChips = append(m.ethernetConnectedChips, chip)
		if chip.x == 0 && chip.y == 0 {
			m.bootEthernetAddress = chip.IPAddress()
		}
	}

	return nil
}

// AddChips adds several chips to the machine, stopping at the first
// rejected one.
func (m *Machine) AddChips(chips []*Chip) error {
	for _, chip := range chips {
		if err := m.AddChip(chip); err != nil {
			return err
		}
	}

	return nil
}

// Chip returns the chip at the given coordinate, or nil if no such chip.
func (m *Machine) Chip(x, y int) *Chip {
	return m.chips[XY{x, y}]
}

// ChipAt returns the chip at the given coordinate, or nil if no such chip.
func (m *Machine) ChipAt(xy XY) *Chip {
	return m.chips[xy]
}

// HasChipAt reports whether a chip exists at the given coordinate.
func (m *Machine) HasChipAt(x, y int) bool {
	_, ok := m.chips[XY{x, y}]
	return ok
}

// HasLinkAt reports whether the chip at the given coordinate exists and has
// a link with the given ID.
func (m *Machine) HasLinkAt(x, y, link int) bool {
	chip, ok := m.chips[XY{x, y}]
	return ok && chip.Router().HasLink(link)
}

// Chips returns the chips of the machine in insertion order.
func (m *Machine) Chips() []*Chip {
	chips := make([]*Chip, 0, len(m.chipOrder))
	for _, xy := range m.chipOrder {
		chips = append(chips, m.chips[xy])
	}

	return chips
}

// ChipCoordinates returns the chip coordinates in insertion order.
func (m *Machine) ChipCoordinates() []XY {
	coords := make([]XY, len(m.chipOrder))
	copy(coords, m.chipOrder)

	return coords
}

// NChips returns the number of chips in the machine.
func (m *Machine) NChips() int {
	return len(m.chips)
}

// MaxChipX and MaxChipY return the largest coordinates seen so far.
func (m *Machine) MaxChipX() int {
	return m.maxChipX
}

// MaxChipY returns the largest y coordinate seen so far.
func (m *Machine) MaxChipY() int {
	return m.maxChipY
}

// MaxUserCoresPerChip returns the largest non-monitor core count of any
// chip added so far.
func (m *Machine) MaxUserCoresPerChip() int {
	return m.maxUserCores
}

// EthernetConnectedChips returns the chips with an ethernet connection, in
// insertion order.
func (m *Machine) EthernetConnectedChips() []*Chip {
	return m.ethernetConnectedChips
}

// VirtualChips returns the chips marked virtual, in insertion order.
func (m *Machine) VirtualChips() []*Chip {
	return m.virtualChips
}

// BootChip returns the chip used to boot the machine, which is always the
// chip at (0, 0), or nil if it was not added.
func (m *Machine) BootChip() *Chip {
	return m.chips[XY{0, 0}]
}

// BootEthernetAddress returns the IP address of the boot chip, or "" if the
// boot chip has no ethernet connection.
func (m *Machine) BootEthernetAddress() string {
	return m.bootEthernetAddress
}

// XYOverLink returns the coordinate reached by following the given link
// from (x, y), wrapping per the machine's wrap. Neither end is checked for
// existence; on machines without full wrap the result can fall outside the
// machine.
func (m *Machine) XYOverLink(x, y, link int) XY {
	add := linkAddTable[link]
	linkX := x + add.X
	linkY := y + add.Y

	if m.wrap.Horizontal() {
		linkX = (linkX + m.width) % m.width
	}
	if m.wrap.Vertical() {
		linkY = (linkY + m.height) % m.height
	}

	return XY{linkX, linkY}
}

// LocalXY converts a chip's coordinate into the local coordinate on its
// board, as if the board's ethernet-connected chip was at (0, 0).
func (m *Machine) LocalXY(chip *Chip) XY {
	localX := chip.x - chip.nearestEthernet.X
	localY := chip.y - chip.nearestEthernet.Y

	if m.wrap.Horizontal() {
		localX = (localX + m.width) % m.width
	}
	if m.wrap.Vertical() {
		localY = (localY + m.height) % m.height
	}

	return XY{localX, localY}
}

// GlobalXY converts board-local coordinates into global coordinates, under
// the assumption that the board's local (0, 0) is the ethernet-connected
// chip at (ethernetX, ethernetY). No check is made that a chip exists at
// the result.
func (m *Machine) GlobalXY(localX, localY, ethernetX, ethernetY int) XY {
	globalX := localX + ethernetX
	globalY := localY + ethernetY

	if m.wrap.Horizontal() {
		globalX %= m.width
	}
	if m.wrap.Vertical() {
		globalY %= m.height
	}

	return XY{globalX, globalY}
}

// LocalXYs lists the board-local coordinates a perfect board on this
// machine would populate. Local coordinates never include wraparounds.
func (m *Machine) LocalXYs() []XY {
	return m.chipCoreOrder
}

// XYsByEthernet yields the potential coordinates of all the chips on the
// board whose ethernet-connected chip is at (ethernetX, ethernetY), whether
// or not they exist, with wraparound applied per the machine's wrap.
func (m *Machine) XYsByEthernet(ethernetX, ethernetY int) []XY {
	xys := make([]XY, 0, len(m.chipCoreOrder))
	for _, local := range m.chipCoreOrder {
		xys = append(xys, m.GlobalXY(local.X, local.Y, ethernetX, ethernetY))
	}

	return xys
}

// XYCores pairs a potential chip coordinate with the typical core count of
// a chip in that board position.
type XYCores struct {
	XY     XY
	NCores int
}

// XYCoresByEthernet yields the potential coordinates and typical core
// counts of all the chips on the board whose ethernet-connected chip is at
// (ethernetX, ethernetY).
func (m *Machine) XYCoresByEthernet(ethernetX, ethernetY int) []XYCores {
	xyCores := make([]XYCores, 0, len(m.chipCoreOrder))
	for _, local := range m.chipCoreOrder {
		xyCores = append(xyCores, XYCores{
			XY:     m.GlobalXY(local.X, local.Y, ethernetX, ethernetY),
			NCores: m.chipCoreMap[local],
		})
	}

	return xyCores
}

// ExistingXYsByEthernet yields the coordinates of the chips that actually
// exist on the board whose ethernet-connected chip is at
// (ethernetX, ethernetY).
func (m *Machine) ExistingXYsByEthernet(ethernetX, ethernetY int) []XY {
	var xys []XY
	for _, xy := range m.XYsByEthernet(ethernetX, ethernetY) {
		if _, ok := m.chips[xy]; ok {
			xys = append(xys, xy)
		}
	}

	return xys
}

// DownXYsByEthernet yields the coordinates of the board positions with no
// chip on the board whose ethernet-connected chip is at
// (ethernetX, ethernetY).
func (m *Machine) DownXYsByEthernet(ethernetX, ethernetY int) []XY {
	var xys []XY
	for _, xy := range m.XYsByEthernet(ethernetX, ethernetY) {
		if _, ok := m.chips[xy]; !ok {
			xys = append(xys, xy)
		}
	}

	return xys
}

// ChipsByEthernet yields the chips that actually exist on the board whose
// ethernet-connected chip is at (ethernetX, ethernetY).
func (m *Machine) ChipsByEthernet(ethernetX, ethernetY int) []*Chip {
	var chips []*Chip
	for _, xy := range m.ExistingXYsByEthernet(ethernetX, ethernetY) {
		chips = append(chips, m.chips[xy])
	}

	return chips
}

// ExistingXYsOnBoard yields the coordinates of the chips on the same board
// as the given chip.
func (m *Machine) ExistingXYsOnBoard(chip *Chip) []XY {
	return m.ExistingXYsByEthernet(
		chip.nearestEthernet.X, chip.nearestEthernet.Y)
}

// UnusedXY finds a coordinate that carries no chip and is on no board of
// the machine, so a virtual chip can be placed there. The same coordinate
// is returned until a chip is added at it.
func (m *Machine) UnusedXY() XY {
	onAnyBoard := make(map[XY]bool)
	for _, ethernet := range m.ethernetConnectedChips {
		for _, xy := range m.XYsByEthernet(ethernet.x, ethernet.y) {
			onAnyBoard[xy] = true
		}
	}

	for x := 0; ; x++ {
		for y := 0; y < m.height; y++ {
			xy := XY{x, y}
			if _, ok := m.chips[xy]; !ok && !onAnyBoard[xy] {
				return xy
			}
		}
	}
}

// TotalCores returns the number of cores in the machine, monitors included.
func (m *Machine) TotalCores() int {
	cores := 0
	for _, chip := range m.chips {
		cores += chip.NProcessors()
	}

	return cores
}

// TotalAvailableUserCores returns the number of cores that are not
// monitors.
func (m *Machine) TotalAvailableUserCores() int {
	cores := 0
	for _, chip := range m.chips {
		cores += chip.NUserProcessors()
	}

	return cores
}

// CoresAndLinkCount returns the number of cores and the number of
// bidirectional chip-to-chip links. SpiNNaker and FPGA links are not
// included.
func (m *Machine) CoresAndLinkCount() (cores int, links float64) {
	totalLinks := 0
	for _, chip := range m.chips {
		cores += chip.NProcessors()
		totalLinks += chip.Router().NLinks()
	}

	return cores, float64(totalLinks) / 2
}

// WhereIsChip describes the global and board-local location of a chip.
func (m *Machine) WhereIsChip(chip *Chip) string {
	chip00 := m.Chip(0, 0)
	local00 := m.ChipAt(chip.nearestEthernet)
	local := m.LocalXY(chip)

	return fmt.Sprintf("global chip %d, %d on %s is chip %d, %d on %s",
		chip.x, chip.y, chip00.IPAddress(),
		local.X, local.Y, local00.IPAddress())
}

// WhereIsXY describes the global and board-local location of the chip at a
// coordinate.
func (m *Machine) WhereIsXY(x, y int) string {
	chip := m.Chip(x, y)
	if chip == nil {
		return fmt.Sprintf("No chip %d, %d found", x, y)
	}

	return m.WhereIsChip(chip)
}

func (m *Machine) String() string {
	return fmt.Sprintf("[%s%sMachine: width=%d, height=%d, n_chips=%d]",
		m.originComment, m.wrap, m.width, m.height, len(m.chips))
}
