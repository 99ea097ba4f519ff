package machine

// AddSpinnakerLinks registers the SpiNNaker links implied by the board
// family of the machine. On a four-chip board these are the two unused
// peripheral links; on 48-chip boards each ethernet-connected chip without
// a link 4 exposes it as SpiNNaker link 0.
func (m *Machine) AddSpinnakerLinks() {
	if m.width == 2 && m.height == 2 {
		// Either chip may be missing on a damaged board.
		boardAddress := ""
		if chip00 := m.Chip(0, 0); chip00 != nil {
			boardAddress = chip00.IPAddress()
			if !chip00.Router().HasLink(3) {
				m.addSpinnakerLink(0, XY{0, 0}, 3, boardAddress)
			}
		}
		if chip10 := m.Chip(1, 0); chip10 != nil &&
			!chip10.Router().HasLink(0) {
			m.addSpinnakerLink(1, XY{1, 0}, 0, boardAddress)
		}
	} else if (m.width == SizeXOfOneBoard && m.height == SizeYOfOneBoard) ||
		m.Multiple48ChipBoards() {
		for _, chip := range m.ethernetConnectedChips {
			if !chip.Router().HasLink(4) {
				m.addSpinnakerLink(0, chip.XY(), 4, chip.IPAddress())
			}
		}
	}
}

func (m *Machine) addSpinnakerLink(
	spinnakerLinkID int, chip XY, link int, boardAddress string,
) {
	data := &SpinnakerLinkData{
		SpinnakerLinkID: spinnakerLinkID,
		ConnectedChip:   chip,
		ConnectedLink:   link,
		BoardAddress:    boardAddress,
	}
	m.spinnakerLinksByAddress[spinnakerLinkAddrKey{
		boardAddress, spinnakerLinkID}] = data
	m.spinnakerLinksByChip[spinnakerLinkChipKey{
		chip, spinnakerLinkID}] = data
}

// fpgaChipLinks walks the six sides of the hexagonal 48-chip board. Each
// entry is the board-local start chip, the two peripheral link IDs exposed
// on that side, and the step to the next chip along the side.
//
//	             Top
//	             ####
//	            #####
//	Top Left   ###### Right
//	          #######
//	         ########
//	         #######
//	Left     ###### Bottom Right
//	         #####
//	         Bottom
var fpgaChipLinks = [6]struct {
	x, y   int
	l1, l2 int
	dx, dy int
}{
	{7, 3, 0, 5, -1, -1}, // Bottom Right
	{4, 0, 4, 5, -1, 0},  // Bottom
	{0, 0, 4, 3, 0, 1},   // Left
	{0, 3, 2, 3, 1, 1},   // Top Left
	{4, 7, 2, 1, 1, 0},   // Top
	{7, 7, 0, 1, 0, -1},  // Right
}

// AddFPGALinks registers the FPGA links of every 48-chip board of the
// machine. Each board has three FPGAs of 16 links each, numbered counter
// clockwise around the board perimeter starting at the bottom right.
func (m *Machine) AddFPGALinks() {
	if !(m.width == SizeXOfOneBoard && m.height == SizeYOfOneBoard) &&
		!m.Multiple48ChipBoards() {
		return
	}

	for _, ethernet := range m.ethernetConnectedChips {
		ex, ey := ethernet.x, ethernet.y
		ip := ethernet.IPAddress()

		fpgaID, fpgaLinkID := 0, 0
		next := func() {
			if fpgaLinkID == 15 {
				fpgaID++
				fpgaLinkID = 0
			} else {
				fpgaLinkID++
			}
		}

		for i, side := range fpgaChipLinks {
			x, y := side.x, side.y
			for n := 0; n < 4; n++ {
				fx := (x + ex) % m.width
				fy := (y + ey) % m.height
				m.addFPGALink(fpgaID, fpgaLinkID, XY{fx, fy},
					side.l1, ip, XY{ex, ey})
				next()
				if i%2 == 1 {
					x += side.dx
					y += side.dy
				}
				fx = (x + ex) % m.width
				fy = (y + ey) % m.height
				m.addFPGALink(fpgaID, fpgaLinkID, XY{fx, fy},
					side.l2, ip, XY{ex, ey})
				next()
				if i%2 == 0 {
					x += side.dx
					y += side.dy
				}
			}
		}
	}
}

func (m *Machine) addFPGALink(
	fpgaID, fpgaLinkID int, chip XY, link int,
	boardAddress string, ethernet XY,
) {
	if _, ok := m.chips[chip]; !ok {
		return
	}

	data := &FPGALinkData{
		FPGAID:        fpgaID,
		FPGALinkID:    fpgaLinkID,
		ConnectedChip: chip,
		ConnectedLink: link,
		BoardAddress:  boardAddress,
	}
	m.fpgaLinksByAddress[fpgaLinkAddrKey{
		boardAddress, fpgaID, fpgaLinkID}] = data
	m.fpgaLinksByChip[fpgaLinkChipKey{chip, fpgaID, fpgaLinkID}] = data
	m.fpgaLinksByChip[fpgaLinkChipKey{ethernet, fpgaID, fpgaLinkID}] = data
}
