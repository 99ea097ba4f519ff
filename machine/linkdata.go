package machine

import "fmt"

// SpinnakerLinkData describes an unconnected router link available for an
// external peripheral, identified by an ID on the board that carries it.
type SpinnakerLinkData struct {
	SpinnakerLinkID int
	ConnectedChip   XY
	ConnectedLink   int
	BoardAddress    string
}

// FPGALinkData describes a link between a chip and one of the three FPGAs
// of a 48-chip board, identified by the FPGA ID and its link ID.
type FPGALinkData struct {
	FPGAID        int
	FPGALinkID    int
	ConnectedChip XY
	ConnectedLink int
	BoardAddress  string
}

type spinnakerLinkAddrKey struct {
	boardAddress    string
	spinnakerLinkID int
}

type spinnakerLinkChipKey struct {
	chip            XY
	spinnakerLinkID int
}

type fpgaLinkAddrKey struct {
	boardAddress string
	fpgaID       int
	fpgaLinkID   int
}

type fpgaLinkChipKey struct {
	chip       XY
	fpgaID     int
	fpgaLinkID int
}

// SpinnakerLinks returns all the registered SpiNNaker links, one entry per
// board-address registration.
func (m *Machine) SpinnakerLinks() []*SpinnakerLinkData {
	links := make([]*SpinnakerLinkData, 0, len(m.spinnakerLinksByAddress))
	for _, data := range m.spinnakerLinksByAddress {
		links = append(links, data)
	}

	return links
}

// SpinnakerLinkWithID finds a SpiNNaker link by its ID on the board with
// the given address. An empty address selects the boot board.
func (m *Machine) SpinnakerLinkWithID(
	spinnakerLinkID int,
	boardAddress string,
) (*SpinnakerLinkData, error) {
	if boardAddress == "" {
		boardAddress = m.bootEthernetAddress
	}

	key := spinnakerLinkAddrKey{boardAddress, spinnakerLinkID}
	data, ok := m.spinnakerLinksByAddress[key]
	if !ok {
		return nil, fmt.Errorf(
			"%w: SpiNNaker link %d on board %s",
			ErrNotFound, spinnakerLinkID, boardAddress)
	}

	return data, nil
}

// SpinnakerLinkAtChip finds a SpiNNaker link by its ID on a specific chip.
func (m *Machine) SpinnakerLinkAtChip(
	spinnakerLinkID int,
	chip XY,
) (*SpinnakerLinkData, error) {
	if _, ok := m.chips[chip]; !ok {
		return nil, fmt.Errorf("%w: chip %s", ErrNotFound, chip)
	}

	key := spinnakerLinkChipKey{chip, spinnakerLinkID}
	data, ok := m.spinnakerLinksByChip[key]
	if !ok {
		return nil, fmt.Errorf(
			"%w: SpiNNaker link %d on chip %s",
			ErrNotFound, spinnakerLinkID, chip)
	}

	return data, nil
}

// FPGALinkWithID finds an FPGA link by FPGA ID and FPGA link ID on the
// board with the given address. An empty address selects the boot board.
func (m *Machine) FPGALinkWithID(
	fpgaID, fpgaLinkID int,
	boardAddress string,
) (*FPGALinkData, error) {
	if boardAddress == "" {
		boardAddress = m.bootEthernetAddress
	}

	key := fpgaLinkAddrKey{boardAddress, fpgaID, fpgaLinkID}
	data, ok := m.fpgaLinksByAddress[key]
	if !ok {
		return nil, fmt.Errorf(
			"%w: FPGA %d link %d on board %s",
			ErrNotFound, fpgaID, fpgaLinkID, boardAddress)
	}

	return data, nil
}

// FPGALinkAtChip finds an FPGA link by FPGA ID and FPGA link ID on a
// specific chip. The coordinate of the board's ethernet-connected chip
// resolves the links of the whole board.
func (m *Machine) FPGALinkAtChip(
	fpgaID, fpgaLinkID int,
	chip XY,
) (*FPGALinkData, error) {
	if _, ok := m.chips[chip]; !ok {
		return nil, fmt.Errorf("%w: chip %s", ErrNotFound, chip)
	}

	key := fpgaLinkChipKey{chip, fpgaID, fpgaLinkID}
	data, ok := m.fpgaLinksByChip[key]
	if !ok {
		return nil, fmt.Errorf(
			"%w: FPGA %d link %d on chip %s",
			ErrNotFound, fpgaID, fpgaLinkID, chip)
	}

	return data, nil
}

// FPGALinksOfBoard returns the FPGA links registered for the board whose
// ethernet-connected chip is at the given coordinate.
func (m *Machine) FPGALinksOfBoard(ethernet XY) []*FPGALinkData {
	var links []*FPGALinkData
	for fpgaID := 0; fpgaID < 3; fpgaID++ {
		for fpgaLinkID := 0; fpgaLinkID < 16; fpgaLinkID++ {
			key := fpgaLinkChipKey{ethernet, fpgaID, fpgaLinkID}
			if data, ok := m.fpgaLinksByChip[key]; ok {
				links = append(links, data)
			}
		}
	}

	return links
}
