package record

import (
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
)

// ChipEntry is one row of the chips table.
type ChipEntry struct {
	X          int
	Y          int
	NCores     int
	NUserCores int
	EthernetX  int
	EthernetY  int
	IPAddress  string
	Virtual    bool
}

// LinkEntry is one row of the links table.
type LinkEntry struct {
	SourceX      int
	SourceY      int
	SourceLinkID int
	DestX        int
	DestY        int
}

// RecordMachine writes the chips and links of a machine into the chips
// and links tables, creating them if this is the first machine recorded.
func (r *Recorder) RecordMachine(m *machine.Machine) error {
	if _, ok := r.tables["chips"]; !ok {
		if err := r.CreateTable("chips", ChipEntry{}); err != nil {
			return err
		}
		if err := r.CreateTable("links", LinkEntry{}); err != nil {
			return err
		}
	}

	for _, chip := range m.Chips() {
		ethernet := chip.NearestEthernet()
		err := r.Insert("chips", ChipEntry{
			X:          chip.X(),
			Y:          chip.Y(),
			NCores:     chip.NProcessors(),
			NUserCores: chip.NUserProcessors(),
			EthernetX:  ethernet.X,
			EthernetY:  ethernet.Y,
			IPAddress:  chip.IPAddress(),
			Virtual:    chip.Virtual(),
		})
		if err != nil {
			return err
		}

		for _, link := range chip.Router().Links() {
			source := link.Source()
			destination := link.Destination()
			err := r.Insert("links", LinkEntry{
				SourceX:      source.X,
				SourceY:      source.Y,
				SourceLinkID: link.SourceLinkID(),
				DestX:        destination.X,
				DestY:        destination.Y,
			})
			if err != nil {
				return err
			}
		}
	}

	return r.Flush()
}
