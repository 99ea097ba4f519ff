// Package jsonmachine reads and writes the JSON description of a machine
// shared with the other tools in the toolchain. The description records a
// default resource bundle per chip type and, per chip, only the fields
// that differ from it, so the serialized size is proportional to the
// irregularity of the machine, not its size.
package jsonmachine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
)

// javaMaxInt clamps counts that other consumers of the format read as
// 32-bit signed integers.
const javaMaxInt = 2147483647

// Resources is the default resource bundle of one chip type.
type Resources struct {
	Monitors      int   `json:"monitors"`
	RouterEntries int   `json:"routerEntries"`
	SDRAM         int   `json:"sdram"`
	Tags          []int `json:"tags"`
}

// Details describes one chip, minus anything covered by its type's
// resource bundle.
type Details struct {
	Cores     int    `json:"cores"`
	Ethernet  [2]int `json:"ethernet"`
	DeadLinks []int  `json:"deadLinks,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// Exceptions records the resource fields of one chip that differ from its
// type's bundle.
type Exceptions struct {
	Monitors      *int  `json:"monitors,omitempty"`
	RouterEntries *int  `json:"routerEntries,omitempty"`
	SDRAM         *int  `json:"sdram,omitempty"`
	Tags          []int `json:"tags,omitempty"`
}

func (e *Exceptions) empty() bool {
	return e.Monitors == nil && e.RouterEntries == nil &&
		e.SDRAM == nil && e.Tags == nil
}

// Chip is one chip entry. On the wire it is a 3- or 4-element array:
// [x, y, details] or [x, y, details, exceptions].
type Chip struct {
	X          int
	Y          int
	Details    Details
	Exceptions *Exceptions
}

// MarshalJSON writes the chip in its array form, with the exceptions
// element only when there is something exceptional.
func (c Chip) MarshalJSON() ([]byte, error) {
	if c.Exceptions != nil && !c.Exceptions.empty() {
		return json.Marshal(
			[]any{c.X, c.Y, c.Details, c.Exceptions})
	}
	return json.Marshal([]any{c.X, c.Y, c.Details})
}

// UnmarshalJSON reads the chip from its array form.
func (c *Chip) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 && len(parts) != 4 {
		return fmt.Errorf(
			"%w: a chip entry has %d elements, not 3 or 4",
			machine.ErrInvalidParameter, len(parts))
	}

	if err := json.Unmarshal(parts[0], &c.X); err != nil {
		return err
	}
	if err := json.Unmarshal(parts[1], &c.Y); err != nil {
		return err
	}
	if err := json.Unmarshal(parts[2], &c.Details); err != nil {
		return err
	}
	if len(parts) == 4 {
		c.Exceptions = new(Exceptions)
		if err := json.Unmarshal(parts[3], c.Exceptions); err != nil {
			return err
		}
	}

	return nil
}

// Document is the whole machine description.
type Document struct {
	Width             int       `json:"width"`
	Height            int       `json:"height"`
	Root              [2]int    `json:"root"`
	StandardResources Resources `json:"standardResources"`
	EthernetResources Resources `json:"ethernetResources"`
	Chips             []Chip    `json:"chips"`
}

func clampInt(value int) int {
	if value < javaMaxInt {
		return value
	}
	return javaMaxInt
}

func resourcesOf(chip *machine.Chip) Resources {
	return Resources{
		Monitors:      chip.NProcessors() - chip.NUserProcessors(),
		RouterEntries: clampInt(chip.Router().NAvailableMulticastEntries()),
		SDRAM:         chip.SDRAM().Size(),
		Tags:          chip.TagIDs(),
	}
}

func equalTags(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ToJSON produces the description of a machine. The defaults of the
// standard chip type come from the first chip without an ethernet
// connection; those of the ethernet type come from the boot chip.
func ToJSON(m *machine.Machine) (*Document, error) {
	var std Resources
	stdFound := false
	for _, chip := range m.Chips() {
		if chip.IPAddress() == "" {
			std = resourcesOf(chip)
			stdFound = true
			break
		}
	}
	if !stdFound {
		return nil, fmt.Errorf(
			"%w: no chip without an ethernet connection",
			machine.ErrNotFound)
	}

	bootChip := m.BootChip()
	if bootChip == nil {
		return nil, fmt.Errorf("%w: no boot chip", machine.ErrNotFound)
	}
	eth := resourcesOf(bootChip)

	doc := &Document{
		Width:             m.Width(),
		Height:            m.Height(),
		Root:              [2]int{0, 0},
		StandardResources: std,
		EthernetResources: eth,
	}
	for _, chip := range m.Chips() {
		doc.Chips = append(doc.Chips, describeChip(chip, std, eth))
	}

	return doc, nil
}

func describeChip(chip *machine.Chip, std, eth Resources) Chip {
	ethernet := chip.NearestEthernet()
	entry := Chip{
		X: chip.X(),
		Y: chip.Y(),
		Details: Details{
			Cores:    chip.NProcessors(),
			Ethernet: [2]int{ethernet.X, ethernet.Y},
		},
	}

	for linkID := 0; linkID < machine.MaxLinksPerRouter; linkID++ {
		if !chip.Router().HasLink(linkID) {
			entry.Details.DeadLinks = append(entry.Details.DeadLinks, linkID)
		}
	}

	defaults := std
	if chip.IPAddress() != "" {
		entry.Details.IPAddress = chip.IPAddress()
		defaults = eth
	}

	// Record only the resources that differ from the chip type defaults.
	exceptions := new(Exceptions)
	if monitors := chip.NProcessors() - chip.NUserProcessors(); monitors !=
		defaults.Monitors {
		exceptions.Monitors = &monitors
	}
	if entries := clampInt(
		chip.Router().NAvailableMulticastEntries()); entries !=
		defaults.RouterEntries {
		exceptions.RouterEntries = &entries
	}
	if sdram := chip.SDRAM().Size(); sdram != defaults.SDRAM {
		exceptions.SDRAM = &sdram
	}
	if !equalTags(chip.TagIDs(), defaults.Tags) {
		exceptions.Tags = chip.TagIDs()
	}
	if !exceptions.empty() {
		entry.Exceptions = exceptions
	}

	return entry
}

// FromJSON builds the machine a description describes. Links are
// re-derived from the machine dimensions minus each chip's dead links.
func FromJSON(doc *Document) (*machine.Machine, error) {
	m, err := machine.New(doc.Width, doc.Height)
	if err != nil {
		return nil, err
	}
	m.SetOrigin("Json")

	for _, entry := range doc.Chips {
		defaults := doc.StandardResources
		if entry.Details.IPAddress != "" {
			defaults = doc.EthernetResources
		}

		monitors := defaults.Monitors
		routerEntries := defaults.RouterEntries
		sdram := defaults.SDRAM
		tags := defaults.Tags
		if entry.Exceptions != nil {
			if entry.Exceptions.Monitors != nil {
				monitors = *entry.Exceptions.Monitors
			}
			if entry.Exceptions.RouterEntries != nil {
				routerEntries = *entry.Exceptions.RouterEntries
			}
			if entry.Exceptions.SDRAM != nil {
				sdram = *entry.Exceptions.SDRAM
			}
			if entry.Exceptions.Tags != nil {
				tags = entry.Exceptions.Tags
			}
		}
		if monitors != 1 {
			return nil, fmt.Errorf(
				"%w: only 1 monitor per chip is supported, not %d",
				machine.ErrInvalidParameter, monitors)
		}

		deadLinks := make(map[int]bool, len(entry.Details.DeadLinks))
		for _, linkID := range entry.Details.DeadLinks {
			deadLinks[linkID] = true
		}
		var links []*machine.Link
		for linkID := 0; linkID < machine.MaxLinksPerRouter; linkID++ {
			if deadLinks[linkID] {
				continue
			}
			destination := m.XYOverLink(entry.X, entry.Y, linkID)
			link, err := machine.NewLink(
				machine.XY{X: entry.X, Y: entry.Y}, linkID, destination)
			if err != nil {
				return nil, err
			}
			links = append(links, link)
		}
		router, err := machine.NewRouter(links, routerEntries)
		if err != nil {
			return nil, err
		}

		desc := machine.ChipDesc{
			X:           entry.X,
			Y:           entry.Y,
			NProcessors: entry.Details.Cores,
			Router:      router,
			NearestEthernet: machine.XY{
				X: entry.Details.Ethernet[0],
				Y: entry.Details.Ethernet[1],
			},
			IPAddress: entry.Details.IPAddress,
			TagIDs:    tags,
		}
		desc.SDRAM, err = machine.NewSDRAM(sdram)
		if err != nil {
			return nil, err
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

	return m, nil
}

// Encode serializes a machine to its JSON description.
func Encode(m *machine.Machine) ([]byte, error) {
	doc, err := ToJSON(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// Decode builds a machine from its JSON description.
func Decode(data []byte) (*machine.Machine, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return FromJSON(&doc)
}

// WriteFile writes the JSON description of a machine to a file,
// overwriting anything already there.
func WriteFile(m *machine.Machine, path string) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile builds a machine from a JSON description file.
func ReadFile(path string) (*machine.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
