package virtual_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/virtual"
)

func directedLinks(m *machine.Machine) int {
	total := 0
	for _, chip := range m.Chips() {
		total += chip.Router().NLinks()
	}

	return total
}

var _ = Describe("Builder sizes", func() {
	It("should reject negative dimensions", func() {
		_, err := virtual.MakeBuilder().WithSize(-1, 12).Build()
		Expect(err).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should reject sizes no board family produces", func() {
		_, err := virtual.MakeBuilder().WithSize(9, 9).Build()
		Expect(err).To(MatchError(machine.ErrInvalidParameter))

		_, err = virtual.MakeBuilder().WithSize(12, 10).Build()
		Expect(err).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should accept triad tilings and their unwrapped forms", func() {
		for _, size := range [][2]int{
			{2, 2}, {8, 8}, {12, 12}, {16, 16}, {12, 16}, {24, 36},
		} {
			_, err := virtual.MakeBuilder().
				WithSize(size[0], size[1]).Build()
			Expect(err).To(BeNil())
		}
	})

	It("should hold the four-chip versions to their size", func() {
		_, err := virtual.MakeBuilder().
			WithSize(8, 8).WithVersion(virtual.Version3).Build()
		Expect(err).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should hold version 5 to a single unwrapped board", func() {
		_, err := virtual.MakeBuilder().
			WithSize(12, 12).WithVersion(virtual.Version5).Build()
		Expect(err).To(MatchError(machine.ErrInvalidParameter))

		_, err = virtual.MakeBuilder().
			WithSize(8, 8).
			WithVersion(virtual.Version5).
			WithWrap(machine.FullWrap).
			Build()
		Expect(err).To(MatchError(machine.ErrInvalidParameter))

		m, err := virtual.MakeBuilder().
			WithSize(8, 8).WithVersion(virtual.Version5).Build()
		Expect(err).To(BeNil())
		Expect(m.WrapKind()).To(Equal(machine.NoWrap))
	})
})

var _ = Describe("Building a 4-chip board", func() {
	It("should wrap all six links of every chip", func() {
		m, err := virtual.MakeBuilder().WithSize(2, 2).Build()
		Expect(err).To(BeNil())

		Expect(m.NChips()).To(Equal(4))
		Expect(m.WrapKind()).To(Equal(machine.FullWrap))
		for _, chip := range m.Chips() {
			Expect(chip.Router().NLinks()).To(Equal(6))
		}
	})

	It("should pair every link with its opposite as the default route", func() {
		m, err := virtual.MakeBuilder().WithSize(2, 2).Build()
		Expect(err).To(BeNil())

		for _, chip := range m.Chips() {
			for _, link := range chip.Router().Links() {
				opposite := machine.OppositeLink(link.SourceLinkID())

				from, ok := link.MulticastDefaultFrom()
				Expect(ok).To(BeTrue())
				Expect(from).To(Equal(opposite))

				to, ok := link.MulticastDefaultTo()
				Expect(ok).To(BeTrue())
				Expect(to).To(Equal(opposite))
			}
		}
	})

	It("should leave out the corner links of a version 3 board", func() {
		m, err := virtual.MakeBuilder().
			WithSize(2, 2).
			WithVersion(virtual.Version3).
			Build()
		Expect(err).To(BeNil())

		Expect(m.NChips()).To(Equal(4))
		Expect(m.HasLinkAt(0, 0, 3)).To(BeFalse())
		Expect(m.HasLinkAt(0, 0, 4)).To(BeFalse())
		Expect(m.HasLinkAt(1, 0, 0)).To(BeFalse())
		Expect(m.HasLinkAt(1, 0, 1)).To(BeFalse())
		Expect(m.HasLinkAt(0, 0, 0)).To(BeTrue())
		Expect(m.HasLinkAt(0, 0, 2)).To(BeTrue())
	})
})

var _ = Describe("Building a 48-chip board", func() {
	var m *machine.Machine

	BeforeEach(func() {
		var err error
		m, err = virtual.MakeBuilder().WithSize(8, 8).Build()
		Expect(err).To(BeNil())
	})

	It("should populate the hexagonal board shape", func() {
		Expect(m.NChips()).To(Equal(48))
		Expect(m.HasChipAt(0, 0)).To(BeTrue())
		Expect(m.HasChipAt(7, 7)).To(BeTrue())
		Expect(m.HasChipAt(0, 7)).To(BeFalse())
		Expect(m.HasChipAt(7, 0)).To(BeFalse())
	})

	It("should have one ethernet chip with a loopback address", func() {
		Expect(m.EthernetConnectedChips()).To(HaveLen(1))
		Expect(m.BootChip().XY()).To(Equal(machine.XY{X: 0, Y: 0}))
		Expect(m.BootEthernetAddress()).To(Equal("127.0.0.0"))
	})

	It("should create every internal link in both directions", func() {
		Expect(directedLinks(m)).To(Equal(240))
		Expect(m.OneWayLinks()).To(BeEmpty())
	})

	It("should give chips their board-position core counts", func() {
		total := 0
		for _, chip := range m.Chips() {
			total += chip.NProcessors()
		}
		Expect(total).To(Equal(m.TotalCores()))
		Expect(m.MaxUserCoresPerChip()).To(
			Equal(machine.DefaultMaxCoresPerChip - 1))
	})

	It("should validate", func() {
		Expect(m.Validate()).To(Succeed())
	})
})

var _ = Describe("Building a triad", func() {
	It("should populate all three boards", func() {
		m, err := virtual.MakeBuilder().WithSize(12, 12).Build()
		Expect(err).To(BeNil())

		Expect(m.NChips()).To(Equal(144))
		Expect(m.WrapKind()).To(Equal(machine.FullWrap))

		ethernets := make([]machine.XY, 0, 3)
		for _, chip := range m.EthernetConnectedChips() {
			ethernets = append(ethernets, chip.XY())
		}
		Expect(ethernets).To(ConsistOf(
			machine.XY{X: 0, Y: 0},
			machine.XY{X: 4, Y: 8},
			machine.XY{X: 8, Y: 4},
		))
	})

	It("should wrap every link of a full torus", func() {
		m, err := virtual.MakeBuilder().WithSize(12, 12).Build()
		Expect(err).To(BeNil())

		Expect(directedLinks(m)).To(Equal(144 * 6))
		Expect(m.OneWayLinks()).To(BeEmpty())
	})
})

var _ = Describe("Builder overrides", func() {
	It("should apply a fixed CPU count", func() {
		m, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithCPUsPerChip(10).
			Build()
		Expect(err).To(BeNil())

		for _, chip := range m.Chips() {
			Expect(chip.NProcessors()).To(Equal(10))
		}
	})

	It("should apply an SDRAM capacity", func() {
		m, err := virtual.MakeBuilder().
			WithSize(2, 2).
			WithSDRAMPerChip(1024).
			Build()
		Expect(err).To(BeNil())

		Expect(m.Chip(0, 0).SDRAM().Size()).To(Equal(1024))
	})

	It("should leave core 0 as a user core when monitors are off", func() {
		m, err := virtual.MakeBuilder().
			WithSize(2, 2).
			WithMonitors(false).
			Build()
		Expect(err).To(BeNil())

		chip := m.Chip(0, 0)
		Expect(chip.NUserProcessors()).To(Equal(chip.NProcessors()))
		Expect(chip.FirstUserProcessor().ID()).To(Equal(0))
	})
})

var _ = Describe("Builder ignores", func() {
	It("should report losing the boot chip instead of panicking", func() {
		_, err := virtual.MakeBuilder().
			WithSize(2, 2).
			WithIgnoreChips([]virtual.IgnoreChip{{X: 0, Y: 0}}).
			Build()
		Expect(err).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should probe peripheral links only on chips that exist", func() {
		m, err := virtual.MakeBuilder().
			WithSize(2, 2).
			WithIgnoreChips([]virtual.IgnoreChip{{X: 1, Y: 0}}).
			Build()
		Expect(err).To(BeNil())

		Expect(m.NChips()).To(Equal(3))
		data, err := m.SpinnakerLinkWithID(0, "")
		Expect(err).To(BeNil())
		Expect(data.ConnectedChip).To(Equal(machine.XY{X: 0, Y: 0}))
		_, err = m.SpinnakerLinkWithID(1, "")
		Expect(err).To(MatchError(machine.ErrNotFound))
	})

	It("should leave out an ignored chip and all links to it", func() {
		m, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithIgnoreChips([]virtual.IgnoreChip{{X: 3, Y: 3}}).
			Build()
		Expect(err).To(BeNil())

		Expect(m.NChips()).To(Equal(47))
		Expect(m.HasChipAt(3, 3)).To(BeFalse())

		for link := 0; link < machine.MaxLinksPerRouter; link++ {
			neighbour := m.XYOverLink(3, 3, link)
			Expect(m.HasLinkAt(
				neighbour.X, neighbour.Y,
				machine.OppositeLink(link))).To(BeFalse())
		}

		// Removing an interior chip leaves nothing else to repair.
		repaired, err := machine.Repair(
			m, map[machine.XY]bool{{X: 3, Y: 3}: true})
		Expect(err).To(BeNil())
		Expect(repaired).To(BeIdenticalTo(m))
	})

	It("should leave out only the named chip", func() {
		full, err := virtual.MakeBuilder().WithSize(8, 8).Build()
		Expect(err).To(BeNil())
		broken, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithIgnoreChips([]virtual.IgnoreChip{{X: 3, Y: 3}}).
			Build()
		Expect(err).To(BeNil())

		missingLinks := 0
		for _, chip := range full.Chips() {
			other := broken.ChipAt(chip.XY())
			if other == nil {
				Expect(chip.XY()).To(Equal(machine.XY{X: 3, Y: 3}))
				continue
			}
			Expect(other.NProcessors()).To(Equal(chip.NProcessors()))
			missingLinks += chip.Router().NLinks() - other.Router().NLinks()
		}

		// The six links into the missing chip, and its own six out.
		Expect(missingLinks).To(Equal(6))
		Expect(directedLinks(full) - directedLinks(broken)).To(Equal(12))
	})

	It("should mark ignored cores as down", func() {
		m, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithIgnoreCores([]virtual.IgnoreCore{{X: 1, Y: 1, Core: 5}}).
			Build()
		Expect(err).To(BeNil())

		chip := m.Chip(1, 1)
		Expect(chip.HasProcessor(5)).To(BeFalse())
		Expect(m.Chip(1, 2).HasProcessor(5)).To(BeTrue())
	})

	It("should convert physical core IDs with the typical map", func() {
		ignore := virtual.IgnoreCore{X: 1, Y: 1, Core: -10}
		Expect(ignore.VirtualCore()).To(Equal(0))

		ignore = virtual.IgnoreCore{X: 1, Y: 1, Core: -4}
		Expect(ignore.VirtualCore()).To(Equal(5))
	})

	It("should resolve board-local ignores through the IP address", func() {
		m, err := virtual.MakeBuilder().
			WithSize(12, 12).
			WithIgnoreChips([]virtual.IgnoreChip{
				{X: 1, Y: 1, IPAddress: "127.0.4.8"},
			}).
			Build()
		Expect(err).To(BeNil())

		Expect(m.HasChipAt(5, 9)).To(BeFalse())
		Expect(m.HasChipAt(1, 1)).To(BeTrue())
	})

	It("should drop ignores for boards that are not in the machine", func() {
		m, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithIgnoreChips([]virtual.IgnoreChip{
				{X: 1, Y: 1, IPAddress: "10.11.12.13"},
			}).
			Build()
		Expect(err).To(BeNil())

		Expect(m.NChips()).To(Equal(48))
	})

	It("should leave out ignored links in one direction only", func() {
		m, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithIgnoreLinks([]virtual.IgnoreLink{{X: 2, Y: 2, Link: 0}}).
			Build()
		Expect(err).To(BeNil())

		Expect(m.HasLinkAt(2, 2, 0)).To(BeFalse())
		Expect(m.HasLinkAt(3, 2, 3)).To(BeTrue())
	})
})
