package machine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/virtual"
)

func directedLinkCount(m *machine.Machine) int {
	total := 0
	for _, chip := range m.Chips() {
		total += chip.Router().NLinks()
	}

	return total
}

var _ = Describe("Repair", func() {
	It("should leave a healthy machine alone", func() {
		m, err := virtual.MakeBuilder().WithSize(8, 8).Build()
		Expect(err).To(BeNil())

		repaired, err := machine.Repair(m, nil)
		Expect(err).To(BeNil())
		Expect(repaired).To(BeIdenticalTo(m))
	})

	It("should remove one-way links", func() {
		m, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithIgnoreLinks([]virtual.IgnoreLink{{X: 3, Y: 3, Link: 0}}).
			Build()
		Expect(err).To(BeNil())

		Expect(m.OneWayLinks()).To(Equal([]machine.OneWayLink{
			{Source: machine.XY{X: 4, Y: 3}, Out: 3, Back: 0},
		}))

		repaired, err := machine.Repair(m, nil)
		Expect(err).To(BeNil())
		Expect(repaired).NotTo(BeIdenticalTo(m))
		Expect(repaired.NChips()).To(Equal(48))
		Expect(directedLinkCount(repaired)).To(
			Equal(directedLinkCount(m) - 1))
		Expect(repaired.OneWayLinks()).To(BeEmpty())
		Expect(repaired.String()).To(ContainSubstring("Fixed"))
	})

	It("should remove chips that cannot talk to their board", func() {
		ignores := make([]virtual.IgnoreLink, 0, machine.MaxLinksPerRouter)
		for link := 0; link < machine.MaxLinksPerRouter; link++ {
			ignores = append(ignores,
				virtual.IgnoreLink{X: 3, Y: 3, Link: link})
		}
		m, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithIgnoreLinks(ignores).
			Build()
		Expect(err).To(BeNil())

		Expect(m.UnreachableOutgoingChips()).To(
			Equal([]machine.XY{{X: 3, Y: 3}}))
		Expect(m.UnreachableOutgoingLocalChips()).To(
			Equal([]machine.XY{{X: 3, Y: 3}}))

		repaired, err := machine.Repair(m, nil)
		Expect(err).To(BeNil())
		Expect(repaired.NChips()).To(Equal(47))
		Expect(repaired.HasChipAt(3, 3)).To(BeFalse())
		Expect(repaired.OneWayLinks()).To(BeEmpty())
		Expect(repaired.UnreachableIncomingLocalChips()).To(BeEmpty())
		Expect(repaired.UnreachableOutgoingLocalChips()).To(BeEmpty())
	})

	It("should cope with a dead chip whose ethernet chip is gone", func() {
		m, err := machine.New(8, 8)
		Expect(err).To(BeNil())
		Expect(m.AddChip(chipAt(1, 1))).To(Succeed())

		// The stranded chip is removed; the empty result then fails
		// validation, but nothing panics on the missing board address.
		_, err = machine.Repair(m, nil)
		Expect(err).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should not report links into chips already known removed", func() {
		m, err := virtual.MakeBuilder().
			WithSize(8, 8).
			WithIgnoreChips([]virtual.IgnoreChip{{X: 3, Y: 3}}).
			Build()
		Expect(err).To(BeNil())

		// The builder never creates links into a missing chip, so there
		// is nothing left to repair.
		repaired, err := machine.Repair(
			m, map[machine.XY]bool{{X: 3, Y: 3}: true})
		Expect(err).To(BeNil())
		Expect(repaired).To(BeIdenticalTo(m))
	})
})

var _ = Describe("Validate", func() {
	It("should accept a well-formed machine", func() {
		m, err := virtual.MakeBuilder().WithSize(12, 12).Build()
		Expect(err).To(BeNil())
		Expect(m.Validate()).To(Succeed())
	})

	It("should require an ethernet chip at the boot coordinate", func() {
		m, _ := machine.New(8, 8)
		Expect(m.AddChip(chipAt(0, 0))).To(Succeed())
		Expect(m.Validate()).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should reject multiple ethernet chips on a small machine", func() {
		m, _ := machine.New(8, 8)
		Expect(m.AddChip(ethernetChipAt(0, 0, "192.168.240.1"))).To(Succeed())
		Expect(m.AddChip(ethernetChipAt(4, 0, "192.168.240.2"))).To(Succeed())
		Expect(m.Validate()).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should expect ethernet chips at triad roots", func() {
		m, _ := machine.New(16, 16)
		Expect(m.AddChip(ethernetChipAt(0, 0, "192.168.240.1"))).To(Succeed())
		Expect(m.AddChip(ethernetChipAt(4, 4, "192.168.240.2"))).To(Succeed())
		Expect(m.Validate()).To(MatchError(machine.ErrInvalidParameter))
	})

	It("should expect every chip to be on a board", func() {
		m, _ := machine.New(16, 16)
		Expect(m.AddChip(ethernetChipAt(0, 0, "192.168.240.1"))).To(Succeed())

		router, _ := machine.NewRouter(nil, machine.RouterEntries)
		stray, err := machine.NewChip(machine.ChipDesc{
			X: 10, Y: 10,
			NProcessors:     18,
			Router:          router,
			NearestEthernet: machine.XY{X: 12, Y: 12},
		})
		Expect(err).To(BeNil())
		Expect(m.AddChip(stray)).To(Succeed())

		Expect(m.Validate()).To(MatchError(machine.ErrInvalidParameter))
	})
})
