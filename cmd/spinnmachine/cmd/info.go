package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/jsonmachine"
)

var infoCmd = &cobra.Command{
	Use:   "info [machine.json]",
	Short: "Summarise a machine stored as a JSON description.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := jsonmachine.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Error reading machine: %v", err)
		}

		cores, links := m.CoresAndLinkCount()
		fmt.Println(m)
		fmt.Printf("  cores: %d (%d available for users)\n",
			cores, m.TotalAvailableUserCores())
		fmt.Printf("  links: %.0f\n", links)
		fmt.Printf("  boards: %d\n", len(m.EthernetConnectedChips()))
		for _, chip := range m.EthernetConnectedChips() {
			fmt.Printf("    %s at %d, %d\n",
				chip.IPAddress(), chip.X(), chip.Y())
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
