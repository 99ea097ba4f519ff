package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/jsonmachine"
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/record"
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/virtual"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a virtual machine and write its JSON description.",
	Long: "`generate --width W --height H --out machine.json` builds a " +
		"virtual machine of the given size and writes it as JSON. A YAML " +
		"config file can supply the size and ignore lists instead.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &MachineConfig{}

		configPath, _ := cmd.Flags().GetString("config")
		if configPath != "" {
			loaded, err := LoadMachineConfig(configPath)
			if err != nil {
				log.Fatalf("Error reading config: %v", err)
			}
			cfg = loaded
		}

		if cmd.Flags().Changed("width") {
			cfg.Width, _ = cmd.Flags().GetInt("width")
		}
		if cmd.Flags().Changed("height") {
			cfg.Height, _ = cmd.Flags().GetInt("height")
		}
		if cmd.Flags().Changed("version") {
			cfg.Version, _ = cmd.Flags().GetInt("version")
		}

		m, err := cfg.Build()
		if err != nil {
			log.Fatalf("Error building machine: %v", err)
		}

		cores, links := m.CoresAndLinkCount()
		fmt.Printf("Built %s with %d cores and %.0f links\n",
			m, cores, links)

		outPath, _ := cmd.Flags().GetString("out")
		if outPath != "" {
			if err := jsonmachine.WriteFile(m, outPath); err != nil {
				log.Fatalf("Error writing JSON: %v", err)
			}
			fmt.Printf("Machine written to %s\n", outPath)
		}

		recordPath, _ := cmd.Flags().GetString("record")
		if recordPath != "" {
			recorder, err := record.New(recordPath)
			if err != nil {
				log.Fatalf("Error opening recording database: %v", err)
			}
			if err := recorder.RecordMachine(m); err != nil {
				log.Fatalf("Error recording machine: %v", err)
			}
			fmt.Printf("Machine recorded to %s.sqlite3\n", recordPath)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("config", "", "YAML machine configuration")
	generateCmd.Flags().Int("width", 0, "Width of the machine in chips")
	generateCmd.Flags().Int("height", 0, "Height of the machine in chips")
	generateCmd.Flags().Int("version", int(virtual.VersionNone),
		"Board version to pin the machine to")
	generateCmd.Flags().String("out", "", "Path of the JSON description")
	generateCmd.Flags().String("record", "",
		"Record the machine to a SQLite database at this path")
}
