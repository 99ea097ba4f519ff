package cmd

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/machine"
	"github.com/SpiNNakerManchester/SpiNNMachine-sub000/virtual"
)

// A MachineConfig mirrors the [Machine] section of the toolchain's
// configuration files: the requested size plus the textual ignore lists.
type MachineConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Version int `yaml:"version"`

	CPUsPerChip  int `yaml:"cpus_per_chip"`
	SDRAMPerChip int `yaml:"sdram_per_chip"`

	// NoMonitors leaves core 0 of every chip available to applications.
	NoMonitors bool `yaml:"no_monitors"`

	DownChips string `yaml:"down_chips"`
	DownCores string `yaml:"down_cores"`
	DownLinks string `yaml:"down_links"`
}

// LoadMachineConfig reads a machine configuration from a YAML file.
func LoadMachineConfig(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &MachineConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Builder converts the configuration into a virtual machine builder.
func (c *MachineConfig) Builder() (virtual.Builder, error) {
	builder := virtual.MakeBuilder().WithSize(c.Width, c.Height)

	if c.Version != 0 {
		builder = builder.WithVersion(virtual.BoardVersion(c.Version))
	}
	if c.CPUsPerChip != 0 {
		builder = builder.WithCPUsPerChip(c.CPUsPerChip)
	}
	if c.SDRAMPerChip != 0 {
		builder = builder.WithSDRAMPerChip(c.SDRAMPerChip)
	}
	if c.NoMonitors {
		builder = builder.WithMonitors(false)
	}

	ignoreChips, err := virtual.ParseIgnoreChips(c.DownChips)
	if err != nil {
		return virtual.Builder{}, err
	}
	ignoreCores, err := virtual.ParseIgnoreCores(c.DownCores)
	if err != nil {
		return virtual.Builder{}, err
	}
	ignoreLinks, err := virtual.ParseIgnoreLinks(c.DownLinks)
	if err != nil {
		return virtual.Builder{}, err
	}

	return builder.
		WithIgnoreChips(ignoreChips).
		WithIgnoreCores(ignoreCores).
		WithIgnoreLinks(ignoreLinks), nil
}

// Build creates the machine the configuration describes.
func (c *MachineConfig) Build() (*machine.Machine, error) {
	builder, err := c.Builder()
	if err != nil {
		return nil, err
	}

	return builder.Build()
}
