package main

import "github.com/SpiNNakerManchester/SpiNNMachine-sub000/cmd/spinnmachine/cmd"

func main() {
	cmd.Execute()
}
