package machine

import "fmt"

// Validate checks the machine for unexpected conditions, assuming that all
// chips have been added. Synthetic machines are built so that these checks
// hold by construction; hardware-reported machines should always be
// validated.
func (m *Machine) Validate() error {
	if m.bootEthernetAddress == "" {
		return fmt.Errorf(
			"%w: no ethernet chip at 0, 0 found", ErrInvalidParameter)
	}
	if len(m.ethernetConnectedChips) > 1 && !m.Multiple48ChipBoards() {
		return fmt.Errorf(
			"%w: a %s machine of size %d, %d can not handle multiple"+
				" ethernet chips",
			ErrInvalidParameter, m.wrap, m.width, m.height)
	}

	for _, xy := range m.chipOrder {
		chip := m.chips[xy]
		if chip.x < 0 {
			return fmt.Errorf(
				"%w: %s has a negative x", ErrInvalidParameter, chip)
		}
		if chip.y < 0 {
			return fmt.Errorf(
				"%w: %s has a negative y", ErrInvalidParameter, chip)
		}
		if chip.x >= m.width {
			return fmt.Errorf(
				"%w: %s has a x larger than width %d",
				ErrInvalidParameter, chip, m.width)
		}
		if chip.y >= m.height {
			return fmt.Errorf(
				"%w: %s has a y larger than height %d",
				ErrInvalidParameter, chip, m.height)
		}

		if chip.IPAddress() != "" {
			// Ethernet-connected chips sit at the triad roots.
			if chip.x%4 != 0 {
				return fmt.Errorf(
					"%w: ethernet %s has a x which is not divisible by 4",
					ErrInvalidParameter, chip)
			}
			if (chip.x+chip.y)%TriadWidth != 0 {
				return fmt.Errorf(
					"%w: ethernet %s has an x,y pair that does not add up"+
						" to 12",
					ErrInvalidParameter, chip)
			}
		} else {
			if _, ok := m.chips[chip.nearestEthernet]; !ok {
				return fmt.Errorf(
					"%w: %s has an invalid ethernet chip",
					ErrInvalidParameter, chip)
			}
			local := m.LocalXY(chip)
			if _, ok := m.chipCoreMap[local]; !ok {
				return fmt.Errorf(
					"%w: %s has an unexpected local xy of %s",
					ErrInvalidParameter, chip, local)
			}
		}
	}

	return nil
}
