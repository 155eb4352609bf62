package consts

const (
	Z0      = 50.0 // Reference impedance (ohm)
	NANO    = 1e-9 // nH -> H
	SCALE   = 1e6  // Multiplier applied to the inductance before computing its impedance
	COLUMNS = 9    // freq + 4 x (mag, phase)
)
