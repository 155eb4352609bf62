package twoport

import (
	"math"
	"math/cmplx"
)

// Polar is a magnitude / phase pair, phase in degrees.
type Polar struct {
	Mag   float64
	Phase float64
}

func FromPolar(mag, phaseDeg float64) complex128 {
	return complex(mag, 0) * cmplx.Exp(complex(0, phaseDeg*math.Pi/180))
}

// ToPolar returns |c| and arg(c) in degrees, with the phase in (-180, 180].
func ToPolar(c complex128) Polar {
	phase := cmplx.Phase(c) * (180 / math.Pi)
	switch {
	case phase <= -180:
		phase += 360
	case phase > 180:
		phase = 180
	}
	return Polar{Mag: cmplx.Abs(c), Phase: phase}
}

func (p Polar) Complex() complex128 {
	return FromPolar(p.Mag, p.Phase)
}
