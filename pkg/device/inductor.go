package device

import (
	"math"

	"github.com/edp1096/cs2cg/internal/consts"
)

// Inductor is a source-degeneration inductor. Value is in nH.
//
// Scale multiplies the inductance before the impedance is computed (1e6 by
// default). The factor is carried over from earlier converter output and is
// not derived from the degeneration model.
type Inductor struct {
	BaseDevice
	Scale float64
}

var _ SeriesElement = (*Inductor)(nil)

func NewInductor(name string, valueNH, scale float64) *Inductor {
	return &Inductor{
		BaseDevice: BaseDevice{
			Name:  name,
			Value: valueNH,
		},
		Scale: scale,
	}
}

func (l *Inductor) GetType() string { return "L" }

// Henries returns the inductance in H, without Scale.
func (l *Inductor) Henries() float64 {
	return l.Value * consts.NANO
}

// Impedance returns j*2*pi*f*Scale*L.
func (l *Inductor) Impedance(freq float64) complex128 {
	return complex(0, 2*math.Pi*freq*l.Scale*l.Henries())
}
