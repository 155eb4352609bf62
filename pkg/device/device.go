package device

import "github.com/edp1096/cs2cg/pkg/twoport"

// SeriesElement is a lumped element placed in series with the common
// terminal of a two-port. Its impedance appears in all four Z-parameters.
type SeriesElement interface {
	GetName() string
	GetType() string
	GetValue() float64
	Impedance(freq float64) complex128
}

type BaseDevice struct {
	Name  string
	Value float64
}

func (d *BaseDevice) GetName() string {
	return d.Name
}

func (d *BaseDevice) GetValue() float64 {
	return d.Value
}

// Inject adds the element's series impedance at freq to every entry of an
// absolute (ohm) Z matrix.
func Inject(z twoport.TwoPort, el SeriesElement, freq float64) twoport.TwoPort {
	return z.AddAll(el.Impedance(freq))
}
