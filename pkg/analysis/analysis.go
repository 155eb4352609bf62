package analysis

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/edp1096/cs2cg/internal/consts"
	"github.com/edp1096/cs2cg/pkg/twoport"
)

// Record is one measured frequency point. Parameters are in the column order
// of a 2-port data row: S11, S21, S12, S22.
type Record struct {
	Frequency float64 // Hz
	S11       twoport.Polar
	S21       twoport.Polar
	S12       twoport.Polar
	S22       twoport.Polar
}

func (r Record) TwoPort() twoport.TwoPort {
	return twoport.New(r.S11.Complex(), r.S12.Complex(), r.S21.Complex(), r.S22.Complex())
}

// RecordFromTwoPort builds a Record from rectangular S-parameters.
func RecordFromTwoPort(freq float64, s twoport.TwoPort) Record {
	return Record{
		Frequency: freq,
		S11:       twoport.ToPolar(s.P11),
		S21:       twoport.ToPolar(s.P21),
		S12:       twoport.ToPolar(s.P12),
		S22:       twoport.ToPolar(s.P22),
	}
}

// Values returns the 9 data columns.
func (r Record) Values() [consts.COLUMNS]float64 {
	return [consts.COLUMNS]float64{
		r.Frequency,
		r.S11.Mag, r.S11.Phase,
		r.S21.Mag, r.S21.Phase,
		r.S12.Mag, r.S12.Phase,
		r.S22.Mag, r.S22.Phase,
	}
}

func RecordFromValues(v [consts.COLUMNS]float64) Record {
	return Record{
		Frequency: v[0],
		S11:       twoport.Polar{Mag: v[1], Phase: v[2]},
		S21:       twoport.Polar{Mag: v[3], Phase: v[4]},
		S12:       twoport.Polar{Mag: v[5], Phase: v[6]},
		S22:       twoport.Polar{Mag: v[7], Phase: v[8]},
	}
}

// Stages keeps every intermediate matrix of one conversion.
type Stages struct {
	SourceS   twoport.TwoPort // common-source S
	SourceY   twoport.TwoPort // common-source Y, normalized
	GateY     twoport.TwoPort // common-gate Y, normalized
	GateS     twoport.TwoPort // common-gate S, no degeneration
	GateZ     twoport.TwoPort // common-gate Z, ohm
	GateYInv  twoport.TwoPort // GateY inverted and scaled to ohm, equals GateZ
	DegenZ    twoport.TwoPort // GateZ with series inductor, ohm
	DegenY    twoport.TwoPort // admittance of DegenZ, normalized
	DegenS    twoport.TwoPort // final common-gate S
	SeriesZ   complex128      // inductor impedance, ohm
	Dets      [4]complex128   // S->Y, Y->S, S->Z, Z->S determinants
	Singular  bool
	Frequency float64
}

// Result is the converted record for one input row.
type Result struct {
	Record
	// Singular is set when a conversion determinant was zero or tiny. The
	// values are left exactly as computed and may be Inf or NaN.
	Singular bool
	// Mismatch is set when Config.Verify is on and the LU-based inverse of
	// the common-gate admittance disagrees with the closed-form impedance.
	Mismatch bool
}

type Config struct {
	Z0           float64 // reference impedance (ohm)
	InductanceNH float64
	Scale        float64 // inductance multiplier, see device.Inductor
	Workers      int     // <= 0: runtime.NumCPU()
	Verify       bool
	VerifyTol    float64 // relative, <= 0: DefaultVerifyTol
	Logger       zerolog.Logger
}

const DefaultVerifyTol = 1e-6

func DefaultConfig() Config {
	return Config{
		Z0:        consts.Z0,
		Scale:     consts.SCALE,
		Workers:   runtime.NumCPU(),
		VerifyTol: DefaultVerifyTol,
		Logger:    zerolog.Nop(),
	}
}

func (c Config) workers(n int) int {
	w := c.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (c Config) String() string {
	return fmt.Sprintf("Z0=%g L=%gnH scale=%g workers=%d verify=%v", c.Z0, c.InductanceNH, c.Scale, c.Workers, c.Verify)
}
