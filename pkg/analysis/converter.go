package analysis

import (
	"context"
	"fmt"
	"math/cmplx"

	"golang.org/x/sync/errgroup"

	"github.com/edp1096/cs2cg/pkg/device"
	"github.com/edp1096/cs2cg/pkg/matrix"
	"github.com/edp1096/cs2cg/pkg/twoport"
)

// Converter turns common-source S-parameters into common-gate S-parameters
// with a source-degeneration inductor. It holds no per-record state and is
// safe for concurrent use.
type Converter struct {
	cfg      Config
	inductor *device.Inductor
}

func NewConverter(cfg Config) *Converter {
	return &Converter{
		cfg:      cfg,
		inductor: device.NewInductor("LS", cfg.InductanceNH, cfg.Scale),
	}
}

// Stages runs the full chain on one rectangular S matrix at freq.
func (c *Converter) Stages(freq float64, s twoport.TwoPort) Stages {
	st := Stages{Frequency: freq, SourceS: s}

	// Common-source S -> Y
	st.Dets[0] = twoport.SToYDet(s)
	st.SourceY = twoport.SToY(s)

	// CS -> CG
	st.GateY = twoport.CommonSourceToGate(st.SourceY)

	// Common-gate Y -> S
	st.Dets[1] = twoport.YToSDet(st.GateY)
	st.GateS = twoport.YToS(st.GateY)

	// S -> Z (ohm), add series inductor
	st.Dets[2] = twoport.SToZDet(st.GateS)
	st.GateZ = twoport.SToZ(st.GateS, c.cfg.Z0)
	st.GateYInv = twoport.Denormalize(twoport.YToZ(st.GateY), c.cfg.Z0)
	st.SeriesZ = c.inductor.Impedance(freq)
	st.DegenZ = device.Inject(st.GateZ, c.inductor, freq)

	// Z -> S
	zn := twoport.Normalize(st.DegenZ, c.cfg.Z0)
	st.Dets[3] = twoport.ZToSDet(zn)
	st.DegenY = twoport.ZToY(zn)
	st.DegenS = twoport.ZToS(st.DegenZ, c.cfg.Z0)

	for _, det := range st.Dets {
		if twoport.Singular(det, 0) {
			st.Singular = true
			break
		}
	}
	return st
}

// ConvertRecord converts a single record.
func (c *Converter) ConvertRecord(r Record) Result {
	st := c.Stages(r.Frequency, r.TwoPort())
	res := Result{
		Record:   RecordFromTwoPort(r.Frequency, st.DegenS),
		Singular: st.Singular,
	}
	if c.cfg.Verify && !st.Singular {
		res.Mismatch = !c.verify(st)
	}
	return res
}

// verify cross-checks the closed-form S->Z path against an LU inverse of the
// common-gate admittance.
func (c *Converter) verify(st Stages) bool {
	zLU, err := matrix.Inverse(st.GateY)
	if err != nil {
		c.cfg.Logger.Debug().Err(err).Float64("freq", st.Frequency).Msg("Verify inverse failed")
		return false
	}

	tol := c.cfg.VerifyTol
	if tol <= 0 {
		tol = DefaultVerifyTol
	}
	want := twoport.Normalize(st.GateZ, c.cfg.Z0).Entries()
	got := zLU.Entries()
	for i := range want {
		scale := cmplx.Abs(want[i])
		if scale < 1 {
			scale = 1
		}
		if cmplx.Abs(want[i]-got[i]) > tol*scale {
			c.cfg.Logger.Debug().
				Float64("freq", st.Frequency).
				Int("entry", i).
				Str("closed_form", fmt.Sprint(want[i])).
				Str("lu", fmt.Sprint(got[i])).
				Msg("Impedance mismatch")
			return false
		}
	}
	return true
}

// Convert converts all records. The result has the same length and order as
// the input.
func (c *Converter) Convert(records []Record) []Result {
	results, _ := c.ConvertContext(context.Background(), records)
	return results
}

// ConvertContext converts records on a bounded worker pool. Each result is
// stored at its record's index, so the output order does not depend on
// scheduling. It returns an error wrapping ctx.Err() if ctx is cancelled before all records
// are done.
func (c *Converter) ConvertContext(ctx context.Context, records []Record) ([]Result, error) {
	results := make([]Result, len(records))
	if len(records) == 0 {
		return results, nil
	}

	workers := c.cfg.workers(len(records))
	log := c.cfg.Logger
	log.Debug().
		Int("records", len(records)).
		Int("workers", workers).
		Str("element", c.inductor.GetName()).
		Float64("value", c.inductor.GetValue()).
		Str("config", c.cfg.String()).
		Msg("Converting")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.ConvertRecord(records[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("conversion cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("conversion cancelled: %w", err)
	}

	singular, mismatch := 0, 0
	for _, r := range results {
		if r.Singular {
			singular++
		}
		if r.Mismatch {
			mismatch++
		}
	}
	log.Debug().Int("singular", singular).Int("mismatch", mismatch).Msg("Conversion done")

	return results, nil
}
