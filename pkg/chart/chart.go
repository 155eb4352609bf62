// Package chart plots converted S-parameters against frequency.
package chart

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/cs2cg/pkg/analysis"
	"github.com/edp1096/cs2cg/pkg/twoport"
	"github.com/edp1096/cs2cg/pkg/util"
)

type Kind int

const (
	Magnitude Kind = iota // 20*log10|S| in dB
	Phase                 // degrees
)

const (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

var paramNames = [4]string{"S11", "S21", "S12", "S22"}

func params(r analysis.Result) [4]twoport.Polar {
	return [4]twoport.Polar{r.S11, r.S21, r.S12, r.S22}
}

// Series returns one XY series per parameter, frequency in GHz. Points with
// a non-finite value are left out.
func Series(results []analysis.Result, kind Kind) [4]plotter.XYs {
	var series [4]plotter.XYs
	for _, r := range results {
		for i, p := range params(r) {
			y := p.Phase
			if kind == Magnitude {
				y = util.DB(p.Mag)
			}
			x := r.Frequency / 1e9
			if math.IsNaN(y) || math.IsInf(y, 0) || math.IsNaN(x) || math.IsInf(x, 0) {
				continue
			}
			series[i] = append(series[i], plotter.XY{X: x, Y: y})
		}
	}
	return series
}

// New builds the plot for kind.
func New(title string, results []analysis.Result, kind Kind) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency (GHz)"
	p.Y.Label.Text = "|S| (dB)"
	if kind == Phase {
		p.Y.Label.Text = "Phase (deg)"
		p.Y.Min, p.Y.Max = -180, 180
	}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, xys := range Series(results, kind) {
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("%s series: %w", paramNames[i], err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(paramNames[i], line)
	}
	return p, nil
}

// Render writes the plot in the given format ("png", "svg", "pdf", ...).
func Render(w io.Writer, title string, results []analysis.Result, kind Kind, format string) error {
	p, err := New(title, results, kind)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return fmt.Errorf("creating %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}
	return nil
}

// Save writes the plot to path; the format follows the file extension.
func Save(path, title string, results []analysis.Result, kind Kind) error {
	p, err := New(title, results, kind)
	if err != nil {
		return err
	}
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}
	return nil
}

// PhasePath derives the phase plot path from a magnitude plot path:
// "cg.png" -> "cg_phase.png".
func PhasePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_phase" + ext
}
