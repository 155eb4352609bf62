package touchstone

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/edp1096/cs2cg/pkg/analysis"
)

// DefaultPrecision gives the same digits as C's %g.
const DefaultPrecision = 6

type WriteOptions struct {
	Header    []string // written as "! <line>" before the data
	Precision int      // significant digits, <= 0: DefaultPrecision
}

// FormatValue formats v like C's %g with the given significant digits.
func FormatValue(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return strconv.FormatFloat(v, 'g', precision, 64)
}

// Write emits one 9-column row per result, fields separated by a single
// space.
func Write(w io.Writer, results []analysis.Result, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	for _, h := range opts.Header {
		if _, err := fmt.Fprintf(bw, "! %s\n", h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	fields := make([]string, 0, 9)
	for i, r := range results {
		fields = fields[:0]
		for _, v := range r.Values() {
			fields = append(fields, FormatValue(v, opts.Precision))
		}
		if _, err := bw.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// WriteFile creates path and writes results to it.
func WriteFile(path string, results []analysis.Result, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := Write(f, results, opts); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
