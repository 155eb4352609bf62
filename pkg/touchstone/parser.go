package touchstone

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edp1096/cs2cg/internal/consts"
	"github.com/edp1096/cs2cg/pkg/analysis"
)

var ErrNoData = errors.New("no 2-port data rows found")

// Stats describes what Parse skipped.
type Stats struct {
	Lines    int      // lines read
	Comments int      // '!' lines
	Options  []string // '#' option lines, verbatim; never interpreted
	Dropped  int      // non-numeric rows or rows without 9 columns
	Records  int
}

// Parse reads 2-port rows of the form
//
//	freq |S11| <S11 |S21| <S21 |S12| <S12 |S22| <S22
//
// Frequency and angle units and the reference impedance on the option line
// are not interpreted: frequency is taken as-is and angles as degrees. Lines
// starting with '!' or '#' are skipped, text after an inline '!' is ignored,
// and rows that do not parse as exactly 9 numbers are dropped without error.
func Parse(r io.Reader) ([]analysis.Record, Stats, error) {
	var stats Stats
	var records []analysis.Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()

		if strings.HasPrefix(line, "!") {
			stats.Comments++
			continue
		}
		if strings.HasPrefix(line, "#") {
			stats.Options = append(stats.Options, strings.TrimSpace(line))
			continue
		}

		// Inline comment
		if idx := strings.Index(line, "!"); idx >= 0 {
			line = line[:idx]
		}

		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		values, ok := parseRow(line)
		if !ok {
			stats.Dropped++
			continue
		}
		records = append(records, analysis.RecordFromValues(values))
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading data: %w", err)
	}

	stats.Records = len(records)
	if len(records) == 0 {
		return nil, stats, ErrNoData
	}
	return records, stats, nil
}

func parseRow(line string) ([consts.COLUMNS]float64, bool) {
	var values [consts.COLUMNS]float64

	fields := strings.Fields(line)
	if len(fields) != consts.COLUMNS {
		return values, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return values, false
		}
		values[i] = v
	}
	return values, true
}

// ParseFile opens and parses path.
func ParseFile(path string) ([]analysis.Record, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, stats, err := Parse(f)
	if err != nil {
		return records, stats, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, stats, nil
}
