package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/edp1096/cs2cg/internal/config"
	"github.com/edp1096/cs2cg/pkg/analysis"
	"github.com/edp1096/cs2cg/pkg/chart"
	"github.com/edp1096/cs2cg/pkg/touchstone"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert an S-parameter file to common gate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			records, stats, err := touchstone.ParseFile(input)
			switch {
			case errors.Is(err, touchstone.ErrNoData):
				log.Warn().Str("input", input).Int("dropped", stats.Dropped).Msg("No 2-port data rows, writing empty output")
			case err != nil:
				return err
			}
			log.Debug().
				Str("input", input).
				Int("lines", stats.Lines).
				Int("records", stats.Records).
				Int("dropped", stats.Dropped).
				Strs("options", stats.Options).
				Msg("Parsed input")

			conv := analysis.NewConverter(analysisConfig())
			results, err := conv.ConvertContext(cmd.Context(), records)
			if err != nil {
				return err
			}
			reportResults(results)

			opts := touchstone.WriteOptions{Precision: cfg.Precision}
			if cfg.Header {
				opts.Header = header(input)
			}
			if err := touchstone.WriteFile(output, results, opts); err != nil {
				return err
			}
			log.Info().Str("output", output).Int("points", len(results)).Msg("File processed")

			if cfg.Plot != "" && len(results) > 0 {
				title := fmt.Sprintf("Common gate, %s, Ls=%g nH", filepath.Base(input), cfg.InductanceNH)
				if err := chart.Save(cfg.Plot, title, results, chart.Magnitude); err != nil {
					return err
				}
				phasePath := chart.PhasePath(cfg.Plot)
				if err := chart.Save(phasePath, title, results, chart.Phase); err != nil {
					return err
				}
				log.Info().Str("magnitude", cfg.Plot).Str("phase", phasePath).Msg("Plots saved")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Int(config.KeyPrecision, touchstone.DefaultPrecision, "significant digits in the output")
	f.Bool(config.KeyHeader, false, "write '!' header lines")
	f.String(config.KeyPlot, "", "save |S| and phase plots (png, svg, pdf)")
	return cmd
}

func reportResults(results []analysis.Result) {
	singular, mismatch := 0, 0
	for _, r := range results {
		if r.Singular {
			singular++
			log.Debug().Float64("freq", r.Frequency).Msg("Singular conversion")
		}
		if r.Mismatch {
			mismatch++
		}
	}
	if singular > 0 {
		log.Warn().Int("points", singular).Msg("Singular network parameters, output contains inf/nan")
	}
	if mismatch > 0 {
		log.Warn().Int("points", mismatch).Msg("LU cross-check disagrees with closed-form conversion")
	}
}

func header(input string) []string {
	return []string{
		fmt.Sprintf("Common-gate S-parameters from %s", filepath.Base(input)),
		fmt.Sprintf("Ls=%g nH Z0=%g ohm scale=%g", cfg.InductanceNH, cfg.Z0, cfg.Scale),
		"freq |S11| <S11 |S21| <S21 |S12| <S12 |S22| <S22",
	}
}
