package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edp1096/cs2cg/pkg/analysis"
	"github.com/edp1096/cs2cg/pkg/touchstone"
	"github.com/edp1096/cs2cg/pkg/util"
)

func inspectCmd() *cobra.Command {
	var stages bool

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Print the converted common-gate parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, _, err := touchstone.ParseFile(args[0])
			if err != nil {
				return err
			}

			conv := analysis.NewConverter(analysisConfig())
			results, err := conv.ConvertContext(cmd.Context(), records)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printResults(w, results)
			if stages {
				for _, r := range records {
					printStages(w, conv.Stages(r.Frequency, r.TwoPort()))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stages, "stages", false, "print every intermediate matrix")
	return cmd
}

func printResults(w io.Writer, results []analysis.Result) {
	fmt.Fprintf(w, "\nCommon-gate S-parameters (%d frequency points):\n", len(results))
	fmt.Fprintln(w, "Frequency      S11                 S21                 S12                 S22")
	fmt.Fprintln(w, "-----------------------------------------------------------------------------------------")

	for _, r := range results {
		fmt.Fprintf(w, "%-13s", util.FormatFrequency(r.Frequency))
		fmt.Fprintf(w, "  %s", util.FormatMagnitudePhase("S11", r.S11.Mag, r.S11.Phase))
		fmt.Fprintf(w, "  %s", util.FormatMagnitudePhase("S21", r.S21.Mag, r.S21.Phase))
		fmt.Fprintf(w, "  %s", util.FormatMagnitudePhase("S12", r.S12.Mag, r.S12.Phase))
		fmt.Fprintf(w, "  %s", util.FormatMagnitudePhase("S22", r.S22.Mag, r.S22.Phase))
		if r.Singular {
			fmt.Fprint(w, "  (singular)")
		}
		fmt.Fprintln(w)
	}
}

func printStages(w io.Writer, st analysis.Stages) {
	fmt.Fprintf(w, "\n=== %s ===\n", util.FormatFrequency(st.Frequency))
	fmt.Fprintf(w, "S  (CS)      : %v\n", st.SourceS)
	fmt.Fprintf(w, "Y  (CS)      : %v\n", st.SourceY)
	fmt.Fprintf(w, "Y  (CG)      : %v\n", st.GateY)
	fmt.Fprintf(w, "S  (CG)      : %v\n", st.GateS)
	fmt.Fprintf(w, "Z  (CG)      : %v\n", st.GateZ)
	fmt.Fprintf(w, "Z  (1/Y CG)  : %v\n", st.GateYInv)
	fmt.Fprintf(w, "Z  series    : j%s\n", util.FormatValueFactor(imag(st.SeriesZ), "ohm"))
	fmt.Fprintf(w, "Z  (CG + Ls) : %v\n", st.DegenZ)
	fmt.Fprintf(w, "Y  (CG + Ls) : %v\n", st.DegenY)
	fmt.Fprintf(w, "S  (CG + Ls) : %v\n", st.DegenS)
	fmt.Fprintf(w, "Determinants : S->Y %g, Y->S %g, S->Z %g, Z->S %g\n", st.Dets[0], st.Dets[1], st.Dets[2], st.Dets[3])
	if st.Singular {
		fmt.Fprintln(w, "Singular     : yes")
	}
}
