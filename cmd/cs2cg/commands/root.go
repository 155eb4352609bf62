package commands

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/edp1096/cs2cg/internal/config"
	"github.com/edp1096/cs2cg/internal/consts"
	"github.com/edp1096/cs2cg/pkg/analysis"
)

var (
	configFile string
	cfg        *config.Config
)

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cs2cg",
		Short: "Convert common-source S-parameters to common-gate with source degeneration",
		Long: `cs2cg reads 2-port S-parameters measured in common-source configuration
(frequency followed by magnitude/angle pairs for S11 S21 S12 S22) and
produces the common-gate S-parameters of the same device with a series
source-degeneration inductor.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(configFile)
			if err != nil {
				return err
			}
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err = config.Load(v)
			if err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), cfg.Verbose)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, config.KeyConfig, "", "config file (default ./cs2cg.yaml if present)")
	pf.Float64P(config.KeyInductance, "l", 0, "source-degeneration inductance (nH)")
	pf.Float64(config.KeyZ0, consts.Z0, "reference impedance (ohm)")
	pf.Float64(config.KeyScale, consts.SCALE, "multiplier applied to the inductance")
	pf.Int(config.KeyWorkers, 0, "parallel workers (0 = number of CPUs)")
	pf.Bool(config.KeyVerify, false, "cross-check each point with an LU inverse")
	pf.BoolP(config.KeyVerbose, "v", false, "debug logging")

	root.AddCommand(convertCmd(), inspectCmd())
	return root
}

func setupLogging(w io.Writer, verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func analysisConfig() analysis.Config {
	ac := analysis.DefaultConfig()
	ac.Z0 = cfg.Z0
	ac.InductanceNH = cfg.InductanceNH
	ac.Scale = cfg.Scale
	ac.Workers = cfg.Workers
	ac.Verify = cfg.Verify
	ac.Logger = log.Logger
	return ac
}
