package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/edp1096/cs2cg/internal/consts"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds all converter settings
type Config struct {
	Z0           float64 // reference impedance (ohm)
	InductanceNH float64 // source-degeneration inductor (nH)
	Scale        float64 // inductance multiplier
	Workers      int
	Verify       bool
	Precision    int    // significant digits in the output file
	Header       bool   // write "!" header lines to the output file
	Plot         string // plot path, empty for none
	Verbose      bool
}

// Keys, also the flag names. Environment variables are CS2CG_<KEY> with '-'
// replaced by '_'.
const (
	KeyZ0         = "z0"
	KeyInductance = "inductance"
	KeyScale      = "scale"
	KeyWorkers    = "workers"
	KeyVerify     = "verify"
	KeyPrecision  = "precision"
	KeyHeader     = "header"
	KeyPlot       = "plot"
	KeyVerbose    = "verbose"
	KeyConfig     = "config"
)

// New returns a viper instance with defaults, CS2CG_* environment binding and
// the optional config file applied.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault(KeyZ0, consts.Z0)
	v.SetDefault(KeyInductance, 0.0)
	v.SetDefault(KeyScale, consts.SCALE)
	v.SetDefault(KeyWorkers, runtime.NumCPU())
	v.SetDefault(KeyVerify, false)
	v.SetDefault(KeyPrecision, 6)
	v.SetDefault(KeyHeader, false)
	v.SetDefault(KeyPlot, "")
	v.SetDefault(KeyVerbose, false)

	// Environment variables override config file values
	v.SetEnvPrefix("CS2CG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("cs2cg")
		v.AddConfigPath(".")
		// Ignore error - file may not exist
		_ = v.ReadInConfig()
	}

	return v, nil
}

// BindFlags makes explicitly set flags take precedence over env and file.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == KeyConfig || err != nil {
			return
		}
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil {
			err = fmt.Errorf("binding flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

// Load reads the resolved settings out of v and validates them.
func Load(v *viper.Viper) (*Config, error) {
	var config Config
	config.Z0 = v.GetFloat64(KeyZ0)
	config.InductanceNH = v.GetFloat64(KeyInductance)
	config.Scale = v.GetFloat64(KeyScale)
	config.Workers = v.GetInt(KeyWorkers)
	config.Verify = v.GetBool(KeyVerify)
	config.Precision = v.GetInt(KeyPrecision)
	config.Header = v.GetBool(KeyHeader)
	config.Plot = v.GetString(KeyPlot)
	config.Verbose = v.GetBool(KeyVerbose)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks front-end settings only. The inductance may be zero or
// negative.
func (c *Config) Validate() error {
	if !(c.Z0 > 0) {
		return fmt.Errorf("%w: z0 must be positive, got %g", ErrInvalid, c.Z0)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if c.Precision < 0 || c.Precision > 17 {
		return fmt.Errorf("%w: precision must be between 0 and 17, got %d", ErrInvalid, c.Precision)
	}
	return nil
}
