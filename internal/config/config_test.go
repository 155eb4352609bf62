package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 50.0, cfg.Z0)
	assert.Equal(t, 1e6, cfg.Scale)
	assert.Equal(t, 0.0, cfg.InductanceNH)
	assert.Equal(t, 6, cfg.Precision)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.False(t, cfg.Verify)
	assert.Empty(t, cfg.Plot)
}

func TestEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CS2CG_Z0", "75")
	t.Setenv("CS2CG_INDUCTANCE", "0.35")
	t.Setenv("CS2CG_WORKERS", "2")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 75.0, cfg.Z0)
	assert.Equal(t, 0.35, cfg.InductanceNH)
	assert.Equal(t, 2, cfg.Workers)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cs2cg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inductance: 1.2\nscale: 1\nheader: true\n"), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 1.2, cfg.InductanceNH)
	assert.Equal(t, 1.0, cfg.Scale)
	assert.True(t, cfg.Header)
}

func TestConfigFileMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFlagsTakePrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CS2CG_INDUCTANCE", "0.35")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64(KeyInductance, 0, "")
	flags.Float64(KeyZ0, 50, "")
	require.NoError(t, flags.Parse([]string{"--inductance", "2.5"}))

	v, err := New("")
	require.NoError(t, err)
	require.NoError(t, BindFlags(v, flags))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.InductanceNH)
	assert.Equal(t, 50.0, cfg.Z0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"ok", Config{Z0: 50, Precision: 6}, true},
		{"negative inductance ok", Config{Z0: 50, InductanceNH: -1}, true},
		{"zero z0", Config{Z0: 0}, false},
		{"negative workers", Config{Z0: 50, Workers: -1}, false},
		{"precision too large", Config{Z0: 50, Precision: 30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}
