package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boyonger/word-extractor/format"
	"github.com/boyonger/word-extractor/tables"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("wordextract", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, tables.DefaultConfig(), cfg.Tables)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Empty(t, cfg.Format)
	assert.Empty(t, cfg.Output)
	assert.False(t, cfg.Pretty)
	assert.Equal(t, format.Unknown, cfg.InputFormat())
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load(newFlags(t,
		"--format=doc",
		"--output", "out.json",
		"--pretty",
		"--default-width=1440",
		"--default-height=360",
		"--font-size=10",
		"--tolerance=2.5",
		"--unit-divisor=20",
		"--workers=3",
		"--log-level=debug",
	))
	require.NoError(t, err)

	assert.Equal(t, format.DOC, cfg.InputFormat())
	assert.Equal(t, "out.json", cfg.Output)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, tables.Config{
		DefaultWidth:  1440,
		DefaultHeight: 360,
		FontSize:      10,
		Tolerance:     2.5,
		UnitDivisor:   20,
	}, cfg.Tables)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("WORDEXTRACT_FONT_SIZE", "9")
	t.Setenv("WORDEXTRACT_LOG_LEVEL", "error")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.Tables.FontSize)
	assert.Equal(t, "error", cfg.LogLevel)

	// flags win over the environment
	cfg, err = Load(newFlags(t, "--font-size=14"))
	require.NoError(t, err)
	assert.Equal(t, 14.0, cfg.Tables.FontSize)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordextract.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tolerance: 8\nunit-divisor: 20\nformat: docx\n"), 0o644))

	cfg, err := Load(newFlags(t, "--config", path, "--unit-divisor=10"))
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Tables.Tolerance)
	assert.Equal(t, 10.0, cfg.Tables.UnitDivisor)
	assert.Equal(t, format.DOCX, cfg.InputFormat())
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero font size", []string{"--font-size=0"}},
		{"negative tolerance", []string{"--tolerance=-1"}},
		{"zero unit divisor", []string{"--unit-divisor=0"}},
		{"negative workers", []string{"--workers=-2"}},
		{"unknown format", []string{"--format=rtf"}},
		{"unknown log level", []string{"--log-level=loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}
