package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nardo/usecase-tracker/internal/constants"
	"github.com/nardo/usecase-tracker/internal/fixture"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type (
	AppConfig      = appConfig
	GenerateConfig = generateConfig
)

// Config returns the configuration of the app.
func (a *App) Config() AppConfig {
	return a.config
}

// NewForTests creates a new App instance using a generated configuration file, capturing its output.
func NewForTests(t *testing.T, conf *AppConfig, args ...string) (*App, *bytes.Buffer) {
	t.Helper()

	p := GenerateTestConfig(t, conf)
	args = append(args, "--config", p)

	a, err := New()
	require.NoError(t, err, "Setup: failed to create app")
	a.cmd.SetArgs(args)

	var out bytes.Buffer
	a.cmd.SetOut(&out)
	return a, &out
}

// GenerateTestConfig generates a temporary config file for testing.
func GenerateTestConfig(t *testing.T, origConf *AppConfig) string {
	t.Helper()

	var conf appConfig

	if origConf != nil {
		conf = *origConf
	}

	if conf.Verbosity == 0 {
		conf.Verbosity = 2
	}
	if conf.Variant == "" {
		conf.Variant = fixture.VariantJob
	}
	if conf.Format == "" {
		conf.Format = fixture.FormatTyped
	}
	if conf.Store == "" {
		conf.Store = filepath.Join(t.TempDir(), "nardo.db")
	}
	if conf.Generate.Count == 0 {
		conf.Generate.Count = constants.DefaultCount
	}

	d, err := yaml.Marshal(conf)
	require.NoError(t, err, "Setup: failed to marshal config for tests")

	confPath := filepath.Join(t.TempDir(), "testconfig.yaml")
	require.NoError(t, os.WriteFile(confPath, d, 0600), "Setup: failed to write config for tests")

	return confPath
}

// SetArgs set some arguments on root command for tests.
func (a *App) SetArgs(args ...string) {
	a.cmd.SetArgs(args)
}

// SetSilenceUsage set the SilenceUsage flag on root command for tests.
func (a *App) SetSilenceUsage(silence bool) {
	a.cmd.SilenceUsage = silence
}
