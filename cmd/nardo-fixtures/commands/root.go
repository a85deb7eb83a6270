// Package commands implements the nardo-fixtures command line.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nardo/usecase-tracker/internal/cli"
	"github.com/nardo/usecase-tracker/internal/constants"
	"github.com/nardo/usecase-tracker/internal/fixture"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	cmd    *cobra.Command
	viper  *viper.Viper
	config appConfig

	ctx    context.Context
	cancel context.CancelFunc
}

// appConfig holds the configuration for the application.
type appConfig struct {
	Verbosity int
	JSONLogs  bool

	Variant fixture.Variant
	Format  fixture.Format
	Store   string

	Generate generateConfig
}

type generateConfig struct {
	Count   int
	Output  string
	Seed    uint64 `yaml:",omitempty"`
	Catalog string
	DryRun  bool
}

// New creates a new App instance with default values.
func New() (*App, error) {
	a := App{}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.cmd = &cobra.Command{
		Use:   constants.CmdName,
		Short: "Mock data tooling for the use case tracker",
		Long: `Generate, validate and seed the job and use case fixtures of the use case tracker.

Fixtures are written as typed-attribute documents ready for a batch-write, or as plain JSON.`,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true
			cli.SetSlog(a.config.Verbosity, a.config.JSONLogs) // Set verbosity before loading config
			if err := cli.InitViperConfig(constants.CmdName, a.cmd, a.viper); err != nil {
				return err
			}
			if err := a.viper.Unmarshal(&a.config, cli.DecodeHook()); err != nil {
				// Unknown variants and formats are reported along with the usage.
				a.cmd.SilenceUsage = false
				return fmt.Errorf("unable to decode configuration into struct: %w", err)
			}
			slog.Info("got app config", "config", a.config)

			cli.SetSlog(a.config.Verbosity, a.config.JSONLogs) // Update logging after loading config if necessary
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	a.viper = viper.New()
	a.cmd.CompletionOptions.HiddenDefaultCmd = true

	installRootCmd(&a)
	cli.InstallConfigFlag(a.cmd)

	a.installGenerate()
	a.installValidate()
	a.installSeed()
	a.installProcess()
	a.installVersion()

	if err := bindFlags(a.viper, a.cmd.PersistentFlags(), map[string]string{
		"verbosity": "verbose",
		"jsonlogs":  "json-logs",
		"variant":   "variant",
		"format":    "format",
		"store":     "store",
	}); err != nil {
		return nil, err
	}

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue INFO (-v), DEBUG (-vv)")
	cmd.PersistentFlags().BoolVar(&app.config.JSONLogs, "json-logs", false, "enable JSON formatted logs on stderr")

	cmd.PersistentFlags().String("variant", string(fixture.VariantJob), `kind of records: "job" or "usecase"`)
	cmd.PersistentFlags().String("format", string(fixture.FormatTyped), `document format: "typed" (batch-write envelope) or "plain"`)
	cmd.PersistentFlags().String("store", constants.DefaultStorePath, "path to the local key-value store")

	if err := cmd.MarkPersistentFlagFilename("store"); err != nil {
		panic(fmt.Errorf("failed to mark store flag as filename: %w", err))
	}
}

// bindFlags binds every configuration key to its flag.
func bindFlags(vip *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := vip.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("could not bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Run executes the command and associated process, returning an error if any.
func (a App) Run() error {
	return a.cmd.ExecuteContext(a.ctx)
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// Hup returns true: a hang up stops the running command like an interrupt.
func (a App) Hup() (shouldQuit bool) {
	slog.Debug("Hang up received, stopping")
	return true
}

// Quit cancels any running operation. Seeding and processing stop between two records.
func (a *App) Quit() {
	a.cancel()
}

// RootCmd returns the root command.
func (a App) RootCmd() cobra.Command {
	return *a.cmd
}
