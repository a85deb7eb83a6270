package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nardo/usecase-tracker/internal/fixture"
	"github.com/nardo/usecase-tracker/internal/schemas"
	"github.com/nardo/usecase-tracker/internal/seeder"
	"github.com/nardo/usecase-tracker/internal/store"
	"github.com/spf13/cobra"
	"github.com/ubuntu/decorate"
)

func (a *App) installSeed() {
	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Load a fixture document into the local store",
		Long: `Load a fixture document into the local key-value store in a single transaction.

The document is checked against its schema first. Records are keyed by request ID: seeding
a document again replaces them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.seedRun(cmd, args[0])
		},
	}
	a.cmd.AddCommand(cmd)
}

func (a *App) installProcess() {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Move the records that have not started to in progress",
		Long: `Move every NotStarted record of the selected variant to InProgress in the local store,
then publish one update message per record.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.processRun(cmd)
		},
	}
	a.cmd.AddCommand(cmd)
}

func (a App) seedRun(cmd *cobra.Command, path string) (err error) {
	defer decorate.OnError(&err, "could not seed %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := schemas.Validate(a.config.Variant, a.config.Format, data); err != nil {
		return err
	}

	codec, err := fixture.NewCodec(a.config.Format)
	if err != nil {
		return err
	}
	b, err := codec.Decode(data, a.config.Variant)
	if err != nil {
		return err
	}

	s, closeStore, err := a.newSeeder()
	if err != nil {
		return err
	}
	defer closeStore()

	info, err := s.Seed(cmd.Context(), b)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records into %s (batch %s)\n", info.Count, info.Table, info.ID)
	return nil
}

func (a App) processRun(cmd *cobra.Command) (err error) {
	defer decorate.OnError(&err, "could not process %s", a.config.Store)

	s, closeStore, err := a.newSeeder()
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := s.Process(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Moved %d records of %s to %s\n", n, seeder.Table(a.config.Variant), fixture.StatusInProgress)
	return nil
}

// newSeeder opens the configured store. The returned function closes it.
func (a App) newSeeder() (*seeder.Seeder, func(), error) {
	backend, err := store.NewBboltBackend(a.config.Store)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := backend.Close(); err != nil {
			slog.Warn("Failed to close store", "path", a.config.Store, "error", err)
		}
	}

	s, err := seeder.New(backend, a.config.Variant)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return s, closeStore, nil
}
