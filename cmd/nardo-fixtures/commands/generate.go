package commands

import (
	"fmt"
	"log/slog"

	"github.com/nardo/usecase-tracker/internal/constants"
	"github.com/nardo/usecase-tracker/internal/fixture"
	"github.com/spf13/cobra"
)

func (a *App) installGenerate() {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of mock records",
		Long: `Generate a batch of mock job or use case records and write them to a single JSON document.

The document replaces the previous one atomically. Its parent directory must exist.
Without --output, jobs go to ` + constants.DefaultJobOutput + ` and use cases to ` + constants.DefaultUseCaseOutput + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.config.Generate.Count <= 0 {
				a.cmd.SilenceUsage = false
				return fmt.Errorf("count must be positive, got %d", a.config.Generate.Count)
			}

			return a.generateRun(cmd)
		},
	}

	cmd.Flags().IntP("count", "n", constants.DefaultCount, "number of records to generate")
	cmd.Flags().StringP("output", "o", "", "destination file, defaults to the variant's fixture path")
	cmd.Flags().Uint64("seed", 0, "seed of the random source, random when unset")
	cmd.Flags().String("catalog", "", "YAML or TOML file overriding the candidate values")
	cmd.Flags().Bool("dry-run", false, "print the document on stdout instead of writing it")

	if err := cmd.MarkFlagFilename("output", "json"); err != nil {
		panic(fmt.Errorf("failed to mark output flag as filename: %w", err))
	}
	if err := cmd.MarkFlagFilename("catalog", "yaml", "yml", "toml"); err != nil {
		panic(fmt.Errorf("failed to mark catalog flag as filename: %w", err))
	}

	if err := bindFlags(a.viper, cmd.Flags(), map[string]string{
		"generate.count":   "count",
		"generate.output":  "output",
		"generate.seed":    "seed",
		"generate.catalog": "catalog",
		"generate.dryrun":  "dry-run",
	}); err != nil {
		panic(err)
	}

	a.cmd.AddCommand(cmd)
}

func (a App) generateRun(cmd *cobra.Command) error {
	c := fixture.Config{
		Count:   a.config.Generate.Count,
		Output:  a.config.Generate.Output,
		Variant: a.config.Variant,
		Format:  a.config.Format,
		Catalog: a.config.Generate.Catalog,
		DryRun:  a.config.Generate.DryRun,
	}

	// 0 is a valid seed: only an explicit flag, variable or config key selects one.
	if a.viper.IsSet("generate.seed") {
		seed := a.config.Generate.Seed
		c.Seed = &seed
	}

	b, err := c.Run(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	slog.Debug("Generation done", "batch", b.ID, "count", len(b.Records))
	return nil
}
