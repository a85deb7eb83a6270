package commands

import (
	"fmt"

	"github.com/nardo/usecase-tracker/internal/schemas"
	"github.com/spf13/cobra"
)

func (a *App) installValidate() {
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a fixture document against the schema of its variant and format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schemas.ValidateFile(a.config.Variant, a.config.Format, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s fixtures (%s)\n", args[0], a.config.Variant, a.config.Format)
			return nil
		},
	}
	a.cmd.AddCommand(cmd)
}
