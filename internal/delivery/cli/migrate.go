package cli

import (
	"context"
	"fmt"

	"habit/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  "Starts the application once. The postgres store applies pending migrations on start.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), func(_ context.Context, d deps) error {
				if d.Config.Store.Driver != config.StoreDriverPostgres {
					fmt.Fprintf(cmd.OutOrStdout(), "The %s store has no schema to migrate.\n", d.Config.Store.Driver)

					return nil
				}

				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")

				return nil
			})
		},
	}
}
