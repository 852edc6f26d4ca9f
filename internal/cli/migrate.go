package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vetsoft/internal/app"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema SQL pendiente",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(a *app.App) error {
				if a.DB == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "memory driver: nothing to migrate")
					return nil
				}
				n, err := a.Migrate(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
				return nil
			})
		},
	}
}
