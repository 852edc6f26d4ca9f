package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vetsoft/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		Long:  `Aplica las migraciones pendientes y sirve las páginas HTML, la API JSON y /swagger/ hasta recibir SIGINT o SIGTERM.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withApp(ctx, opts, func(a *app.App) error {
				if _, err := a.Migrate(ctx); err != nil {
					return err
				}
				return a.Serve(ctx)
			})
		},
	}
}
