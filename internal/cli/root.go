// Package cli define los comandos de vetsoft (cobra).
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vetsoft/internal/app"
)

type rootOptions struct {
	configPath string
}

// NewRootCmd arma el árbol de comandos. Cada comando que necesita la App la construye al ejecutarse.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "vetsoft",
		Short: "Registro de clientes, mascotas, medicinas y productos de la veterinaria",
		Long: `vetsoft guarda clientes, mascotas, medicinas y productos y los expone
con formularios HTML y una API JSON.

Sin archivo de configuración usa el store en memoria; con DB_DSN o
database.driver=postgres|sqlite persiste en base de datos.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "archivo de configuración YAML")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newListCmd(opts),
		newHealthcheckCmd(),
		newDBKeyCmd(opts),
	)
	return root
}

// Execute corre la CLI con el contexto dado.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// withApp construye la App, corre fn y la cierra.
func withApp(ctx context.Context, opts *rootOptions, fn func(*app.App) error) error {
	a, err := app.New(ctx, opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	return fn(a)
}
