package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"vetsoft/internal/app"
	"vetsoft/internal/seed"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga registros desde un archivo YAML",
		Long:  `Carga clientes, mascotas, medicinas y productos. Cada fila pasa por las mismas validaciones que los formularios; las inválidas se informan y se saltean.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return errors.New("--file is required")
			}
			fixtures, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), opts, func(a *app.App) error {
				if _, err := a.Migrate(cmd.Context()); err != nil {
					return err
				}

				rep, err := seed.Apply(cmd.Context(), fixtures, seed.Targets{
					Clients:   a.Services.Clients,
					Pets:      a.Services.Pets,
					Medicines: a.Services.Medicines,
					Products:  a.Services.Products,
				})
				printReport(cmd, rep)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "archivo YAML con los registros")
	return cmd
}

func printReport(cmd *cobra.Command, rep seed.Report) {
	out := cmd.OutOrStdout()
	for _, entity := range []string{"clients", "pets", "medicines", "products"} {
		if n := rep.Created[entity]; n > 0 {
			fmt.Fprintf(out, "%s: %d created\n", entity, n)
		}
	}
	for _, rej := range rep.Rejected {
		fields := make([]string, 0, len(rej.Errors))
		for f := range rej.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(out, "%s[%d] %s: %s\n", rej.Entity, rej.Index, f, rej.Errors[f])
		}
	}
}
