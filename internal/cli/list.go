package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vetsoft/internal/app"
	"vetsoft/internal/domain/clients"
	"vetsoft/internal/domain/medicines"
	"vetsoft/internal/domain/pets"
	"vetsoft/internal/domain/products"
	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/httpclient"
)

type column struct {
	header string
	key    string
}

// listing describe cómo mostrar una entidad y de dónde sacar sus filas.
type listing struct {
	name    string // clients
	empty   string // "No existen clientes"
	columns []column
	local   func(ctx context.Context, a *app.App) ([]form.Values, error)
}

var listings = []listing{
	{
		name:  "clients",
		empty: "No existen clientes",
		columns: []column{
			{"ID", "id"}, {"Nombre", "name"}, {"Teléfono", "phone"}, {"Email", "email"}, {"Dirección", "address"},
		},
		local: func(ctx context.Context, a *app.App) ([]form.Values, error) {
			items, err := a.Services.Clients.List(ctx)
			return rows(items, func(c clients.Client) (int64, form.Values) { return c.ID, clients.ToValues(c) }), err
		},
	},
	{
		name:  "pets",
		empty: "No existen mascotas",
		columns: []column{
			{"ID", "id"}, {"Nombre", "name"}, {"Raza", "breed"}, {"Cumpleaños", "birthday"},
		},
		local: func(ctx context.Context, a *app.App) ([]form.Values, error) {
			items, err := a.Services.Pets.List(ctx)
			return rows(items, func(p pets.Pet) (int64, form.Values) { return p.ID, pets.ToValues(p) }), err
		},
	},
	{
		name:  "medicines",
		empty: "No existen medicinas",
		columns: []column{
			{"ID", "id"}, {"Nombre", "name"}, {"Descripción", "description"}, {"Dosis", "dose"},
		},
		local: func(ctx context.Context, a *app.App) ([]form.Values, error) {
			items, err := a.Services.Medicines.List(ctx)
			return rows(items, func(m medicines.Medicine) (int64, form.Values) { return m.ID, medicines.ToValues(m) }), err
		},
	},
	{
		name:  "products",
		empty: "No existen productos",
		columns: []column{
			{"ID", "id"}, {"Nombre", "name"}, {"Tipo", "type"}, {"Precio", "price"}, {"Stock", "stock"},
		},
		local: func(ctx context.Context, a *app.App) ([]form.Values, error) {
			items, err := a.Services.Products.List(ctx)
			return rows(items, func(p products.Product) (int64, form.Values) { return p.ID, products.ToValues(p) }), err
		},
	},
}

var listingAliases = map[string]string{
	"clientes":  "clients",
	"mascotas":  "pets",
	"medicinas": "medicines",
	"productos": "products",
}

func findListing(name string) (listing, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := listingAliases[name]; ok {
		name = alias
	}
	return lo.Find(listings, func(l listing) bool { return l.name == name })
}

func rows[T any](items []T, fn func(T) (int64, form.Values)) []form.Values {
	return lo.Map(items, func(it T, _ int) form.Values {
		id, v := fn(it)
		v["id"] = strconv.FormatInt(id, 10)
		return v
	})
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:       "list <clients|pets|medicines|products>",
		Short:     "Muestra los registros de una entidad",
		Long:      `Lee del store configurado, o de un servidor en marcha con --url (API JSON).`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: lo.Map(listings, func(l listing, _ int) string { return l.name }),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := findListing(args[0])
			if !ok {
				return fmt.Errorf("unknown entity %q", args[0])
			}

			var (
				records []form.Values
				err     error
			)
			if remote != "" {
				records, err = fetchRemote(cmd.Context(), remote, l.name)
			} else {
				err = withApp(cmd.Context(), opts, func(a *app.App) error {
					var lerr error
					records, lerr = l.local(cmd.Context(), a)
					return lerr
				})
			}
			if err != nil {
				return err
			}

			renderListing(cmd.OutOrStdout(), l, records, isTerminal(cmd.OutOrStdout()))
			return nil
		},
	}
	cmd.Flags().StringVar(&remote, "url", "", "URL base de un servidor vetsoft (opcional)")
	return cmd
}

func fetchRemote(ctx context.Context, baseURL, entity string) ([]form.Values, error) {
	c, err := httpclient.New(baseURL, 0)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := c.GetJSON(ctx, "/api/v1/"+entity, &raw); err != nil {
		return nil, err
	}
	return lo.Map(raw, func(m map[string]any, _ int) form.Values {
		return lo.MapValues(m, func(v any, _ string) string { return fmt.Sprint(v) })
	}), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderListing dibuja una tabla con lipgloss en terminal; si la salida es un pipe, TSV plano.
func renderListing(w io.Writer, l listing, records []form.Values, styled bool) {
	if len(records) == 0 {
		fmt.Fprintln(w, l.empty)
		return
	}

	headers := lo.Map(l.columns, func(c column, _ int) string { return c.header })
	body := lo.Map(records, func(r form.Values, _ int) []string {
		return lo.Map(l.columns, func(c column, _ int) string { return r[c.key] })
	})

	if !styled {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, row := range body {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(body...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Total: %d\n", len(records))
}
