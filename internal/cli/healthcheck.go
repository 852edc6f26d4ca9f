package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vetsoft/internal/platform/httpclient"
)

func newHealthcheckCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Consulta /health de un vetsoft en marcha",
		Long:  `Sale con código distinto de cero si el servidor no responde "ok". Pensado para HEALTHCHECK de Docker.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := httpclient.New(baseURL, timeout)
			if err != nil {
				return err
			}
			if err := c.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "URL base del servidor")
	cmd.Flags().DurationVar(&timeout, "timeout", httpclient.DefaultTimeout, "timeout del request")
	return cmd
}
