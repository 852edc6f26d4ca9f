package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vetsoft/internal/platform/config"
	"vetsoft/internal/platform/secret"
)

func newDBKeyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dbkey",
		Short: "Administra la clave de cifrado de la base SQLite en el keyring del sistema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Guarda la clave (se pide por stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := keyringFor(opts)
			if err != nil {
				return err
			}

			key, err := readKey(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := kr.SetKey(key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "key stored")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Borra la clave del keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := keyringFor(opts)
			if err != nil {
				return err
			}
			if err := kr.DeleteKey(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "key deleted")
			return nil
		},
	})

	return cmd
}

// keyringFor sólo necesita el nombre de servicio; no abre la base.
func keyringFor(opts *rootOptions) (*secret.Keyring, error) {
	src, err := config.NewSource(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := src.Config()
	if err != nil {
		return nil, err
	}
	return secret.NewKeyring(cfg.Database.KeyringService), nil
}

// readKey pide la clave dos veces sin eco si stdin es una terminal; si no, lee una línea.
func readKey(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Encryption key: ")
		first, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}

		fmt.Fprint(prompt, "Confirm key: ")
		second, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}

		if string(first) != string(second) {
			return "", errors.New("keys do not match")
		}
		return strings.TrimSpace(string(first)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
