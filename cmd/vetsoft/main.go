package main

import (
	"context"
	"fmt"
	"os"

	"vetsoft/internal/cli"
)

// @title Vetsoft API
// @version 1.0
// @description API JSON de clientes, mascotas, medicinas y productos de la veterinaria.
// @BasePath /api/v1
func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
