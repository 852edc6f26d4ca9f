// Package seed carga fixtures YAML pasando por los services, así que aplican las mismas validaciones que el formulario.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vetsoft/internal/domain/clients"
	"vetsoft/internal/domain/medicines"
	"vetsoft/internal/domain/pets"
	"vetsoft/internal/domain/products"
	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

// Fixtures es el formato del archivo:
//
//	clients:
//	  - name: Juan Sebastián Veron
//	    phone: "221555232"
//	    email: brujita75@vetsoft.com
//	medicines:
//	  - {name: Paracetamol, description: Para el dolor, dose: 5}
type Fixtures struct {
	Clients   []map[string]string `yaml:"clients"`
	Pets      []map[string]string `yaml:"pets"`
	Medicines []map[string]string `yaml:"medicines"`
	Products  []map[string]string `yaml:"products"`
}

func Decode(r io.Reader) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixtures{}, fmt.Errorf("seed: decode yaml: %w", err)
	}
	return f, nil
}

func LoadFile(path string) (Fixtures, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("seed: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

type Saver[T any] interface {
	Save(ctx context.Context, data form.Values) (T, error)
}

type Targets struct {
	Clients   Saver[clients.Client]
	Pets      Saver[pets.Pet]
	Medicines Saver[medicines.Medicine]
	Products  Saver[products.Product]
}

// Rejection es una fila que no pasó la validación.
type Rejection struct {
	Entity string
	Index  int
	Errors validation.Errors
}

type Report struct {
	Created  map[string]int
	Rejected []Rejection
}

// Apply guarda todas las filas. Las inválidas quedan en el reporte; un error de storage corta.
func Apply(ctx context.Context, f Fixtures, t Targets) (Report, error) {
	rep := Report{Created: map[string]int{}}

	if err := apply(ctx, "clients", f.Clients, t.Clients, &rep); err != nil {
		return rep, err
	}
	if err := apply(ctx, "pets", f.Pets, t.Pets, &rep); err != nil {
		return rep, err
	}
	if err := apply(ctx, "medicines", f.Medicines, t.Medicines, &rep); err != nil {
		return rep, err
	}
	if err := apply(ctx, "products", f.Products, t.Products, &rep); err != nil {
		return rep, err
	}
	return rep, nil
}

func apply[T any](ctx context.Context, entity string, rows []map[string]string, s Saver[T], rep *Report) error {
	if len(rows) == 0 {
		return nil
	}
	if s == nil {
		return fmt.Errorf("seed: no target for %s", entity)
	}

	for i, row := range rows {
		_, err := s.Save(ctx, form.FromMap(row))

		var verrs validation.Errors
		switch {
		case err == nil:
			rep.Created[entity]++
		case errors.As(err, &verrs):
			rep.Rejected = append(rep.Rejected, Rejection{Entity: entity, Index: i, Errors: verrs})
		default:
			return fmt.Errorf("seed: %s[%d]: %w", entity, i, err)
		}
	}
	return nil
}
