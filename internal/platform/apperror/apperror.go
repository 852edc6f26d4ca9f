// Package apperror agrupa los errores compartidos entre dominios y adapters
// y su traducción a status HTTP.
package apperror

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound: el registro pedido no existe.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidID: el identificador recibido no es un entero válido.
	ErrInvalidID = errors.New("invalid id")
)

// fieldErrors lo implementa validation.Errors; evitamos el import para no generar ciclos.
type fieldErrors interface {
	error
	Fields() map[string]string
}

// StatusCode mapea un error a su status HTTP.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var fe fieldErrors
	switch {
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidID):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound es un atajo para handlers.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID)
}
