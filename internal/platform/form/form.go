// Package form modela el envío crudo de un formulario: claves string a valores string.
package form

import (
	"net/http"
	"strings"
)

// Values es la entrada de los validadores y de Save/Update.
type Values map[string]string

// FromRequest toma el primer valor de cada campo del body (form-encoded), recortando espacios.
func FromRequest(r *http.Request) (Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	out := make(Values, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) == 0 {
			continue
		}
		out[k] = strings.TrimSpace(vs[0])
	}
	return out, nil
}

// FromMap normaliza un map arbitrario (JSON, fixtures) a Values.
func FromMap(m map[string]string) Values {
	out := make(Values, len(m))
	for k, v := range m {
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// Get devuelve el valor recortado o "" si no vino.
func (v Values) Get(key string) string {
	return strings.TrimSpace(v[key])
}

// Present indica si el campo vino con un valor no vacío.
// Es la regla de los updates parciales: vacío = no tocar.
func (v Values) Present(key string) bool {
	return v.Get(key) != ""
}

// Pick devuelve el valor si vino, o el actual si no.
func (v Values) Pick(key, current string) string {
	if s := v.Get(key); s != "" {
		return s
	}
	return current
}
