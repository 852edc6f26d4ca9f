package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"vetsoft/internal/platform/apperror"
	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

// ErrorResponse es el cuerpo de error de la API.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError traduce err a status + ErrorResponse.
func WriteError(w http.ResponseWriter, err error) {
	status := apperror.StatusCode(err)

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		WriteJSON(w, status, ErrorResponse{Message: "validation error", Errors: verrs})
	case status == http.StatusNotFound:
		WriteJSON(w, status, ErrorResponse{Message: "not found"})
	default:
		WriteJSON(w, status, ErrorResponse{Message: "internal error"})
	}
}

// DecodeValues lee un objeto JSON plano de hasta MaxBodyBytes. Acepta strings, números y null (null = "").
func DecodeValues(w http.ResponseWriter, r *http.Request) (form.Values, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(raw))
	for k, msg := range raw {
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return nil, err
		}
		switch x := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = x
		case float64:
			out[k] = strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(x)
		default:
			return nil, fmt.Errorf("field %q: unsupported value", k)
		}
	}
	return form.FromMap(out), nil
}
