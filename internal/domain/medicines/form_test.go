package medicines

import (
	"context"
	"strings"
	"testing"

	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

func TestValidate(t *testing.T) {
	v, err := validation.New()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	cases := []struct {
		name string
		in   form.Values
		want map[string]string
	}{
		{
			name: "empty",
			in:   form.Values{},
			want: map[string]string{
				"name":        "Por favor, ingrese un nombre para la medicina",
				"description": "Por favor, ingrese una descripcion",
				"dose":        "Por favor, ingrese una dosis para la medicina",
			},
		},
		{
			name: "valid lower bound",
			in:   form.Values{"name": "Paracetamol", "description": "Para el dolor", "dose": "1"},
			want: map[string]string{},
		},
		{
			name: "valid upper bound",
			in:   form.Values{"name": "Paracetamol", "description": "Para el dolor", "dose": "10"},
			want: map[string]string{},
		},
		{
			name: "dose zero",
			in:   form.Values{"name": "Paracetamol", "description": "Para el dolor", "dose": "0"},
			want: map[string]string{"dose": "La dosis debe ser entre 1 y 10"},
		},
		{
			name: "dose above range",
			in:   form.Values{"name": "Paracetamol", "description": "Para el dolor", "dose": "11"},
			want: map[string]string{"dose": "La dosis debe ser entre 1 y 10"},
		},
		{
			name: "name too long",
			in:   form.Values{"name": strings.Repeat("a", 101), "description": "Para el dolor", "dose": "5"},
			want: map[string]string{"name": "El nombre no puede superar los 100 caracteres"},
		},
		{
			name: "dose not numeric",
			in:   form.Values{"name": "Paracetamol", "description": "Para el dolor", "dose": "mucho"},
			want: map[string]string{"dose": "La dosis debe ser entre 1 y 10"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Validate(context.Background(), v, tc.in)
			if len(errs) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, errs)
			}
			for field, msg := range tc.want {
				if errs[field] != msg {
					t.Fatalf("%s: expected %q, got %q", field, msg, errs[field])
				}
			}
		})
	}
}
