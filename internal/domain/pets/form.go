package pets

import (
	"context"

	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

type Form struct {
	Name     string `form:"name" validate:"required"`
	Breed    string `form:"breed" validate:"required"`
	Birthday string `form:"birthday" validate:"required,datetime=2006-01-02,notfuture"`
}

var messages = validation.Messages{
	"name.required":      "Por favor ingrese un nombre",
	"breed.required":     "Por favor ingrese la raza",
	"birthday.required":  "Por favor ingrese una fecha",
	"birthday.datetime":  "Por favor ingrese una fecha válida",
	"birthday.notfuture": "La fecha de cumpleaños no puede ser posterior a hoy",
}

func FormFromValues(data form.Values) Form {
	return Form{
		Name:     data.Get("name"),
		Breed:    data.Get("breed"),
		Birthday: data.Get("birthday"),
	}
}

// Validate usa "hoy" del contexto (validation.WithNow) para la regla de cumpleaños.
func Validate(ctx context.Context, v *validation.Validator, data form.Values) validation.Errors {
	return v.Validate(ctx, FormFromValues(data), messages)
}

func ToValues(p Pet) form.Values {
	bday := ""
	if !p.Birthday.IsZero() {
		bday = p.Birthday.Format(validation.DateLayout)
	}
	return form.Values{
		"name":     p.Name,
		"breed":    p.Breed,
		"birthday": bday,
	}
}
