package medicines

import (
	"context"
	"strconv"

	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

type Form struct {
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"required"`
	Dose        string `form:"dose" validate:"required,digits,inrange=1:10"`
}

var messages = validation.Messages{
	"name.required":        "Por favor, ingrese un nombre para la medicina",
	"name.max":             "El nombre no puede superar los 100 caracteres",
	"description.required": "Por favor, ingrese una descripcion",
	"dose.required":        "Por favor, ingrese una dosis para la medicina",
	// cualquier otra regla de dosis (no numérica, fuera de rango)
	"dose": "La dosis debe ser entre 1 y 10",
}

func FormFromValues(data form.Values) Form {
	return Form{
		Name:        data.Get("name"),
		Description: data.Get("description"),
		Dose:        data.Get("dose"),
	}
}

func Validate(ctx context.Context, v *validation.Validator, data form.Values) validation.Errors {
	return v.Validate(ctx, FormFromValues(data), messages)
}

func ToValues(m Medicine) form.Values {
	return form.Values{
		"name":        m.Name,
		"description": m.Description,
		"dose":        strconv.Itoa(m.Dose),
	}
}
