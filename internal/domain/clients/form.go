package clients

import (
	"context"

	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

// Form es el envío del formulario de cliente.
type Form struct {
	Name    string `form:"name" validate:"required,max=100,alphaspace"`
	Phone   string `form:"phone" validate:"required,max=15,digits"`
	Email   string `form:"email" validate:"required,max=254,endswith=@vetsoft.com,email"`
	Address string `form:"address" validate:"max=100"`
}

var messages = validation.Messages{
	"name.required":   "Por favor ingrese un nombre",
	"name.max":        "El nombre no puede superar los 100 caracteres",
	"name.alphaspace": "El nombre solo debe contener letras y espacios",

	"phone.required": "Por favor ingrese un teléfono",
	"phone.max":      "El teléfono no puede superar los 15 dígitos",
	"phone.digits":   "El teléfono sólo puede contener números",

	"email.required": "Por favor ingrese un email",
	"email.max":      "El email no puede superar los 254 caracteres",
	"email.endswith": "El correo electrónico debe terminar en @vetsoft.com",
	"email.email":    "Por favor ingrese un email valido",

	"address.max": "La dirección no puede superar los 100 caracteres",
}

func FormFromValues(data form.Values) Form {
	return Form{
		Name:    data.Get("name"),
		Phone:   data.Get("phone"),
		Email:   data.Get("email"),
		Address: data.Get("address"),
	}
}

// Validate devuelve un mensaje por campo inválido. Mapa vacío = válido.
func Validate(ctx context.Context, v *validation.Validator, data form.Values) validation.Errors {
	return v.Validate(ctx, FormFromValues(data), messages)
}

// ToValues es lo que precarga el formulario de edición.
func ToValues(c Client) form.Values {
	return form.Values{
		"name":    c.Name,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
	}
}
