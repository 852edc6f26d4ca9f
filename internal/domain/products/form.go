package products

import (
	"context"
	"strconv"

	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

type Form struct {
	Name  string `form:"name" validate:"required"`
	Type  string `form:"type" validate:"required"`
	Price string `form:"price" validate:"required,decimalgt=0"`
	Stock string `form:"stock" validate:"required,digits,max=9"`
}

var messages = validation.Messages{
	"name.required":  "Por favor ingrese un nombre",
	"type.required":  "Por favor ingrese un tipo",
	"price.required": "Por favor ingrese un precio",
	"price":          "Por favor ingrese un precio válido mayor a cero",
	"stock.required": "Por favor ingrese el stock",
	"stock":          "El stock debe ser un número entero mayor o igual a cero",
}

func FormFromValues(data form.Values) Form {
	return Form{
		Name:  data.Get("name"),
		Type:  data.Get("type"),
		Price: data.Get("price"),
		Stock: data.Get("stock"),
	}
}

func Validate(ctx context.Context, v *validation.Validator, data form.Values) validation.Errors {
	return v.Validate(ctx, FormFromValues(data), messages)
}

func ToValues(p Product) form.Values {
	return form.Values{
		"name":  p.Name,
		"type":  p.Type,
		"price": strconv.FormatFloat(p.Price, 'f', -1, 64),
		"stock": strconv.Itoa(p.Stock),
	}
}
