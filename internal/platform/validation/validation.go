// Package validation envuelve go-playground/validator con traducciones al español
// y devuelve errores como un map campo -> mensaje, listo para re-mostrar en el formulario.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	esTranslations "github.com/go-playground/validator/v10/translations/es"

	"vetsoft/internal/platform/form"
)

// DateLayout es el formato de fecha de los formularios (input type=date).
const DateLayout = "2006-01-02"

var (
	reAlphaSpace = regexp.MustCompile(`^[\p{L} ]+$`)
	reDigits     = regexp.MustCompile(`^[0-9]+$`)
	reDecimal    = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

	ErrTranslatorNotFound = errors.New("translator not found")
)

// Errors es campo -> mensaje. Vacío significa válido.
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation error"
	}
	b, err := json.Marshal(map[string]string(e))
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

func (e Errors) Fields() map[string]string {
	return e
}

// Err devuelve nil si no hay errores (evita el nil tipado en la interfaz error).
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Partial se queda sólo con los errores de campos que vinieron con valor.
// Los updates parciales ignoran campos vacíos, así que sus reglas no aplican.
func Partial(errs Errors, submitted form.Values) Errors {
	out := Errors{}
	for k, msg := range errs {
		if submitted.Present(k) {
			out[k] = msg
		}
	}
	return out
}

// Messages son los textos fijos por "campo.tag" o por "campo".
type Messages map[string]string

func (m Messages) lookup(field, tag, fallback string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return fallback
}

type nowKey struct{}

// WithNow fija "hoy" para la regla notfuture.
func WithNow(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, nowKey{}, now)
}

func nowFrom(ctx context.Context) time.Time {
	if t, ok := ctx.Value(nowKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Los errores se reportan con el nombre del campo del formulario.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		default:
			return name
		}
	})

	esLang := es.New()
	uni := ut.New(esLang, esLang)
	trans, ok := uni.GetTranslator("es")
	if !ok {
		return nil, ErrTranslatorNotFound
	}
	if err := esTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := registerCustom(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, translator: trans}, nil
}

// Validate valida el struct y devuelve un mensaje por campo inválido (el del primer tag que falla).
func (v *Validator) Validate(ctx context.Context, s any, msgs Messages) Errors {
	out := Errors{}

	err := v.validate.StructCtx(ctx, s)
	if err == nil {
		return out
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		// Sólo ocurre si se pasa algo que no es struct: error de programación.
		slog.Error("validation: unexpected error", "error", err)
		out["_"] = err.Error()
		return out
	}

	for _, fe := range validateErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = msgs.lookup(field, fe.Tag(), fe.Translate(v.translator))
	}
	return out
}

func registerCustom(validate *validator.Validate, trans ut.Translator) error {
	if err := validate.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return reAlphaSpace.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return reDigits.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := validate.RegisterValidationCtx("notfuture", func(ctx context.Context, fl validator.FieldLevel) bool {
		now := nowFrom(ctx)
		d, err := time.ParseInLocation(DateLayout, fl.Field().String(), now.Location())
		if err != nil {
			return false
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return !d.After(today)
	}); err != nil {
		return err
	}

	// inrange=min:max, inclusivo, sobre un string numérico.
	if err := validate.RegisterValidation("inrange", func(fl validator.FieldLevel) bool {
		lo, hi, ok := parseRange(fl.Param())
		if !ok {
			return false
		}
		f, ok := parseFloat(fl.Field().String())
		return ok && f >= lo && f <= hi
	}); err != nil {
		return err
	}

	// decimalgt=n, estrictamente mayor.
	if err := validate.RegisterValidation("decimalgt", func(fl validator.FieldLevel) bool {
		limit, err := strconv.ParseFloat(fl.Param(), 64)
		if err != nil {
			return false
		}
		f, ok := parseFloat(fl.Field().String())
		return ok && f > limit
	}); err != nil {
		return err
	}

	defaults := map[string]string{
		"alphaspace": "{0} solo debe contener letras y espacios",
		"digits":     "{0} solo puede contener dígitos",
		"notfuture":  "{0} no puede ser una fecha futura",
		"inrange":    "{0} debe estar entre {1}",
		"decimalgt":  "{0} debe ser mayor a {1}",
	}
	for tag, text := range defaults {
		if err := validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, text, false)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(fe.Tag(), fe.Field(), fe.Param())
				if err != nil {
					return fe.Error()
				}
				return t
			},
		); err != nil {
			return err
		}
	}

	return nil
}

func parseRange(param string) (float64, float64, bool) {
	parts := strings.SplitN(param, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// parseFloat sólo acepta decimales planos: sin signo, exponente ni notación hex.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !reDecimal.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
