package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/apperror"
	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/idgen"
	"vetsoft/internal/platform/logger"
	"vetsoft/internal/platform/validation"
)

// Resource es el contrato validar/guardar/actualizar que comparten los dominios.
type Resource[T any] interface {
	Save(ctx context.Context, data form.Values) (T, error)
	Update(ctx context.Context, id int64, data form.Values) (T, error)
	GetByID(ctx context.Context, id int64) (T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id int64) error
}

// ListData alimenta <entity>/repository.html.
type ListData[T any] struct {
	Items []T
}

// FormData alimenta <entity>/form.html.
// Values se re-muestra tal cual vino; Errors va junto a cada campo (.invalid-feedback).
type FormData struct {
	ID     string
	Action string
	Values form.Values
	Errors validation.Errors
}

// Pages registra las rutas HTML de una entidad:
//
//	GET  /<slug>/                listado
//	GET  /<slug>/nuevo/          formulario vacío
//	POST /<slug>/nuevo/          crea (o actualiza si viene "id")
//	GET  /<slug>/editar/{id}/    formulario con el registro
//	POST /<slug>/editar/{id}/    actualiza
//	POST /<slug>/eliminar/       borra por <DeleteField>
type Pages[T any] struct {
	Slug        string // "clientes"
	Template    string // "clients" -> clients/repository, clients/form
	DeleteField string // "client_id"

	Service Resource[T]
	Values  func(T) form.Values

	View *Renderer
	Log  logger.Logger
}

func (p Pages[T]) Register(r chi.Router) {
	r.Route("/"+p.Slug, func(pr chi.Router) {
		pr.Get("/", p.repositoryHandler())
		pr.Get("/nuevo/", p.formHandler())
		pr.Post("/nuevo/", p.submitHandler())
		pr.Get("/editar/{id}/", p.formHandler())
		pr.Post("/editar/{id}/", p.submitHandler())
		pr.Post("/eliminar/", p.deleteHandler())
	})
}

func (p Pages[T]) listPath() string { return "/" + p.Slug + "/" }

func (p Pages[T]) action(id string) string {
	if id == "" {
		return "/" + p.Slug + "/nuevo/"
	}
	return fmt.Sprintf("/%s/editar/%s/", p.Slug, id)
}

func (p Pages[T]) repositoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := p.Service.List(r.Context())
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.render(w, r, http.StatusOK, p.Template+"/repository", ListData[T]{Items: items})
	}
}

func (p Pages[T]) formHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := FormData{Action: p.action(""), Values: form.Values{}, Errors: validation.Errors{}}

		if raw := chi.URLParam(r, "id"); raw != "" {
			id, ok := idgen.Parse(raw)
			if !ok {
				p.fail(w, r, apperror.ErrInvalidID)
				return
			}
			rec, err := p.Service.GetByID(r.Context(), id)
			if err != nil {
				p.fail(w, r, err)
				return
			}
			data.ID = raw
			data.Action = p.action(raw)
			data.Values = p.Values(rec)
		}

		p.render(w, r, http.StatusOK, p.Template+"/form", data)
	}
}

func (p Pages[T]) submitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := readForm(w, r)
		if err != nil {
			http.Error(w, "invalid form", bodyStatus(err))
			return
		}

		// El id puede venir en la URL (editar) o como campo oculto del form (nuevo + id).
		rawID := chi.URLParam(r, "id")
		if rawID == "" {
			rawID = values.Get("id")
		}
		delete(values, "id")

		if rawID == "" {
			_, err = p.Service.Save(r.Context(), values)
		} else if id, ok := idgen.Parse(rawID); !ok {
			err = apperror.ErrInvalidID
		} else {
			_, err = p.Service.Update(r.Context(), id, values)
		}

		var verrs validation.Errors
		switch {
		case err == nil:
			http.Redirect(w, r, p.listPath(), http.StatusFound)
		case errors.As(err, &verrs):
			p.render(w, r, http.StatusOK, p.Template+"/form", FormData{
				ID:     rawID,
				Action: p.action(rawID),
				Values: values,
				Errors: verrs,
			})
		default:
			p.fail(w, r, err)
		}
	}
}

func (p Pages[T]) deleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := readForm(w, r)
		if err != nil {
			http.Error(w, "invalid form", bodyStatus(err))
			return
		}

		id, ok := idgen.Parse(values.Get(p.DeleteField))
		if !ok {
			p.fail(w, r, apperror.ErrInvalidID)
			return
		}
		if err := p.Service.Delete(r.Context(), id); err != nil {
			p.fail(w, r, err)
			return
		}

		http.Redirect(w, r, p.listPath(), http.StatusFound)
	}
}

func (p Pages[T]) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := p.View.Render(w, status, page, data); err != nil {
		p.Log.Error("render failed", map[string]any{"page": page, "path": r.URL.Path, "error": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (p Pages[T]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperror.IsNotFound(err) {
		NotFound(w, r)
		return
	}
	p.Log.Error("request failed", map[string]any{"path": r.URL.Path, "error": err})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// MaxBodyBytes acota el body de formularios y de la API.
const MaxBodyBytes int64 = 1 << 20

func readForm(w http.ResponseWriter, r *http.Request) (form.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	return form.FromRequest(r)
}

// bodyStatus es 413 si el body superó MaxBodyBytes y 400 en cualquier otro caso.
func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// NotFound responde 404 en texto plano.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "not found", http.StatusNotFound)
}
