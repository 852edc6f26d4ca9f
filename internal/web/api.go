package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"vetsoft/internal/platform/apperror"
	"vetsoft/internal/platform/idgen"
	"vetsoft/internal/platform/logger"
)

// API expone un Resource como JSON. T es el registro, R su representación.
type API[T any, R any] struct {
	Service  Resource[T]
	Response func(T) R
	Log      logger.Logger
}

func (a API[T, R]) List(w http.ResponseWriter, r *http.Request) {
	items, err := a.Service.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, lo.Map(items, func(it T, _ int) R { return a.Response(it) }))
}

func (a API[T, R]) Create(w http.ResponseWriter, r *http.Request) {
	values, err := DecodeValues(w, r)
	if err != nil {
		badBody(w, err)
		return
	}

	rec, err := a.Service.Save(r.Context(), values)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, a.Response(rec))
}

func (a API[T, R]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idgen.Parse(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, apperror.ErrInvalidID)
		return
	}

	rec, err := a.Service.GetByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a.Response(rec))
}

func (a API[T, R]) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := idgen.Parse(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, apperror.ErrInvalidID)
		return
	}

	values, err := DecodeValues(w, r)
	if err != nil {
		badBody(w, err)
		return
	}

	rec, err := a.Service.Update(r.Context(), id, values)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a.Response(rec))
}

func (a API[T, R]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idgen.Parse(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, apperror.ErrInvalidID)
		return
	}

	if err := a.Service.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a API[T, R]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperror.StatusCode(err) == http.StatusInternalServerError {
		a.Log.Error("api request failed", map[string]any{"method": r.Method, "path": r.URL.Path, "error": err})
	}
	WriteError(w, err)
}

func badBody(w http.ResponseWriter, err error) {
	status := bodyStatus(err)
	if status == http.StatusRequestEntityTooLarge {
		WriteJSON(w, status, ErrorResponse{Message: "request body too large"})
		return
	}
	WriteJSON(w, status, ErrorResponse{Message: "invalid json"})
}
