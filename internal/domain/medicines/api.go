package medicines

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/logger"
	"vetsoft/internal/web"
)

type medicineRequest struct {
	Name        string `json:"name" example:"Paracetamol"`
	Description string `json:"description" example:"Para el dolor"`
	Dose        string `json:"dose" example:"5"` // también acepta número
}

type medicineResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Dose        int       `json:"dose"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(m Medicine) medicineResponse {
	return medicineResponse{
		ID:          strconv.FormatInt(m.ID, 10),
		Name:        m.Name,
		Description: m.Description,
		Dose:        m.Dose,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func RegisterAPI(r chi.Router, svc *Service, log logger.Logger) {
	api := web.API[Medicine, medicineResponse]{
		Service:  svc,
		Response: toResponse,
		Log:      log.With(map[string]any{"module": "medicines"}),
	}

	r.Route("/medicines", func(mr chi.Router) {
		mr.Get("/", listMedicinesHandler(api))
		mr.Post("/", createMedicineHandler(api))
		mr.Get("/{id}", getMedicineHandler(api))
		mr.Patch("/{id}", updateMedicineHandler(api))
		mr.Delete("/{id}", deleteMedicineHandler(api))
	})
}

// listMedicinesHandler godoc
// @Summary Listar medicinas
// @Tags medicines
// @Produce json
// @Success 200 {array} medicineResponse
// @Router /medicines [get]
func listMedicinesHandler(api web.API[Medicine, medicineResponse]) http.HandlerFunc {
	return api.List
}

// createMedicineHandler godoc
// @Summary Crear medicina
// @Description La dosis es un entero entre 1 y 10.
// @Tags medicines
// @Accept json
// @Produce json
// @Param payload body medicineRequest true "Datos de la medicina"
// @Success 201 {object} medicineResponse
// @Failure 400 {object} web.ErrorResponse "invalid json"
// @Failure 422 {object} web.ErrorResponse "errores por campo"
// @Router /medicines [post]
func createMedicineHandler(api web.API[Medicine, medicineResponse]) http.HandlerFunc {
	return api.Create
}

// getMedicineHandler godoc
// @Summary Obtener medicina
// @Tags medicines
// @Produce json
// @Param id path string true "ID de la medicina"
// @Success 200 {object} medicineResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /medicines/{id} [get]
func getMedicineHandler(api web.API[Medicine, medicineResponse]) http.HandlerFunc {
	return api.Get
}

// updateMedicineHandler godoc
// @Summary Actualizar medicina
// @Tags medicines
// @Accept json
// @Produce json
// @Param id path string true "ID de la medicina"
// @Param payload body medicineRequest true "Campos a modificar"
// @Success 200 {object} medicineResponse
// @Failure 404 {object} web.ErrorResponse
// @Failure 422 {object} web.ErrorResponse
// @Router /medicines/{id} [patch]
func updateMedicineHandler(api web.API[Medicine, medicineResponse]) http.HandlerFunc {
	return api.Patch
}

// deleteMedicineHandler godoc
// @Summary Eliminar medicina
// @Tags medicines
// @Param id path string true "ID de la medicina"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Router /medicines/{id} [delete]
func deleteMedicineHandler(api web.API[Medicine, medicineResponse]) http.HandlerFunc {
	return api.Delete
}
