package pets

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/logger"
	"vetsoft/internal/platform/validation"
	"vetsoft/internal/web"
)

type petRequest struct {
	Name     string `json:"name" example:"Firulais"`
	Breed    string `json:"breed" example:"Caniche"`
	Birthday string `json:"birthday" example:"2021-03-04"` // YYYY-MM-DD
}

type petResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Birthday  string    `json:"birthday"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(p Pet) petResponse {
	return petResponse{
		ID:        strconv.FormatInt(p.ID, 10),
		Name:      p.Name,
		Breed:     p.Breed,
		Birthday:  p.Birthday.Format(validation.DateLayout),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// RegisterAPI monta la API JSON de mascotas bajo /pets.
func RegisterAPI(r chi.Router, svc *Service, log logger.Logger) {
	api := web.API[Pet, petResponse]{
		Service:  svc,
		Response: toResponse,
		Log:      log.With(map[string]any{"module": "pets"}),
	}

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(api))
		pr.Post("/", createPetHandler(api))
		pr.Get("/{id}", getPetHandler(api))
		pr.Patch("/{id}", updatePetHandler(api))
		pr.Delete("/{id}", deletePetHandler(api))
	})
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 500 {object} web.ErrorResponse
// @Router /pets [get]
func listPetsHandler(api web.API[Pet, petResponse]) http.HandlerFunc {
	return api.List
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description El cumpleaños va en formato YYYY-MM-DD y no puede ser posterior a hoy.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body petRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} web.ErrorResponse "invalid json"
// @Failure 422 {object} web.ErrorResponse "errores por campo"
// @Router /pets [post]
func createPetHandler(api web.API[Pet, petResponse]) http.HandlerFunc {
	return api.Create
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param id path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /pets/{id} [get]
func getPetHandler(api web.API[Pet, petResponse]) http.HandlerFunc {
	return api.Get
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Actualización parcial: los campos vacíos u omitidos no se modifican.
// @Tags pets
// @Accept json
// @Produce json
// @Param id path string true "ID de la mascota"
// @Param payload body petRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 404 {object} web.ErrorResponse
// @Failure 422 {object} web.ErrorResponse
// @Router /pets/{id} [patch]
func updatePetHandler(api web.API[Pet, petResponse]) http.HandlerFunc {
	return api.Patch
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Tags pets
// @Param id path string true "ID de la mascota"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Router /pets/{id} [delete]
func deletePetHandler(api web.API[Pet, petResponse]) http.HandlerFunc {
	return api.Delete
}
