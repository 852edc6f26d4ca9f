package clients

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/logger"
	"vetsoft/internal/web"
)

type clientRequest struct {
	Name    string `json:"name" example:"Juan Sebastián Veron"`
	Phone   string `json:"phone" example:"221555232"`
	Email   string `json:"email" example:"juan@vetsoft.com"`
	Address string `json:"address" example:"13 y 44"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(c Client) clientResponse {
	return clientResponse{
		ID:        strconv.FormatInt(c.ID, 10),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// RegisterAPI monta la API JSON de clientes bajo /clients.
func RegisterAPI(r chi.Router, svc *Service, log logger.Logger) {
	api := web.API[Client, clientResponse]{
		Service:  svc,
		Response: toResponse,
		Log:      log.With(map[string]any{"module": "clients"}),
	}

	r.Route("/clients", func(cr chi.Router) {
		cr.Get("/", listClientsHandler(api))
		cr.Post("/", createClientHandler(api))
		cr.Get("/{id}", getClientHandler(api))
		cr.Patch("/{id}", updateClientHandler(api))
		cr.Delete("/{id}", deleteClientHandler(api))
	})
}

// listClientsHandler godoc
// @Summary Listar clientes
// @Tags clients
// @Produce json
// @Success 200 {array} clientResponse
// @Failure 500 {object} web.ErrorResponse
// @Router /clients [get]
func listClientsHandler(api web.API[Client, clientResponse]) http.HandlerFunc {
	return api.List
}

// createClientHandler godoc
// @Summary Crear cliente
// @Description Valida y crea un cliente. El email debe terminar en @vetsoft.com y el teléfono sólo puede tener dígitos.
// @Tags clients
// @Accept json
// @Produce json
// @Param payload body clientRequest true "Datos del cliente"
// @Success 201 {object} clientResponse
// @Failure 400 {object} web.ErrorResponse "invalid json"
// @Failure 422 {object} web.ErrorResponse "errores por campo"
// @Router /clients [post]
func createClientHandler(api web.API[Client, clientResponse]) http.HandlerFunc {
	return api.Create
}

// getClientHandler godoc
// @Summary Obtener cliente
// @Tags clients
// @Produce json
// @Param id path string true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /clients/{id} [get]
func getClientHandler(api web.API[Client, clientResponse]) http.HandlerFunc {
	return api.Get
}

// updateClientHandler godoc
// @Summary Actualizar cliente
// @Description Actualización parcial: los campos vacíos u omitidos no se modifican.
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "ID del cliente"
// @Param payload body clientRequest true "Campos a modificar"
// @Success 200 {object} clientResponse
// @Failure 404 {object} web.ErrorResponse
// @Failure 422 {object} web.ErrorResponse
// @Router /clients/{id} [patch]
func updateClientHandler(api web.API[Client, clientResponse]) http.HandlerFunc {
	return api.Patch
}

// deleteClientHandler godoc
// @Summary Eliminar cliente
// @Tags clients
// @Param id path string true "ID del cliente"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Router /clients/{id} [delete]
func deleteClientHandler(api web.API[Client, clientResponse]) http.HandlerFunc {
	return api.Delete
}
