package products

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/logger"
	"vetsoft/internal/web"
)

type productRequest struct {
	Name  string `json:"name" example:"Alimento balanceado"`
	Type  string `json:"type" example:"alimento"`
	Price string `json:"price" example:"1500.50"`
	Stock string `json:"stock" example:"20"`
}

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(p Product) productResponse {
	return productResponse{
		ID:        strconv.FormatInt(p.ID, 10),
		Name:      p.Name,
		Type:      p.Type,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func RegisterAPI(r chi.Router, svc *Service, log logger.Logger) {
	api := web.API[Product, productResponse]{
		Service:  svc,
		Response: toResponse,
		Log:      log.With(map[string]any{"module": "products"}),
	}

	r.Route("/products", func(pr chi.Router) {
		pr.Get("/", listProductsHandler(api))
		pr.Post("/", createProductHandler(api))
		pr.Get("/{id}", getProductHandler(api))
		pr.Patch("/{id}", updateProductHandler(api))
		pr.Delete("/{id}", deleteProductHandler(api))
	})
}

// listProductsHandler godoc
// @Summary Listar productos
// @Tags products
// @Produce json
// @Success 200 {array} productResponse
// @Router /products [get]
func listProductsHandler(api web.API[Product, productResponse]) http.HandlerFunc {
	return api.List
}

// createProductHandler godoc
// @Summary Crear producto
// @Description El precio debe ser mayor a cero y el stock un entero mayor o igual a cero.
// @Tags products
// @Accept json
// @Produce json
// @Param payload body productRequest true "Datos del producto"
// @Success 201 {object} productResponse
// @Failure 400 {object} web.ErrorResponse "invalid json"
// @Failure 422 {object} web.ErrorResponse "errores por campo"
// @Router /products [post]
func createProductHandler(api web.API[Product, productResponse]) http.HandlerFunc {
	return api.Create
}

// getProductHandler godoc
// @Summary Obtener producto
// @Tags products
// @Produce json
// @Param id path string true "ID del producto"
// @Success 200 {object} productResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /products/{id} [get]
func getProductHandler(api web.API[Product, productResponse]) http.HandlerFunc {
	return api.Get
}

// updateProductHandler godoc
// @Summary Actualizar producto
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID del producto"
// @Param payload body productRequest true "Campos a modificar"
// @Success 200 {object} productResponse
// @Failure 404 {object} web.ErrorResponse
// @Failure 422 {object} web.ErrorResponse
// @Router /products/{id} [patch]
func updateProductHandler(api web.API[Product, productResponse]) http.HandlerFunc {
	return api.Patch
}

// deleteProductHandler godoc
// @Summary Eliminar producto
// @Tags products
// @Param id path string true "ID del producto"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Router /products/{id} [delete]
func deleteProductHandler(api web.API[Product, productResponse]) http.HandlerFunc {
	return api.Delete
}
