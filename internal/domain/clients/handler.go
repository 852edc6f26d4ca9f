package clients

import (
	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/logger"
	"vetsoft/internal/web"
)

// RegisterRoutes monta las páginas HTML de clientes bajo /clientes.
func RegisterRoutes(r chi.Router, svc *Service, view *web.Renderer, log logger.Logger) {
	web.Pages[Client]{
		Slug:        "clientes",
		Template:    "clients",
		DeleteField: "client_id",
		Service:     svc,
		Values:      ToValues,
		View:        view,
		Log:         log.With(map[string]any{"module": "clients"}),
	}.Register(r)
}
