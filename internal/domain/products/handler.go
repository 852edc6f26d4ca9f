package products

import (
	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/logger"
	"vetsoft/internal/web"
)

func RegisterRoutes(r chi.Router, svc *Service, view *web.Renderer, log logger.Logger) {
	web.Pages[Product]{
		Slug:        "productos",
		Template:    "products",
		DeleteField: "product_id",
		Service:     svc,
		Values:      ToValues,
		View:        view,
		Log:         log.With(map[string]any{"module": "products"}),
	}.Register(r)
}
