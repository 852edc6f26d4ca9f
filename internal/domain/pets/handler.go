package pets

import (
	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/logger"
	"vetsoft/internal/web"
)

// RegisterRoutes monta las páginas HTML de mascotas bajo /mascotas.
func RegisterRoutes(r chi.Router, svc *Service, view *web.Renderer, log logger.Logger) {
	web.Pages[Pet]{
		Slug:        "mascotas",
		Template:    "pets",
		DeleteField: "pet_id",
		Service:     svc,
		Values:      ToValues,
		View:        view,
		Log:         log.With(map[string]any{"module": "pets"}),
	}.Register(r)
}
