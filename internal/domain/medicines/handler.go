package medicines

import (
	"github.com/go-chi/chi/v5"

	"vetsoft/internal/platform/logger"
	"vetsoft/internal/web"
)

func RegisterRoutes(r chi.Router, svc *Service, view *web.Renderer, log logger.Logger) {
	web.Pages[Medicine]{
		Slug:        "medicines",
		Template:    "medicines",
		DeleteField: "medicine_id",
		Service:     svc,
		Values:      ToValues,
		View:        view,
		Log:         log.With(map[string]any{"module": "medicines"}),
	}.Register(r)
}
