package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "vetsoft/docs"
	"vetsoft/internal/domain/clients"
	"vetsoft/internal/domain/medicines"
	"vetsoft/internal/domain/pets"
	"vetsoft/internal/domain/products"
	"vetsoft/internal/middleware"
	"vetsoft/internal/platform/logger"
	"vetsoft/internal/web"
)

// Services agrupa los services por módulo.
type Services struct {
	Clients   *clients.Service
	Pets      *pets.Service
	Medicines *medicines.Service
	Products  *products.Service
}

type Options struct {
	Logger   logger.Logger
	Services Services

	// Opcional: si es nil se parsean los templates embebidos.
	View *web.Renderer

	// Orígenes permitidos para /api. Vacío = "*".
	CORSOrigins []string
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	view := opts.View
	if view == nil {
		v, err := web.NewRenderer()
		if err != nil {
			return nil, err
		}
		view = v
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.NotFound(web.NotFound)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if err := view.Render(w, http.StatusOK, "home", nil); err != nil {
			log.Error("render failed", map[string]any{"page": "home", "error": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	})

	svc := opts.Services

	// Páginas HTML por módulo
	clients.RegisterRoutes(r, svc.Clients, view, log)
	pets.RegisterRoutes(r, svc.Pets, view, log)
	medicines.RegisterRoutes(r, svc.Medicines, view, log)
	products.RegisterRoutes(r, svc.Products, view, log)

	// API JSON
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{
				http.MethodGet,
				http.MethodPost,
				http.MethodPatch,
				http.MethodDelete,
				http.MethodOptions,
			},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{middleware.CorrelationHeader},
		}).Handler)

		clients.RegisterAPI(api, svc.Clients, log)
		pets.RegisterAPI(api, svc.Pets, log)
		medicines.RegisterAPI(api, svc.Medicines, log)
		products.RegisterAPI(api, svc.Products, log)
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r, nil
}
