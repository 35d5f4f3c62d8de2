package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"tryon/internal/http/handlers"
	"tryon/internal/infra"
	"tryon/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logger(logger),
		chimw.Recoverer,
	)
	if cfg != nil && len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}

	r.Get("/", app.Index)
	r.Post("/api/tryon", app.TryOn)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)
	})

	return r
}
