package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tryon/internal/http/handlers"
	"tryon/internal/infra"
	"tryon/internal/middleware"
)

// NewRouter assembles the public HTTP surface.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.Locale("en", lookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	r.Method(stdhttp.MethodGet, "/metrics", promhttp.Handler())

	if app.Store != nil {
		fs := stdhttp.FileServer(stdhttp.Dir(app.Store.BasePath()))
		r.Handle("/static/*", stdhttp.StripPrefix("/static/", fs))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))

		r.Post("/v1/uploads", app.UploadPhoto)
		r.Post("/v1/outfits/search", app.OutfitsSearch)
		r.Route("/v1/tryon", func(r chi.Router) {
			r.Post("/", app.TryOnSubmit)
			r.Get("/{job_id}", app.TryOnStatus)
		})
	})

	return r
}
