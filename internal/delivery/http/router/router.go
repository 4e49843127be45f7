package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/bizscrape-service/internal/delivery/http/handler"
	"github.com/user/bizscrape-service/internal/delivery/http/middleware"
	"github.com/user/bizscrape-service/pkg/metrics"
	"go.uber.org/zap"
)

type Options struct {
	// UserHeader carries the caller identity set by the identity provider.
	UserHeader string
	Metrics    *metrics.Metrics
	// MetricsHandler serves /metrics; promhttp.Handler() when nil.
	MetricsHandler http.Handler
	Logger         *zap.Logger
}

func New(h *handler.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(opts.Logger))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Identity(opts.UserHeader))

	metricsHandler := opts.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/scrapers", h.HandleScrapers)
		r.Get("/scrape/stats", h.HandleStats)
		r.Get("/scrape/ppp", h.HandleListLoans)
		r.Post("/scrape/google/test", h.HandleGoogleProbe)
		r.Post("/scrape/{source}", h.HandleScrape)
		r.Get("/jobs/{id}", h.HandleGetJob)
		r.Post("/industry-research", h.HandleCreateIndustry)
		r.Get("/industry-research", h.HandleListIndustries)
	})

	return r
}
