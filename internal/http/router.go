package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/filingdesk/internal/http/deadline"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/importcsv"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/order"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/renewal"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/stats"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func New(
	opts Options,
	ordersV1 *order.Handler,
	deadlinesV1 *deadline.Handler,
	renewalsV1 *renewal.Handler,
	importV1 *importcsv.Handler,
	statsV1 *stats.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(RequireAdmin(opts.JWTSecret))

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ordersV1.Routes(r)
		})

		r.Route("/applications", deadlinesV1.Routes)

		r.Group(renewalsV1.Routes)

		r.Route("/filings", importV1.Routes)

		r.Route("/stats", statsV1.Routes)
	})

	return router
}
