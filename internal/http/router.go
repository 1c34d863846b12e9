package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/spendview/internal/http/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/http/expense"
	"github.com/MrJamesThe3rd/spendview/internal/http/export"
	"github.com/MrJamesThe3rd/spendview/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spendview/internal/http/matching"
	"github.com/MrJamesThe3rd/spendview/internal/http/settings"
)

type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
}

func New(
	opts Options,
	dashboardV1 *dashboard.Handler,
	expensesV1 *expense.Handler,
	settingsV1 *settings.Handler,
	matchingV1 *matching.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			dashboardV1.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			settingsV1.Routes(r)
		})

		r.Route("/categories", matchingV1.Routes)
		r.Route("/export", exportV1.Routes)
		r.Route("/import", importV1.Routes)
	})

	return router
}
