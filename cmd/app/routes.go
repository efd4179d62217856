package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"ratesource/internal/api"
	"ratesource/internal/api/middleware"
	"ratesource/internal/rates"
)

func (app *App) initHTTP(source rates.RateSource) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogging(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/rates", api.HandleGetRate(source))
	r.Delete("/rates/{from}/{to}", api.HandleFlushRate(source))
	r.Delete("/rates", api.HandleFlushRates(source))
	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(app.rdbCache))

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
