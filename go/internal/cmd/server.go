package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/gateway"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/outbox"
)

func setupServer(addr string, services *Services, gw *gateway.Service, health *outbox.HealthChecker) *http.Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})
	r.Use(c.Handler)

	registerServices(r, services, gw)
	setupHealthCheck(r, health)

	// h2c lets clients speak HTTP/2 without TLS termination in front.
	return &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(r, &http2.Server{}),
	}
}

func registerServices(r chi.Router, services *Services, gw *gateway.Service) {
	services.Pick.RegisterRoutes(r)
	services.Commissioner.RegisterRoutes(r)
	services.Lineup.RegisterRoutes(r)
	services.Roster.RegisterRoutes(r)
	services.Player.RegisterRoutes(r)
	services.FantasyTeam.RegisterRoutes(r)
	services.League.RegisterRoutes(r)

	if gw != nil {
		gw.RegisterRoutes(r)
	}
}

func setupHealthCheck(r chi.Router, health *outbox.HealthChecker) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if health != nil {
		r.Method(http.MethodGet, "/healthz/outbox", health)
	}
}
