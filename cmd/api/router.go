package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/crucial707/scim-provision/internal/auth"
	"github.com/crucial707/scim-provision/internal/config"
	"github.com/crucial707/scim-provision/internal/handlers"
	"github.com/crucial707/scim-provision/internal/middleware"
	"github.com/crucial707/scim-provision/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires the full HTTP surface: the SCIM /Users resource, the
// bootstrap /token endpoint, the audit read endpoint, and the operational
// routes. The audit middleware wraps the API group so every exchange —
// including 403s and 404s — lands in request_log exactly once.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	authenticator := auth.NewAuthenticator([]byte(cfg.JWTSecret))
	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenCustomerID)

	employeeRepo := repo.NewEmployeeRepo(database)
	auditRepo := repo.NewAuditRepo(database)

	scimHandler := &handlers.ScimHandler{Repo: employeeRepo}
	tokenHandler := &handlers.TokenHandler{Issuer: issuer}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo}

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
	tokenLimiter := middleware.TokenRateLimiter()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// Everything below is audited.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Audit(auditRepo))

		// Unauthenticated token bootstrap, rate limited per IP.
		r.With(tokenLimiter.Middleware).Get("/token", tokenHandler.Issue)

		// Bearer-protected resource routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(authenticator))
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

			r.Get("/Users", scimHandler.Get)
			r.Post("/Users", scimHandler.Create)
			r.Get("/Users/{id}", scimHandler.Get)
			r.Patch("/Users/{id}", scimHandler.Patch)
			r.Delete("/Users/{id}", scimHandler.Delete)

			r.Get("/audit", auditHandler.List)
		})
	})

	return r
}
