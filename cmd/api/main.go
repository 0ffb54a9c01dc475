package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/crucial707/scim-provision/internal/config"
	"github.com/crucial707/scim-provision/internal/db"
	"github.com/crucial707/scim-provision/internal/repo"
	"github.com/crucial707/scim-provision/internal/retention"
)

func main() {

	// Load configuration
	cfg := config.Load()

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		log.Fatal("refusing to start in prod with the default JWT_SECRET")
	}

	setupLogger(cfg.LogFormat)

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)

	slog.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if c := retention.Run(repo.NewAuditRepo(database), cfg.AuditRetentionDays); c != nil {
		defer c.Stop()
		slog.Info("audit retention enabled", "days", cfg.AuditRetentionDays)
	}

	router := newRouter(database, cfg)

	// Start server LAST
	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, router)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, router)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// setupLogger configures the process-wide slog handler from LOG_FORMAT.
func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
