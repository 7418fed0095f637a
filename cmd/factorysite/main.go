// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the factory site API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"factorysite/internal/admin"
	"factorysite/internal/cache"
	"factorysite/internal/config"
	"factorysite/internal/database"
	"factorysite/internal/handlers"
	"factorysite/internal/middleware"
	"factorysite/internal/router"
	"factorysite/internal/session"
	"factorysite/internal/site"
	"factorysite/internal/storage"
	"factorysite/internal/store"
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"default_lang", cfg.DefaultLang,
	)

	sample := store.Sample()
	db, repo := openDatabase(cfg, sample)
	if db != nil {
		defer db.Close()
	}

	// The public site reads the database and falls back to the sample
	// catalog when it fails or holds no services yet.
	reader := site.New(repo, sample)
	var leads *admin.Leads
	if repo != nil {
		leads = admin.NewLeads(repo)
	}

	rcfg := router.Config{
		Public:      handlers.NewPublic(reader, leads),
		DefaultLang: cfg.DefaultLang,
		Secure:      !cfg.IsDev(),
		FormLimiter: middleware.NewRateLimiter("forms", cfg.FormRateLimit.Requests, cfg.FormRateLimit.Window),
	}
	defer rcfg.FormLimiter.Stop()

	valkey, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, response cache and admin API disabled", "error", err)
	} else {
		defer valkey.Close()
		rcfg.Responses = cache.NewResponses(valkey, cache.DefaultResponseTTL)
	}

	if db != nil && valkey != nil {
		wireAdmin(&rcfg, cfg, db, repo, valkey)
		defer rcfg.LoginLimiter.Stop()
	} else {
		slog.Warn("admin API not mounted", "database", db != nil, "valkey", valkey != nil)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(rcfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openDatabase connects, migrates and, in development, seeds Postgres.
// It returns (nil, nil) when the database is unreachable so the public
// site can run on the sample catalog alone.
func openDatabase(cfg *config.Config, sample *store.Memory) (*sql.DB, store.Repository) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("database unavailable, serving sample catalog", "error", err)
		return nil, nil
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	repo := store.NewPostgres(db)
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed admin user", "error", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		services, err := repo.ListServices(ctx)
		if err == nil && len(services) == 0 {
			if err := store.SeedFrom(ctx, repo, sample); err != nil {
				slog.Error("failed to seed sample catalog", "error", err)
				os.Exit(1)
			}
			slog.Info("sample catalog loaded into empty database")
		}
	}
	return db, repo
}

// wireAdmin builds the admin, auth and media handlers.
func wireAdmin(rcfg *router.Config, cfg *config.Config, db *sql.DB, repo store.Repository, valkey *redis.Client) {
	sessions := session.NewStore(valkey, !cfg.IsDev())

	bucket, err := storage.New(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	var media handlers.MediaStorage
	if bucket != nil {
		media = bucket
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, uploads disabled")
	}

	rcfg.Admin = handlers.NewAdmin(repo, rcfg.Responses)
	rcfg.Auth = handlers.NewAuth(sessions, store.NewUserStore(db))
	rcfg.Media = handlers.NewMedia(media, cfg.MaxUploadBytes)
	rcfg.Sessions = sessions
	rcfg.LoginLimiter = middleware.NewRateLimiter("login", cfg.LoginRateLimit.Requests, cfg.LoginRateLimit.Window)
}
