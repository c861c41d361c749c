// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the WellnessHub storefront server.
// It loads configuration, opens the visitor state store, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"wellnesshub/internal/api"
	"wellnesshub/internal/apiclient"
	"wellnesshub/internal/cache"
	"wellnesshub/internal/config"
	"wellnesshub/internal/database"
	"wellnesshub/internal/handlers"
	"wellnesshub/internal/markdown"
	"wellnesshub/internal/middleware"
	"wellnesshub/internal/persist"
	"wellnesshub/internal/render"
	"wellnesshub/internal/router"
	"wellnesshub/internal/session"
	"wellnesshub/internal/storage"
)

// mockLatency simulates the backend round trip of the demo catalogue.
const mockLatency = 150 * time.Millisecond

// mockNamespace prefixes the demo catalogue keys in the shared store.
const mockNamespace = "mock"

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"api", cfg.APIBase(),
		"storage", cfg.StorageDriver,
	)

	store, valkeyClient, closer, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open state store", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	// Rendered Markdown is cached in Valkey when it is available. Keys only
	// hash the source, so entries from a previous build are dropped.
	var fragments markdown.Cache
	if valkeyClient != nil {
		fc := cache.NewFragmentCache(valkeyClient, cache.DefaultFragmentTTL)
		fc.InvalidateAll(context.Background())
		fragments = fc
	}
	md := markdown.NewRenderer(fragments)

	uploader, err := storage.New(cfg.CloudinaryURL, storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
		Folder:    cfg.UploadFolder,
	})
	if err != nil {
		slog.Error("failed to initialize image storage", "error", err)
		os.Exit(1)
	}
	if uploader == nil {
		slog.Warn("image storage not configured, uploads disabled")
	}

	client := apiclient.New(cfg.APIBase(),
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithOnExpired(func(ctx context.Context) {
			slog.InfoContext(ctx, "admin session expired, signed out")
		}),
	)

	var mock *api.MockProducts
	if cfg.MockProducts {
		mock = newMockCatalog(store, mockLatency)
		slog.Info("serving the demo product catalogue")
	}
	backend := handlers.NewBackend(client, mock)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// In non-development environments cookies are marked Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	limiter := middleware.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	r := router.New(router.Options{
		Visitors:      session.NewManager(store, secureCookies),
		Limiter:       limiter,
		SecureCookies: secureCookies,
	},
		handlers.NewPublic(renderer, backend, md),
		handlers.NewAuth(renderer, backend),
		handlers.NewAdmin(renderer, backend, uploader),
	)

	// WriteTimeout leaves room for a full backend timeout plus an upload.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// openStore opens the visitor state store named by STORAGE_DRIVER. The
// Valkey client is returned too when that driver is in use.
func openStore(cfg *config.Config) (persist.Store, *redis.Client, io.Closer, error) {
	switch cfg.StorageDriver {
	case persist.DriverFile:
		s, err := persist.NewFile(cfg.StorageDir)
		if err != nil {
			return nil, nil, nil, err
		}
		slog.Info("visitor state on disk", "dir", cfg.StorageDir)
		return s, nil, nopCloser{}, nil

	case persist.DriverValkey:
		client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			return nil, nil, nil, err
		}
		return persist.NewValkey(client, cfg.StateTTL), client, client, nil

	case persist.DriverPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return persist.NewPostgres(db), nil, db, nil
	}

	slog.Warn("visitor state is in memory and lost on restart")
	return persist.NewMemory(), nil, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newMockCatalog serves the demo catalogue from its own namespace of store.
func newMockCatalog(store persist.Store, delay time.Duration) *api.MockProducts {
	return api.NewMockProducts(persist.Namespace(store, mockNamespace), delay)
}
