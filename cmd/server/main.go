package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arvela/contactbook/internal/http/health"
	"github.com/arvela/contactbook/internal/http/v1/routes"
	"github.com/arvela/contactbook/internal/platform/auth"
	"github.com/arvela/contactbook/internal/platform/config"
	"github.com/arvela/contactbook/internal/platform/database"
	"github.com/arvela/contactbook/internal/platform/logging"
	appmiddleware "github.com/arvela/contactbook/internal/platform/middleware"
	"github.com/arvela/contactbook/internal/platform/respond"
	contactsvc "github.com/arvela/contactbook/internal/service/contact"
	usersvc "github.com/arvela/contactbook/internal/service/user"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx := context.Background()
	defer func() {
		if err := logging.Sync(); err != nil {
			logging.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := logging.Err(); err != nil {
		logging.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.LogFatal(ctx, "config load failed", err)
	}

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.LogFatal(ctx, "database open failed", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logging.LogError(ctx, "database close failed", err)
		}
	}()
	if err := database.Migrate(db, usersvc.Row(), contactsvc.Row()); err != nil {
		logging.LogFatal(ctx, "database migration failed", err)
	}

	verifier, err := auth.NewJWKSVerifier(ctx, cfg.JWKSURL, cfg.Issuer, cfg.Audience)
	if err != nil {
		logging.LogFatal(ctx, "jwks fetch failed", err)
	}
	defer verifier.Close()

	userService := usersvc.NewGormStore(db)
	contactService := contactsvc.NewGormStore(db, userService)

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api/api-docs", "/api/schemas"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only sound behind a reverse proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		logging.RequestLogger(),
		logging.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler)

	respond.Install()

	apiRouter := chi.NewRouter()
	router.Mount("/api", apiRouter)

	humaCfg := huma.DefaultConfig("Contactbook API", Version)
	humaCfg.DocsPath = "/api-docs"
	humaCfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(apiRouter, humaCfg)

	routes.Register(api, verifier, userService, contactService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		logging.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		logging.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		logging.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(ctx, "graceful shutdown failed", err)
	}
}
