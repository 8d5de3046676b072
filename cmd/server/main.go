package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/silver_admin/internal/config"
	"github.com/Skotchmaster/silver_admin/internal/db"
	"github.com/Skotchmaster/silver_admin/internal/events"
	"github.com/Skotchmaster/silver_admin/internal/flash"
	"github.com/Skotchmaster/silver_admin/internal/handlers"
	"github.com/Skotchmaster/silver_admin/internal/logging"
	"github.com/Skotchmaster/silver_admin/internal/middleware/auth"
	"github.com/Skotchmaster/silver_admin/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/silver_admin/internal/middleware/logging"
	"github.com/Skotchmaster/silver_admin/internal/repo"
	"github.com/Skotchmaster/silver_admin/internal/service"
	"github.com/Skotchmaster/silver_admin/internal/session"
	httpserver "github.com/Skotchmaster/silver_admin/internal/transport/http"
	"github.com/Skotchmaster/silver_admin/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFile).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_init_error", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	store := &repo.GormRepo{DB: gdb}

	if cfg.Seed {
		seeder := &service.Seeder{Repo: store, AdminHandle: cfg.AdminHandle, AdminPassword: cfg.AdminPassword}
		if err := seeder.Seed(logging.IntoContext(ctx, logger)); err != nil {
			logger.Error("seed_error", "error", err)
			os.Exit(1)
		}
	}

	if n, err := store.PurgeSessions(ctx, time.Now().UTC()); err != nil {
		logger.Warn("session_purge_error", "error", err)
	} else if n > 0 {
		logger.Info("sessions_purged", "count", n)
	}

	pub := events.New(cfg.KafkaBrokers)

	renderer, err := view.New(cfg.TemplatesDir)
	if err != nil {
		logger.Error("templates_error", "dir", cfg.TemplatesDir, "error", err)
		os.Exit(1)
	}

	accounts := &service.AccountService{Repo: store, Events: pub}
	catalog := &service.CatalogService{Repo: store, Events: pub}
	sessions := &session.Manager{
		Repo:        store,
		Secret:      cfg.SessionSecret,
		IdleTimeout: cfg.SessionIdleTimeout,
		MaxAge:      cfg.SessionMaxAge,
	}
	fl := flash.NewStore(cfg.SessionSecret, cfg.CookieSecure)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(csrf.Middleware(csrf.Config{
		Secure:    cfg.CookieSecure,
		SkipPaths: []string{"/health/live", "/health/ready"},
	}))
	e.Static("/static", cfg.StaticDir)

	deps := httpserver.Deps{
		DB:             gdb,
		Guard:          &auth.Guard{Sessions: sessions, Accounts: accounts, Flash: fl, CookieSecure: cfg.CookieSecure},
		AuthHandler:    &handlers.AuthHandler{Accounts: accounts, Sessions: sessions, Flash: fl, CookieSecure: cfg.CookieSecure},
		ProductHandler: &handlers.ProductHandler{Catalog: catalog, Flash: fl},
		AccountHandler: &handlers.AccountHandler{Accounts: accounts, Flash: fl},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}

	logger.Info("shutdown complete")
}
