// Command server serves the project dashboard page, its JSON API and the
// health probes. The projects document is loaded once at startup; SIGINT or
// SIGTERM drains in-flight requests and flushes telemetry before exit.
//
// Dependencies are wired with samber/do. APP_PROFILE selects the config
// profile.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/http"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/source"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/app"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/config"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/health"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/logging"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/telemetry"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	ctx := context.Background()
	otel, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer flushTelemetry(otel, logger)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)
	registerDependencies(ctx, injector, cfg, logger)

	// Resolving the server loads the projects document, so a bad document
	// stops the process before anything listens.
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start(ctx) }()

	logger.InfoContext(ctx, "dashboard server starting",
		slog.String("profile", profile),
		slog.String("addr", server.Addr()),
		slog.String("source", cfg.Source.Kind),
	)

	select {
	case <-sigCtx.Done():
		logger.InfoContext(ctx, "received shutdown signal")
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "server shutdown error", slog.Any("error", err))
	}
	<-serverErr

	logger.InfoContext(ctx, "shutdown complete")
	return nil
}

func flushTelemetry(otel *telemetry.Providers, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()

	if err := otel.Shutdown(ctx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}

// sourceCheck reports the projects source in readiness: the breaker state
// for http, the file's presence for file.
func sourceCheck(i do.Injector, cfg *config.Config) ports.HealthChecker {
	if cfg.Source.Kind == config.SourceHTTP {
		return do.MustInvoke[*httpclient.Client](i)
	}
	return health.NewFunc("projects-source", func(context.Context) error {
		_, err := os.Stat(cfg.Source.Path)
		return err
	})
}

func registerDependencies(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, "projects-source", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ProjectSource, error) {
		var client *httpclient.Client
		if cfg.Source.Kind == config.SourceHTTP {
			client = do.MustInvoke[*httpclient.Client](i)
		}
		return source.New(cfg.Source, client, logger)
	})

	do.Provide(injector, func(i do.Injector) (*app.DashboardService, error) {
		src, err := do.Invoke[ports.ProjectSource](i)
		if err != nil {
			return nil, err
		}
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.LoadDashboardService(ctx, src, metrics, logger)
	})

	do.Provide(injector, func(i do.Injector) (ports.DashboardService, error) {
		return do.Invoke[*app.DashboardService](i)
	})

	do.Provide(injector, func(i do.Injector) (ports.HealthRegistry, error) {
		svc, err := do.Invoke[*app.DashboardService](i)
		if err != nil {
			return nil, err
		}
		registry := health.New()
		registry.Register(svc)
		registry.Register(sourceCheck(i, cfg))
		return registry, nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.PageHandler, error) {
		svc, err := do.Invoke[ports.DashboardService](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewPageHandler(svc, cfg.Dashboard.Title, cfg.Dashboard.Subtitle), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		svc, err := do.Invoke[ports.DashboardService](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewProjectHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry, err := do.Invoke[ports.HealthRegistry](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		pageH, err := do.Invoke[*handlers.PageHandler](i)
		if err != nil {
			return nil, err
		}
		projH, err := do.Invoke[*handlers.ProjectHandler](i)
		if err != nil {
			return nil, err
		}
		healthH, err := do.Invoke[*handlers.HealthHandler](i)
		if err != nil {
			return nil, err
		}
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(pageH, projH, healthH,
			middleware.Stack(logger, metrics, cfg.Server.WriteTimeout)...,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler, err := do.Invoke[nethttp.Handler](i)
		if err != nil {
			return nil, err
		}
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
