// Package main renders the dashboard once to stdout and exits. It loads the
// same configuration and projects document as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/source"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/terminal"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/app"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/config"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	profile := fs.String("profile", os.Getenv("APP_PROFILE"), "config profile (defaults to $APP_PROFILE)")
	configDir := fs.String("config-dir", "configs", "directory holding base.yaml and profile files")
	path := fs.String("file", "", "read this projects document instead of the configured source")
	width := fs.Int("width", terminal.DefaultWidth, "output width in columns")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *profile == "" {
		return errors.New("a profile is required: pass -profile or set APP_PROFILE")
	}

	opts := []config.Option{config.WithConfigDir(*configDir)}
	if *path != "" {
		opts = append(opts, config.WithOverrides(map[string]any{
			"source.kind": config.SourceFile,
			"source.path": *path,
		}))
	}

	cfg, err := config.Load(*profile, opts...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr so stdout carries only the rendered dashboard.
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var client *httpclient.Client
	if cfg.Source.Kind == config.SourceHTTP {
		client = httpclient.New(&cfg.Client, "projects-source", nil, logger)
	}
	src, err := source.New(cfg.Source, client, logger)
	if err != nil {
		return fmt.Errorf("configuring source: %w", err)
	}

	svc, err := app.LoadDashboardService(ctx, src, nil, logger)
	if err != nil {
		return err
	}
	d, err := svc.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}

	logger.DebugContext(ctx, "rendering dashboard",
		slog.Int("projects", d.Totals.TotalProjects),
		slog.Int("width", *width),
	)

	r := terminal.NewRenderer(cfg.Dashboard.Title, cfg.Dashboard.Subtitle, terminal.WithWidth(*width))
	return r.Write(stdout, d)
}
