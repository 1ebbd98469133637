package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/config"
)

func TestLoad_LocalProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\"", cfg.Log.Format)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false for local")
	}
	if cfg.Source.Kind != config.SourceFile {
		t.Errorf("Source.Kind = %q, want %q", cfg.Source.Kind, config.SourceFile)
	}
	if cfg.Source.Path != "data/projects.json" {
		t.Errorf("Source.Path = %q, want \"data/projects.json\"", cfg.Source.Path)
	}
}

func TestLoad_ProdProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("prod")
	if err != nil {
		t.Fatalf("Load(\"prod\") error: %v", err)
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = false, want true for prod")
	}
	if cfg.Telemetry.Exporter != "otlp" {
		t.Errorf("Telemetry.Exporter = %q, want \"otlp\"", cfg.Telemetry.Exporter)
	}
	if cfg.Source.Kind != config.SourceHTTP {
		t.Errorf("Source.Kind = %q, want %q", cfg.Source.Kind, config.SourceHTTP)
	}
	if cfg.Client.RateLimit.RequestsPerSecond != 5 {
		t.Errorf("Client.RateLimit.RequestsPerSecond = %v, want 5", cfg.Client.RateLimit.RequestsPerSecond)
	}
}

func TestLoad_BaseConfigInheritance(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	// These come from base.yaml, not overridden by local.yaml.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want \"0.0.0.0\" (from base)", cfg.Server.Host)
	}
	if cfg.Client.Retry.MaxAttempts != 3 {
		t.Errorf("Client.Retry.MaxAttempts = %d, want 3 (from base)", cfg.Client.Retry.MaxAttempts)
	}
	if cfg.Dashboard.Subtitle != "All projects and tasks at a glance" {
		t.Errorf("Dashboard.Subtitle = %q, want base value", cfg.Dashboard.Subtitle)
	}
}

func TestLoad_EnvOverrideSimpleKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_PORT", "9090")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_READ_TIMEOUT", "15s")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := 15 * time.Second
	if cfg.Server.ReadTimeout != want {
		t.Errorf("Server.ReadTimeout = %v, want %v (env override)", cfg.Server.ReadTimeout, want)
	}
}

func TestLoad_EnvOverrideSourcePath(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SOURCE_PATH", "/srv/projects.json")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Source.Path != "/srv/projects.json" {
		t.Errorf("Source.Path = %q, want \"/srv/projects.json\" (env override)", cfg.Source.Path)
	}
}

func TestLoad_EnvOverrideDeeplyNestedKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_CLIENT_RETRY_MAX_ATTEMPTS", "7")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Client.Retry.MaxAttempts != 7 {
		t.Errorf("Client.Retry.MaxAttempts = %d, want 7 (env override)", cfg.Client.Retry.MaxAttempts)
	}
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SOURCE_PATH", "/from/env.json")

	cfg, err := config.Load("local", config.WithOverrides(map[string]any{
		"source.kind": config.SourceFile,
		"source.path": "/from/flag.json",
	}))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Source.Path != "/from/flag.json" {
		t.Errorf("Source.Path = %q, want \"/from/flag.json\"", cfg.Source.Path)
	}
}

func TestLoad_OverridesAreValidated(t *testing.T) {
	t.Chdir("../../..")

	_, err := config.Load("local", config.WithOverrides(map[string]any{
		"source.kind": "ftp",
	}))
	if err == nil {
		t.Fatal("Load with source.kind=ftp returned nil error, want validation error")
	}
	if !strings.Contains(err.Error(), "validating config") {
		t.Errorf("error = %q, want it to mention validation", err)
	}
}

func TestLoad_WithConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := "source:\n  kind: file\n  path: projects.json\ndashboard:\n  title: Team Board\n"
	if err := os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(base), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ci.yaml"), []byte("log:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("ci", config.WithConfigDir(dir))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Dashboard.Title != "Team Board" {
		t.Errorf("Dashboard.Title = %q, want \"Team Board\"", cfg.Dashboard.Title)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want \"warn\"", cfg.Log.Level)
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Chdir("../../..")

	_, err := config.Load("nonexistent")
	if err == nil {
		t.Fatal("Load(\"nonexistent\") returned nil error, want error")
	}
}

func TestLoad_RejectsPathTraversalProfile(t *testing.T) {
	t.Parallel()

	for _, profile := range []string{"", "  ", "../etc", "a/b", `a\b`} {
		if _, err := config.Load(profile); err == nil {
			t.Errorf("Load(%q) returned nil error, want error", profile)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "port zero", mutate: func(c *config.Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "port too large", mutate: func(c *config.Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "no write timeout", mutate: func(c *config.Config) { c.Server.WriteTimeout = 0 }, wantErr: "server.write_timeout"},
		{name: "unknown log level", mutate: func(c *config.Config) { c.Log.Level = "verbose" }, wantErr: "log.level"},
		{name: "warning alias", mutate: func(c *config.Config) { c.Log.Level = "warning" }},
		{name: "unknown log format", mutate: func(c *config.Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{
			name:   "file source",
			mutate: func(c *config.Config) { c.Source = config.SourceConfig{Kind: config.SourceFile, Path: "p.json"} },
		},
		{
			name:    "file source without path",
			mutate:  func(c *config.Config) { c.Source = config.SourceConfig{Kind: config.SourceFile} },
			wantErr: "source.path",
		},
		{
			name:   "http source",
			mutate: func(c *config.Config) { c.Source = config.SourceConfig{Kind: config.SourceHTTP, URL: "/projects.json"} },
		},
		{
			name:    "http source without url",
			mutate:  func(c *config.Config) { c.Source = config.SourceConfig{Kind: config.SourceHTTP} },
			wantErr: "source.url must not be empty",
		},
		{
			name:    "http source with bad url",
			mutate:  func(c *config.Config) { c.Source = config.SourceConfig{Kind: config.SourceHTTP, URL: "http://[::1"} },
			wantErr: "source.url is not a valid URL",
		},
		{
			name:    "unknown source kind",
			mutate:  func(c *config.Config) { c.Source = config.SourceConfig{Kind: "s3", Path: "p.json"} },
			wantErr: "source.kind",
		},
		{
			name:    "rate limit without burst",
			mutate:  func(c *config.Config) { c.Client.RateLimit = config.RateLimitConfig{RequestsPerSecond: 2} },
			wantErr: "burst_size",
		},
		{
			name:    "negative rate",
			mutate:  func(c *config.Config) { c.Client.RateLimit = config.RateLimitConfig{RequestsPerSecond: -1, BurstSize: 1} },
			wantErr: "requests_per_second",
		},
		{
			name: "otlp without endpoint",
			mutate: func(c *config.Config) {
				c.Telemetry = config.TelemetryConfig{Enabled: true, Exporter: "otlp"}
			},
			wantErr: "telemetry.endpoint",
		},
		{
			name:   "disabled telemetry is not checked",
			mutate: func(c *config.Config) { c.Telemetry = config.TelemetryConfig{Exporter: "bogus"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validBaseConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.Port = 0
	cfg.Log.Format = "xml"
	cfg.Source = config.SourceConfig{Kind: config.SourceFile}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}
	for _, want := range []string{"server.port", "log.format", "source.path"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, missing %q", err, want)
		}
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Source: config.SourceConfig{
			Kind: config.SourceFile,
			Path: "data/projects.json",
		},
		Client: config.ClientConfig{
			BaseURL: "http://localhost:8081",
			Timeout: 30 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     10 * time.Second,
				Multiplier:      2.0,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
		},
		Telemetry: config.TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
	}
}
