package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tilsley/repoview/apps/gateway/internal/platform/cors"
	"github.com/tilsley/repoview/apps/gateway/internal/platform/github"
	"github.com/tilsley/repoview/apps/gateway/internal/platform/logger"
	"github.com/tilsley/repoview/apps/gateway/internal/platform/telemetry"
	"github.com/tilsley/repoview/apps/gateway/internal/platform/validation"
	"github.com/tilsley/repoview/apps/gateway/internal/repos"
	"github.com/tilsley/repoview/apps/gateway/internal/repos/adapters"
	"github.com/tilsley/repoview/apps/gateway/internal/repos/handler"
	"github.com/tilsley/repoview/schemas"
)

func main() {
	slog := logger.New()

	apiURL := envOr("GITHUB_API_URL", github.DefaultAPIURL)
	rawURL := envOr("GITHUB_RAW_URL", github.DefaultRawURL)
	port := envOr("PORT", "8000")

	timeout, err := time.ParseDuration(envOr("UPSTREAM_TIMEOUT", "0s"))
	if err != nil {
		slog.Error("invalid UPSTREAM_TIMEOUT", "error", err)
		os.Exit(1)
	}

	// --- Observability ---

	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		os.Setenv("OTEL_SERVICE_NAME", telemetry.DefaultServiceName) //nolint:errcheck
	}

	otelEnabled := os.Getenv("OTEL_ENABLED") == "true"
	tel, err := telemetry.New(context.Background(), otelEnabled)
	if err != nil {
		slog.Error("telemetry init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// --- Upstream adapters ---

	httpClient := github.NewHTTPClient(timeout)
	gh, err := github.NewClient(httpClient, apiURL)
	if err != nil {
		slog.Error("github client init failed", "error", err)
		os.Exit(1)
	}

	instr := []adapters.Option{
		adapters.WithMeterProvider(tel.MeterProvider),
		adapters.WithTracerProvider(tel.TracerProvider),
	}
	trees, err := adapters.NewGitHubTreeReader(gh, instr...)
	if err != nil {
		slog.Error("tree reader init failed", "error", err)
		os.Exit(1)
	}
	contents, err := adapters.NewRawContentReader(rawURL, httpClient, instr...)
	if err != nil {
		slog.Error("raw content reader init failed", "error", err)
		os.Exit(1)
	}

	svc := repos.NewService(trees, contents, slog)

	// --- HTTP ---

	validator, err := validation.New(schemas.OpenAPISpec)
	if err != nil {
		slog.Error("openapi validation middleware init failed", "error", err)
		os.Exit(1)
	}

	router := gin.New()
	router.Use(gin.Recovery(), cors.Middleware(), otelgin.Middleware(telemetry.ServiceName()), validator)
	handler.RegisterRoutes(router, svc, slog)

	slog.Info("starting gateway",
		"port", port, "apiURL", apiURL, "rawURL", rawURL, "upstreamTimeout", timeout, "otel", otelEnabled)
	if err := router.Run(":" + port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
