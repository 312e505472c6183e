package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"

	"github.com/systra-connect/portal/internal/config"
	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/explorer"
	"github.com/systra-connect/portal/pkg/i18n"
	"github.com/systra-connect/portal/pkg/middleware"
	"github.com/systra-connect/portal/pkg/navigation"
	"github.com/systra-connect/portal/pkg/server"
)

// newLogger builds the process logger from the log config section.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, portalerrors.New("E105").WithDetailf("Unknown log level %q", level).Wrap(err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, portalerrors.New("E105").WithDetailf("Unknown log format %q", format)
	}
}

// loadCatalog loads the translation catalog the config names.
func loadCatalog(cfg *config.Config) (*i18n.Catalog, error) {
	opts := []i18n.Option{
		i18n.WithDefault(i18n.Locale(cfg.I18n.Default)),
		i18n.WithFallback(i18n.Locale(cfg.I18n.Fallback)),
	}
	if dir := cfg.LocaleDir(); dir != "" {
		opts = append(opts, i18n.WithDir(dir))
	}
	return i18n.Load(opts...)
}

// newLister builds the explorer storage adapter.
func newLister(ctx context.Context, cfg *config.Config) (explorer.Lister, error) {
	if cfg.Explorer.Backend != config.BackendS3 {
		return explorer.NewLocalLister(cfg.ExplorerRoot()), nil
	}
	s3cfg := cfg.Explorer.S3
	client, err := explorer.NewS3Client(ctx, explorer.S3Options{
		Region:    s3cfg.Region,
		Endpoint:  s3cfg.Endpoint,
		PathStyle: s3cfg.PathStyle,
	})
	if err != nil {
		return nil, portalerrors.New("E401").WithDetail("Could not configure the S3 client.").Wrap(err)
	}
	return explorer.NewS3Lister(client, s3cfg.Bucket, s3cfg.Prefix), nil
}

// buildServer wires the portal server from config.
func buildServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	if err := catalog.CheckError(); err != nil {
		// Missing keys fall back at lookup time; report and keep serving.
		logger.Warn("translation catalogs differ", "error", err)
	}

	table, err := navigation.New(
		navigation.WithNotFoundLoader(server.LoadNotFoundTemplate),
		navigation.WithLogger(logger.With("component", "navigation")),
	)
	if err != nil {
		return nil, err
	}

	lister, err := newLister(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ex := explorer.New(lister,
		explorer.WithLogger(logger.With("component", "explorer")),
		explorer.WithTracer(otel.Tracer(cfg.Telemetry.TracerName)),
	)

	var opts []server.Option
	if cfg.Telemetry.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, server.WithMetrics(middleware.NewMetrics(middleware.WithRegistry(reg)), reg))
	}
	opts = append(opts, server.WithTracing(middleware.WithTracerName(cfg.Telemetry.TracerName)))

	return server.New(&server.Config{
		Address:         cfg.Address(),
		ShutdownTimeout: cfg.ShutdownTimeout(),
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		AppName:         cfg.Name,
		Logger:          logger.With("component", "server"),
	}, table, catalog, ex, opts...), nil
}
