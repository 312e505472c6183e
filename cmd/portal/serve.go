package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/systra-connect/portal/internal/config"
)

type serveFlags struct {
	host      string
	port      int
	backend   string
	root      string
	logLevel  string
	logFormat string
	noMetrics bool
}

func serveCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portal server",
		Long: `Start the portal HTTP server.

Settings come from portal.json in the --config directory; flags override
them. Without portal.json the defaults are used.

Examples:
  portal serve
  portal serve --port=8080 --host=0.0.0.0
  portal serve --backend=s3 --log-format=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configDir(cmd))
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&f.host, "host", "H", "", "Host to bind to (default from portal.json)")
	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "Port to listen on (default from portal.json)")
	cmd.Flags().StringVar(&f.backend, "backend", "", "Explorer backend: local or s3")
	cmd.Flags().StringVar(&f.root, "root", "", "Directory served by the local explorer backend")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
	cmd.Flags().BoolVar(&f.noMetrics, "no-metrics", false, "Disable the /metrics endpoint")

	return cmd
}

// apply overrides config values with the flags that were set.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = f.port
	}
	if f.backend != "" {
		cfg.Explorer.Backend = f.backend
	}
	if f.root != "" {
		cfg.Explorer.Root = f.root
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if f.noMetrics {
		cfg.Telemetry.Metrics = false
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := buildServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("portal starting",
		"address", cfg.Address(),
		"explorer", cfg.Explorer.Backend,
		"metrics", cfg.Telemetry.Metrics,
	)
	return srv.ListenAndServe(ctx)
}
