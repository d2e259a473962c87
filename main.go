package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wardrobe/internal/config"
	"wardrobe/internal/logger"
	"wardrobe/internal/services"
	"wardrobe/internal/storage"
	"wardrobe/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "wardrobe:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "wardrobe",
		Short:         "Wardrobe API: clothing items, outfits and background removal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			logger.Init(logger.Config{Env: cfg.LogEnv, Level: cfg.LogLevel})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	var jsonOut bool
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load every document through the configured backend and report its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			reports, err := checkStore(store, cfg)
			if err != nil {
				return err
			}
			if err := printReports(cmd.OutOrStdout(), reports, jsonOut); err != nil {
				return err
			}
			for _, r := range reports {
				if !r.healthy() {
					return fmt.Errorf("document %s failed the check", r.Document)
				}
			}
			return nil
		},
	}
	checkCmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")

	root.AddCommand(serveCmd, checkCmd)
	return root
}

func openStore(cfg *config.Config) (storage.Backend, error) {
	store, err := storage.New(storage.Options{
		Backend:      cfg.StoreBackend,
		Dir:          cfg.DataDir,
		DSN:          cfg.DatabaseDSN,
		AtomicWrites: cfg.AtomicWrites,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	return store, nil
}

// connectEvents returns a nil publisher when RabbitMQ is not configured or not
// reachable; the API runs without events in that case.
func connectEvents(cfg *config.Config, log *zap.Logger) (services.EventPublisher, func()) {
	if cfg.RabbitMQURL == "" {
		log.Info("RABBITMQ_URL not set, domain events disabled")
		return nil, func() {}
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Logger: logger.Named("rabbitmq")})
	if err != nil {
		log.Warn("RabbitMQ unavailable, domain events disabled", zap.Error(err))
		return nil, func() {}
	}

	if err := client.ConsumeEvents(rabbitmq.AuditHandler(logger.Named("audit"))); err != nil {
		log.Warn("failed to start event consumer", zap.Error(err))
	}

	return client, func() {
		if err := client.Close(); err != nil {
			log.Warn("error closing RabbitMQ client", zap.Error(err))
		}
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Named("server")

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher, closeEvents := connectEvents(cfg, log)
	defer closeEvents()

	app, err := newApp(cfg, store, publisher)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.AppPort),
			zap.String("store", cfg.StoreBackend),
			zap.String("data_dir", cfg.DataDir))
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
	return nil
}
