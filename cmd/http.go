package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/biblioteca/internal/api"
	"github.com/oseayemenre/biblioteca/internal/logger"
	"github.com/spf13/cobra"
)

func HTTPCommand(ctx context.Context) *cobra.Command {
	var addr int
	var env string
	var envFile string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "run the biblioteca http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

			baseLogger, err := newLogger(env)

			if err != nil {
				return err
			}

			cfg, err := loadConfig(envFile)

			if err != nil {
				return err
			}

			logger := logger.NewSlogLogger(baseLogger)

			db, closeStore, err := openStore(ctx, cfg)

			if err != nil {
				return err
			}

			defer func() {
				if err := closeStore(context.Background()); err != nil {
					logger.Error(fmt.Sprintf("error closing store: %v", err), "service", "http")
				}
			}()

			objectStore, err := openObjectStore(ctx, cfg)

			if err != nil {
				return err
			}

			if objectStore == nil {
				logger.Warn("S3_BUCKET not set, cover uploads are disabled", "service", "http")
			}

			router := chi.NewRouter()
			api.New(router, logger, objectStore, db, cfg).RegisterRoutes()

			httpServer := &http.Server{
				Addr:              fmt.Sprintf(":%d", addr),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
				IdleTimeout:       15 * time.Minute,
			}
			errCh := make(chan error, 1)

			logger.Info("server startup", "status", fmt.Sprintf("server starting on port: %d", addr), "store", cfg.Store_driver)
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err

			case <-sig:
				logger.Info("server shutdown", "status", "kill signal received")
				ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return fmt.Errorf("error shutting down server: %w", err)
				}

				logger.Info("server shutdown", "status", "shutdown complete...")
				return nil
			}
		},
	}

	cmd.Flags().IntVarP(&addr, "addr", "a", 8000, "server port")
	addEnvFlags(cmd.Flags(), &env, &envFile)

	return cmd
}
