package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/logger"
	"placementhub/internal/predict"
	"placementhub/internal/router"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := openDatabase(migrate); err != nil {
				return err
			}
			closeCache, err := openCache(ctx)
			if err != nil {
				return err
			}
			defer closeCache()
			closeChain, err := wireIntegrations(ctx)
			if err != nil {
				return err
			}
			defer closeChain()

			if _, err := predict.EnsureSample(ctx, cache.Default); err != nil {
				logger.L.Warn("sample placement model unavailable", zap.Error(err))
			}

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           router.RegisterRouter(cfg),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.L.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			logger.L.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run database migrations before serving")
	return cmd
}
