package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Insomnium-Eye/oaxacahouse/internal/config"
	"github.com/Insomnium-Eye/oaxacahouse/internal/observability"
	"github.com/Insomnium-Eye/oaxacahouse/public"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		logger, err := observability.NewLogger(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		static, err := public.Assets()
		if err != nil {
			return fmt.Errorf("opening embedded assets: %w", err)
		}
		s, err := newSite(cfg, logger, public.Media(), static)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger, s.routes())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	serverLogger := logger.Named("http").With(zap.String("addr", srv.Addr))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		serverLogger.Info("oaxaca web listening", zap.Bool("dev", cfg.Dev), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		serverLogger.Info("shutdown signal received; draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			serverLogger.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	})
	return g.Wait()
}
