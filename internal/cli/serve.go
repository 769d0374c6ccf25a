package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/app"
	"github.com/maanvikp20/promosite/internal/config"
	"github.com/maanvikp20/promosite/internal/gelf"
	"github.com/maanvikp20/promosite/internal/logger"
)

const serviceName = "promosite"

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server until SIGINT or SIGTERM.

Example:
  promosite serve
  PROMOSITE_SERVER_ADDR=:8080 promosite serve --config ./configs/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	var sinks []io.Writer
	if cfg.Logging.GelfAddr != "" {
		w, err := gelf.New(cfg.Logging.GelfAddr, serviceName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: GELF init failed: %v\n", err)
		} else {
			defer w.Close()
			sinks = append(sinks, w)
		}
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, sinks...)
	if len(sinks) > 0 {
		log.Info("GELF logging enabled", zap.String("addr", cfg.Logging.GelfAddr))
	}
	defer func() { _ = log.Sync() }()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      a.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("sessions", cfg.Session.Backend),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
