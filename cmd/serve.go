package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/codemaster/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateHTTP(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := buildDeps(ctx, cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		maxIdle, _ := cmd.Flags().GetDuration("session-idle")
		srv := api.NewServer(d.engine, api.Options{
			SessionSecret:  []byte(cfg.HTTP.SessionSecret),
			SecureCookies:  cfg.HTTP.SecureCookies,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		})
		go srv.RunSweeper(ctx, time.Minute, maxIdle)

		// Oracle calls can take up to the provider timeout, so the write
		// deadline follows it.
		httpSrv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      cfg.LLM.Timeout + 30*time.Second,
			IdleTimeout:       120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("server listening", "addr", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			return nil
		case <-ctx.Done():
		}
		stop()

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		slog.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().Duration("session-idle", 2*time.Hour, "Drop API sessions idle for longer than this")
}
