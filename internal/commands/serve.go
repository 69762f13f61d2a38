package commands

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

	"github.com/spf13/cobra"

	"github.com/cleared-dev/redline/internal/api"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/metrics"
	"github.com/cleared-dev/redline/internal/posting"
)

func newServeCommand() *cobra.Command {
	var src ledgerSource
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, &src, addr)
		},
	}

	src.addFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context, src *ledgerSource, addr string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	p, err := loadProject(src.configPath)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	opts := []ledger.Option{ledger.WithLogger(logger)}
	if p.cfg.Server.Metrics {
		m = metrics.New(nil)
		opts = append(opts, ledger.WithObserver(m))
	}

	l, err := src.load(p, opts...)
	if err != nil {
		return err
	}

	h := api.NewHandler(l, posting.New(l, masterdata.Default()), api.Config{
		Company:                 p.cfg.Company.Name,
		CashAccount:             p.cfg.Ledger.CashAccount,
		RetainedEarningsAccount: p.cfg.Ledger.RetainedEarningsAccount,
		Logger:                  logger,
		Metrics:                 m,
	})

	if addr == "" {
		addr = p.cfg.Server.Addr
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(h, p.cfg.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr, "entries", l.Len(), "metrics", m != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
