package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/meur/caseforge/internal/analysis"
	"github.com/meur/caseforge/internal/api"
	"github.com/meur/caseforge/internal/report"
	"github.com/meur/caseforge/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Server.Port = port
			}

			store, err := storage.New(a.cfg.ReportDir)
			if err != nil {
				return err
			}
			ex, err := a.extractor()
			if err != nil {
				return err
			}
			analyzer := analysis.New(ex, report.NewPublisher(store, a.cfg.Currency), a.logger)

			srv := &http.Server{
				Addr:              ":" + a.cfg.Server.Port,
				Handler:           api.New(analyzer, store, a.cfg.Server, a.cfg.Purchases, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("caseforge API starting",
					zap.String("addr", "http://localhost:"+a.cfg.Server.Port),
					zap.String("reports", store.Dir()))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "server port (default from config)")
	return cmd
}
