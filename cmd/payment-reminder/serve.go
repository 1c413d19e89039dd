// cmd/payment-reminder/serve.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"payment-reminder/internal/common/config"
	"payment-reminder/internal/common/observability"
	spr "payment-reminder/internal/functions/send-payment-reminder"
	"payment-reminder/internal/server"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the reminder endpoint and the health/metrics listener",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, zapLog, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer zapLog.Sync()

			zapLog.Info("Starting payment reminder server...")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			obs, err := observability.New(cfg.App.Name)
			if err != nil {
				zapLog.Warn("OTel prometheus exporter unavailable", zap.Error(err))
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
				defer cancel()
				_ = obs.Shutdown(shutdownCtx)
			}()

			deps, err := buildDependencies(ctx, cfg, zapLog, log)
			if err != nil {
				zapLog.Error("dependency setup failed", zap.Error(err))
				return err
			}
			defer deps.Close()

			fnCfg := spr.ConfigFrom(cfg)
			if err := fnCfg.Validate(); err != nil {
				return err
			}
			handler := spr.NewHandler(fnCfg, deps.service, log, obs)

			srv := server.New(server.Options{
				Address:           cfg.Server.Address,
				AdminAddress:      cfg.Server.AdminAddress,
				ReadHeaderTimeout: config.GetDuration(cfg.Server.ReadHeaderTimeout),
				ShutdownTimeout:   config.GetDuration(cfg.Server.ShutdownTimeout),
			}, server.NewRouter(handler, log), server.NewAdminRouter(deps.ready), log)

			if err := srv.Run(ctx); err != nil {
				return err
			}

			zapLog.Info("Payment reminder server stopped gracefully")
			return nil
		},
	}
}
