// cmd/payment-reminder/wiring.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	awsclient "payment-reminder/internal/common/aws"
	"payment-reminder/internal/common/config"
	"payment-reminder/internal/common/database"
	"payment-reminder/internal/common/emailservice"
	httpclient "payment-reminder/internal/common/http"
	"payment-reminder/internal/common/logger"
	"payment-reminder/internal/common/supabase"
	spr "payment-reminder/internal/functions/send-payment-reminder"
	"payment-reminder/internal/server"
)

type dependencies struct {
	service *spr.Service
	ready   server.ReadinessCheck
	closers []func() error
}

func (d *dependencies) Close() {
	for _, c := range d.closers {
		_ = c()
	}
}

// buildDependencies wires the email sender and notification store selected
// by configuration into a reminder service.
func buildDependencies(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) (*dependencies, error) {
	deps := &dependencies{}
	upstream := httpclient.NewClient(config.GetDuration(cfg.EmailService.Timeout))

	var sender spr.EmailSender
	switch cfg.EmailService.Provider {
	case config.ProviderSES:
		sesClient, err := awsclient.NewSESClient(ctx, cfg.EmailService.AWSRegion, cfg.EmailService.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		sender = spr.NewSESEmailSender(sesClient, log)
	default:
		client := emailservice.NewClient(cfg.EmailService.Endpoint, cfg.EmailService.APIKey, upstream)
		sender = spr.NewHTTPEmailSender(client, log)
	}
	zapLog.Info("email provider configured", zap.String("provider", cfg.EmailService.Provider))

	var store spr.NotificationStore
	switch cfg.Notifications.Store {
	case config.StorePostgres:
		pg, err := connectPostgres(ctx, func() (*database.PostgresClient, error) {
			return database.NewPostgres(cfg.Database.Postgres)
		}, 5, 2*time.Second, zapLog)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, pg.Close)
		deps.ready = pg.Ping
		store = spr.NewPostgresStore(pg, cfg.Notifications.Table)
	default:
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, upstream)
		store = spr.NewSupabaseStore(client, cfg.Notifications.Table)
	}
	zapLog.Info("notification store configured",
		zap.String("store", cfg.Notifications.Store),
		zap.String("table", cfg.Notifications.Table),
	)

	deps.service = spr.NewService(spr.ServiceDependencies{
		Sender: sender,
		Store:  store,
		Logger: log,
	})
	return deps, nil
}

// connectPostgres opens and pings a pool, retrying with backoff. A pool
// whose ping fails is closed before the next attempt.
func connectPostgres(ctx context.Context, open func() (*database.PostgresClient, error), attempts int, delay time.Duration, log *zap.Logger) (*database.PostgresClient, error) {
	var pg *database.PostgresClient
	err := retryWithBackoff(func() error {
		client, err := open()
		if err != nil {
			return err
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return err
		}
		pg = client
		return nil
	}, attempts, delay, log, "PostgreSQL connection")
	if err != nil {
		return nil, err
	}
	return pg, nil
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
