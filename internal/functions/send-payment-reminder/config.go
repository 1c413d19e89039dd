// internal/functions/send-payment-reminder/config.go
package sendpaymentreminder

import (
	"fmt"

	"payment-reminder/internal/common/config"
)

const (
	FunctionName = "send-payment-reminder"

	AllowOrigin  = "*"
	AllowHeaders = "authorization, x-client-info, apikey, content-type"

	defaultMaxBodyBytes = 1 << 20
)

// Config is built once at startup and handed to NewHandler.
type Config struct {
	AllowOrigin  string
	AllowHeaders string
	MaxBodyBytes int64
	// NotificationTable is the table the audit record goes to.
	NotificationTable string
}

func DefaultConfig() *Config {
	return &Config{
		AllowOrigin:       AllowOrigin,
		AllowHeaders:      AllowHeaders,
		MaxBodyBytes:      defaultMaxBodyBytes,
		NotificationTable: config.DefaultNotificationTable,
	}
}

// ConfigFrom derives the function config from the application config.
func ConfigFrom(cfg *config.Config) *Config {
	c := DefaultConfig()
	if cfg.Notifications.Table != "" {
		c.NotificationTable = cfg.Notifications.Table
	}
	return c
}

func (c *Config) Validate() error {
	if c.AllowOrigin == "" {
		return fmt.Errorf("allow origin is required")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.NotificationTable == "" {
		return fmt.Errorf("notification table is required")
	}
	return nil
}
