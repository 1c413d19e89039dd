// cmd/payment-reminder/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"payment-reminder/internal/common/config"
	"payment-reminder/internal/common/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "payment-reminder",
		Short:         "Send payment reminder emails and record them as notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: configs/config.yaml)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newSendCmd(&configPath))
	return root
}

// bootstrap loads configuration and builds the logger every command uses.
func bootstrap(configPath string) (*config.Config, *zap.Logger, logger.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		return nil, nil, nil, err
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
	})

	if cfg.EnvFile != "" {
		zapLog.Debug("loaded .env", zap.String("path", cfg.EnvFile))
	}
	return cfg, zapLog, log, nil
}
