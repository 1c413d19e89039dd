// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the plain environment variable names the
// deployment platform injects.
var envBindings = map[string]string{
	"supabase.url":               "SUPABASE_URL",
	"supabase.service_role_key":  "SUPABASE_SERVICE_ROLE_KEY",
	"email_service.api_key":      "EMAIL_SERVICE_API_KEY",
	"email_service.provider":     "EMAIL_SERVICE_PROVIDER",
	"email_service.endpoint":     "EMAIL_SERVICE_ENDPOINT",
	"email_service.from_email":   "EMAIL_SERVICE_FROM_EMAIL",
	"email_service.aws_region":   "AWS_REGION",
	"notifications.store":        "NOTIFICATIONS_STORE",
	"database.postgres.host":     "DB_HOST",
	"database.postgres.port":     "DB_PORT",
	"database.postgres.database": "DB_NAME",
	"database.postgres.user":     "DB_USER",
	"database.postgres.password": "DB_PASSWORD",
	"server.address":             "SERVER_ADDRESS",
	"server.admin_address":       "SERVER_ADMIN_ADDRESS",
	"logging.level":              "LOG_LEVEL",
	"logging.format":             "LOG_FORMAT",
	"app.environment":            "APP_ENVIRONMENT",
}

// Load reads .env, configs/config.yaml, configs/config.<env>.yaml and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working
// directory, and returns its path.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in yaml values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			v.Set(key, os.ExpandEnv(strVal))
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
// Credentials are left alone: an empty key surfaces as an auth failure
// downstream, not as a startup error.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "payment-reminder"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8000"
	}
	if cfg.Server.AdminAddress == "" {
		cfg.Server.AdminAddress = ":8080"
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 10000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	cfg.EmailService.Provider = strings.ToLower(strings.TrimSpace(cfg.EmailService.Provider))
	if cfg.EmailService.Provider == "" {
		cfg.EmailService.Provider = ProviderHTTP
	}
	if cfg.EmailService.Endpoint == "" {
		cfg.EmailService.Endpoint = DefaultEmailEndpoint
	}

	cfg.Notifications.Store = strings.ToLower(strings.TrimSpace(cfg.Notifications.Store))
	if cfg.Notifications.Store == "" {
		cfg.Notifications.Store = StoreSupabase
	}
	if cfg.Notifications.Table == "" {
		cfg.Notifications.Table = DefaultNotificationTable
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig rejects structurally invalid values only.
func validateConfig(cfg *Config) error {
	switch cfg.EmailService.Provider {
	case ProviderHTTP, ProviderSES:
	default:
		return fmt.Errorf("email_service.provider must be %q or %q, got %q",
			ProviderHTTP, ProviderSES, cfg.EmailService.Provider)
	}

	switch cfg.Notifications.Store {
	case StoreSupabase, StorePostgres:
	default:
		return fmt.Errorf("notifications.store must be %q or %q, got %q",
			StoreSupabase, StorePostgres, cfg.Notifications.Store)
	}

	if cfg.EmailService.Timeout < 0 {
		return fmt.Errorf("email_service.timeout must not be negative")
	}

	if cfg.Notifications.Store == StorePostgres {
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required for the postgres store")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required for the postgres store")
		}
	}

	if cfg.EmailService.Provider == ProviderSES && cfg.EmailService.FromEmail == "" {
		return fmt.Errorf("email_service.from_email is required for the ses provider")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
