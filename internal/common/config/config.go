// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Supabase      SupabaseConfig     `mapstructure:"supabase"`
	EmailService  EmailServiceConfig `mapstructure:"email_service"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Logging       LoggingConfig      `mapstructure:"logging"`

	// EnvFile is the .env file that was loaded, if any.
	EnvFile string `mapstructure:"-"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address           string `mapstructure:"address"`
	AdminAddress      string `mapstructure:"admin_address"`
	ReadHeaderTimeout int    `mapstructure:"read_header_timeout"` // milliseconds
	ShutdownTimeout   int    `mapstructure:"shutdown_timeout"`    // milliseconds
}

// SupabaseConfig holds the credentials of the notification database project.
type SupabaseConfig struct {
	URL            string `mapstructure:"url"`
	ServiceRoleKey string `mapstructure:"service_role_key"`
}

// EmailServiceConfig selects and configures the outbound email provider.
type EmailServiceConfig struct {
	Provider  string `mapstructure:"provider"` // "http" or "ses"
	Endpoint  string `mapstructure:"endpoint"`
	APIKey    string `mapstructure:"api_key"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds, 0 means no client timeout
	FromEmail string `mapstructure:"from_email"`
	AWSRegion string `mapstructure:"aws_region"`
}

// NotificationConfig selects where notification records are written.
type NotificationConfig struct {
	Store string `mapstructure:"store"` // "supabase" or "postgres"
	Table string `mapstructure:"table"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

const (
	ProviderHTTP = "http"
	ProviderSES  = "ses"

	StoreSupabase = "supabase"
	StorePostgres = "postgres"

	DefaultEmailEndpoint     = "https://api.email-service.com/send"
	DefaultNotificationTable = "notifications"
)
