package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config application-wide configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Report   ReportConfig   `mapstructure:"report"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	BodyLimitMiB int64      `mapstructure:"body_limit_mib"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT and bootstrap account settings
type AuthConfig struct {
	JWTSecret      string          `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration   `mapstructure:"access_token_ttl"`
	LoginRateLimit int             `mapstructure:"login_rate_limit"`
	LoginWindow    time.Duration   `mapstructure:"login_window"`
	BootstrapAdmin BootstrapConfig `mapstructure:"bootstrap_admin"`
}

// BootstrapConfig first administrator, created only when the users table is empty
type BootstrapConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// Enabled reports whether a bootstrap account is configured.
func (b BootstrapConfig) Enabled() bool {
	return b.Email != "" && b.Password != ""
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReportConfig report generation and storage
type ReportConfig struct {
	// RequireActiveTyphoon rejects typhoon-scoped writes when no typhoon is open.
	RequireActiveTyphoon bool   `mapstructure:"require_active_typhoon"`
	Title                string `mapstructure:"title"`
	Office               string `mapstructure:"office"`
	PaperSize            string `mapstructure:"paper_size"`
	StorageDriver        string `mapstructure:"storage_driver"` // local | gcs
	LocalDir             string `mapstructure:"local_dir"`
	GCSBucket            string `mapstructure:"gcs_bucket"`
	GCSCredentialsFile   string `mapstructure:"gcs_credentials_file"`
}

// KafkaConfig lifecycle event stream; empty brokers disables publishing
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Enabled reports whether lifecycle events should be published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

// MetricsConfig Prometheus exposition
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file and environment.
// Precedence: env > file > defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit_mib", 2)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "sitrep")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Manila")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "8h")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_window", "1m")
	v.SetDefault("auth.bootstrap_admin.name", "Administrator")
	v.SetDefault("auth.bootstrap_admin.email", "")
	v.SetDefault("auth.bootstrap_admin.password", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("report.require_active_typhoon", true)
	v.SetDefault("report.title", "Situational Report")
	v.SetDefault("report.office", "Municipal Disaster Risk Reduction and Management Office")
	v.SetDefault("report.paper_size", "Legal")
	v.SetDefault("report.storage_driver", "local")
	v.SetDefault("report.local_dir", "./storage")
	v.SetDefault("report.gcs_bucket", "")
	v.SetDefault("report.gcs_credentials_file", "")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "typhoon-lifecycle")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("SITREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// no file: defaults and env only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("invalid config: auth.jwt_secret must be set")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("invalid config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	switch c.Report.StorageDriver {
	case "local":
		if c.Report.LocalDir == "" {
			return fmt.Errorf("invalid config: report.local_dir must be set for the local storage driver")
		}
	case "gcs":
		if c.Report.GCSBucket == "" {
			return fmt.Errorf("invalid config: report.gcs_bucket must be set for the gcs storage driver")
		}
	default:
		return fmt.Errorf("invalid config: unknown report.storage_driver %q", c.Report.StorageDriver)
	}
	return nil
}
