package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string `validate:"required"`
	Port           string `validate:"required,numeric"`
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       slog.Level
	MigrationsPath string `validate:"required"`

	// Exchange provider
	ExchangeURL         string        `validate:"required,url"`
	ExchangeAccessKey   string        `validate:"required"`
	ExchangeSymbols     string        `validate:"required"`
	ExchangeBase        string        `validate:"required,len=3,uppercase"`
	ExchangeHTTPTimeout time.Duration `validate:"gte=0"` // Zero means no client-side timeout

	// Background jobs
	RetentionInterval time.Duration `validate:"gt=0"`
	DownloadInterval  time.Duration `validate:"gte=0"` // Zero disables scheduled downloads; the first run waits one interval

	// HTTP surface
	DownloadRateLimit  string `validate:"required"` // ulule/limiter format, e.g. "30-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// Real environment variables override .env values, which override the defaults above.
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("EXCHANGE_URL", "http://data.fixer.io/api/latest")
	v.SetDefault("EXCHANGE_ACCESS_KEY", "")
	v.SetDefault("EXCHANGE_SYMBOLS", "USD,GBP,PLN,CHF,JPY")
	v.SetDefault("EXCHANGE_BASE", "EUR")
	v.SetDefault("EXCHANGE_HTTP_TIMEOUT", "0s")
	v.SetDefault("RETENTION_INTERVAL", "1h")
	v.SetDefault("DOWNLOAD_INTERVAL", "24h")
	v.SetDefault("DOWNLOAD_RATE_LIMIT", "30-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		cfg.LogLevel = slog.LevelInfo
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to %s.\n", v.GetString("LOG_LEVEL"), cfg.LogLevel)
	}

	cfg.ExchangeURL = v.GetString("EXCHANGE_URL")
	cfg.ExchangeAccessKey = v.GetString("EXCHANGE_ACCESS_KEY")
	if cfg.ExchangeAccessKey == "" {
		log.Println("Warning: EXCHANGE_ACCESS_KEY not set. Downloads will be rejected by the provider.")
	}
	cfg.ExchangeSymbols = v.GetString("EXCHANGE_SYMBOLS")
	cfg.ExchangeBase = strings.ToUpper(v.GetString("EXCHANGE_BASE"))

	var err error
	if cfg.ExchangeHTTPTimeout, err = parseDuration(v, "EXCHANGE_HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RetentionInterval, err = parseDuration(v, "RETENTION_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.DownloadInterval, err = parseDuration(v, "DOWNLOAD_INTERVAL"); err != nil {
		return nil, err
	}

	cfg.DownloadRateLimit = v.GetString("DOWNLOAD_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// Validate checks the loaded values with their struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s ('%s'): %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
