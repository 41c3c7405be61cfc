package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	AMQP      AMQPConfig
	Email     EmailConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type StorageConfig struct {
	Driver     string // postgres | memory
	SeedVenues bool
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type AdminConfig struct {
	PasswordHash string
	SessionHours int
	CookieSecure bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type CacheConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	Booking string // limiter format, e.g. "10-M"
	Login   string
}

type AMQPConfig struct {
	URL   string
	Queue string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether SMTP delivery was configured.
func (c EmailConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "venue-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("STORAGE_DRIVER", "postgres")
	viper.SetDefault("SEED_VENUES", false)
	viper.SetDefault("ADMIN_SESSION_HOURS", 8)
	viper.SetDefault("ADMIN_COOKIE_SECURE", true)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("RATE_LIMIT_BOOKING", "10-M")
	viper.SetDefault("RATE_LIMIT_LOGIN", "5-M")
	viper.SetDefault("AMQP_QUEUE", "booking.events")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	// .env is optional; plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(viper.GetString("STORAGE_DRIVER")),
			SeedVenues: viper.GetBool("SEED_VENUES"),
		},
		JWT: JWTConfig{
			Secret:   viper.GetString("JWT_SECRET"),
			Issuer:   viper.GetString("JWT_ISSUER"),
			Audience: viper.GetString("JWT_AUDIENCE"),
		},
		Admin: AdminConfig{
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
			SessionHours: viper.GetInt("ADMIN_SESSION_HOURS"),
			CookieSecure: viper.GetBool("ADMIN_COOKIE_SECURE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TTL: viper.GetDuration("CACHE_TTL"),
		},
		RateLimit: RateLimitConfig{
			Booking: viper.GetString("RATE_LIMIT_BOOKING"),
			Login:   viper.GetString("RATE_LIMIT_LOGIN"),
		},
		AMQP: AMQPConfig{
			URL:   viper.GetString("AMQP_URL"),
			Queue: viper.GetString("AMQP_QUEUE"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that would otherwise fail late at request time.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Admin.PasswordHash == "" {
		return errors.New("ADMIN_PASSWORD_HASH is required")
	}
	if c.Admin.SessionHours <= 0 {
		return errors.New("ADMIN_SESSION_HOURS must be positive")
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return errors.New("STORAGE_DRIVER must be one of: postgres, memory")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
