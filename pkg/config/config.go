package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Name        string `env:"APP_NAME" env-default:"insta-rest-api"`
		Version     string `env:"APP_VERSION" env-default:"1.0.0"`
		Env         string `env:"APP_ENV" env-default:"development"`
		Port        int    `env:"APP_PORT" env-default:"8080"`
		Debug       bool   `env:"APP_DEBUG" env-default:"false"`
		Prefix      string `env:"API_PREFIX" env-default:"/api/v1"`
		LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
		SentryUrl   string `env:"SENTRY_URL"`
		CorsOrigins string `env:"CORS_ORIGINS" env-default:"*"`
	}
	Instagram struct {
		User              string `env:"INSTAGRAM_USERNAME"`
		Pass              string `env:"INSTAGRAM_PASSWORD"`
		RequestsPerMinute int    `env:"UPSTREAM_REQUESTS_PER_MINUTE" env-default:"30"`
		Burst             int    `env:"UPSTREAM_BURST" env-default:"5"`
	}
	Session struct {
		Dir              string        `env:"SESSION_DIR" env-default:"./sessions"`
		AutosaveInterval time.Duration `env:"SESSION_AUTOSAVE_INTERVAL" env-default:"10m"`
	}
	RateLimit struct {
		Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"100"`
		Window   time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"60s"`
	}
	Security struct {
		ApiKey string `env:"API_KEY"`
	}
	Cache struct {
		RedisUrl   string        `env:"REDIS_URL"`
		ProfileTTL time.Duration `env:"CACHE_TTL_PROFILE" env-default:"10m"`
		PostsTTL   time.Duration `env:"CACHE_TTL_POSTS" env-default:"5m"`
		StoriesTTL time.Duration `env:"CACHE_TTL_STORIES" env-default:"3m"`
	}
	Download struct {
		Dir           string        `env:"DOWNLOAD_DIR" env-default:"./downloads"`
		MaxConcurrent int           `env:"MAX_CONCURRENT_DOWNLOADS" env-default:"3"`
		Timeout       time.Duration `env:"DOWNLOAD_TIMEOUT" env-default:"60s"`
		RetentionDays int           `env:"HISTORY_RETENTION_DAYS" env-default:"30"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER" env-default:"postgres"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME" env-default:"insta_api"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := read(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

func read(cfg *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		return cleanenv.ReadConfig(".env", cfg)
	}
	return cleanenv.ReadEnv(cfg)
}

// GetDSN returns the Postgres connection string in the key/value form both
// lib/pq and pgx accept.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode)
}
