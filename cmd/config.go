package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPPort string `mapstructure:"http_port"`
	LogLevel string `mapstructure:"log_level"`
	// Store selects the persistence backend: memory or postgres.
	Store string `mapstructure:"store"`

	Database  Database  `mapstructure:"database"`
	Redis     Redis     `mapstructure:"redis"`
	Email     Email     `mapstructure:"email"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	Notify    Notify    `mapstructure:"notify"`

	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Redis is optional; an empty Address disables rate limiting.
type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Email is optional; an empty SMTPHost disables email notifications.
type Email struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type RateLimit struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type Notify struct {
	QueueSize int `mapstructure:"queue_size"`
	Workers   int `mapstructure:"workers"`
}

var envBindings = map[string]string{
	"http_port":      "HTTP_PORT",
	"log_level":      "LOG_LEVEL",
	"store":          "STORE",
	"sweep_interval": "SWEEP_INTERVAL",

	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.name":     "DB_NAME",
	"database.ssl_mode": "DB_SSLMODE",

	"redis.address":  "REDIS_ADDRESS",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"email.smtp_host": "SMTP_HOST",
	"email.smtp_port": "SMTP_PORT",
	"email.username":  "SMTP_USER",
	"email.password":  "SMTP_PASSWORD",
	"email.from":      "SMTP_FROM",

	"rate_limit.requests": "RATE_LIMIT_REQUESTS",
	"rate_limit.window":   "RATE_LIMIT_WINDOW",

	"notify.queue_size": "NOTIFY_QUEUE_SIZE",
	"notify.workers":    "NOTIFY_WORKERS",
}

// LoadConfig reads envFile when it exists, then the process environment.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("http_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("store", StoreMemory)
	v.SetDefault("sweep_interval", time.Minute)
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("rate_limit.requests", 120)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("notify.queue_size", 1024)
	v.SetDefault("notify.workers", 4)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval))
	}
	if c.Redis.Address != "" && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}
