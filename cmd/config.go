package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"bidding/internal/pkg/retry"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"bidding"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	KafkaHost             []string `env:"KAFKA_HOST" envSeparator:","`
	KafkaOrderEventsTopic string   `env:"KAFKA_ORDER_EVENTS_TOPIC" envDefault:"bidding.order-events"`

	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	ProviderCacheTTL time.Duration `env:"PROVIDER_CACHE_TTL" envDefault:"1m"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogEncoding string `env:"LOG_ENCODING" envDefault:"json"`

	// OrderIDTimezone is an IANA zone name; empty means the host's local zone.
	OrderIDTimezone string `env:"ORDER_ID_TIMEZONE"`

	OutboxRelaySchedule  string `env:"OUTBOX_RELAY_SCHEDULE" envDefault:"@every 5s"`
	OutboxRelayBatchSize int    `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`

	RetryBase       time.Duration `env:"RETRY_BASE" envDefault:"10ms"`
	RetryMaxDelay   time.Duration `env:"RETRY_MAX_DELAY" envDefault:"500ms"`
	RetryJitter     time.Duration `env:"RETRY_JITTER" envDefault:"5ms"`
	RetryMaxRetries uint64        `env:"RETRY_MAX_RETRIES" envDefault:"5"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads .env when it exists, then the process environment.
// Variables already set in the environment win over .env.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.OutboxRelayBatchSize < 1 {
		return Config{}, fmt.Errorf("OUTBOX_RELAY_BATCH_SIZE must be positive, got %d", cfg.OutboxRelayBatchSize)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DSN is the PostgreSQL connection string in URL form.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// Location is the zone in which the calendar day of an order identifier is
// computed.
func (c Config) Location() (*time.Location, error) {
	if c.OrderIDTimezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.OrderIDTimezone)
	if err != nil {
		return nil, fmt.Errorf("ORDER_ID_TIMEZONE: %w", err)
	}
	return loc, nil
}

func (c Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		Base:       c.RetryBase,
		MaxDelay:   c.RetryMaxDelay,
		Jitter:     c.RetryJitter,
		MaxRetries: c.RetryMaxRetries,
	}
}

func (c Config) HTTPAddr() string {
	return "0.0.0.0:" + c.HTTPPort
}
