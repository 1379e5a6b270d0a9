package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT,default=8080"`

	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,default=marketplace"`
	DBSslMode  string `env:"DB_SSLMODE,default=disable"`

	// KafkaHost is a comma separated broker list. Empty disables the relay
	// and leaves messages queued in the outbox.
	KafkaHost             string `env:"KAFKA_HOST"`
	KafkaClientID         string `env:"KAFKA_CLIENT_ID,default=marketplace-orders"`
	KafkaOrderEventsTopic string `env:"KAFKA_ORDER_EVENTS_TOPIC,default=marketplace.order-events"`

	JWTSecret   string `env:"SUPABASE_JWT_SECRET"`
	JWTAudience string `env:"SUPABASE_JWT_AUDIENCE,default=authenticated"`

	OutboxSchedule string        `env:"OUTBOX_SCHEDULE,default=*/5 * * * * *"`
	OutboxBatch    int           `env:"OUTBOX_BATCH,default=100"`
	OutboxTimeout  time.Duration `env:"OUTBOX_TIMEOUT,default=30s"`

	RateLimit       float64       `env:"RATE_LIMIT,default=20"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// LoadConfig reads the given .env files, when present, into the process
// environment and decodes it. Variables already set win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("SUPABASE_JWT_SECRET is required"))
	}
	if c.OutboxBatch < 1 {
		errs = append(errs, fmt.Errorf("OUTBOX_BATCH must be positive, got %d", c.OutboxBatch))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT must not be negative, got %v", c.RateLimit))
	}
	if c.KafkaHost != "" && c.KafkaOrderEventsTopic == "" {
		errs = append(errs, errors.New("KAFKA_ORDER_EVENTS_TOPIC is required when KAFKA_HOST is set"))
	}
	return errors.Join(errs...)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
