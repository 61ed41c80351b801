package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"fieldservice/internal/adapters/out/kafka"
	"fieldservice/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	AppEnv   string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers          []string
	KafkaOrderEventsTopic string
	OutboxRelayInterval   time.Duration
	OutboxBatchSize       int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RouteCacheTTL time.Duration
}

// LoadConfig reads .env when present, then the process environment.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := Config{
		HTTPPort: firstEnv("HTTP_PORT", "APP_PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     firstEnv("DB_NAME", "DB_DATABASE", "fieldservice"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		KafkaBrokers:          kafka.ParseBrokers(getEnv("KAFKA_BROKERS", "")),
		KafkaOrderEventsTopic: getEnv("KAFKA_ORDER_EVENTS_TOPIC", "fieldservice.service-orders"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	var err error
	if cfg.OutboxRelayInterval, err = durationEnv("OUTBOX_RELAY_INTERVAL", time.Second); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBatchSize, err = intEnv("OUTBOX_BATCH_SIZE", 100); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.RouteCacheTTL, err = durationEnv("ROUTE_CACHE_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error

	if c.HTTPPort == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}
	if c.DBHost == "" || c.DBName == "" {
		problems = append(problems, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.AppEnv == "production" && c.DBPassword == "" {
		problems = append(problems, errors.New("DB_PASSWORD is required in production"))
	}
	if c.RelayEnabled() {
		if c.KafkaOrderEventsTopic == "" {
			problems = append(problems, errors.New("KAFKA_ORDER_EVENTS_TOPIC is required when KAFKA_BROKERS is set"))
		}
		if c.OutboxRelayInterval < time.Second {
			problems = append(problems, errors.New("OUTBOX_RELAY_INTERVAL must be at least 1s"))
		}
		if c.OutboxBatchSize < 1 || c.OutboxBatchSize > commands.MaxRelayBatchSize {
			problems = append(problems, fmt.Errorf("OUTBOX_BATCH_SIZE must be between 1 and %d", commands.MaxRelayBatchSize))
		}
	}
	if c.CacheEnabled() && c.RouteCacheTTL <= 0 {
		problems = append(problems, errors.New("ROUTE_CACHE_TTL must be positive"))
	}

	if err := errors.Join(problems...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RelayEnabled reports whether outbox messages are shipped to Kafka.
func (c Config) RelayEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// CacheEnabled reports whether routes are cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSslMode),
	}
	return u.String()
}

func (c Config) Addr() string {
	return "0.0.0.0:" + c.HTTPPort
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
