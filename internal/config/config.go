package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Push      PushConfig
	PubSub    PubSubConfig
}

type LogConfig struct {
	Level string
	// Environment is the deployment stage stamped on every log line.
	Environment string
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SchedulerConfig struct {
	// Location resolves time-of-day components. Reminders carry no zone of their own.
	Location             *time.Location
	FireTimeout          time.Duration
	RestoreBatchSize     int
	RestoreRetryInterval time.Duration
}

type PushConfig struct {
	TTL        time.Duration
	RatePerSec int
	// CredentialsFile enables FCM delivery. Notifications are only logged when empty.
	CredentialsFile string
}

type PubSubConfig struct {
	NatsURL         string
	GCloudProjectID string
}

// Load reads the environment. A .env file in the working directory, when
// present, fills variables that are not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("SERVER_READ_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("SERVER_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	maxOpenConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	maxIdleConns, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN environment variable is required")
	}

	scheduler, err := loadScheduler()
	if err != nil {
		return nil, err
	}

	push, err := loadPush()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         serverPort,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: DatabaseConfig{
			DSN:             dsn,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("ENV", "dev"),
		},
		Scheduler: scheduler,
		Push:      push,
		PubSub: PubSubConfig{
			NatsURL:         os.Getenv("NATS_URL"),
			GCloudProjectID: os.Getenv("GCLOUD_PROJECT_ID"),
		},
	}, nil
}

func loadScheduler() (SchedulerConfig, error) {
	location, err := time.LoadLocation(getEnv("SCHEDULER_TIMEZONE", "UTC"))
	if err != nil {
		return SchedulerConfig{}, fmt.Errorf("invalid SCHEDULER_TIMEZONE: %w", err)
	}

	fireTimeout, err := time.ParseDuration(getEnv("SCHEDULER_FIRE_TIMEOUT", "10s"))
	if err != nil {
		return SchedulerConfig{}, fmt.Errorf("invalid SCHEDULER_FIRE_TIMEOUT: %w", err)
	}

	batchSize, err := strconv.Atoi(getEnv("RESTORE_BATCH_SIZE", "500"))
	if err != nil {
		return SchedulerConfig{}, fmt.Errorf("invalid RESTORE_BATCH_SIZE: %w", err)
	}

	if batchSize <= 0 {
		return SchedulerConfig{}, fmt.Errorf("invalid RESTORE_BATCH_SIZE: must be positive, got %d", batchSize)
	}

	retryInterval, err := time.ParseDuration(getEnv("RESTORE_RETRY_INTERVAL", "5s"))
	if err != nil {
		return SchedulerConfig{}, fmt.Errorf("invalid RESTORE_RETRY_INTERVAL: %w", err)
	}

	return SchedulerConfig{
		Location:             location,
		FireTimeout:          fireTimeout,
		RestoreBatchSize:     batchSize,
		RestoreRetryInterval: retryInterval,
	}, nil
}

func loadPush() (PushConfig, error) {
	ttl, err := time.ParseDuration(getEnv("PUSH_TTL", "1h"))
	if err != nil {
		return PushConfig{}, fmt.Errorf("invalid PUSH_TTL: %w", err)
	}

	ratePerSec, err := strconv.Atoi(getEnv("PUSH_RATE_PER_SEC", "20"))
	if err != nil {
		return PushConfig{}, fmt.Errorf("invalid PUSH_RATE_PER_SEC: %w", err)
	}

	if ratePerSec <= 0 {
		return PushConfig{}, fmt.Errorf("invalid PUSH_RATE_PER_SEC: must be positive, got %d", ratePerSec)
	}

	return PushConfig{
		TTL:             ttl,
		RatePerSec:      ratePerSec,
		CredentialsFile: os.Getenv("FCM_CREDENTIALS_FILE"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
