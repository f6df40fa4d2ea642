package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"time"

	"medizy/pkg/client"
	"medizy/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	JWTSecret string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultAppointmentDurationMin int
	TokenMaxRetries               int
	LockTTL                       time.Duration
	LockWaitTimeout               time.Duration
	LockPollInterval              time.Duration

	NotificationQueueSize      int
	NotificationPublishTimeout time.Duration
	NotificationsTopic         string
	NotificationsDLQTopic      string
	EmailsTopic                string
	NotificationsGroupID       string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads an optional dotenv file, then the environment. Variables already
// set in the process win over the file.
func Load(serviceName string) *Config {
	envFile := getEnvStr(EnvFile, DefaultEnvFile)
	envErr := godotenv.Load(envFile)

	cfg := &Config{
		ServiceName: serviceName,

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultAppointmentDurationMin: getEnvNum(EnvDefaultAppointmentDurationMin, DefaultAppointmentDurationMin),
		TokenMaxRetries:               getEnvNum(EnvTokenMaxRetries, DefaultTokenMaxRetries),
		LockTTL:                       getEnvDuration(EnvLockTTL, DefaultLockTTL),
		LockWaitTimeout:               getEnvDuration(EnvLockWaitTimeout, DefaultLockWaitTimeout),
		LockPollInterval:              getEnvDuration(EnvLockPollInterval, DefaultLockPollInterval),

		NotificationQueueSize:      getEnvNum(EnvNotificationQueueSize, DefaultNotificationQueueSize),
		NotificationPublishTimeout: getEnvDuration(EnvNotificationPublishTimeout, DefaultNotificationPublishTimeout),
		NotificationsTopic:         getEnvStr(EnvNotificationsTopic, DefaultNotificationsTopic),
		NotificationsDLQTopic:      getEnvStr(EnvNotificationsDLQTopic, DefaultNotificationsDLQTopic),
		EmailsTopic:                getEnvStr(EnvEmailsTopic, DefaultEmailsTopic),
		NotificationsGroupID:       getEnvStr(EnvNotificationsGroupID, DefaultNotificationsGroupID),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	switch {
	case envErr == nil:
		cfg.Log.Info("Loaded environment file", "path", envFile)
	case !errors.Is(envErr, fs.ErrNotExist):
		cfg.Log.Warn("Failed to read environment file", "path", envFile, "error", envErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, "medizy-"+cfg.ServiceName, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	positiveDurations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"LockTTL", cfg.LockTTL},
		{"LockWaitTimeout", cfg.LockWaitTimeout},
		{"LockPollInterval", cfg.LockPollInterval},
		{"NotificationPublishTimeout", cfg.NotificationPublishTimeout},
	}
	for _, d := range positiveDurations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.LockPollInterval > 0 && cfg.LockWaitTimeout > 0 && cfg.LockPollInterval > cfg.LockWaitTimeout {
		errors = append(errors, fmt.Sprintf("LockPollInterval (%s) must not exceed LockWaitTimeout (%s)", cfg.LockPollInterval, cfg.LockWaitTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.DefaultAppointmentDurationMin <= 0 || cfg.DefaultAppointmentDurationMin > 24*60 {
		errors = append(errors, fmt.Sprintf("DefaultAppointmentDurationMin must be between 1 and 1440, got: %d", cfg.DefaultAppointmentDurationMin))
	}
	if cfg.TokenMaxRetries <= 0 {
		errors = append(errors, fmt.Sprintf("TokenMaxRetries must be positive, got: %d", cfg.TokenMaxRetries))
	}
	if cfg.NotificationQueueSize <= 0 {
		errors = append(errors, fmt.Sprintf("NotificationQueueSize must be positive, got: %d", cfg.NotificationQueueSize))
	}
	if cfg.NotificationsTopic == "" {
		errors = append(errors, "NotificationsTopic cannot be empty")
	}
	if cfg.EmailsTopic == "" {
		errors = append(errors, "EmailsTopic cannot be empty")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"jwt_secret_set", cfg.JWTSecret != "",
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_appointment_duration_min", cfg.DefaultAppointmentDurationMin,
		"token_max_retries", cfg.TokenMaxRetries,
		"lock_ttl", cfg.LockTTL,
		"lock_wait_timeout", cfg.LockWaitTimeout,
		"lock_poll_interval", cfg.LockPollInterval,
		"notification_queue_size", cfg.NotificationQueueSize,
		"notification_publish_timeout", cfg.NotificationPublishTimeout,
		"notifications_topic", cfg.NotificationsTopic,
		"emails_topic", cfg.EmailsTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
