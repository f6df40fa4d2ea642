package config

import "time"

const (
	DefaultEnvFile = ".env"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "medizy"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultAppointmentDurationMin = 30
	DefaultTokenMaxRetries        = 5
	DefaultLockTTL                = 10 * time.Second
	DefaultLockWaitTimeout        = 2 * time.Second
	DefaultLockPollInterval       = 25 * time.Millisecond

	DefaultNotificationQueueSize      = 256
	DefaultNotificationPublishTimeout = 5 * time.Second
	DefaultNotificationsTopic         = "appointment-notifications"
	DefaultNotificationsDLQTopic      = "dlq-appointment-notifications"
	DefaultEmailsTopic                = "appointment-emails"
	DefaultNotificationsGroupID       = "notifications-service"
)
