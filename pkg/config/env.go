package config

const (
	EnvFile = "ENV_FILE"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret = "JWT_SECRET"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultAppointmentDurationMin = "DEFAULT_APPOINTMENT_DURATION_MIN"
	EnvTokenMaxRetries               = "TOKEN_MAX_RETRIES"
	EnvLockTTL                       = "LOCK_TTL"
	EnvLockWaitTimeout               = "LOCK_WAIT_TIMEOUT"
	EnvLockPollInterval              = "LOCK_POLL_INTERVAL"

	EnvNotificationQueueSize      = "NOTIFICATION_QUEUE_SIZE"
	EnvNotificationPublishTimeout = "NOTIFICATION_PUBLISH_TIMEOUT"
	EnvNotificationsTopic         = "NOTIFICATIONS_TOPIC"
	EnvNotificationsDLQTopic      = "NOTIFICATIONS_DLQ_TOPIC"
	EnvEmailsTopic                = "EMAILS_TOPIC"
	EnvNotificationsGroupID       = "NOTIFICATIONS_GROUP_ID"
)
