package kafkaconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"medizy/pkg/logger"
)

type ProducerConfig struct {
	MaxAttempts  int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

type ConsumerConfig struct {
	StartOffset       int64
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	CommitInterval    time.Duration
	HeartbeatInterval time.Duration
	SessionTimeout    time.Duration
	RebalanceTimeout  time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
}

type Config struct {
	Brokers []string
	// ClientID names this service to the brokers; it shows up in broker logs and quotas.
	ClientID string

	Producer ProducerConfig
	Consumer ConsumerConfig
}

// Load reads the Kafka settings from the environment. Malformed values are
// reported alongside range violations instead of falling back to defaults.
func Load(clientID string) (*Config, error) {
	env := &envReader{}

	cfg := &Config{
		Brokers:  splitBrokers(env.str(EnvKafkaBrokers, DefaultBrokers)),
		ClientID: env.str(EnvKafkaClientID, clientID),
		Producer: ProducerConfig{
			MaxAttempts:  env.integer(EnvProducerMaxAttempts, DefaultProducerMaxAttempts),
			BatchTimeout: env.duration(EnvProducerBatchTimeout, DefaultProducerBatchTimeout),
			RequiredAcks: env.integer(EnvProducerRequiredAcks, DefaultProducerRequiredAcks),
			Compression:  strings.ToLower(env.str(EnvProducerCompression, DefaultProducerCompression)),
		},
		Consumer: ConsumerConfig{
			StartOffset:       int64(env.integer(EnvConsumerStartOffset, int(DefaultConsumerStartOffset))),
			MinBytes:          env.integer(EnvConsumerMinBytes, DefaultConsumerMinBytes),
			MaxBytes:          env.integer(EnvConsumerMaxBytes, DefaultConsumerMaxBytes),
			MaxWait:           env.duration(EnvConsumerMaxWait, DefaultConsumerMaxWait),
			CommitInterval:    env.duration(EnvConsumerCommitInterval, DefaultConsumerCommitInterval),
			HeartbeatInterval: env.duration(EnvConsumerHeartbeatInterval, DefaultConsumerHeartbeatInterval),
			SessionTimeout:    env.duration(EnvConsumerSessionTimeout, DefaultConsumerSessionTimeout),
			RebalanceTimeout:  env.duration(EnvConsumerRebalanceTimeout, DefaultConsumerRebalanceTimeout),
			MaxRetries:        env.integer(EnvConsumerMaxRetries, DefaultConsumerMaxRetries),
			RetryBackoff:      env.duration(EnvConsumerRetryBackoff, DefaultConsumerRetryBackoff),
		},
	}

	if err := errors.Join(append(env.errs, cfg.Validate())...); err != nil {
		return nil, fmt.Errorf("kafka configuration: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(len(cfg.Brokers) > 0, "at least one broker is required")
	for i, broker := range cfg.Brokers {
		check(broker != "", "broker %d is empty", i)
	}
	check(cfg.ClientID != "", "client id is required")

	p := cfg.Producer
	check(p.MaxAttempts > 0, "producer max attempts must be positive, got %d", p.MaxAttempts)
	check(p.BatchTimeout > 0, "producer batch timeout must be positive, got %s", p.BatchTimeout)
	check(p.RequiredAcks == AcksAll || p.RequiredAcks == AcksNone || p.RequiredAcks == AcksLeader,
		"producer required acks must be -1, 0 or 1, got %d", p.RequiredAcks)
	check(compressions[p.Compression], "producer compression %q is not one of none, gzip, snappy, lz4, zstd", p.Compression)

	c := cfg.Consumer
	check(c.StartOffset == OffsetNewest || c.StartOffset == OffsetOldest,
		"consumer start offset must be -1 (newest) or -2 (oldest), got %d", c.StartOffset)
	check(c.MinBytes > 0, "consumer min bytes must be positive, got %d", c.MinBytes)
	check(c.MaxBytes >= c.MinBytes, "consumer max bytes %d is below min bytes %d", c.MaxBytes, c.MinBytes)
	check(c.MaxWait > 0, "consumer max wait must be positive, got %s", c.MaxWait)
	check(c.CommitInterval >= 0, "consumer commit interval cannot be negative, got %s", c.CommitInterval)
	check(c.HeartbeatInterval > 0, "consumer heartbeat interval must be positive, got %s", c.HeartbeatInterval)
	check(c.SessionTimeout > c.HeartbeatInterval,
		"consumer session timeout %s must exceed heartbeat interval %s", c.SessionTimeout, c.HeartbeatInterval)
	check(c.RebalanceTimeout > 0, "consumer rebalance timeout must be positive, got %s", c.RebalanceTimeout)
	check(c.MaxRetries >= 0, "consumer max retries cannot be negative, got %d", c.MaxRetries)
	check(c.RetryBackoff >= 0, "consumer retry backoff cannot be negative, got %s", c.RetryBackoff)

	return errors.Join(errs...)
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded",
		"brokers", cfg.Brokers,
		"client_id", cfg.ClientID,
		"producer_max_attempts", cfg.Producer.MaxAttempts,
		"producer_batch_timeout", cfg.Producer.BatchTimeout,
		"producer_required_acks", cfg.Producer.RequiredAcks,
		"producer_compression", cfg.Producer.Compression,
		"consumer_start_offset", cfg.Consumer.StartOffset,
		"consumer_max_wait", cfg.Consumer.MaxWait,
		"consumer_session_timeout", cfg.Consumer.SessionTimeout,
		"consumer_max_retries", cfg.Consumer.MaxRetries,
		"consumer_retry_backoff", cfg.Consumer.RetryBackoff,
	)
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

type envReader struct {
	errs []error
}

func (e *envReader) str(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func (e *envReader) integer(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not an integer", key, value))
		return def
	}
	return n
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a duration", key, value))
		return def
	}
	return d
}
