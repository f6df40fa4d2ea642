package kafkaconfig

import "time"

const (
	DefaultBrokers = "localhost:9092"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequiredAcks = AcksAll
	DefaultProducerCompression  = "snappy"

	// A new consumer group starts from the oldest offset so queued notifications are not skipped.
	DefaultConsumerStartOffset       = OffsetOldest
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 10 * 1024 * 1024
	DefaultConsumerMaxWait           = 500 * time.Millisecond
	DefaultConsumerCommitInterval    = 0 // synchronous
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 10 * time.Second
	DefaultConsumerRebalanceTimeout  = 60 * time.Second
	DefaultConsumerMaxRetries        = 3
	DefaultConsumerRetryBackoff      = 200 * time.Millisecond
)

const (
	AcksAll    = -1
	AcksNone   = 0
	AcksLeader = 1

	OffsetNewest int64 = -1
	OffsetOldest int64 = -2
)

var compressions = map[string]bool{"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true}
