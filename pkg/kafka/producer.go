package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafkaconfig "medizy/pkg/kafka/config"
	"medizy/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// Writer is the subset of *kafka.Writer the producer and consumer use.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer     Writer
	dlqWriter  Writer
	topic      string
	dlqTopic   string
	log        *logger.Logger
	middleware []ProducerMiddleware
	closed     bool
	mu         sync.RWMutex
}

type ProducerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

func NewProducer(cfg *kafkaconfig.Config, topic, dlqTopic string, log *logger.Logger) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Transport:              &kafka.Transport{ClientID: cfg.ClientID},
		Balancer:               &kafka.Hash{},
		RequiredAcks:           requiredAcks(cfg.Producer.RequiredAcks),
		Compression:            compressionCodec(cfg.Producer.Compression),
		MaxAttempts:            cfg.Producer.MaxAttempts,
		BatchTimeout:           cfg.Producer.BatchTimeout,
		AllowAutoTopicCreation: true,
		ErrorLogger:            errorLogger(log),
	}

	var dlqWriter Writer
	if dlqTopic != "" {
		dlqWriter = newDLQWriter(cfg, dlqTopic, log)
	}

	return NewProducerWithWriters(writer, dlqWriter, topic, dlqTopic, log), nil
}

// NewProducerWithWriters builds a producer over caller-supplied writers.
func NewProducerWithWriters(writer, dlqWriter Writer, topic, dlqTopic string, log *logger.Logger) *Producer {
	return &Producer{
		writer:    writer,
		dlqWriter: dlqWriter,
		topic:     topic,
		dlqTopic:  dlqTopic,
		log:       log.Component("kafka-producer"),
	}
}

func (p *Producer) Topic() string {
	return p.topic
}

func (p *Producer) Use(middleware ProducerMiddleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, middleware)
}

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	chain := append([]ProducerMiddleware(nil), p.middleware...)
	p.mu.RUnlock()

	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}
	msg.Topic = p.topic

	handler := MessageHandler(p.publishInternal)
	for i := len(chain) - 1; i >= 0; i-- {
		middleware := chain[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}

	return handler(ctx, msg)
}

func (p *Producer) publishInternal(ctx context.Context, msg Message) error {
	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg))
	if err == nil {
		return nil
	}

	if p.dlqWriter != nil {
		if dlqErr := sendToDLQ(ctx, p.dlqWriter, msg, p.topic, err, nil); dlqErr != nil {
			return fmt.Errorf("failed to send to DLQ: %v (original error: %w)", dlqErr, err)
		}
		p.log.Warn("Message routed to DLQ", "topic", p.topic, "dlq_topic", p.dlqTopic, "key", msg.Key, "event_id", msg.GetEventID(), "error", err)
	}
	return err
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.writer.Close()
	if p.dlqWriter != nil {
		if dlqErr := p.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}

func toKafkaMessage(msg Message) kafka.Message {
	kafkaMsg := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  msg.Timestamp,
	}
	for k, v := range msg.Headers {
		kafkaMsg.Headers = append(kafkaMsg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return kafkaMsg
}

// sendToDLQ copies msg with failure metadata onto the dead letter writer.
func sendToDLQ(ctx context.Context, w Writer, msg Message, topic string, cause error, extra map[string]string) error {
	headers := make(map[string]string, len(msg.Headers)+4)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[HeaderOriginalTopic] = topic
	headers["dlq-error"] = cause.Error()
	headers["dlq-timestamp"] = time.Now().UTC().Format(time.RFC3339)
	for k, v := range extra {
		headers[k] = v
	}

	msg.Headers = headers
	msg.Timestamp = time.Now()
	return w.WriteMessages(ctx, toKafkaMessage(msg))
}

func newDLQWriter(cfg *kafkaconfig.Config, topic string, log *logger.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Transport:              &kafka.Transport{ClientID: cfg.ClientID},
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            compressionCodec(cfg.Producer.Compression),
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
		ErrorLogger:            errorLogger(log),
	}
}

func requiredAcks(acks int) kafka.RequiredAcks {
	switch acks {
	case kafkaconfig.AcksNone:
		return kafka.RequireNone
	case kafkaconfig.AcksLeader:
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

func compressionCodec(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	case "none":
		return compress.None
	default:
		return compress.Snappy
	}
}

func errorLogger(log *logger.Logger) kafka.Logger {
	return kafka.LoggerFunc(func(msg string, args ...any) {
		log.Error(fmt.Sprintf(msg, args...), "component", "kafka-go")
	})
}
