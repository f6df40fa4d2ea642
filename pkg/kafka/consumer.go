package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkaconfig "medizy/pkg/kafka/config"
	"medizy/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Reader is the subset of *kafka.Reader the consumer uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader       Reader
	dlqWriter    Writer
	topic        string
	groupID      string
	maxRetries   int
	retryBackoff time.Duration
	handler      MessageHandler
	middleware   []ConsumerMiddleware
	log          *logger.Logger
	closed       bool
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

type ConsumerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

func NewConsumer(cfg *kafkaconfig.Config, topic, groupID, dlqTopic string, handler MessageHandler, log *logger.Logger) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	consumerCfg := cfg.Consumer
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           cfg.Brokers,
		Topic:             topic,
		GroupID:           groupID,
		Dialer:            &kafka.Dialer{ClientID: cfg.ClientID, Timeout: 10 * time.Second, DualStack: true},
		MinBytes:          consumerCfg.MinBytes,
		MaxBytes:          consumerCfg.MaxBytes,
		MaxWait:           consumerCfg.MaxWait,
		CommitInterval:    consumerCfg.CommitInterval,
		HeartbeatInterval: consumerCfg.HeartbeatInterval,
		SessionTimeout:    consumerCfg.SessionTimeout,
		RebalanceTimeout:  consumerCfg.RebalanceTimeout,
		StartOffset:       consumerCfg.StartOffset,
		ErrorLogger:       errorLogger(log),
	})

	var dlqWriter Writer
	if dlqTopic != "" {
		dlqWriter = newDLQWriter(cfg, dlqTopic, log)
	}

	c := NewConsumerWithReader(reader, dlqWriter, topic, groupID, handler, log)
	return c.WithRetries(consumerCfg.MaxRetries, consumerCfg.RetryBackoff), nil
}

// NewConsumerWithReader builds a consumer over caller-supplied transport.
// Retries default to none; set them with WithRetries.
func NewConsumerWithReader(reader Reader, dlqWriter Writer, topic, groupID string, handler MessageHandler, log *logger.Logger) *Consumer {
	return &Consumer{
		reader:    reader,
		dlqWriter: dlqWriter,
		topic:     topic,
		groupID:   groupID,
		handler:   handler,
		log:       log.Component("kafka-consumer"),
	}
}

func (c *Consumer) WithRetries(maxRetries int, backoff time.Duration) *Consumer {
	c.maxRetries = maxRetries
	c.retryBackoff = backoff
	return c
}

func (c *Consumer) Use(middleware ConsumerMiddleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = append(c.middleware, middleware)
}

// Start consumes until ctx is cancelled. Each message is committed after the
// handler succeeds or after it has been routed to the DLQ.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.wg.Add(1)
	c.mu.RUnlock()
	defer c.wg.Done()

	c.log.Info("Consumer started", "topic", c.topic, "group_id", c.groupID)

	for {
		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			if errors.Is(err, ErrConsumerClosed) {
				return err
			}
			c.log.Error("Failed to fetch message", "topic", c.topic, "error", err)
			if !sleep(ctx, time.Second) {
				return ctx.Err()
			}
			continue
		}

		msg := convertMessage(kafkaMsg)
		if err := c.processMessage(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if c.dlqWriter == nil {
				c.log.Error("Dropping message after failed processing", "topic", c.topic, "offset", msg.Offset, "event_id", msg.GetEventID(), "error", err)
			}
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			c.log.Error("Failed to commit offset", "topic", c.topic, "partition", kafkaMsg.Partition, "offset", kafkaMsg.Offset, "error", err)
		}
	}
}

// processMessage runs the handler chain, retrying transient failures with a
// linear backoff, and routes the final failure to the DLQ.
func (c *Consumer) processMessage(ctx context.Context, msg Message) error {
	c.mu.RLock()
	chain := append([]ConsumerMiddleware(nil), c.middleware...)
	c.mu.RUnlock()

	handler := c.handler
	for i := len(chain) - 1; i >= 0; i-- {
		middleware := chain[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}

	for {
		err := handler(ctx, msg)
		if err == nil {
			return nil
		}

		retries := msg.GetRetryCount()
		if ShouldRetry(err, retries, c.maxRetries) {
			msg.IncrementRetryCount()
			c.log.Warn("Retrying message",
				"topic", c.topic,
				"event_id", msg.GetEventID(),
				"attempt", retries+1,
				"max_retries", c.maxRetries,
				"error", err,
			)
			if !sleep(ctx, c.retryBackoff*time.Duration(retries+1)) {
				return ctx.Err()
			}
			continue
		}

		if c.dlqWriter != nil {
			extra := map[string]string{"dlq-consumer-group": c.groupID}
			if dlqErr := sendToDLQ(ctx, c.dlqWriter, msg, c.topic, err, extra); dlqErr != nil {
				c.log.Error("Failed to send message to DLQ", "topic", c.topic, "event_id", msg.GetEventID(), "error", dlqErr, "cause", err)
			} else {
				c.log.Warn("Message sent to DLQ", "topic", c.topic, "event_id", msg.GetEventID(), "retries", retries, "error", err)
			}
		}
		return err
	}
}

func convertMessage(kafkaMsg kafka.Message) Message {
	msg := Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   make(map[string]string, len(kafkaMsg.Headers)),
		Topic:     kafkaMsg.Topic,
		Partition: kafkaMsg.Partition,
		Offset:    kafkaMsg.Offset,
		Timestamp: kafkaMsg.Time,
	}
	for _, header := range kafkaMsg.Headers {
		msg.Headers[header.Key] = string(header.Value)
	}
	return msg
}

// Close waits for Start to return; cancel its context first.
func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()

	err := c.reader.Close()
	if c.dlqWriter != nil {
		if dlqErr := c.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
