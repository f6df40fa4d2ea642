package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medizy/pkg/config"
	"medizy/pkg/kafka"
	kafkaconfig "medizy/pkg/kafka/config"
	kafkamiddleware "medizy/pkg/kafka/middleware"
	"medizy/pkg/logger"
	"medizy/pkg/model"
)

const (
	EventTypeNotification = "notification.created"
	EventTypeEmail        = "email.requested"

	schemaVersion = "1"
	source        = "appointments"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type job struct {
	kind      string
	publisher Publisher
	msg       kafka.Message
}

// Dispatcher queues notification and email events and publishes them from a
// single background worker, so events for one user keep their order. Enqueue
// never blocks: a full queue drops the event.
type Dispatcher struct {
	notifications  Publisher
	emails         Publisher
	queue          chan job
	publishTimeout time.Duration
	log            *logger.Logger
	mu             sync.RWMutex
	closed         bool
	done           chan struct{}
}

func New(notifications, emails Publisher, queueSize int, publishTimeout time.Duration, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		notifications:  notifications,
		emails:         emails,
		queue:          make(chan job, queueSize),
		publishTimeout: publishTimeout,
		log:            log.Component("notification-dispatcher"),
		done:           make(chan struct{}),
	}
	go d.run()
	return d
}

// NewFromConfig wires Kafka producers for the notifications and emails topics.
func NewFromConfig(cfg *config.Config, kafkaCfg *kafkaconfig.Config, metrics *kafkamiddleware.Metrics) (*Dispatcher, error) {
	notifications, err := kafka.NewProducer(kafkaCfg, cfg.NotificationsTopic, cfg.NotificationsDLQTopic, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifications producer: %w", err)
	}
	emails, err := kafka.NewProducer(kafkaCfg, cfg.EmailsTopic, "", cfg.Log)
	if err != nil {
		_ = notifications.Close()
		return nil, fmt.Errorf("failed to create emails producer: %w", err)
	}

	for _, p := range []*kafka.Producer{notifications, emails} {
		p.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
		if metrics != nil {
			p.Use(metrics.ProducerMiddleware())
		}
	}

	return New(notifications, emails, cfg.NotificationQueueSize, cfg.NotificationPublishTimeout, cfg.Log), nil
}

func (d *Dispatcher) Notify(event model.NotificationEvent) {
	msg, err := kafka.NewMessage().
		WithKey(event.UserID).
		WithValue(event).
		WithEventID(event.EventID).
		WithEventType(EventTypeNotification).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		d.log.Error("Failed to build notification message", "event_id", event.EventID, "user_id", event.UserID, "error", err)
		return
	}
	d.enqueue(job{kind: "notification", publisher: d.notifications, msg: msg})
}

func (d *Dispatcher) SendEmail(event model.EmailEvent) {
	msg, err := kafka.NewMessage().
		WithKey(event.UserID).
		WithValue(event).
		WithEventID(event.EventID).
		WithEventType(EventTypeEmail).
		WithHeader("template", event.Template).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		d.log.Error("Failed to build email message", "event_id", event.EventID, "user_id", event.UserID, "error", err)
		return
	}
	d.enqueue(job{kind: "email", publisher: d.emails, msg: msg})
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Dispatcher stopped, dropping event", "kind", j.kind, "event_id", j.msg.GetEventID())
		return
	}

	select {
	case d.queue <- j:
	default:
		d.log.Warn("Notification queue full, dropping event",
			"kind", j.kind,
			"event_id", j.msg.GetEventID(),
			"user_id", j.msg.Key,
			"queue_size", cap(d.queue),
		)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for j := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
		err := j.publisher.Publish(ctx, j.msg)
		cancel()

		if err != nil {
			d.log.Error("Failed to publish event",
				"kind", j.kind,
				"event_id", j.msg.GetEventID(),
				"user_id", j.msg.Key,
				"error", err,
			)
		}
	}
}

// Stop refuses new events, drains the queue and closes the publishers. If ctx
// ends first the remaining events are abandoned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	var drainErr error
	select {
	case <-d.done:
	case <-ctx.Done():
		drainErr = fmt.Errorf("notification queue not drained: %w", ctx.Err())
		d.log.Warn("Stopping dispatcher before queue drained", "pending", len(d.queue))
	}

	if err := d.notifications.Close(); err != nil && drainErr == nil {
		drainErr = err
	}
	if err := d.emails.Close(); err != nil && drainErr == nil {
		drainErr = err
	}
	return drainErr
}
