package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medizy/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func (w *recordingWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.msgs...)
}

// queueReader hands out queued messages, then blocks until ctx is done.
type queueReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *queueReader) Close() error { return nil }

func (r *queueReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func headerMap(msg kafka.Message) map[string]string {
	out := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("user-1").
		WithValue(map[string]string{"title": "Booked"}).
		WithEventType("appointment.created").
		WithCorrelationID("").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "user-1", msg.Key)
	assert.JSONEq(t, `{"title":"Booked"}`, string(msg.Value))
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "appointment.created", msg.GetEventType())
	_, ok := msg.GetHeader(HeaderCorrelationID)
	assert.False(t, ok)
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])

	_, err = NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestMessageRetryCount(t *testing.T) {
	var msg Message
	assert.Equal(t, 0, msg.GetRetryCount())
	msg.IncrementRetryCount()
	msg.IncrementRetryCount()
	assert.Equal(t, 2, msg.GetRetryCount())

	msg.Headers[HeaderRetryCount] = "garbage"
	assert.Equal(t, 0, msg.GetRetryCount())
}

func TestDecodeValueIsPermanent(t *testing.T) {
	msg := Message{Value: []byte("{not json")}
	var v map[string]any
	err := msg.DecodeValue(&v)
	require.Error(t, err)
	assert.Equal(t, ErrorTypePermanent, ClassifyError(err))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"wrapped deadline", errors.Join(errors.New("write"), context.DeadlineExceeded), ErrorTypeTransient},
		{"connection refused", errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{"explicit transient", NewTransientError("store", errors.New("busy")), ErrorTypeTransient},
		{"explicit permanent", NewPermanentError("bad", errors.New("timeout")), ErrorTypePermanent},
		{"unknown", errors.New("schema mismatch"), ErrorTypePermanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}

	assert.True(t, ShouldRetry(context.DeadlineExceeded, 0, 3))
	assert.False(t, ShouldRetry(context.DeadlineExceeded, 3, 3))
	assert.False(t, ShouldRetry(errors.New("schema mismatch"), 0, 3))
}

func TestProducerPublish(t *testing.T) {
	writer := &recordingWriter{}
	p := NewProducerWithWriters(writer, nil, "notifications", "", logger.Discard())

	var seen []string
	p.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		seen = append(seen, msg.Topic)
		return next(ctx, msg)
	})

	msg, err := NewMessage().WithKey("user-1").WithValue("hello").Build()
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), msg))

	written := writer.written()
	require.Len(t, written, 1)
	assert.Equal(t, "user-1", string(written[0].Key))
	assert.Equal(t, msg.GetEventID(), headerMap(written[0])[HeaderEventID])
	assert.Equal(t, []string{"notifications"}, seen)
}

func TestProducerRejectsIncompleteMessages(t *testing.T) {
	p := NewProducerWithWriters(&recordingWriter{}, nil, "notifications", "", logger.Discard())

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)

	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k", Value: []byte("x")}), ErrProducerClosed)
}

func TestProducerRoutesFailuresToDLQ(t *testing.T) {
	writeErr := errors.New("broker unavailable")
	writer := &recordingWriter{err: writeErr}
	dlq := &recordingWriter{}
	p := NewProducerWithWriters(writer, dlq, "notifications", "notifications.dlq", logger.Discard())

	msg, err := NewMessage().WithKey("user-1").WithValue("hello").Build()
	require.NoError(t, err)

	err = p.Publish(context.Background(), msg)
	assert.ErrorIs(t, err, writeErr)

	dead := dlq.written()
	require.Len(t, dead, 1)
	headers := headerMap(dead[0])
	assert.Equal(t, "notifications", headers[HeaderOriginalTopic])
	assert.Equal(t, "broker unavailable", headers["dlq-error"])
	assert.Equal(t, msg.GetEventID(), headers[HeaderEventID])

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
	assert.True(t, dlq.closed)
}

func runConsumer(t *testing.T, c *Consumer, reader *queueReader, want int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	require.Eventually(t, func() bool { return reader.commits() == want }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, c.Close())
}

func TestConsumerCommitsHandledMessages(t *testing.T) {
	reader := &queueReader{queue: []kafka.Message{
		{Key: []byte("a"), Value: []byte(`1`), Headers: []kafka.Header{{Key: HeaderEventID, Value: []byte("e1")}}},
		{Key: []byte("b"), Value: []byte(`2`)},
	}}

	var mu sync.Mutex
	var keys []string
	handler := func(_ context.Context, msg Message) error {
		mu.Lock()
		defer mu.Unlock()
		keys = append(keys, msg.Key)
		return nil
	}

	c := NewConsumerWithReader(reader, nil, "notifications", "group", handler, logger.Discard())
	runConsumer(t, c, reader, 2)

	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestConsumerRetriesTransientFailures(t *testing.T) {
	reader := &queueReader{queue: []kafka.Message{{Key: []byte("a"), Value: []byte(`1`)}}}

	attempts := 0
	handler := func(_ context.Context, msg Message) error {
		attempts++
		if attempts < 3 {
			return NewTransientError("store", errors.New("busy"))
		}
		assert.Equal(t, 2, msg.GetRetryCount())
		return nil
	}

	dlq := &recordingWriter{}
	c := NewConsumerWithReader(reader, dlq, "notifications", "group", handler, logger.Discard()).
		WithRetries(3, time.Millisecond)
	runConsumer(t, c, reader, 1)

	assert.Equal(t, 3, attempts)
	assert.Empty(t, dlq.written())
}

func TestConsumerSendsPermanentFailuresToDLQ(t *testing.T) {
	reader := &queueReader{queue: []kafka.Message{{Key: []byte("a"), Value: []byte(`{bad`)}}}

	attempts := 0
	handler := func(_ context.Context, msg Message) error {
		attempts++
		var v map[string]any
		return msg.DecodeValue(&v)
	}

	dlq := &recordingWriter{}
	c := NewConsumerWithReader(reader, dlq, "notifications", "group", handler, logger.Discard()).
		WithRetries(3, time.Millisecond)
	runConsumer(t, c, reader, 1)

	assert.Equal(t, 1, attempts)
	dead := dlq.written()
	require.Len(t, dead, 1)
	headers := headerMap(dead[0])
	assert.Equal(t, "group", headers["dlq-consumer-group"])
	assert.Equal(t, "notifications", headers[HeaderOriginalTopic])
}

func TestConsumerStartAfterClose(t *testing.T) {
	c := NewConsumerWithReader(&queueReader{}, nil, "notifications", "group", func(context.Context, Message) error { return nil }, logger.Discard())
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Start(context.Background()), ErrConsumerClosed)
}
