package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/scaffold_erp/internal/events"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

// fakeReader serves queued messages, then blocks until the context is cancelled.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	drained   chan struct{}
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{queue: msgs, drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	close(r.drained)
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEnvelope() events.Envelope {
	env := events.New(events.PaymentReceived, "pay-1", decimal.NewFromInt(500), "user-1",
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	env.Method = "CASH"
	return env
}

func encode(t *testing.T, env events.Envelope, offset int64) kafka.Message {
	t.Helper()
	body, err := json.Marshal(env)
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Key: []byte(env.SourceID), Value: body}
}

func TestPublisher_WritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}
	env := sampleEnvelope()

	require.NoError(t, p.Publish(context.Background(), env))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "pay-1", string(msg.Key))
	assert.Equal(t, headerEventType, msg.Headers[0].Key)
	assert.Equal(t, string(events.PaymentReceived), string(msg.Headers[0].Value))

	var decoded events.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, env.EventID, decoded.EventID)
	assert.True(t, env.Amount.Equal(decoded.Amount))
	assert.Equal(t, "CASH", decoded.Attr(events.AttrMethod))
}

func TestPublisher_WrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), sampleEnvelope())

	assert.ErrorIs(t, err, boom)
}

func TestConsumer_HandlesAndCommits(t *testing.T) {
	reader := newFakeReader(
		encode(t, sampleEnvelope(), 10),
		kafka.Message{Offset: 11, Value: []byte("not json")},
	)
	var handled []string
	handler := func(_ context.Context, env events.Envelope) error {
		handled = append(handled, env.SourceID)
		return nil
	}
	c := newConsumer(reader, handler, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	<-reader.drained
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []string{"pay-1"}, handled)
	assert.Equal(t, []int64{10, 11}, reader.committed, "poison messages are committed so they do not block the partition")
}

func TestConsumer_RetriesUntilHandled(t *testing.T) {
	reader := newFakeReader(encode(t, sampleEnvelope(), 3))
	attempts := 0
	handler := func(context.Context, events.Envelope) error {
		attempts++
		if attempts < 4 {
			return errors.New("db unavailable")
		}
		return nil
	}
	c := newConsumer(reader, handler, testLogger())
	c.retryDelay = time.Millisecond
	c.alertAfter = 2

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	<-reader.drained
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, 4, attempts)
	assert.Equal(t, []int64{3}, reader.committed)
}

func TestConsumer_DoesNotCommitFailedEvent(t *testing.T) {
	reader := newFakeReader(encode(t, sampleEnvelope(), 7), encode(t, sampleEnvelope(), 8))
	failing := make(chan struct{})
	attempts := 0
	handler := func(context.Context, events.Envelope) error {
		attempts++
		if attempts == 3 {
			close(failing)
		}
		return errors.New("connection refused")
	}
	c := newConsumer(reader, handler, testLogger())
	c.retryDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	<-failing
	cancel()
	require.NoError(t, <-done)

	assert.GreaterOrEqual(t, attempts, 3)
	assert.Empty(t, reader.committed, "the event stays uncommitted so it is fetched again")
	assert.Len(t, reader.queue, 1, "later messages wait behind the failing one")
}

func TestConsumer_BackoffIsCapped(t *testing.T) {
	c := newConsumer(newFakeReader(), nil, testLogger())
	c.retryDelay = time.Second
	c.maxRetryDelay = 5 * time.Second

	assert.Equal(t, time.Second, c.backoff(1))
	assert.Equal(t, 3*time.Second, c.backoff(3))
	assert.Equal(t, 5*time.Second, c.backoff(40))
}
