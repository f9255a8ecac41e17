package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/SscSPs/scaffold_erp/internal/events"
)

const (
	defaultRetryDelay    = 2 * time.Second
	defaultMaxRetryDelay = time.Minute
	// attempts after which a failing event is logged as an error instead of a warning
	defaultAlertAfter = 5
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads envelopes from the topic and hands them to a handler. An offset is committed
// once the handler succeeded; a failing event is retried with capped backoff until it succeeds
// or ctx is cancelled, so it is fetched again after a restart. Undecodable and invalid messages
// are committed and skipped.
type Consumer struct {
	reader        messageReader
	handler       events.HandlerFunc
	logger        *slog.Logger
	retryDelay    time.Duration
	maxRetryDelay time.Duration
	alertAfter    int
}

func NewConsumer(brokers []string, topic, groupID string, handler events.HandlerFunc, logger *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newConsumer(reader, handler, logger)
}

func newConsumer(reader messageReader, handler events.HandlerFunc, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		reader:        reader,
		handler:       handler,
		logger:        logger.With("component", "kafka_consumer"),
		retryDelay:    defaultRetryDelay,
		maxRetryDelay: defaultMaxRetryDelay,
		alertAfter:    defaultAlertAfter,
	}
}

// Run blocks until ctx is cancelled or the reader fails.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Failed to fetch message", "error", err)
			return err
		}

		if !c.process(ctx, msg) {
			// only a cancelled context stops process without handling the event
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Failed to commit message", "error", err, "offset", msg.Offset, "partition", msg.Partition)
			return err
		}
	}
}

// process reports whether msg is done with and may be committed.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		c.logger.Error("Dropping undecodable message", "error", err, "offset", msg.Offset, "partition", msg.Partition)
		return true
	}
	if err := env.Validate(); err != nil {
		c.logger.Error("Dropping invalid event", "error", err, "event_id", env.EventID)
		return true
	}

	logger := c.logger.With("event_id", env.EventID, "event_type", env.Type, "source_id", env.SourceID)
	for attempt := 1; ; attempt++ {
		err := c.handler(ctx, env)
		if err == nil {
			logger.Debug("Event handled", "attempt", attempt)
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		if attempt >= c.alertAfter {
			logger.Error("Event handler still failing, offset not committed", "error", err, "attempt", attempt)
		} else {
			logger.Warn("Event handler failed", "error", err, "attempt", attempt)
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.backoff(attempt)):
		}
	}
}

func (c *Consumer) backoff(attempt int) time.Duration {
	return min(c.retryDelay*time.Duration(attempt), c.maxRetryDelay)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
