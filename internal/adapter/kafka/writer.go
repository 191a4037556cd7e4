package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"

	"github.com/couchcryptid/storm-data-charts/internal/config"
	"github.com/couchcryptid/storm-data-charts/internal/domain"
	"github.com/couchcryptid/storm-data-charts/internal/observability"
)

// ErrSinkUnavailable is returned while the sink circuit breaker is open.
var ErrSinkUnavailable = errors.New("chart bundle sink unavailable")

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes chart bundles to a Kafka topic behind a circuit breaker.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newWriter(w, cfg, logger, metrics)
}

func newWriter(w messageWriter, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	maxFailures := cfg.BreakerMaxFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kafka-sink",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// Cancelled writes do not count against the broker.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			metrics.BreakerState.Set(float64(to))
		},
	})
	return &Writer{writer: w, breaker: cb, logger: logger}
}

// LoadBatch publishes bundle events in a single WriteMessages call. While the
// breaker is open it fails fast with ErrSinkUnavailable.
func (w *Writer) LoadBatch(ctx context.Context, events []domain.OutputEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msgs[i] = toMessage(events[i])
	}

	_, err := w.breaker.Execute(func() (interface{}, error) {
		return nil, w.writer.WriteMessages(ctx, msgs...)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	return err
}

// State reports the sink breaker state.
func (w *Writer) State() gobreaker.State {
	return w.breaker.State()
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage converts an OutputEvent into a Kafka message with headers in key
// order.
func toMessage(event domain.OutputEvent) kafkago.Message {
	keys := make([]string, 0, len(event.Headers))
	for k := range event.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafkago.Header, len(keys))
	for i, k := range keys {
		headers[i] = kafkago.Header{Key: k, Value: []byte(event.Headers[k])}
	}
	return kafkago.Message{
		Key:     event.Key,
		Value:   event.Value,
		Headers: headers,
	}
}
