package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/weather-telegram/internal/config"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes wind report files to a Kafka topic, one message per file.
// It implements analyzer.Writer.
type Writer struct {
	writer messageWriter
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, clock: clockwork.NewRealClock(), logger: logger}
}

// Write publishes the file contents keyed by filename, so every version of a
// settlement's report lands on the same partition.
func (w *Writer) Write(ctx context.Context, filename string, lines []string) error {
	msg := serializeToMessage(filename, lines, w.clock.Now())
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", filename, err)
	}
	w.logger.Debug("wind report published", "filename", filename, "lines", len(lines))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage renders the lines exactly as the file writer would store
// them: each line followed by a newline.
func serializeToMessage(filename string, lines []string, producedAt time.Time) kafkago.Message {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return kafkago.Message{
		Key:   []byte(filename),
		Value: []byte(b.String()),
		Headers: []kafkago.Header{
			{Key: "filename", Value: []byte(filename)},
			{Key: "content_type", Value: []byte("text/plain; charset=utf-8")},
			{Key: "produced_at", Value: []byte(producedAt.UTC().Format(time.RFC3339))},
		},
	}
}
