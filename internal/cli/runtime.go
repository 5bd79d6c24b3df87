package cli

import (
	"errors"
	"io"
	"log/slog"

	fileadapter "github.com/couchcryptid/weather-telegram/internal/adapter/file"
	kafkaadapter "github.com/couchcryptid/weather-telegram/internal/adapter/kafka"
	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"github.com/couchcryptid/weather-telegram/internal/config"
	"github.com/couchcryptid/weather-telegram/internal/observability"
	"github.com/couchcryptid/weather-telegram/internal/pipeline"
	"github.com/spf13/afero"
)

// Runtime bundles the wired components a command runs against.
type Runtime struct {
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Pipeline *pipeline.Pipeline

	closers []io.Closer
}

// NewRuntime wires the telegram reader, the configured wind report sink and
// the pipeline. Telegram and wind report files go through fs.
func NewRuntime(cfg *config.Config, fs afero.Fs, logger *slog.Logger, metrics *observability.Metrics) (*Runtime, error) {
	msgs, err := config.LoadMessages(cfg.MessagesFile)
	if err != nil {
		return nil, err
	}

	reader := fileadapter.NewReader(fs, cfg.TelegramFile, cfg.StrictParsing, logger)
	reader.OnParseError = func(error) { metrics.ParseErrors.Inc() }

	rt := &Runtime{Config: cfg, Logger: logger, Metrics: metrics}

	var writer analyzer.Writer
	switch cfg.OutputSink {
	case config.SinkKafka:
		kw := kafkaadapter.NewWriter(cfg, logger)
		rt.closers = append(rt.closers, kw)
		writer = kw
		logger.Info("wind reports go to kafka", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	default:
		writer = fileadapter.NewWriter(fs, cfg.OutputDir, logger)
		logger.Debug("wind reports go to files", "dir", cfg.OutputDir)
	}

	rt.Pipeline = pipeline.New(reader, writer, msgs, logger, metrics)
	return rt, nil
}

// Close releases the output sink.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
