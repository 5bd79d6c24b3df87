package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Output sinks for wind report files.
const (
	SinkFile  = "file"
	SinkKafka = "kafka"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	TelegramFile   string
	StrictParsing  bool
	OutputSink     string
	OutputDir      string
	KafkaBrokers   []string
	KafkaSinkTopic string
	HTTPAddr       string
	LogLevel       string
	LogFormat      string
	MessagesFile   string

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
// Variables from an optional .env file (or ENV_FILE) are applied first without
// overriding the real environment.
func Load() (*Config, error) {
	if err := loadDotEnv(sharedcfg.EnvOrDefault("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	strict, err := parseBool("TELEGRAM_STRICT", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TelegramFile:    sharedcfg.EnvOrDefault("TELEGRAM_FILE", "tavirathu13.txt"),
		StrictParsing:   strict,
		OutputSink:      sharedcfg.EnvOrDefault("OUTPUT_SINK", SinkFile),
		OutputDir:       sharedcfg.EnvOrDefault("OUTPUT_DIR", "."),
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "wind-reports"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		MessagesFile:    os.Getenv("MESSAGES_FILE"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.TelegramFile == "" {
		return nil, errors.New("TELEGRAM_FILE is required")
	}
	switch cfg.OutputSink {
	case SinkFile:
		if cfg.OutputDir == "" {
			return nil, errors.New("OUTPUT_DIR is required")
		}
	case SinkKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required")
		}
	default:
		return nil, fmt.Errorf("invalid OUTPUT_SINK %q: must be %q or %q", cfg.OutputSink, SinkFile, SinkKafka)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}
