package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tavirathu13.txt", cfg.TelegramFile)
	assert.False(t, cfg.StrictParsing)
	assert.Equal(t, SinkFile, cfg.OutputSink)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "wind-reports", cfg.KafkaSinkTopic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.MessagesFile)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("TELEGRAM_FILE", "/data/day.txt")
	t.Setenv("TELEGRAM_STRICT", "true")
	t.Setenv("OUTPUT_SINK", "kafka")
	t.Setenv("OUTPUT_DIR", "/out")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("MESSAGES_FILE", "messages.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/day.txt", cfg.TelegramFile)
	assert.True(t, cfg.StrictParsing)
	assert.Equal(t, SinkKafka, cfg.OutputSink)
	assert.Equal(t, "/out", cfg.OutputDir)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "messages.yaml", cfg.MessagesFile)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidOutputSink(t *testing.T) {
	t.Setenv("OUTPUT_SINK", "s3")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OUTPUT_SINK")
}

func TestLoad_InvalidStrict(t *testing.T) {
	t.Setenv("TELEGRAM_STRICT", "sometimes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_STRICT")
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TELEGRAM_FILE=from-dotenv.txt\nHTTP_ADDR=:7070\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("HTTP_ADDR", ":6060")
	// godotenv sets variables process-wide; restore them for later tests.
	t.Setenv("TELEGRAM_FILE", "")
	require.NoError(t, os.Unsetenv("TELEGRAM_FILE"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv.txt", cfg.TelegramFile)
	assert.Equal(t, ":6060", cfg.HTTPAddr, "real environment wins over .env")
}

func TestLoadMessages_Default(t *testing.T) {
	m, err := LoadMessages("")
	require.NoError(t, err)
	assert.Equal(t, analyzer.DefaultMessages(), m)
}

func TestLoadMessages_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("no_calm: \"No calm wind.\"\nfiles_created: \"Done.\"\n"), 0o600))

	m, err := LoadMessages(path)
	require.NoError(t, err)

	assert.Equal(t, "No calm wind.", m.NoCalm)
	assert.Equal(t, "Done.", m.FilesCreated)
	assert.Equal(t, "Középhőmérséklet", m.AverageLabel)
}

func TestLoadMessages_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("no_calm: [unterminated"), 0o600))

	_, err := LoadMessages(path)
	assert.ErrorContains(t, err, "MESSAGES_FILE")
}

func TestLoadMessages_MissingFile(t *testing.T) {
	_, err := LoadMessages(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "MESSAGES_FILE")
}
