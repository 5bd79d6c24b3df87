package config

import (
	"fmt"
	"os"

	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"gopkg.in/yaml.v3"
)

// LoadMessages reads output literal overrides from a YAML file. Fields missing
// from the file keep their defaults. An empty path returns the defaults.
//
//	no_calm: "No calm wind during measurements."
//	files_created: "Files created."
func LoadMessages(path string) (analyzer.Messages, error) {
	if path == "" {
		return analyzer.DefaultMessages(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return analyzer.Messages{}, fmt.Errorf("read MESSAGES_FILE: %w", err)
	}
	var m analyzer.Messages
	if err := yaml.Unmarshal(data, &m); err != nil {
		return analyzer.Messages{}, fmt.Errorf("parse MESSAGES_FILE %s: %w", path, err)
	}
	return m.WithDefaults(), nil
}
