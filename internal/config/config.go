// Package config defines service configuration structures and loading hooks.
package config

import (
	"os"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8087".
	Addr string `koanf:"addr"`

	// DataFile is the shared store file. Every process pointed at the same
	// file converges through the file watcher.
	DataFile string `koanf:"data_file"`

	// APIKey authenticates against the completion endpoint. Empty disables
	// generation; affected operations degrade to placeholders.
	APIKey string `koanf:"api_key"`

	// APIBaseURL points at an OpenAI-compatible endpoint.
	APIBaseURL string `koanf:"api_base_url"`

	// Model selects the completion model.
	Model string `koanf:"model"`

	// APITimeoutSeconds bounds each completion request.
	APITimeoutSeconds int `koanf:"api_timeout_seconds"`

	// QueueSize bounds the in-memory generation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of generation workers.
	WorkerCount int `koanf:"worker_count"`

	// DefaultCity seeds scans and venue research when a request names none.
	DefaultCity string `koanf:"default_city"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8087",
		DataFile:          filepath.Join(os.TempDir(), "thebeat", "store.json"),
		APIBaseURL:        "https://api.openai.com/v1",
		Model:             "gpt-4o",
		APITimeoutSeconds: 60,
		QueueSize:         1024,
		WorkerCount:       4,
		DefaultCity:       "Nashville",
	}
}
