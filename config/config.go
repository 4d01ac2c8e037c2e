// Package config loads utp_com settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ixonos/utp-com/protocol"
	"github.com/ixonos/utp-com/updater"
)

// Config is the utp_com settings file.
type Config struct {
	// Device is the SCSI generic node used when no -d flag is given
	Device string `yaml:"device"`

	// Diagnostics enables the descriptor and status-block dump
	Diagnostics bool `yaml:"diagnostics"`

	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Poll      PollConfig      `yaml:"poll"`
}

// ---- LOG ----

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, error
	Format string `yaml:"format"` // text, json
}

// ---- TRANSPORT ----

// TransportConfig bounds each SG_IO exchange.
type TransportConfig struct {
	CommandTimeout  time.Duration `yaml:"command_timeout"`
	MaxTransferSize int           `yaml:"max_transfer_size"`
}

// ---- POLL ----

// PollConfig sets the completion poll cadence and budget.
type PollConfig struct {
	Interval time.Duration `yaml:"interval"`
	Attempts int           `yaml:"attempts"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Transport: TransportConfig{
			CommandTimeout:  updater.DefaultCommandTimeout,
			MaxTransferSize: protocol.MaxTransferSize,
		},
		Poll: PollConfig{
			Interval: updater.DefaultPollInterval,
			Attempts: updater.DefaultPollAttempts,
		},
	}
}

// Load reads and validates a config file. Keys missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data over Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options converts the transport and poll settings to session options.
func (c *Config) Options() []updater.Option {
	return []updater.Option{
		updater.WithCommandTimeout(c.Transport.CommandTimeout),
		updater.WithChunkSize(c.Transport.MaxTransferSize),
		updater.WithPollInterval(c.Poll.Interval),
		updater.WithPollAttempts(c.Poll.Attempts),
	}
}
