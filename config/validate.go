package config

import (
	"fmt"

	"github.com/ixonos/utp-com/protocol"
)

// Validate checks configuration correctness.
// It does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	switch cfg.Log.Level {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q (want debug, info or error)", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want text or json)", cfg.Log.Format)
	}

	if cfg.Transport.CommandTimeout <= 0 {
		return fmt.Errorf("transport.command_timeout must be positive, got %s", cfg.Transport.CommandTimeout)
	}

	if n := cfg.Transport.MaxTransferSize; n <= 0 || n > protocol.MaxTransferSize {
		return fmt.Errorf(
			"transport.max_transfer_size %d out of range 1-%d",
			n,
			protocol.MaxTransferSize,
		)
	}

	if cfg.Poll.Interval < 0 {
		return fmt.Errorf("poll.interval must not be negative, got %s", cfg.Poll.Interval)
	}

	if cfg.Poll.Attempts <= 0 {
		return fmt.Errorf("poll.attempts must be positive, got %d", cfg.Poll.Attempts)
	}

	return nil
}
