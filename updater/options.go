package updater

import (
	"context"
	"io"
	"time"

	"github.com/ixonos/utp-com/protocol"
)

// Defaults used by the reference utp_com tool.
const (
	DefaultCommandTimeout = 5 * time.Minute
	DefaultPollInterval   = 500 * time.Millisecond
	DefaultPollAttempts   = 500
	DefaultChunkSize      = protocol.MaxTransferSize
)

// Config holds the session configuration.
type Config struct {
	// ProgressCallback is called to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Diagnostics receives a dump of every sent descriptor and every
	// non-zero status byte (optional)
	Diagnostics io.Writer

	// CommandTimeout bounds a single exchange; enforced by the transport
	CommandTimeout time.Duration

	// PollInterval is the pause before each Poll
	PollInterval time.Duration

	// PollAttempts is the number of polls before giving up with BusyTimeoutError
	PollAttempts int

	// ChunkSize is the maximum data size per exchange and per Put chunk.
	// Default and ceiling is protocol.MaxTransferSize.
	ChunkSize int

	sleep func(ctx context.Context, d time.Duration) error
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		CommandTimeout: DefaultCommandTimeout,
		PollInterval:   DefaultPollInterval,
		PollAttempts:   DefaultPollAttempts,
		ChunkSize:      DefaultChunkSize,
		sleep:          sleepContext,
	}
}

func buildConfig(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option is a functional option for configuring a Session or Client.
type Option func(*Config)

// WithProgressCallback sets a callback function to track session progress.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for session operations.
//
// Example:
//
//	s := updater.NewSession(open, updater.WithLogger(slog.Default()))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithDiagnostics enables the descriptor and status-block dump.
// Passing nil disables it.
//
// Example:
//
//	s := updater.NewSession(open, updater.WithDiagnostics(os.Stdout))
func WithDiagnostics(w io.Writer) Option {
	return func(c *Config) {
		c.Diagnostics = w
	}
}

// WithCommandTimeout sets the per-exchange timeout.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.CommandTimeout = timeout
		}
	}
}

// WithPollInterval sets the pause before each Poll. Zero polls back to back.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval >= 0 {
			c.PollInterval = interval
		}
	}
}

// WithPollAttempts sets the poll budget.
func WithPollAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.PollAttempts = attempts
		}
	}
}

// WithChunkSize sets the maximum data size per exchange.
// Values outside 1..protocol.MaxTransferSize are ignored.
func WithChunkSize(size int) Option {
	return func(c *Config) {
		if size > 0 && size <= protocol.MaxTransferSize {
			c.ChunkSize = size
		}
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// reportProgress calls the progress callback if configured.
func (c Config) reportProgress(progress Progress) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(progress)
	}
}
