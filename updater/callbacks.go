package updater

import "time"

// Phase names reported through Progress.
const (
	PhaseSending   = "sending"
	PhasePolling   = "polling"
	PhaseUploading = "uploading"
	PhaseComplete  = "complete"
)

// Progress contains information about a running session.
// Passed to ProgressCallback while commands execute and files upload.
type Progress struct {
	// Phase describes the current operation phase:
	//   "sending"   - Sending the Exec command
	//   "polling"   - Waiting for the target to finish
	//   "uploading" - Sending Put chunks
	//   "complete"  - Session finished successfully
	Phase string

	// PollAttempt is the number of polls issued so far
	PollAttempt int

	// MaxPollAttempts is the poll budget
	MaxPollAttempts int

	// ChunksSent is the number of Put chunks acknowledged so far
	ChunksSent int

	// TotalChunks is the number of Put chunks in the upload
	TotalChunks int

	// BytesSent is the number of file bytes sent so far
	BytesSent int

	// TotalBytes is the file size
	TotalBytes int

	// Percentage is the upload completion percentage (0.0 to 100.0)
	Percentage float64

	// ElapsedTime is the time elapsed since the session started
	ElapsedTime time.Duration
}

// ProgressCallback is called during a session to report progress.
// Implementations should return quickly to avoid stalling the transfer.
//
// Example:
//
//	s := updater.NewSession(open,
//	    updater.WithProgressCallback(func(p updater.Progress) {
//	        fmt.Printf("[%s] %.1f%% - chunk %d/%d\n",
//	            p.Phase, p.Percentage, p.ChunksSent, p.TotalChunks)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface.
// *slog.Logger satisfies it directly.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...any)
}

type logHelper struct {
	logger Logger
}

func (h logHelper) logDebug(msg string, keysAndValues ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, keysAndValues...)
	}
}

func (h logHelper) logInfo(msg string, keysAndValues ...any) {
	if h.logger != nil {
		h.logger.Info(msg, keysAndValues...)
	}
}

func (h logHelper) logError(msg string, keysAndValues ...any) {
	if h.logger != nil {
		h.logger.Error(msg, keysAndValues...)
	}
}
