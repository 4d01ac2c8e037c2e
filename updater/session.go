package updater

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ixonos/utp-com/payload"
	"github.com/ixonos/utp-com/protocol"
)

// Mode is the exchange sequence a session runs.
type Mode string

const (
	// ModeExec sends Exec and polls until the target finishes
	ModeExec Mode = "exec"

	// ModeUpload announces the file size with Exec and sends the file as Put chunks
	ModeUpload Mode = "upload"
)

// Request is one command for the target, optionally with a file.
type Request struct {
	// Command is the shell-like command text, e.g. "$ uname -r"
	Command string

	// Payload is the file to upload; nil runs the command and polls
	Payload *payload.Payload
}

// Mode returns the sequence the request needs.
func (r Request) Mode() Mode {
	if r.Payload != nil {
		return ModeUpload
	}
	return ModeExec
}

// Result summarizes a session run.
type Result struct {
	// RunID correlates log lines of one run
	RunID string

	Device string
	Mode   Mode

	// PollAttempts is the number of Poll exchanges (exec mode)
	PollAttempts int

	// ChunksSent and BytesSent count completed Put exchanges (upload mode)
	ChunksSent int
	BytesSent  int

	Elapsed time.Duration
}

// Session runs one UTP request against a device.
//
// A session opens the device, runs either the exec-and-poll or the
// upload sequence, and closes the device exactly once whatever the outcome.
type Session struct {
	logHelper
	open   OpenFunc
	config Config
}

// NewSession creates a Session that opens devices with open.
//
// Example:
//
//	s := updater.NewSession(
//	    func(path string) (updater.Device, error) { return sg.Open(path) },
//	    updater.WithLogger(slog.Default()),
//	)
//	res, err := s.Run(ctx, "/dev/sdb", updater.Request{Command: "$ uname -r"})
func NewSession(open OpenFunc, opts ...Option) *Session {
	if open == nil {
		panic("open func cannot be nil")
	}

	cfg := buildConfig(opts)
	return &Session{
		logHelper: logHelper{logger: cfg.Logger},
		open:      open,
		config:    cfg,
	}
}

// Run executes req on the device at devicePath.
//
// Without a payload it sends Exec carrying the command and polls until the
// target replies Pass. With a payload it sends Exec carrying the command and
// the file size, then uploads the file in Put chunks; the poll cycle is
// skipped.
//
// The returned Result is non-nil even on failure.
func (s *Session) Run(ctx context.Context, devicePath string, req Request) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:  uuid.NewString(),
		Device: devicePath,
		Mode:   req.Mode(),
	}

	if err := s.validate(devicePath, req); err != nil {
		return res, err
	}

	s.logInfo("starting session",
		"run_id", res.RunID,
		"device", devicePath,
		"mode", string(res.Mode),
		"payload_len", req.Payload.Len(),
	)

	dev, err := s.open(devicePath)
	if err == nil && dev == nil {
		err = errors.New("no device returned")
	}
	if err != nil {
		err = &DeviceOpenError{Path: devicePath, Err: err}
		s.logError("session failed", "run_id", res.RunID, "kind", KindDeviceOpen.String(), "error", err)
		return res, err
	}

	client := newClient(dev, s.config)
	defer func() {
		if cerr := client.Close(); cerr != nil {
			s.logError("close device", "run_id", res.RunID, "error", cerr)
		}
	}()

	switch res.Mode {
	case ModeUpload:
		err = s.upload(ctx, client, req, res, start)
	default:
		err = s.execute(ctx, client, req, res, start)
	}

	res.Elapsed = time.Since(start)

	if err != nil {
		s.logError("session failed",
			"run_id", res.RunID,
			"kind", KindOf(err).String(),
			"elapsed", res.Elapsed.String(),
			"error", err,
		)
		return res, err
	}

	s.config.reportProgress(Progress{
		Phase:       PhaseComplete,
		PollAttempt: res.PollAttempts,
		ChunksSent:  res.ChunksSent,
		TotalChunks: res.ChunksSent,
		BytesSent:   res.BytesSent,
		TotalBytes:  res.BytesSent,
		Percentage:  100,
		ElapsedTime: res.Elapsed,
	})

	s.logInfo("session complete",
		"run_id", res.RunID,
		"mode", string(res.Mode),
		"polls", res.PollAttempts,
		"chunks", res.ChunksSent,
		"bytes", res.BytesSent,
		"elapsed", res.Elapsed.String(),
	)

	return res, nil
}

func (s *Session) validate(devicePath string, req Request) error {
	if devicePath == "" {
		return &ArgumentError{Field: "device", Reason: "device path is required"}
	}
	if req.Command == "" {
		return &ArgumentError{Field: "command", Reason: "command is required"}
	}
	if len(req.Command) > s.config.ChunkSize {
		return &ArgumentError{
			Field:  "command",
			Reason: fmt.Sprintf("%d bytes exceeds maximum transfer of %d", len(req.Command), s.config.ChunkSize),
		}
	}
	if req.Payload != nil {
		return CheckPayloadSize(int64(req.Payload.Len()))
	}
	return nil
}

// CheckPayloadSize reports whether a file of n bytes can be announced in
// the 32-bit Exec size field. Callers can check a file's size before
// reading it.
func CheckPayloadSize(n int64) error {
	if n < 0 || n > math.MaxUint32 {
		return &ArgumentError{
			Field:  "file",
			Reason: fmt.Sprintf("%d bytes does not fit the 32-bit size field", n),
		}
	}
	return nil
}

// execute sends Exec and waits for completion.
func (s *Session) execute(ctx context.Context, c *Client, req Request, res *Result, start time.Time) error {
	s.config.reportProgress(Progress{
		Phase:       PhaseSending,
		ElapsedTime: time.Since(start),
	})

	if _, err := c.Exchange(ctx, protocol.BuildExecCmd(), []byte(req.Command)); err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	p := newPoller(c, s.config)
	p.started = start

	err := p.Wait(ctx)
	res.PollAttempts = p.Attempts()
	if err != nil {
		return fmt.Errorf("wait for completion: %w", err)
	}

	return nil
}

// upload announces the file size and sends the file.
func (s *Session) upload(ctx context.Context, c *Client, req Request, res *Result, start time.Time) error {
	size := uint32(req.Payload.Len())

	s.config.reportProgress(Progress{
		Phase:       PhaseSending,
		TotalChunks: ChunkCount(req.Payload.Len(), s.config.ChunkSize),
		TotalBytes:  req.Payload.Len(),
		ElapsedTime: time.Since(start),
	})

	if _, err := c.Exchange(ctx, protocol.BuildExecWithSizeCmd(size), []byte(req.Command)); err != nil {
		return fmt.Errorf("announce upload of %d bytes: %w", size, err)
	}

	u := newUploader(c, s.config)
	u.started = start

	stats, err := u.Upload(ctx, req.Payload.Data)
	res.ChunksSent = stats.Chunks
	res.BytesSent = stats.Bytes
	if err != nil {
		return fmt.Errorf("upload %s: %w", req.Payload.Name, err)
	}

	return nil
}
