package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"github.com/ixonos/utp-com/config"
	"github.com/ixonos/utp-com/updater"
)

var (
	okFmt   = color.New(color.FgGreen, color.Bold)
	errFmt  = color.New(color.FgRed, color.Bold)
	infoFmt = color.New(color.FgYellow)
)

// newLogger builds the session logger on w. cfg has been validated.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func reportResult(w io.Writer, res *updater.Result) {
	switch res.Mode {
	case updater.ModeUpload:
		fmt.Fprintf(w, "%s sent %d bytes in %d chunks to %s (%s)\n",
			okFmt.Sprint("OK"), res.BytesSent, res.ChunksSent, res.Device, res.Elapsed.Round(time.Millisecond))
	default:
		fmt.Fprintf(w, "%s command completed on %s after %d polls (%s)\n",
			okFmt.Sprint("OK"), res.Device, res.PollAttempts, res.Elapsed.Round(time.Millisecond))
	}
}

func reportError(w io.Writer, err error) {
	kind := updater.KindOf(err)
	if kind == updater.KindUnknown {
		fmt.Fprintf(w, "%s %v\n", errFmt.Sprint("error:"), err)
		return
	}
	fmt.Fprintf(w, "%s %s: %v\n", errFmt.Sprint("error:"), kind, err)
}

func progressPrinter(w io.Writer) updater.ProgressCallback {
	return func(p updater.Progress) {
		switch p.Phase {
		case updater.PhasePolling:
			fmt.Fprintf(w, "%s poll %d/%d\n", infoFmt.Sprintf("[%s]", p.Phase), p.PollAttempt, p.MaxPollAttempts)
		case updater.PhaseUploading:
			fmt.Fprintf(w, "%s %.1f%% - chunk %d/%d\n", infoFmt.Sprintf("[%s]", p.Phase), p.Percentage, p.ChunksSent, p.TotalChunks)
		default:
			fmt.Fprintf(w, "%s\n", infoFmt.Sprintf("[%s]", p.Phase))
		}
	}
}
