package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ixonos/utp-com/sg"
	"github.com/ixonos/utp-com/updater"
)

var version = "dev"

// env is what a run needs from the outside world.
type env struct {
	open   updater.OpenFunc
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, env{
		open:   openSG,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}, os.Args[1:])
	stop()
	os.Exit(code)
}

// openSG opens a SCSI generic node. A failed open returns a nil interface,
// not a nil *sg.Device.
func openSG(path string) (updater.Device, error) {
	dev, err := sg.Open(path)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, e env, args []string) int {
	cmd := newRootCmd(e)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		reportError(e.stderr, err)
		return 1
	}
	return 0
}
