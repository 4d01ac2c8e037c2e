// Package updater runs UTP command sessions against a Freescale/NXP
// manufacturing target.
//
// # Overview
//
// A session sends one shell-like command to the target over a SCSI generic
// device and, depending on the request, either waits for it to finish or
// streams a file to it:
//   - Exec mode: Exec carrying the command, then Poll until the target replies Pass
//   - Upload mode: Exec carrying the command and the file size, then one Put per chunk
//
// The device is opened once per session and closed exactly once, whatever
// the outcome.
//
// # Basic Usage
//
//	open := func(path string) (updater.Device, error) { return sg.Open(path) }
//
//	s := updater.NewSession(open)
//	res, err := s.Run(ctx, "/dev/sdb", updater.Request{Command: "$ uname -r"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("polls:", res.PollAttempts)
//
// Uploading a file:
//
//	p, err := payload.Load("rootfs.tar.bz2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = s.Run(ctx, "/dev/sdb", updater.Request{Command: "pipe tar -xjv -C /mnt", Payload: p})
//
// # Configuration Options
//
//	s := updater.NewSession(open,
//	    updater.WithProgressCallback(progressFunc),
//	    updater.WithLogger(slog.Default()),
//	    updater.WithDiagnostics(os.Stdout),
//	    updater.WithCommandTimeout(5*time.Minute),
//	    updater.WithPollInterval(500*time.Millisecond),
//	    updater.WithPollAttempts(500),
//	)
//
// # Logging
//
// Logger takes key/value pairs, so *slog.Logger can be passed directly.
// Any other framework needs a three-method adapter.
//
// # Error Handling
//
// The package provides structured error types:
//   - ArgumentError: missing or oversized input, nothing was sent
//   - DeviceOpenError: the device could not be opened
//   - TransportError: the SG_IO request itself failed
//   - protocol.ProtocolError: the target replied Exit
//   - BusyTimeoutError: the poll budget ran out
//
// KindOf maps any of these, wrapped or not, to a Kind for reporting.
//
// # Building Blocks
//
// Client, Poller and Uploader are exported for callers that need to drive
// exchanges themselves. Each works against the Exchanger or Device
// interfaces, so updatertest.Target can stand in for real hardware.
package updater
