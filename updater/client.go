package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/ixonos/utp-com/protocol"
)

// Device is the blocking request/response channel to the target.
// *sg.Device implements it on Linux.
type Device interface {
	// Transfer sends cdb with data as a host-to-device data phase and
	// fills sense with the status block the target returns.
	Transfer(cdb, data, sense []byte, timeout time.Duration) error

	// Close releases the handle.
	Close() error
}

// OpenFunc opens the device node at path.
type OpenFunc func(path string) (Device, error)

// Exchanger performs one UTP request/response round trip.
// *Client is the production implementation.
type Exchanger interface {
	Exchange(ctx context.Context, cmd, data []byte) (protocol.Reply, error)
}

// Client performs UTP exchanges over a single device handle.
//
// The client owns the handle: it closes it on transport failure or an Exit
// reply, and Close releases it at most once.
type Client struct {
	logHelper
	device Device
	config Config
	closed bool
}

// NewClient creates a Client that owns device.
func NewClient(device Device, opts ...Option) *Client {
	if device == nil {
		panic("device cannot be nil")
	}
	return newClient(device, buildConfig(opts))
}

func newClient(device Device, cfg Config) *Client {
	return &Client{
		logHelper: logHelper{logger: cfg.Logger},
		device:    device,
		config:    cfg,
	}
}

// Exchange sends one command descriptor with an optional data phase and
// returns the reply code from the status block.
//
// Busy and Size replies are returned without error; callers decide what they
// mean. A transport failure returns *TransportError and an Exit reply returns
// *protocol.ProtocolError; in both cases the device has been closed.
func (c *Client) Exchange(ctx context.Context, cmd, data []byte) (protocol.Reply, error) {
	if len(cmd) != protocol.CommandSize {
		return 0, &ArgumentError{
			Field:  "command descriptor",
			Reason: fmt.Sprintf("got %d bytes, expected %d", len(cmd), protocol.CommandSize),
		}
	}

	op := protocol.SubCommandName(cmd[protocol.SubCommandOffset])

	if len(data) > c.config.ChunkSize {
		return 0, &ArgumentError{
			Field:  op + " data",
			Reason: fmt.Sprintf("%d bytes exceeds maximum transfer of %d", len(data), c.config.ChunkSize),
		}
	}

	if c.closed {
		return 0, &TransportError{Op: op, Err: ErrDeviceClosed}
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	status := make([]byte, protocol.StatusBlockSize)

	c.dumpCommand(cmd)

	if err := c.device.Transfer(cmd, data, status, c.config.CommandTimeout); err != nil {
		c.logError("transfer failed", "op", op, "error", err)
		c.release()
		return 0, &TransportError{Op: op, Err: err}
	}

	c.dumpStatus(status)

	reply, err := protocol.ParseReply(status)
	if err != nil {
		c.release()
		return 0, &TransportError{Op: op, Err: err}
	}

	c.logDebug("exchange complete",
		"op", op,
		"data_len", len(data),
		"reply", reply.String(),
	)

	if reply == protocol.ReplyExit {
		c.logError("target replied exit", "op", op)
		c.release()
		return reply, &protocol.ProtocolError{Operation: op, Reply: reply}
	}

	return reply, nil
}

// Closed reports whether the device handle has been released.
func (c *Client) Closed() bool {
	return c.closed
}

// Close releases the device. Later calls return nil without touching the device.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.device.Close()
}

// release closes the device after a failed exchange.
func (c *Client) release() {
	if err := c.Close(); err != nil {
		c.logError("close device", "error", err)
	}
}

// dumpCommand writes every descriptor byte to the diagnostic stream.
func (c *Client) dumpCommand(cmd []byte) {
	if c.config.Diagnostics == nil {
		return
	}
	for i, b := range cmd {
		fmt.Fprintf(c.config.Diagnostics, "Sent data %02d: 0x%02x\n", i, b)
	}
}

// dumpStatus writes the non-zero status block bytes to the diagnostic stream.
func (c *Client) dumpStatus(status []byte) {
	if c.config.Diagnostics == nil {
		return
	}
	for i, b := range status {
		if b != 0 {
			fmt.Fprintf(c.config.Diagnostics, "Sense data %02d: 0x%02x\n", i, b)
		}
	}
}
