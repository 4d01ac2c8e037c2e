// Package updatertest provides a scripted UTP target for tests and demos.
//
// Target implements updater.Device. It decodes every descriptor, records
// the exchange, and answers from per-sub-command reply queues:
//
//	target := updatertest.NewTarget()
//	target.Enqueue(protocol.SubCmdPoll, protocol.ReplyBusy, protocol.ReplyBusy)
//	// third poll and later answer Pass
//
//	s := updater.NewSession(target.Open)
package updatertest

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/ixonos/utp-com/protocol"
	"github.com/ixonos/utp-com/updater"
)

// ErrClosed is returned by Transfer after Close.
var ErrClosed = errors.New("updatertest: target is closed")

// Exchange is one recorded transfer.
type Exchange struct {
	Command protocol.Command
	Data    []byte
	Timeout time.Duration
}

// Target is an in-memory UTP target.
type Target struct {
	queues    map[byte][]protocol.Reply
	defaults  map[byte]protocol.Reply
	failures  map[int]error
	sense     []byte
	exchanges []Exchange
	opens     int
	closes    int
	openErr   error
}

// NewTarget returns a target that answers Pass to everything.
func NewTarget() *Target {
	return &Target{
		queues:   make(map[byte][]protocol.Reply),
		defaults: make(map[byte]protocol.Reply),
		failures: make(map[int]error),
	}
}

// Enqueue schedules replies for successive exchanges of a sub-command.
// Once the queue is drained the sub-command's default reply is used.
func (t *Target) Enqueue(sub byte, replies ...protocol.Reply) {
	t.queues[sub] = append(t.queues[sub], replies...)
}

// SetDefault sets the reply used when a sub-command's queue is empty.
func (t *Target) SetDefault(sub byte, reply protocol.Reply) {
	t.defaults[sub] = reply
}

// FailAt makes the n-th exchange (1-based, counted across sub-commands) fail
// with err, as if the ioctl had failed.
func (t *Target) FailAt(n int, err error) {
	t.failures[n] = err
}

// SetSense sets status block bytes the target writes on every reply,
// apart from the reply code itself.
func (t *Target) SetSense(sense []byte) {
	t.sense = append([]byte(nil), sense...)
}

// SetOpenError makes Open fail with err.
func (t *Target) SetOpenError(err error) {
	t.openErr = err
}

// Open is an updater.OpenFunc that hands out this target.
func (t *Target) Open(path string) (updater.Device, error) {
	if t.openErr != nil {
		return nil, t.openErr
	}
	t.opens++
	return t, nil
}

// Transfer implements updater.Device.
func (t *Target) Transfer(cdb, data, sense []byte, timeout time.Duration) error {
	if t.closes > 0 {
		return ErrClosed
	}

	cmd, err := protocol.ParseCommand(cdb)
	if err != nil {
		return fmt.Errorf("updatertest: %w", err)
	}

	t.exchanges = append(t.exchanges, Exchange{
		Command: cmd,
		Data:    bytes.Clone(data),
		Timeout: timeout,
	})

	if err, ok := t.failures[len(t.exchanges)]; ok {
		return err
	}

	if len(sense) < protocol.StatusBlockSize {
		return fmt.Errorf("updatertest: sense buffer of %d bytes", len(sense))
	}
	copy(sense, t.sense)
	sense[protocol.ReplyOffset] = byte(t.nextReply(cmd.SubCommand))

	return nil
}

// Close implements updater.Device.
func (t *Target) Close() error {
	t.closes++
	return nil
}

func (t *Target) nextReply(sub byte) protocol.Reply {
	if q := t.queues[sub]; len(q) > 0 {
		t.queues[sub] = q[1:]
		return q[0]
	}
	return t.defaults[sub]
}

// Exchanges returns every recorded transfer in order, including failed ones.
func (t *Target) Exchanges() []Exchange {
	return t.exchanges
}

// Count returns the number of recorded transfers of a sub-command.
func (t *Target) Count(sub byte) int {
	n := 0
	for _, ex := range t.exchanges {
		if ex.Command.SubCommand == sub {
			n++
		}
	}
	return n
}

// Received concatenates the data phases of a sub-command's transfers.
func (t *Target) Received(sub byte) []byte {
	var buf bytes.Buffer
	for _, ex := range t.exchanges {
		if ex.Command.SubCommand == sub {
			buf.Write(ex.Data)
		}
	}
	return buf.Bytes()
}

// Opens returns how many times Open handed out the target.
func (t *Target) Opens() int {
	return t.opens
}

// Closes returns how many times Close was called.
func (t *Target) Closes() int {
	return t.closes
}
