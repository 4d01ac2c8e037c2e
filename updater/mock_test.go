package updater

import (
	"bytes"
	"context"
	"time"

	"github.com/ixonos/utp-com/protocol"
)

// MockDevice records transfers and answers with scripted reply codes.
type MockDevice struct {
	replies     []protocol.Reply
	transferErr error
	closeErr    error
	sense       []byte

	cdbs     [][]byte
	data     [][]byte
	timeouts []time.Duration
	closes   int
}

func (m *MockDevice) Transfer(cdb, data, sense []byte, timeout time.Duration) error {
	m.cdbs = append(m.cdbs, bytes.Clone(cdb))
	m.data = append(m.data, bytes.Clone(data))
	m.timeouts = append(m.timeouts, timeout)

	if m.transferErr != nil {
		return m.transferErr
	}

	copy(sense, m.sense)
	if len(m.replies) > 0 {
		sense[protocol.ReplyOffset] = byte(m.replies[0])
		m.replies = m.replies[1:]
	}
	return nil
}

func (m *MockDevice) Close() error {
	m.closes++
	return m.closeErr
}

// scriptedExchanger answers Exchange calls from a script without a device.
type scriptedExchanger struct {
	replies []protocol.Reply
	errs    map[int]error

	calls [][]byte
	data  [][]byte
}

func (s *scriptedExchanger) Exchange(ctx context.Context, cmd, data []byte) (protocol.Reply, error) {
	s.calls = append(s.calls, bytes.Clone(cmd))
	s.data = append(s.data, bytes.Clone(data))

	if err, ok := s.errs[len(s.calls)]; ok {
		return 0, err
	}

	if len(s.replies) == 0 {
		return protocol.ReplyPass, nil
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

// busyReplies returns n Busy replies.
func busyReplies(n int) []protocol.Reply {
	r := make([]protocol.Reply, n)
	for i := range r {
		r[i] = protocol.ReplyBusy
	}
	return r
}

// noSleep replaces the poll sleep in tests and counts calls.
type noSleep struct {
	calls    int
	interval time.Duration
}

func (n *noSleep) sleep(ctx context.Context, d time.Duration) error {
	n.calls++
	n.interval = d
	return ctx.Err()
}

func withSleeper(s *noSleep) Option {
	return func(c *Config) {
		c.sleep = s.sleep
	}
}
