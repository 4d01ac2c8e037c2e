package updater

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ixonos/utp-com/protocol"
)

func TestPollTransitions(t *testing.T) {
	tests := []struct {
		from    PollState
		event   pollEvent
		want    PollState
		wantErr bool
	}{
		{from: PollSent, event: eventStart, want: PollPolling},
		{from: PollPolling, event: eventNotPass, want: PollPolling},
		{from: PollPolling, event: eventPass, want: PollDone},
		{from: PollPolling, event: eventFailed, want: PollFailed},
		{from: PollPolling, event: eventExhausted, want: PollTimedOut},
		{from: PollSent, event: eventPass, want: PollSent, wantErr: true},
		{from: PollDone, event: eventNotPass, want: PollDone, wantErr: true},
		{from: PollTimedOut, event: eventStart, want: PollTimedOut, wantErr: true},
		{from: PollFailed, event: eventPass, want: PollFailed, wantErr: true},
	}

	for _, tt := range tests {
		got, err := nextPollState(tt.from, tt.event)
		if tt.wantErr {
			assert.Error(t, err, "%s on %d", tt.from, tt.event)
		} else {
			assert.NoError(t, err, "%s on %d", tt.from, tt.event)
		}
		assert.Equal(t, tt.want, got, "%s on %d", tt.from, tt.event)
	}
}

func TestClassifyPoll(t *testing.T) {
	boom := errors.New("boom")

	assert.Equal(t, eventFailed, classifyPoll(protocol.ReplyPass, boom, 1, 500))
	assert.Equal(t, eventPass, classifyPoll(protocol.ReplyPass, nil, 500, 500))
	assert.Equal(t, eventNotPass, classifyPoll(protocol.ReplyBusy, nil, 499, 500))
	assert.Equal(t, eventExhausted, classifyPoll(protocol.ReplyBusy, nil, 500, 500))
	assert.Equal(t, eventExhausted, classifyPoll(protocol.ReplySize, nil, 500, 500))
}

func TestPollStateTerminal(t *testing.T) {
	assert.False(t, PollSent.Terminal())
	assert.False(t, PollPolling.Terminal())
	assert.True(t, PollDone.Terminal())
	assert.True(t, PollTimedOut.Terminal())
	assert.True(t, PollFailed.Terminal())
	assert.Equal(t, "timed_out", PollTimedOut.String())
}

func TestPollerWait(t *testing.T) {
	boom := errors.New("SG_IO ioctl error")

	tests := []struct {
		name         string
		replies      []protocol.Reply
		errs         map[int]error
		wantState    PollState
		wantAttempts int
		wantKind     Kind
	}{
		{
			name:         "pass on first poll",
			replies:      []protocol.Reply{protocol.ReplyPass},
			wantState:    PollDone,
			wantAttempts: 1,
		},
		{
			name:         "busy twice then pass",
			replies:      []protocol.Reply{protocol.ReplyBusy, protocol.ReplyBusy, protocol.ReplyPass},
			wantState:    PollDone,
			wantAttempts: 3,
		},
		{
			name:         "pass on the last allowed poll",
			replies:      append(busyReplies(DefaultPollAttempts-1), protocol.ReplyPass),
			wantState:    PollDone,
			wantAttempts: DefaultPollAttempts,
		},
		{
			name:         "never passes",
			replies:      busyReplies(DefaultPollAttempts + 10),
			wantState:    PollTimedOut,
			wantAttempts: DefaultPollAttempts,
			wantKind:     KindBusyTimeout,
		},
		{
			name:         "non-pass codes keep polling",
			replies:      []protocol.Reply{protocol.ReplySize, protocol.Reply(0x7F), protocol.ReplyPass},
			wantState:    PollDone,
			wantAttempts: 3,
		},
		{
			name:         "transport error stops polling",
			replies:      busyReplies(10),
			errs:         map[int]error{4: &TransportError{Op: "poll", Err: boom}},
			wantState:    PollFailed,
			wantAttempts: 4,
			wantKind:     KindTransport,
		},
		{
			name:         "exit stops polling",
			replies:      busyReplies(10),
			errs:         map[int]error{2: &protocol.ProtocolError{Operation: "poll", Reply: protocol.ReplyExit}},
			wantState:    PollFailed,
			wantAttempts: 2,
			wantKind:     KindProtocolExit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &scriptedExchanger{replies: tt.replies, errs: tt.errs}
			sleeper := &noSleep{}

			p := NewPoller(ex, withSleeper(sleeper))
			err := p.Wait(context.Background())

			assert.Equal(t, tt.wantKind, KindOf(err))
			assert.Equal(t, tt.wantState, p.State())
			assert.Equal(t, tt.wantAttempts, p.Attempts())
			assert.Len(t, ex.calls, tt.wantAttempts, "no exchanges after a terminal state")
			assert.Equal(t, tt.wantAttempts, sleeper.calls, "one sleep before every poll")
			assert.Equal(t, DefaultPollInterval, sleeper.interval)

			for i, cmd := range ex.calls {
				assert.Equal(t, protocol.BuildPollCmd(), cmd, "call %d", i)
				assert.Empty(t, ex.data[i], "poll carries no data")
			}
		})
	}
}

func TestPollerBusyTimeoutError(t *testing.T) {
	ex := &scriptedExchanger{replies: busyReplies(3)}

	p := NewPoller(ex, WithPollAttempts(3), WithPollInterval(0))
	err := p.Wait(context.Background())

	var busy *BusyTimeoutError
	require.ErrorAs(t, err, &busy)
	assert.Equal(t, 3, busy.Attempts)
	assert.Equal(t, protocol.ReplyBusy, busy.LastReply)
	assert.Contains(t, err.Error(), "device is busy")
}

func TestPollerCanceledWhileSleeping(t *testing.T) {
	ex := &scriptedExchanger{replies: busyReplies(10)}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := NewPoller(ex, func(c *Config) {
		c.sleep = func(ctx context.Context, d time.Duration) error {
			calls++
			if calls == 3 {
				cancel()
			}
			return ctx.Err()
		}
	})

	err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindCanceled, KindOf(err))
	assert.Equal(t, PollFailed, p.State())
	assert.Equal(t, 2, p.Attempts())
}

func TestPollerReportsProgress(t *testing.T) {
	ex := &scriptedExchanger{replies: []protocol.Reply{protocol.ReplyBusy, protocol.ReplyPass}}

	var seen []Progress
	p := NewPoller(ex,
		WithPollInterval(0),
		WithProgressCallback(func(pr Progress) { seen = append(seen, pr) }),
	)

	require.NoError(t, p.Wait(context.Background()))
	require.Len(t, seen, 2)
	assert.Equal(t, PhasePolling, seen[1].Phase)
	assert.Equal(t, 2, seen[1].PollAttempt)
	assert.Equal(t, DefaultPollAttempts, seen[1].MaxPollAttempts)
}

func TestPollerIsSingleUse(t *testing.T) {
	p := NewPoller(&scriptedExchanger{}, WithPollInterval(0))

	require.NoError(t, p.Wait(context.Background()))
	assert.Error(t, p.Wait(context.Background()))
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
