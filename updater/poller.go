package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/ixonos/utp-com/protocol"
)

// PollState is a state of the completion poller.
type PollState int

const (
	// PollSent is the initial state: Exec has been sent, no poll issued yet
	PollSent PollState = iota

	// PollPolling means polls are being issued
	PollPolling

	// PollDone means the target replied Pass
	PollDone

	// PollTimedOut means the poll budget ran out
	PollTimedOut

	// PollFailed means an exchange failed or the wait was canceled
	PollFailed
)

func (s PollState) String() string {
	switch s {
	case PollSent:
		return "sent"
	case PollPolling:
		return "polling"
	case PollDone:
		return "done"
	case PollTimedOut:
		return "timed_out"
	case PollFailed:
		return "failed"
	default:
		return fmt.Sprintf("PollState(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are possible.
func (s PollState) Terminal() bool {
	return s == PollDone || s == PollTimedOut || s == PollFailed
}

type pollEvent int

const (
	eventStart pollEvent = iota
	eventPass
	eventNotPass
	eventFailed
	eventExhausted
)

var pollTransitions = map[PollState]map[pollEvent]PollState{
	PollSent: {
		eventStart: PollPolling,
	},
	PollPolling: {
		eventPass:      PollDone,
		eventNotPass:   PollPolling,
		eventFailed:    PollFailed,
		eventExhausted: PollTimedOut,
	},
}

// nextPollState looks up the transition table.
func nextPollState(s PollState, ev pollEvent) (PollState, error) {
	next, ok := pollTransitions[s][ev]
	if !ok {
		return s, fmt.Errorf("no poll transition from %s on event %d", s, ev)
	}
	return next, nil
}

// classifyPoll maps the outcome of one poll exchange to an event.
// attempts counts the poll just made.
func classifyPoll(reply protocol.Reply, err error, attempts, maxAttempts int) pollEvent {
	switch {
	case err != nil:
		return eventFailed
	case reply == protocol.ReplyPass:
		return eventPass
	case attempts >= maxAttempts:
		return eventExhausted
	default:
		return eventNotPass
	}
}

// Poller waits for the target to finish an Exec by repeatedly sending Poll.
// A Poller is single use.
type Poller struct {
	logHelper
	client    Exchanger
	config    Config
	state     PollState
	attempts  int
	lastReply protocol.Reply
	started   time.Time
}

// NewPoller creates a Poller that polls through client.
func NewPoller(client Exchanger, opts ...Option) *Poller {
	return newPoller(client, buildConfig(opts))
}

func newPoller(client Exchanger, cfg Config) *Poller {
	return &Poller{
		logHelper: logHelper{logger: cfg.Logger},
		client:    client,
		config:    cfg,
		state:     PollSent,
		lastReply: protocol.ReplyBusy,
	}
}

// State returns the current state.
func (p *Poller) State() PollState {
	return p.state
}

// Attempts returns the number of polls issued.
func (p *Poller) Attempts() int {
	return p.attempts
}

// Wait polls until the target replies Pass, the poll budget runs out, or an
// exchange fails.
//
// Each attempt sleeps the poll interval first. Running out of attempts
// returns *BusyTimeoutError. Exchange errors are returned unchanged.
func (p *Poller) Wait(ctx context.Context) error {
	if err := p.fire(eventStart); err != nil {
		return err
	}
	if p.started.IsZero() {
		p.started = time.Now()
	}

	for !p.state.Terminal() {
		if err := p.config.sleep(ctx, p.config.PollInterval); err != nil {
			_ = p.fire(eventFailed)
			return fmt.Errorf("poll canceled after %d attempts: %w", p.attempts, err)
		}

		p.attempts++
		reply, err := p.client.Exchange(ctx, protocol.BuildPollCmd(), nil)
		ev := classifyPoll(reply, err, p.attempts, p.config.PollAttempts)
		if err == nil {
			p.lastReply = reply
		}

		if fireErr := p.fire(ev); fireErr != nil {
			return fireErr
		}

		p.reportProgress()

		if err != nil {
			return err
		}
	}

	if p.state == PollTimedOut {
		p.logError("device is busy", "attempts", p.attempts, "last_reply", p.lastReply.String())
		return &BusyTimeoutError{Attempts: p.attempts, LastReply: p.lastReply}
	}

	p.logDebug("command complete", "attempts", p.attempts)
	return nil
}

func (p *Poller) fire(ev pollEvent) error {
	next, err := nextPollState(p.state, ev)
	if err != nil {
		return err
	}
	if next != p.state {
		p.logDebug("poll state", "from", p.state.String(), "to", next.String(), "attempts", p.attempts)
	}
	p.state = next
	return nil
}

func (p *Poller) reportProgress() {
	p.config.reportProgress(Progress{
		Phase:           PhasePolling,
		PollAttempt:     p.attempts,
		MaxPollAttempts: p.config.PollAttempts,
		ElapsedTime:     time.Since(p.started),
	})
}
