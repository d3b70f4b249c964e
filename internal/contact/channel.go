package contact

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Sender delivers a submission to the form backend.
type Sender interface {
	Send(ctx context.Context, sub Submission) error
}

// Outcome is reported once per finished submission.
type Outcome struct {
	State      State
	HTTPStatus int
	Err        error
}

// Channel is one visitor's contact form: idle -> submitting -> success|error.
// A terminal state stays until the next submit; nothing retries.
type Channel struct {
	mu        sync.Mutex
	sender    Sender
	state     State
	lastErr   error
	lastUsed  time.Time
	now       func() time.Time
	onChange  []func(from, to State)
	onOutcome func(Outcome)
}

// NewChannel returns an idle channel.
func NewChannel(sender Sender) *Channel {
	return &Channel{
		sender:   sender,
		state:    StateIdle,
		now:      time.Now,
		lastUsed: time.Now(),
	}
}

// State returns the current state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error of the last failed submission.
func (c *Channel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// OnTransition registers fn for every state change.
func (c *Channel) OnTransition(fn func(from, to State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// OnOutcome registers fn for every finished submission.
func (c *Channel) OnOutcome(fn func(Outcome)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOutcome = fn
}

// Submit validates sub and sends it. Invalid input is rejected without a
// state change; a submit while submitting returns ErrSubmitInProgress.
func (c *Channel) Submit(ctx context.Context, sub Submission) (State, error) {
	if err := sub.Validate(); err != nil {
		return c.State(), err
	}
	sub = sub.Normalize()

	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return StateSubmitting, ErrSubmitInProgress
	}
	c.lastUsed = c.now()
	c.transitionLocked(StateSubmitting)
	c.mu.Unlock()

	err := c.sender.Send(ctx, sub)

	outcome := Outcome{State: StateSuccess}
	if err != nil {
		outcome.State = StateError
		outcome.Err = err
		var se *StatusError
		if errors.As(err, &se) {
			outcome.HTTPStatus = se.StatusCode
		}
	}

	c.mu.Lock()
	c.lastErr = err
	c.lastUsed = c.now()
	c.transitionLocked(outcome.State)
	report := c.onOutcome
	c.mu.Unlock()

	if report != nil {
		report(outcome)
	}
	return outcome.State, err
}

// IdleSince returns when the channel was last fetched, or last started or
// finished a submission.
func (c *Channel) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}

func (c *Channel) touch(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.lastUsed) {
		c.lastUsed = t
	}
}

func (c *Channel) transitionLocked(to State) {
	from := c.state
	c.state = to
	for _, fn := range c.onChange {
		fn(from, to)
	}
}
