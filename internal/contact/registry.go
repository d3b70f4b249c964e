package contact

import (
	"context"
	"sync"
	"time"
)

// Channels keeps one Channel per visitor client id.
type Channels struct {
	mu     sync.Mutex
	sender Sender
	idle   time.Duration
	now    func() time.Time
	byID   map[string]*Channel
	onNew  func(clientID string, ch *Channel)
}

// NewChannels returns a registry whose channels send through sender and
// are dropped after idle without use.
func NewChannels(sender Sender, idle time.Duration) *Channels {
	return &Channels{
		sender: sender,
		idle:   idle,
		now:    time.Now,
		byID:   make(map[string]*Channel),
	}
}

// OnNew registers fn, called for each channel the registry creates.
func (cs *Channels) OnNew(fn func(clientID string, ch *Channel)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.onNew = fn
}

// Get returns the channel for clientID, creating it if needed. A fetched
// channel counts as used, so a sweep cannot drop it before the caller
// submits.
func (cs *Channels) Get(clientID string) *Channel {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if ch, ok := cs.byID[clientID]; ok {
		ch.touch(cs.now())
		return ch
	}
	ch := NewChannel(cs.sender)
	ch.now = cs.now
	ch.lastUsed = cs.now()
	cs.byID[clientID] = ch
	if cs.onNew != nil {
		cs.onNew(clientID, ch)
	}
	return ch
}

// Peek returns the channel for clientID without creating one.
func (cs *Channels) Peek(clientID string) (*Channel, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	ch, ok := cs.byID[clientID]
	return ch, ok
}

// Len returns the number of live channels.
func (cs *Channels) Len() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.byID)
}

// Sweep drops channels idle for longer than the registry's idle window.
// Channels in the middle of a submission are kept.
func (cs *Channels) Sweep() int {
	cutoff := cs.now().Add(-cs.idle)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	removed := 0
	for id, ch := range cs.byID {
		if ch.State() == StateSubmitting {
			continue
		}
		if ch.IdleSince().Before(cutoff) {
			delete(cs.byID, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (cs *Channels) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cs.Sweep()
		}
	}
}
