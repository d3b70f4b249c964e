package theme

import "sync"

// Source identifies who initiated a theme change.
type Source string

const (
	// SourceUser is an explicit toggle or set.
	SourceUser Source = "user"
	// SourceSystem is an OS preference change reported to the store.
	SourceSystem Source = "system"
	// SourcePrepaint is an OS change first applied by the pre-paint bridge.
	SourcePrepaint Source = "prepaint"
)

// Change is one theme notification.
type Change struct {
	Seq      uint64 `json:"seq"`
	Theme    Theme  `json:"theme"`
	Previous Theme  `json:"previous"`
	Source   Source `json:"source"`
}

// Listener receives changes.
type Listener func(Change)

type subscriber struct {
	id uint64
	fn Listener
}

type pending struct {
	change Change
	to     []subscriber
}

// Bus delivers changes synchronously, in the order they were dispatched.
// The recipients of a change are fixed when it is dispatched, so a listener
// subscribed afterwards misses it. A listener may dispatch; the nested change
// is queued behind the one being delivered.
type Bus struct {
	mu       sync.Mutex
	seq      uint64
	nextID   uint64
	subs     []subscriber
	queue    []pending
	draining bool
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dispatch assigns c the next sequence number and delivers it.
func (b *Bus) Dispatch(c Change) Change {
	c = b.enqueue(c)
	b.drain()
	return c
}

func (b *Bus) enqueue(c Change) Change {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	c.Seq = b.seq
	to := make([]subscriber, len(b.subs))
	copy(to, b.subs)
	b.queue = append(b.queue, pending{change: c, to: to})
	return c
}

func (b *Bus) drain() {
	b.mu.Lock()
	if b.draining {
		b.mu.Unlock()
		return
	}
	b.draining = true
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()
		for _, s := range next.to {
			s.fn(next.change)
		}
		b.mu.Lock()
	}
	b.draining = false
	b.mu.Unlock()
}
