package theme

import "sync"

// Store owns the current theme. It is the only writer of the persisted
// preference; everything else observes it through Subscribe.
type Store struct {
	mu         sync.Mutex
	storage    Storage
	persistent bool
	explicit   bool
	system     Theme
	theme      Theme
	bus        *Bus
}

// NewStore resolves the initial theme: stored preference, else system (the
// OS preference, may be empty), else fallback. A storage error puts the
// store in memory-only mode for the rest of its life.
func NewStore(storage Storage, system, fallback Theme) *Store {
	s := &Store{
		storage:    storage,
		persistent: storage != nil,
		bus:        NewBus(),
	}
	if system.Valid() {
		s.system = system
	}

	var stored Theme
	if s.persistent {
		t, ok, err := storage.Load()
		switch {
		case err != nil:
			s.persistent = false
		case ok:
			stored = t
			s.explicit = true
		}
	}
	s.theme = Resolve(stored, system, fallback)
	return s
}

// Theme returns the current theme.
func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Colors returns the palette of the current theme.
func (s *Store) Colors() Colors {
	return ColorsFor(s.Theme())
}

// Document returns the document attributes of the current theme.
func (s *Store) Document() Document {
	return DocumentFor(s.Theme())
}

// Persistent reports whether changes still reach storage.
func (s *Store) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistent
}

// Explicit reports whether the visitor has chosen a theme.
func (s *Store) Explicit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.explicit
}

// System returns the last known OS preference, if any.
func (s *Store) System() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.system
}

// Subscribe registers fn for every later change.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// Toggle flips the theme, persists it as an explicit choice and returns it.
func (s *Store) Toggle() Theme {
	s.mu.Lock()
	next := s.theme.Opposite()
	s.commitLocked(next, SourceUser)
	s.mu.Unlock()

	s.bus.drain()
	return next
}

// Set records t as the explicit choice.
func (s *Store) Set(t Theme) (Theme, error) {
	if !t.Valid() {
		return s.Theme(), ErrUnknownTheme
	}
	s.mu.Lock()
	s.commitLocked(t, SourceUser)
	s.mu.Unlock()

	s.bus.drain()
	return t, nil
}

// SystemChanged reports a new OS preference. It changes the theme only when
// no explicit choice exists and returns whether it did.
func (s *Store) SystemChanged(t Theme) bool {
	_, ok := s.systemChanged(t, SourceSystem)
	return ok
}

// systemChanged returns the committed change so callers can order it
// against other deliveries by Seq.
func (s *Store) systemChanged(t Theme, src Source) (Change, bool) {
	if !t.Valid() {
		return Change{}, false
	}
	s.mu.Lock()
	s.system = t
	if s.explicit || s.theme == t {
		s.mu.Unlock()
		return Change{}, false
	}
	c := s.commitLocked(t, src)
	s.mu.Unlock()

	s.bus.drain()
	return c, true
}

// commitLocked applies t and queues its notification. Queuing under s.mu
// keeps bus order equal to commit order; delivery happens after unlock.
func (s *Store) commitLocked(t Theme, src Source) Change {
	prev := s.theme
	s.theme = t

	if src == SourceUser {
		s.explicit = true
		if s.persistent {
			if err := s.storage.Save(t); err != nil {
				s.persistent = false
			}
		}
	}

	if prev == t {
		return Change{}
	}
	return s.bus.enqueue(Change{Theme: t, Previous: prev, Source: src})
}
