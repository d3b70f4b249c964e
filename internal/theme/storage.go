package theme

import (
	"errors"
	"net/http"
	"sync"
	"time"
)

// ErrStorageUnavailable is returned by a Storage that cannot be read or written.
var ErrStorageUnavailable = errors.New("theme storage unavailable")

// Storage persists the explicit theme preference.
// Load reports ok=false when nothing (or nothing valid) is stored.
type Storage interface {
	Load() (t Theme, ok bool, err error)
	Save(t Theme) error
}

// CookieMaxAge is how long a stored preference survives.
const CookieMaxAge = 365 * 24 * time.Hour

// CookieStorage keeps the preference in a cookie readable by the pre-paint
// script, so it is not HttpOnly.
type CookieStorage struct {
	name   string
	secure bool
	r      *http.Request
	w      http.ResponseWriter
}

// NewCookieStorage binds the cookie called name to one request/response pair.
func NewCookieStorage(name string, w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{
		name:   name,
		secure: r != nil && r.TLS != nil,
		r:      r,
		w:      w,
	}
}

// Load reads the preference from the request cookie. A malformed value is
// treated as absent.
func (c *CookieStorage) Load() (Theme, bool, error) {
	if c.r == nil {
		return "", false, ErrStorageUnavailable
	}
	cookie, err := c.r.Cookie(c.name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	t, err := Parse(cookie.Value)
	if err != nil {
		return "", false, nil
	}
	return t, true, nil
}

// Save sets the preference cookie on the response.
func (c *CookieStorage) Save(t Theme) error {
	if c.w == nil {
		return ErrStorageUnavailable
	}
	if !t.Valid() {
		return ErrUnknownTheme
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     c.name,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// MemoryStorage is a process-local Storage.
type MemoryStorage struct {
	mu    sync.Mutex
	theme Theme
	set   bool
}

// NewMemoryStorage returns a MemoryStorage, optionally seeded with a stored value.
func NewMemoryStorage(seed Theme) *MemoryStorage {
	return &MemoryStorage{theme: seed, set: seed.Valid()}
}

func (m *MemoryStorage) Load() (Theme, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme, m.set, nil
}

func (m *MemoryStorage) Save(t Theme) error {
	if !t.Valid() {
		return ErrUnknownTheme
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = t
	m.set = true
	return nil
}
