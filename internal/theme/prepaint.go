package theme

import (
	"strings"
	"sync"
)

// Bootstrap performs the pre-paint resolution. It is the same resolution
// the store does, so applying its result and then the store's is a no-op.
func Bootstrap(stored, system, fallback Theme) Document {
	return DocumentFor(Resolve(stored, system, fallback))
}

// Bridge is the pre-paint side of the theme system. It owns the document
// attributes, follows the store through its bus and never writes storage.
type Bridge struct {
	mu      sync.Mutex
	doc     Document
	applied int
	seq     uint64
	store   *Store
	detach  func()
}

// NewBridge starts from the attributes the page was rendered with.
func NewBridge(initial Document) *Bridge {
	return &Bridge{doc: initial}
}

// Attach subscribes the bridge to store. Changes the bridge itself
// originated are ignored.
func (b *Bridge) Attach(store *Store) {
	b.mu.Lock()
	if b.detach != nil {
		b.detach()
	}
	b.store = store
	b.seq = 0
	b.mu.Unlock()

	detach := store.Subscribe(b.follow)

	b.mu.Lock()
	b.detach = detach
	b.mu.Unlock()
}

// Detach stops following the store.
func (b *Bridge) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detach != nil {
		b.detach()
		b.detach = nil
	}
	b.store = nil
}

// Apply sets the document attributes for t. It is the shared entry point
// the browser exposes as window.applyTheme. Applying the current theme
// changes nothing.
func (b *Bridge) Apply(t Theme) Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.applyLocked(t)
	return b.doc
}

func (b *Bridge) applyLocked(t Theme) {
	if next := DocumentFor(t); b.doc != next {
		b.doc = next
		b.applied++
	}
}

// follow applies store changes in commit order. The bridge's own echoes
// only advance the sequence; SystemChanged applies those itself.
func (b *Bridge) follow(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c.Seq <= b.seq {
		return
	}
	b.seq = c.Seq
	if c.Source == SourcePrepaint {
		return
	}
	b.applyLocked(c.Theme)
}

// SystemChanged handles an OS preference change seen by the page. The
// store decides first: with an explicit choice it refuses and the document
// is left alone. An accepted change is applied unless a later commit has
// already reached the bridge.
func (b *Bridge) SystemChanged(t Theme) bool {
	b.mu.Lock()
	store := b.store
	b.mu.Unlock()

	if store == nil {
		return false
	}
	c, ok := store.systemChanged(t, SourcePrepaint)
	if !ok {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if c.Seq < b.seq {
		return true
	}
	b.seq = c.Seq
	b.applyLocked(c.Theme)
	return true
}

// Document returns the attributes currently applied.
func (b *Bridge) Document() Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc
}

// Mutations counts how many times Apply actually changed the document.
func (b *Bridge) Mutations() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applied
}

// Script returns the inline <head> script that applies the theme before
// first paint. It reads the preference cookie, falls back to the OS media
// query, exposes window.applyTheme and follows both OS changes and the
// store's themeChanged notifications (DOM event and websocket push).
func Script(cookieName string) string {
	return strings.ReplaceAll(prepaintJS, "__COOKIE__", cookieName)
}

const prepaintJS = `(function () {
  var KEY = "__COOKIE__";
  var META = { light: "#ffffff", dark: "#121212" };
  var root = document.documentElement;

  function stored() {
    var m = document.cookie.match(new RegExp("(?:^|; )" + KEY + "=(light|dark)(?:;|$)"));
    return m ? m[1] : null;
  }

  var mq = window.matchMedia ? window.matchMedia("(prefers-color-scheme: dark)") : null;

  function system() {
    if (mq) return mq.matches ? "dark" : "light";
    return root.getAttribute("data-theme") || "light";
  }

  function applyTheme(t) {
    if (t !== "light" && t !== "dark") return;
    if (root.getAttribute("data-theme") === t && root.classList.contains(t)) return;
    root.classList.remove("light", "dark");
    root.classList.add(t);
    root.setAttribute("data-theme", t);
    root.style.colorScheme = t;
    var meta = document.querySelector('meta[name="theme-color"]');
    if (meta) meta.setAttribute("content", META[t]);
  }

  window.applyTheme = applyTheme;
  window.craftburgerTab = Math.random().toString(36).slice(2);

  applyTheme(stored() || system());

  if (mq) {
    var onSystem = function (e) {
      if (!stored()) applyTheme(e.matches ? "dark" : "light");
    };
    if (mq.addEventListener) mq.addEventListener("change", onSystem);
    else if (mq.addListener) mq.addListener(onSystem);
  }

  document.addEventListener("themeChanged", function (e) {
    if (e.detail && e.detail.theme) applyTheme(e.detail.theme);
  });

  if (window.WebSocket) {
    try {
      var proto = location.protocol === "https:" ? "wss://" : "ws://";
      var ws = new WebSocket(proto + location.host + "/ws/theme?tab=" + window.craftburgerTab);
      ws.onmessage = function (m) {
        var msg;
        try { msg = JSON.parse(m.data); } catch (err) { return; }
        if (msg.type === "themeChanged") applyTheme(msg.theme);
      };
    } catch (err) {}
  }
})();`
