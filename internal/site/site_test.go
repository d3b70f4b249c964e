package site

import (
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/craftburger/internal/contact"
	"github.com/ziadkadry99/craftburger/internal/content"
	"github.com/ziadkadry99/craftburger/internal/logging"
	"github.com/ziadkadry99/craftburger/internal/router"
	"github.com/ziadkadry99/craftburger/internal/session"
	"github.com/ziadkadry99/craftburger/internal/theme"
)

func setupSite(t *testing.T) (*Site, *ThemeHub, chi.Router) {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	hub := NewThemeHub(logging.Nop())
	t.Cleanup(hub.Close)

	s, err := New(c, router.Default(), hub, Options{ThemeCookie: "theme", DefaultTheme: theme.Light}, logging.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return s, hub, r
}

// visit issues a GET as a returning visitor who already saw the splash.
func visit(r http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: session.SplashCookie, Value: "1"})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestFirstVisitShowsSplash(t *testing.T) {
	_, _, r := setupSite(t)

	req := httptest.NewRequest(http.MethodGet, "/menu?category=Desserts&item=chocolat-sundae", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `data-view="splash"`) {
		t.Error("expected splash view")
	}
	if !strings.Contains(body, `http-equiv="refresh"`) || !strings.Contains(body, "item=chocolat-sundae") {
		t.Error("expected splash to forward to the requested deep link")
	}
	if responseCookie(w, session.SplashCookie) == nil {
		t.Error("expected splash cookie to be set")
	}
	if responseCookie(w, session.ClientCookie) == nil {
		t.Error("expected client cookie to be issued")
	}
}

var refreshTarget = regexp.MustCompile(`http-equiv="refresh" content="2;url=([^"]+)"`)

func TestCookielessVisitorLeavesSplash(t *testing.T) {
	_, _, r := setupSite(t)

	target := "/menu?category=Desserts&item=chocolat-sundae"
	for hop := 0; hop < 3; hop++ {
		// No cookie from an earlier response is sent back.
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", target, w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, `data-view="splash"`) {
			for _, s := range []string{
				`data-view="menu"`,
				`data-category="Desserts"`,
				`data-scroll-anchor="item-chocolat-sundae"`,
			} {
				if !strings.Contains(body, s) {
					t.Errorf("GET %s: body missing %q", target, s)
				}
			}
			if hop != 1 {
				t.Errorf("reached content after %d hops, want 1", hop)
			}
			return
		}

		m := refreshTarget.FindStringSubmatch(body)
		if m == nil {
			t.Fatalf("GET %s: splash without forward target", target)
		}
		target = html.UnescapeString(m[1])
	}
	t.Fatal("visitor never left the splash view")
}

func TestPagesRender(t *testing.T) {
	_, _, r := setupSite(t)

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{`data-view="home"`, "Accueil | Craft Burger Co.", "Nos Spécialités", "/menu?category=Burgers&amp;item=classic-burger"}},
		{"/restaurants", []string{`data-view="restaurants"`, "Craft Burger Co. Paris"}},
		{"/contact", []string{`data-view="contact"`, `id="contact-form"`, contact.MessageSubmitting}},
		{"/menu", []string{`data-view="menu"`, `data-category="Burgers"`, `data-scroll="top"`}},
	}
	for _, tt := range tests {
		w := visit(r, tt.path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", tt.path, w.Code)
			continue
		}
		body := w.Body.String()
		for _, s := range tt.want {
			if !strings.Contains(body, s) {
				t.Errorf("GET %s: body missing %q", tt.path, s)
			}
		}
	}
}

func TestMenuDeepLinkScrollsAfterCategorySwitch(t *testing.T) {
	_, _, r := setupSite(t)

	// The item lives in Desserts even though no category is given.
	w := visit(r, "/menu?item=chocolat-sundae")
	body := w.Body.String()

	for _, s := range []string{
		`data-category="Desserts"`,
		`data-generation="2"`,
		`data-scroll="deferred"`,
		`data-scroll-anchor="item-chocolat-sundae"`,
		`class="menu-item highlight" id="item-chocolat-sundae"`,
	} {
		if !strings.Contains(body, s) {
			t.Errorf("body missing %q", s)
		}
	}
}

func TestMenuUnknownCategoryFallsBack(t *testing.T) {
	_, _, r := setupSite(t)

	w := visit(r, "/menu?category=Pizzas&item=ghost")
	body := w.Body.String()
	if !strings.Contains(body, `data-category="Burgers"`) {
		t.Error("expected default category")
	}
	if !strings.Contains(body, `data-scroll-anchor=""`) {
		t.Error("expected no scroll target for an unknown item")
	}
	if strings.Contains(body, "menu-item highlight") {
		t.Error("expected no highlighted item")
	}
}

func TestUnknownPaths(t *testing.T) {
	_, _, r := setupSite(t)

	tests := []struct {
		path     string
		status   int
		location string
	}{
		{"/nowhere", http.StatusSeeOther, "/"},
		{"/menu/extra", http.StatusSeeOther, "/"},
		{"/menu/?item=fries", http.StatusSeeOther, "/menu?item=fries"},
		{"/api/nowhere", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		w := visit(r, tt.path)
		if w.Code != tt.status {
			t.Errorf("GET %s: expected %d, got %d", tt.path, tt.status, w.Code)
		}
		if got := w.Header().Get("Location"); got != tt.location {
			t.Errorf("GET %s: Location = %q, want %q", tt.path, got, tt.location)
		}
	}
}

func TestThemeResolutionOnPage(t *testing.T) {
	_, _, r := setupSite(t)

	tests := []struct {
		name   string
		cookie string
		hint   string
		want   string
	}{
		{"fallback", "", "", `class="light"`},
		{"system", "", `"dark"`, `class="dark"`},
		{"stored wins", "light", `"dark"`, `class="light"`},
		{"malformed cookie", "purple", `"dark"`, `class="dark"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: session.SplashCookie, Value: "1"})
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "theme", Value: tt.cookie})
			}
			if tt.hint != "" {
				req.Header.Set(ClientHint, tt.hint)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("expected html %s", tt.want)
			}
			if responseCookie(w, "theme") != nil {
				t.Error("rendering a page must not write the preference")
			}
			if w.Header().Get("Accept-CH") != ClientHint {
				t.Errorf("Accept-CH = %q", w.Header().Get("Accept-CH"))
			}
		})
	}
}

func postTheme(r http.Handler, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeTheme(t *testing.T, w *httptest.ResponseRecorder) themeResponse {
	t.Helper()
	var resp themeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return resp
}

func TestThemeToggle(t *testing.T) {
	_, _, r := setupSite(t)

	w := postTheme(r, nil, &http.Cookie{Name: "theme", Value: "dark"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeTheme(t, w)
	if resp.Theme != theme.Light || resp.Document.Class != "light" || !resp.Explicit {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Colors != theme.ColorsFor(theme.Light) {
		t.Errorf("colors = %+v", resp.Colors)
	}
	c := responseCookie(w, "theme")
	if c == nil || c.Value != "light" || c.HttpOnly {
		t.Errorf("theme cookie = %+v", c)
	}
}

func TestThemeSet(t *testing.T) {
	_, _, r := setupSite(t)

	w := postTheme(r, url.Values{"theme": {"dark"}})
	if resp := decodeTheme(t, w); resp.Theme != theme.Dark || !resp.Persistent {
		t.Errorf("unexpected response: %+v", resp)
	}

	w = postTheme(r, url.Values{"theme": {"sepia"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestThemeSystemChange(t *testing.T) {
	_, _, r := setupSite(t)

	// No explicit choice: follows the OS without persisting it.
	w := postTheme(r, url.Values{"system": {"dark"}})
	resp := decodeTheme(t, w)
	if resp.Theme != theme.Dark || resp.Explicit {
		t.Errorf("unexpected response: %+v", resp)
	}
	if responseCookie(w, "theme") != nil {
		t.Error("system change must not be persisted")
	}

	// Explicit choice wins.
	w = postTheme(r, url.Values{"system": {"dark"}}, &http.Cookie{Name: "theme", Value: "light"})
	if resp := decodeTheme(t, w); resp.Theme != theme.Light {
		t.Errorf("theme = %s, want light", resp.Theme)
	}
}

func TestThemeState(t *testing.T) {
	_, _, r := setupSite(t)

	req := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
	req.Header.Set(ClientHint, `"dark"`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := decodeTheme(t, w)
	if resp.Theme != theme.Dark || resp.Explicit {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestStaticAssets(t *testing.T) {
	s, _, r := setupSite(t)

	w := visit(r, "/static/style.css")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
	etag := w.Header().Get("ETag")
	if etag != `"`+s.AssetVersion()+`"` {
		t.Errorf("ETag = %q", etag)
	}

	req := httptest.NewRequest(http.MethodGet, "/static/app.js", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Errorf("expected 304, got %d", w.Code)
	}

	if w := visit(r, "/static/missing.css"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestContactPageOutcome(t *testing.T) {
	_, _, r := setupSite(t)

	tests := map[string]string{
		"/contact?state=success":          contact.MessageSuccess,
		"/contact?state=error":            contact.MessageError,
		"/contact?state=idle&field=email": contact.MessageInvalid,
	}
	for target, want := range tests {
		w := visit(r, target)
		if !strings.Contains(w.Body.String(), html.EscapeString(want)) {
			t.Errorf("GET %s: body missing %q", target, want)
		}
	}
}

func TestPaletteCSS(t *testing.T) {
	css := string(paletteCSS())
	if !strings.Contains(css, "html.light{") || !strings.Contains(css, "html.dark{") {
		t.Errorf("unexpected css: %s", css)
	}
	if !strings.Contains(css, theme.ColorsFor(theme.Dark).Background) {
		t.Error("expected dark background in css")
	}
}
