// Package site renders the public pages and serves the theme endpoints and
// static assets they depend on.
package site

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/craftburger/internal/contact"
	"github.com/ziadkadry99/craftburger/internal/content"
	"github.com/ziadkadry99/craftburger/internal/logging"
	"github.com/ziadkadry99/craftburger/internal/menu"
	"github.com/ziadkadry99/craftburger/internal/router"
	"github.com/ziadkadry99/craftburger/internal/session"
	"github.com/ziadkadry99/craftburger/internal/theme"
)

// ClientHint is the request header carrying the OS color scheme.
const ClientHint = "Sec-CH-Prefers-Color-Scheme"

// TabHeader identifies the tab that issued a theme change.
const TabHeader = "X-Tab-ID"

// Options configures a Site.
type Options struct {
	// Brand overrides the brand name from the content file when set.
	Brand        string
	ThemeCookie  string
	DefaultTheme theme.Theme
}

// Site serves the pages of one content set.
type Site struct {
	content *content.Site
	routes  *router.Table
	hub     *ThemeHub
	opts    Options
	logger  *logging.Logger

	pages    map[router.View]*template.Template
	items    *template.Template
	themeCSS template.CSS
	prepaint template.JS
	version  string
}

// New parses the page templates and returns a Site. A nil hub disables
// cross-tab theme pushes.
func New(c *content.Site, routes *router.Table, hub *ThemeHub, opts Options, logger *logging.Logger) (*Site, error) {
	if opts.ThemeCookie == "" {
		opts.ThemeCookie = "theme"
	}
	if opts.Brand == "" {
		opts.Brand = c.Brand.Name
	}

	s := &Site{
		content:  c,
		routes:   routes,
		hub:      hub,
		opts:     opts,
		logger:   logger.With("component", "site"),
		pages:    make(map[router.View]*template.Template),
		themeCSS: paletteCSS(),
		prepaint: template.JS(theme.Script(opts.ThemeCookie)),
		version:  assetVersion(),
	}

	base, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	for view, src := range map[router.View]string{
		router.ViewSplash:      splashTemplate,
		router.ViewHome:        homeTemplate,
		router.ViewMenu:        menuTemplate,
		router.ViewRestaurants: restaurantsTemplate,
		router.ViewContact:     contactTemplate,
	} {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if s.pages[view], err = clone.Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", view, err)
		}
	}
	if s.items, err = template.New("items").Parse(menuItemsTemplate); err != nil {
		return nil, fmt.Errorf("parsing menu items template: %w", err)
	}
	return s, nil
}

// RegisterRoutes mounts the pages, the theme endpoints, the static assets
// and the fallback for unknown paths.
func (s *Site) RegisterRoutes(r chi.Router) {
	for _, route := range s.routes.Routes() {
		r.Get(route.Path, s.handlePage)
	}
	r.Post("/theme", s.handleTheme)
	r.Get("/api/theme", s.handleThemeState)
	r.Get("/static/{file}", s.handleStatic)
	if s.hub != nil {
		r.Get("/ws/theme", s.hub.ServeWS)
	}
	r.NotFound(s.handleNotFound)
}

// AssetVersion is the cache-busting token appended to asset URLs.
func (s *Site) AssetVersion() string { return s.version }

type navLink struct {
	Path   string
	Title  string
	Active bool
}

type pageData struct {
	Brand        string
	Title        string
	View         router.View
	Nav          []navLink
	Theme        theme.Document
	ThemeCookie  string
	ThemeCSS     template.CSS
	PrepaintJS   template.JS
	AssetVersion string
	Scroll       router.Scroll
	ScrollAnchor string

	Splash      *splashPage
	Home        *content.Site
	Menu        *menuPage
	Restaurants []content.Restaurant
	Contact     *contactPage
}

type splashPage struct {
	Next    string
	Tagline string
}

type menuPage struct {
	Active     string
	Categories []string
	Items      template.HTML
}

type menuItems struct {
	Category    string
	Generation  uint64
	Highlighted string
	Items       []menu.Item
}

type contactPage struct {
	Info       content.ContactInfo
	State      contact.State
	Message    string
	Submitting string
}

func (s *Site) handlePage(w http.ResponseWriter, r *http.Request) {
	session.ClientID(w, r)
	setClientHints(w)

	d := s.routes.Enter(r.URL.Path, r.URL.RawQuery, session.SplashSeen(r))
	if d.Redirect != "" {
		http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
		return
	}

	route, _ := s.routes.Resolve(r.URL.Path)
	store := s.themeStore(w, r)
	data := pageData{
		Brand:        s.opts.Brand,
		Title:        route.Title,
		View:         d.View,
		Theme:        store.Document(),
		ThemeCookie:  s.opts.ThemeCookie,
		ThemeCSS:     s.themeCSS,
		PrepaintJS:   s.prepaint,
		AssetVersion: s.version,
		Scroll:       router.ScrollPolicy(route, r.URL.Query()),
	}
	for _, n := range s.routes.Nav() {
		data.Nav = append(data.Nav, navLink{Path: n.Path, Title: n.Title, Active: n.Path == route.Path})
	}

	switch d.View {
	case router.ViewSplash:
		session.MarkSplashSeen(w, r)
		data.Title = ""
		data.Nav = nil
		data.Scroll = router.ScrollTop
		data.Splash = &splashPage{Next: s.routes.SafeNext(d.Next), Tagline: s.content.Brand.Tagline}
	case router.ViewHome:
		data.Home = s.content
	case router.ViewMenu:
		page, anchor, err := s.menuPage(r.URL.Query())
		if err != nil {
			s.logger.Error(err, "rendering menu items")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		data.Menu = page
		data.ScrollAnchor = anchor
	case router.ViewRestaurants:
		data.Restaurants = s.content.Restaurants
	case router.ViewContact:
		data.Contact = s.contactPage(r.URL.Query())
	}

	s.render(w, d.View, data)
}

// menuPage renders the active category first and only then asks the view
// for the scroll target, so a deep link never scrolls before its category
// is on the page.
func (s *Site) menuPage(q url.Values) (*menuPage, string, error) {
	catalog := s.content.Catalog
	view := menu.NewView(catalog)
	view.Apply(catalog.Resolve(menu.ParseDeepLink(q)))

	gen := view.Generation()
	var buf bytes.Buffer
	err := s.items.ExecuteTemplate(&buf, "menu-items", menuItems{
		Category:    view.Active(),
		Generation:  gen,
		Highlighted: view.Highlighted(),
		Items:       view.Items(),
	})
	if err != nil {
		return nil, "", err
	}
	anchor, _ := view.Rendered(gen)

	return &menuPage{
		Active:     view.Active(),
		Categories: catalog.Names(),
		Items:      template.HTML(buf.String()),
	}, anchor, nil
}

func (s *Site) contactPage(q url.Values) *contactPage {
	page := &contactPage{Info: s.content.Contact, State: contact.StateIdle, Submitting: contact.MessageSubmitting}
	switch {
	case q.Get("field") != "":
		page.Message = contact.MessageInvalid
	case contact.State(q.Get("state")) == contact.StateSuccess:
		page.State = contact.StateSuccess
		page.Message = contact.MessageSuccess
	case contact.State(q.Get("state")) == contact.StateError:
		page.State = contact.StateError
		page.Message = contact.MessageError
	}
	return page
}

func (s *Site) render(w http.ResponseWriter, view router.View, data pageData) {
	var buf bytes.Buffer
	if err := s.pages[view].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error(err, "rendering page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// themeStore builds the request's theme store over the preference cookie.
func (s *Site) themeStore(w http.ResponseWriter, r *http.Request) *theme.Store {
	return theme.NewStore(theme.NewCookieStorage(s.opts.ThemeCookie, w, r), systemTheme(r), s.opts.DefaultTheme)
}

// systemTheme reads the OS preference from the client hint. Structured
// header strings arrive quoted.
func systemTheme(r *http.Request) theme.Theme {
	t, err := theme.Parse(strings.Trim(r.Header.Get(ClientHint), `"`))
	if err != nil {
		return ""
	}
	return t
}

func setClientHints(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Accept-CH", ClientHint)
	h.Set("Critical-CH", ClientHint)
	h.Add("Vary", ClientHint)
	h.Add("Vary", "Cookie")
}

type themeResponse struct {
	Theme      theme.Theme    `json:"theme"`
	Colors     theme.Colors   `json:"colors"`
	Document   theme.Document `json:"document"`
	Persistent bool           `json:"persistent"`
	Explicit   bool           `json:"explicit"`
}

func (s *Site) handleTheme(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	clientID := session.ClientID(w, r)
	setClientHints(w)

	store := s.themeStore(w, r)
	bridge := theme.NewBridge(store.Document())
	bridge.Attach(store)
	defer bridge.Detach()
	if s.hub != nil {
		unsubscribe := store.Subscribe(s.hub.Forward(clientID, r.Header.Get(TabHeader)))
		defer unsubscribe()
	}

	switch {
	case r.PostForm.Get("system") != "":
		t, err := theme.Parse(r.PostForm.Get("system"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		bridge.SystemChanged(t)
	case r.PostForm.Get("theme") != "":
		t, err := theme.Parse(r.PostForm.Get("theme"))
		if err == nil {
			_, err = store.Set(t)
		}
		if errors.Is(err, theme.ErrUnknownTheme) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	default:
		store.Toggle()
	}

	writeJSON(w, http.StatusOK, themeResponse{
		Theme:      store.Theme(),
		Colors:     store.Colors(),
		Document:   bridge.Document(),
		Persistent: store.Persistent(),
		Explicit:   store.Explicit(),
	})
}

func (s *Site) handleThemeState(w http.ResponseWriter, r *http.Request) {
	setClientHints(w)
	store := theme.NewStore(theme.NewCookieStorage(s.opts.ThemeCookie, nil, r), systemTheme(r), s.opts.DefaultTheme)
	writeJSON(w, http.StatusOK, themeResponse{
		Theme:      store.Theme(),
		Colors:     store.Colors(),
		Document:   store.Document(),
		Persistent: store.Persistent(),
		Explicit:   store.Explicit(),
	})
}

// handleNotFound sends API callers a JSON 404. A page path with a trailing
// slash goes to its canonical form and anything else goes home.
func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	route, found := s.routes.Resolve(r.URL.Path)
	target := route.Path
	if found && r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type asset struct {
	contentType string
	body        string
}

var assets = map[string]asset{
	"style.css":   {"text/css; charset=utf-8", cssContent},
	"app.js":      {"text/javascript; charset=utf-8", jsContent},
	"favicon.svg": {"image/svg+xml", faviconContent},
}

func (s *Site) handleStatic(w http.ResponseWriter, r *http.Request) {
	a, ok := assets[chi.URLParam(r, "file")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	etag := `"` + s.version + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	w.Write([]byte(a.body))
}

func assetVersion() string {
	h := sha256.New()
	for _, body := range []string{cssContent, jsContent, faviconContent, theme.Script("")} {
		h.Write([]byte(body))
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// paletteCSS emits one custom property block per theme, keyed by the
// <html> class the pre-paint script sets.
func paletteCSS() template.CSS {
	var b strings.Builder
	for _, t := range []theme.Theme{theme.Light, theme.Dark} {
		c := theme.ColorsFor(t)
		fmt.Fprintf(&b, "html.%s{--primary:%s;--secondary:%s;--bg:%s;--card:%s;--text:%s;--heading:%s}\n",
			theme.DocumentFor(t).Class, c.Primary, c.Secondary, c.Background, c.Card, c.Text, c.Heading)
	}
	return template.CSS(b.String())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
