// Package router is the declarative path table of the site: which view a
// path shows, when the splash view comes first and how scrolling behaves on
// arrival.
package router

import (
	"net/url"
	"strings"
)

// View identifies a page.
type View string

const (
	ViewSplash      View = "splash"
	ViewHome        View = "home"
	ViewRestaurants View = "restaurants"
	ViewMenu        View = "menu"
	ViewContact     View = "contact"
)

// Route is one entry of the table.
type Route struct {
	Path  string `json:"path"`
	View  View   `json:"view"`
	Title string `json:"title"`
	// Nav marks routes listed in the navigation bar.
	Nav bool `json:"nav"`
}

// Table maps paths to views. The zero value is not usable; see Default.
type Table struct {
	routes   []Route
	byPath   map[string]Route
	fallback Route
}

// New builds a table. fallback must be one of routes.
func New(routes []Route, fallback string) *Table {
	t := &Table{
		routes: append([]Route(nil), routes...),
		byPath: make(map[string]Route, len(routes)),
	}
	for _, r := range routes {
		t.byPath[r.Path] = r
	}
	t.fallback = t.byPath[fallback]
	return t
}

// Default returns the site's table: four content views, home as fallback.
func Default() *Table {
	return New([]Route{
		{Path: "/", View: ViewHome, Title: "Accueil", Nav: true},
		{Path: "/menu", View: ViewMenu, Title: "Menu", Nav: true},
		{Path: "/restaurants", View: ViewRestaurants, Title: "Restaurants", Nav: true},
		{Path: "/contact", View: ViewContact, Title: "Contact", Nav: true},
	}, "/")
}

// Routes returns the table in declaration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Nav returns the routes shown in the navigation bar.
func (t *Table) Nav() []Route {
	var out []Route
	for _, r := range t.routes {
		if r.Nav {
			out = append(out, r)
		}
	}
	return out
}

// Fallback returns the route unknown paths resolve to.
func (t *Table) Fallback() Route {
	return t.fallback
}

// Resolve looks path up. Unknown paths return the fallback route and
// found=false. A trailing slash is ignored.
func (t *Table) Resolve(path string) (Route, bool) {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	if r, ok := t.byPath[path]; ok {
		return r, true
	}
	return t.fallback, false
}

// Decision is what the server should do with a page request.
type Decision struct {
	// View is the view to render.
	View View
	// Redirect, when set, is where the visitor must be sent instead.
	Redirect string
	// Next is the path the splash view forwards to.
	Next string
	// MarkSplash asks the caller to set the session splash flag.
	MarkSplash bool
}

// SplashParam marks a request forwarded by the splash view. It lets a
// client that keeps no cookies through to the content after one splash.
const SplashParam = "splash"

// Enter decides how a request for target (path plus raw query) is served.
// Unknown paths redirect to the fallback. On the first visit of a session
// the splash view is shown and then forwards to target, tagged with
// SplashParam so the forwarded request is never sent back to the splash.
func (t *Table) Enter(path, rawQuery string, splashSeen bool) Decision {
	route, found := t.Resolve(path)
	if !found {
		return Decision{View: route.View, Redirect: route.Path}
	}

	query, _ := url.ParseQuery(rawQuery)
	if splashSeen || query.Has(SplashParam) {
		return Decision{View: route.View}
	}

	next := route.Path + "?"
	if rawQuery != "" {
		next += rawQuery + "&"
	}
	next += SplashParam + "=0"
	return Decision{View: ViewSplash, Next: next, MarkSplash: true}
}

// Scroll is how a view positions itself on arrival.
type Scroll string

const (
	// ScrollTop resets to the top of the page.
	ScrollTop Scroll = "top"
	// ScrollDeferred leaves positioning to the menu item locator.
	ScrollDeferred Scroll = "deferred"
)

// ScrollPolicy returns ScrollTop for every arrival except the menu view
// with an item parameter.
func ScrollPolicy(route Route, query url.Values) Scroll {
	if route.View == ViewMenu && query.Get("item") != "" {
		return ScrollDeferred
	}
	return ScrollTop
}

// SafeNext reports whether next is a site-relative path the splash view may
// forward to, and returns the fallback otherwise.
func (t *Table) SafeNext(next string) string {
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return t.fallback.Path
	}
	if _, ok := t.Resolve(u.Path); !ok {
		return t.fallback.Path
	}
	return next
}
