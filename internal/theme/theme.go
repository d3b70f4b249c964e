// Package theme owns the light/dark display preference: its resolution at
// boot, the single write path that persists it, the ordered change bus and
// the pre-paint bootstrap that applies it before first paint.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is a display mode.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ErrUnknownTheme is returned when a value is neither light nor dark.
var ErrUnknownTheme = errors.New("unknown theme")

// Parse converts a raw value (cookie, form field, client hint) into a Theme.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Valid reports whether t is light or dark.
func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// Opposite returns the theme a toggle moves to.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Resolve picks the effective theme: stored preference, else the OS
// preference, else fallback, else light. Invalid values are skipped.
func Resolve(stored, system, fallback Theme) Theme {
	for _, t := range []Theme{stored, system, fallback} {
		if t.Valid() {
			return t
		}
	}
	return Light
}

// Colors is the palette derived from a theme.
type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Card       string `json:"card"`
	Text       string `json:"text"`
	Heading    string `json:"heading"`
}

var palettes = map[Theme]Colors{
	Light: {
		Primary:    "#9b2226",
		Secondary:  "#660708",
		Background: "#ffffff",
		Card:       "#ffffff",
		Text:       "#1a1a1a",
		Heading:    "#9b2226",
	},
	Dark: {
		Primary:    "#9b2226",
		Secondary:  "#f8c136",
		Background: "#121212",
		Card:       "#1e1e1e",
		Text:       "#f5f5f5",
		Heading:    "#9b2226",
	},
}

// ColorsFor returns the palette for t. Unknown themes get the light palette.
func ColorsFor(t Theme) Colors {
	if c, ok := palettes[t]; ok {
		return c
	}
	return palettes[Light]
}

// Document holds the document-level attributes a theme sets: the class and
// data-theme on <html>, the color-scheme and the theme-color meta tag.
type Document struct {
	Theme       Theme  `json:"theme"`
	Class       string `json:"class"`
	ColorScheme string `json:"colorScheme"`
	MetaColor   string `json:"metaColor"`
}

// DocumentFor returns the document attributes for t.
func DocumentFor(t Theme) Document {
	if !t.Valid() {
		t = Light
	}
	meta := "#ffffff"
	if t == Dark {
		meta = "#121212"
	}
	return Document{
		Theme:       t,
		Class:       string(t),
		ColorScheme: string(t),
		MetaColor:   meta,
	}
}
