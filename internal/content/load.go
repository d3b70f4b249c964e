package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/craftburger/internal/menu"
)

//go:embed site.yml
var defaultContent []byte

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Default returns the built-in site content.
func Default() (*Site, error) {
	return Parse(defaultContent)
}

// Load reads a content file. An empty path selects the built-in content.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}
	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

// Parse decodes, validates and prepares a content document.
func Parse(data []byte) (*Site, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}

	catalog, err := menu.NewCatalog(f.Menu.Categories, f.Menu.Default)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	if err := checkLinks(&f, catalog); err != nil {
		return nil, err
	}

	for i := range f.News {
		html, err := RenderMarkdown(f.News[i].Body)
		if err != nil {
			return nil, fmt.Errorf("rendering news %d: %w", f.News[i].ID, err)
		}
		f.News[i].HTML = html
	}

	return &Site{
		Brand:       f.Brand,
		Contact:     f.Contact,
		Catalog:     catalog,
		Specialties: f.Specialties,
		News:        f.News,
		Restaurants: f.Restaurants,
	}, nil
}

// RenderMarkdown converts a markdown snippet to HTML. Raw HTML in the source
// is dropped.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ErrBrokenLink is returned when a specialty or news link points at a menu
// item that does not exist where it claims to be.
var ErrBrokenLink = errors.New("broken menu link")

func checkLinks(f *File, catalog *menu.Catalog) error {
	for _, s := range f.Specialties {
		if !catalog.Contains(s.MenuCategory, s.MenuItemID) {
			return fmt.Errorf("%w: specialty %d -> %s/%s", ErrBrokenLink, s.ID, s.MenuCategory, s.MenuItemID)
		}
	}
	for _, n := range f.News {
		if n.Link == "" {
			continue
		}
		link, ok := menu.ParseLink(n.Link)
		if !ok {
			continue
		}
		sel := catalog.Resolve(link)
		if (sel.CategoryFallback && link.Category != "") || sel.ItemIgnored {
			return fmt.Errorf("%w: news %d -> %s", ErrBrokenLink, n.ID, n.Link)
		}
	}
	return nil
}
