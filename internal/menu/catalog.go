package menu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCatalog    = errors.New("catalog has no categories")
	ErrDuplicateItem   = errors.New("duplicate item id")
	ErrDuplicateName   = errors.New("duplicate category name")
	ErrUnknownDefault  = errors.New("default category not in catalog")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownItem     = errors.New("unknown item")
)

type location struct {
	category int
	item     int
}

// Catalog is an immutable, ordered category list with an id index.
type Catalog struct {
	categories  []Category
	byName      map[string]int
	byID        map[string]location
	defaultName string
}

// NewCatalog copies categories and indexes them. Item ids must be unique
// across the whole catalog and defaultName must be one of the categories.
func NewCatalog(categories []Category, defaultName string) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		categories:  cloneCategories(categories),
		byName:      make(map[string]int, len(categories)),
		byID:        make(map[string]location),
		defaultName: defaultName,
	}

	for ci, cat := range c.categories {
		if _, dup := c.byName[cat.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, cat.Name)
		}
		c.byName[cat.Name] = ci
		for ii, item := range cat.Items {
			if prev, dup := c.byID[item.ID]; dup {
				return nil, fmt.Errorf("%w: %q in %q and %q", ErrDuplicateItem, item.ID,
					c.categories[prev.category].Name, cat.Name)
			}
			c.byID[item.ID] = location{category: ci, item: ii}
		}
	}

	if _, ok := c.byName[defaultName]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, defaultName)
	}
	return c, nil
}

// Categories returns the ordered categories. The result is a copy.
func (c *Catalog) Categories() []Category {
	return cloneCategories(c.categories)
}

// Names returns the category names in display order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Default returns the name of the default category.
func (c *Catalog) Default() string {
	return c.defaultName
}

// Category looks a category up by exact name.
func (c *Catalog) Category(name string) (Category, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Category{}, false
	}
	return cloneCategory(c.categories[i]), true
}

// SelectCategory returns the named category, or the default one when the
// name is unknown.
func (c *Catalog) SelectCategory(name string) Category {
	if cat, ok := c.Category(name); ok {
		return cat
	}
	cat, _ := c.Category(c.defaultName)
	return cat
}

// Item looks an item up by id.
func (c *Catalog) Item(id string) (Item, bool) {
	loc, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.categories[loc.category].Items[loc.item], true
}

// CategoryOf returns the name of the category holding id.
func (c *Catalog) CategoryOf(id string) (string, bool) {
	loc, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return c.categories[loc.category].Name, true
}

// Contains reports whether the category name holds the item id.
func (c *Catalog) Contains(category, id string) bool {
	name, ok := c.CategoryOf(id)
	return ok && name == category
}

// Search returns items whose name or description contains q, case
// insensitively, in catalog order.
func (c *Catalog) Search(q string) []Item {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	var out []Item
	for _, cat := range c.categories {
		for _, item := range cat.Items {
			if strings.Contains(strings.ToLower(item.Name), q) ||
				strings.Contains(strings.ToLower(item.Description), q) {
				out = append(out, item)
			}
		}
	}
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.byID)
}

func cloneCategories(in []Category) []Category {
	out := make([]Category, len(in))
	for i, cat := range in {
		out[i] = cloneCategory(cat)
	}
	return out
}

func cloneCategory(cat Category) Category {
	items := make([]Item, len(cat.Items))
	copy(items, cat.Items)
	return Category{Name: cat.Name, Items: items}
}
