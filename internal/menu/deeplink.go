package menu

import (
	"net/url"
	"strings"
)

// DeepLink is the category/item pair carried by /menu query parameters.
type DeepLink struct {
	Category string `json:"category,omitempty"`
	Item     string `json:"item,omitempty"`
}

// ParseDeepLink reads the category and item query parameters.
func ParseDeepLink(q url.Values) DeepLink {
	return DeepLink{
		Category: strings.TrimSpace(q.Get("category")),
		Item:     strings.TrimSpace(q.Get("item")),
	}
}

// URL returns the /menu link for d.
func (d DeepLink) URL() string {
	q := url.Values{}
	if d.Category != "" {
		q.Set("category", d.Category)
	}
	if d.Item != "" {
		q.Set("item", d.Item)
	}
	if len(q) == 0 {
		return "/menu"
	}
	return "/menu?" + q.Encode()
}

// ParseLink parses a site-relative menu link such as
// "/menu?category=Desserts&item=chocolat-sundae".
func ParseLink(link string) (DeepLink, bool) {
	u, err := url.Parse(link)
	if err != nil || u.Path != "/menu" {
		return DeepLink{}, false
	}
	return ParseDeepLink(u.Query()), true
}

// Selection is what a deep link resolves to against the catalog.
type Selection struct {
	Category string `json:"category"`
	// Item is empty when nothing should be highlighted.
	Item   string `json:"item,omitempty"`
	Anchor string `json:"anchor,omitempty"`
	// CategoryFallback is set when the requested category was missing or unknown.
	CategoryFallback bool `json:"categoryFallback"`
	// ItemIgnored is set when an item was requested but will not be highlighted.
	ItemIgnored bool `json:"itemIgnored"`
}

// Resolve validates d against the catalog. The category is resolved first,
// falling back to the default. The item is kept only when it belongs to the
// resolved category, except that a link naming only a known item selects
// that item's category.
func (c *Catalog) Resolve(d DeepLink) Selection {
	var sel Selection

	if d.Category == "" && d.Item != "" {
		if name, ok := c.CategoryOf(d.Item); ok {
			return Selection{Category: name, Item: d.Item, Anchor: Anchor(d.Item)}
		}
	}

	if _, ok := c.byName[d.Category]; ok {
		sel.Category = d.Category
	} else {
		sel.Category = c.defaultName
		sel.CategoryFallback = true
	}

	if d.Item != "" {
		if c.Contains(sel.Category, d.Item) {
			sel.Item = d.Item
			sel.Anchor = Anchor(d.Item)
		} else {
			sel.ItemIgnored = true
		}
	}
	return sel
}
