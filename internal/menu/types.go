// Package menu holds the static menu catalog, deep-link resolution and the
// view state that sequences a category switch before an item highlight.
package menu

// DefaultCategory is shown when no valid category is requested.
const DefaultCategory = "Burgers"

// Item is one dish or drink. IDs are unique across the catalog and stable;
// they double as the DOM anchor returned by Anchor.
type Item struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description"`
	Price       string `json:"price" yaml:"price" validate:"required"`
	Image       string `json:"image" yaml:"image" validate:"omitempty,url"`
	SubCategory string `json:"subCategory,omitempty" yaml:"sub_category,omitempty"`
}

// Category is a named, ordered list of items.
type Category struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Items []Item `json:"items" yaml:"items" validate:"dive"`
}

// Anchor returns the DOM id of the element rendering the item with id.
func Anchor(id string) string {
	return "item-" + id
}
