// Package content loads the site copy: brand, contact details, the menu
// catalog, specialties, news and restaurant locations.
package content

import (
	"html/template"

	"github.com/ziadkadry99/craftburger/internal/menu"
)

// Brand is the hero copy shown on the home page.
type Brand struct {
	Name      string `yaml:"name" validate:"required"`
	Tagline   string `yaml:"tagline"`
	HeroImage string `yaml:"hero_image" validate:"omitempty,url"`
}

// ContactInfo is shown beside the contact form.
type ContactInfo struct {
	Address      string `yaml:"address" validate:"required"`
	Phone        string `yaml:"phone" validate:"required"`
	Email        string `yaml:"email" validate:"required,email"`
	Hours        string `yaml:"hours" validate:"required"`
	Reservations string `yaml:"reservations"`
}

// MenuSection is the raw catalog as written in the content file.
type MenuSection struct {
	Default    string          `yaml:"default" validate:"required"`
	Categories []menu.Category `yaml:"categories" validate:"required,min=1,dive"`
}

// Specialty is a home page card deep-linking into the menu.
type Specialty struct {
	ID           int    `yaml:"id" json:"id" validate:"required"`
	Name         string `yaml:"name" json:"name" validate:"required"`
	Description  string `yaml:"description" json:"description"`
	Image        string `yaml:"image" json:"image" validate:"omitempty,url"`
	MenuCategory string `yaml:"menu_category" json:"menuCategory" validate:"required"`
	MenuItemID   string `yaml:"menu_item_id" json:"menuItemId" validate:"required"`
}

// Link returns the menu deep link for the specialty.
func (s Specialty) Link() string {
	return menu.DeepLink{Category: s.MenuCategory, Item: s.MenuItemID}.URL()
}

// NewsItem is a home page announcement. Body is markdown.
type NewsItem struct {
	ID    int    `yaml:"id" json:"id" validate:"required"`
	Title string `yaml:"title" json:"title" validate:"required"`
	Body  string `yaml:"body" json:"body"`
	Date  string `yaml:"date" json:"date"`
	Image string `yaml:"image" json:"image" validate:"omitempty,url"`
	Link  string `yaml:"link" json:"link"`

	HTML template.HTML `yaml:"-" json:"-"`
}

// Restaurant is one location.
type Restaurant struct {
	ID      string `yaml:"id" json:"id" validate:"required"`
	Name    string `yaml:"name" json:"name" validate:"required"`
	Address string `yaml:"address" json:"address" validate:"required"`
	Hours   string `yaml:"hours" json:"hours"`
	Phone   string `yaml:"phone" json:"phone"`
	Image   string `yaml:"image" json:"image" validate:"omitempty,url"`
}

// File mirrors the content YAML document.
type File struct {
	Brand       Brand        `yaml:"brand"`
	Contact     ContactInfo  `yaml:"contact"`
	Menu        MenuSection  `yaml:"menu"`
	Specialties []Specialty  `yaml:"specialties" validate:"dive"`
	News        []NewsItem   `yaml:"news" validate:"dive"`
	Restaurants []Restaurant `yaml:"restaurants" validate:"dive"`
}

// Site is validated content ready for rendering.
type Site struct {
	Brand       Brand
	Contact     ContactInfo
	Catalog     *menu.Catalog
	Specialties []Specialty
	News        []NewsItem
	Restaurants []Restaurant
}
