package menu

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the read-only menu API under /api/menu.
func RegisterRoutes(r chi.Router, catalog *Catalog) {
	r.Route("/api/menu", func(r chi.Router) {
		r.Get("/", handleList(catalog))
		r.Get("/categories/{name}", handleCategory(catalog))
		r.Get("/items/{id}", handleItem(catalog))
		r.Get("/resolve", handleResolve(catalog))
		r.Get("/search", handleSearch(catalog))
	})
}

type listResponse struct {
	Default    string     `json:"default"`
	Categories []Category `json:"categories"`
}

func handleList(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, listResponse{
			Default:    catalog.Default(),
			Categories: catalog.Categories(),
		})
	}
}

func handleCategory(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		cat, ok := catalog.Category(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": ErrUnknownCategory.Error() + ": " + name})
			return
		}
		writeJSON(w, http.StatusOK, cat)
	}
}

type itemResponse struct {
	Item
	Category string `json:"category"`
	Anchor   string `json:"anchor"`
	Link     string `json:"link"`
}

func handleItem(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		item, ok := catalog.Item(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": ErrUnknownItem.Error() + ": " + id})
			return
		}
		category, _ := catalog.CategoryOf(id)
		writeJSON(w, http.StatusOK, itemResponse{
			Item:     item,
			Category: category,
			Anchor:   Anchor(id),
			Link:     DeepLink{Category: category, Item: id}.URL(),
		})
	}
}

type resolveResponse struct {
	Request   DeepLink  `json:"request"`
	Selection Selection `json:"selection"`
	Items     []Item    `json:"items"`
}

func handleResolve(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link := ParseDeepLink(r.URL.Query())
		sel := catalog.Resolve(link)
		writeJSON(w, http.StatusOK, resolveResponse{
			Request:   link,
			Selection: sel,
			Items:     catalog.SelectCategory(sel.Category).Items,
		})
	}
}

func handleSearch(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := catalog.Search(r.URL.Query().Get("q"))
		if items == nil {
			items = []Item{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
