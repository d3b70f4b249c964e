package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/craftburger/internal/menu"
)

func TestDefaultContent(t *testing.T) {
	site, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}

	if site.Brand.Name != "Craft Burger Co." {
		t.Errorf("brand = %q", site.Brand.Name)
	}
	names := site.Catalog.Names()
	want := []string{"Burgers", "Accompagnements", "Boissons", "Desserts", "Menus"}
	if len(names) != len(want) {
		t.Fatalf("categories = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("category %d = %q, want %q", i, names[i], want[i])
		}
	}
	if site.Catalog.Default() != menu.DefaultCategory {
		t.Errorf("default category = %q", site.Catalog.Default())
	}
	if len(site.Restaurants) != 3 {
		t.Errorf("restaurants = %d, want 3", len(site.Restaurants))
	}
	if site.Contact.Email != "contact@craftburger.fr" {
		t.Errorf("contact email = %q", site.Contact.Email)
	}
}

func TestSpecialtiesAndNewsLinkToCatalog(t *testing.T) {
	site, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}
	if len(site.Specialties) != 5 {
		t.Errorf("specialties = %d, want 5", len(site.Specialties))
	}
	for _, s := range site.Specialties {
		if !site.Catalog.Contains(s.MenuCategory, s.MenuItemID) {
			t.Errorf("specialty %d points at missing %s/%s", s.ID, s.MenuCategory, s.MenuItemID)
		}
		link, ok := menu.ParseLink(s.Link())
		if !ok {
			t.Errorf("specialty %d link %q not a menu link", s.ID, s.Link())
			continue
		}
		if sel := site.Catalog.Resolve(link); sel.Item != s.MenuItemID {
			t.Errorf("specialty %d resolves to %+v", s.ID, sel)
		}
	}
	for _, n := range site.News {
		link, ok := menu.ParseLink(n.Link)
		if !ok {
			t.Errorf("news %d link %q not a menu link", n.ID, n.Link)
			continue
		}
		sel := site.Catalog.Resolve(link)
		if sel.Category != "Desserts" || sel.Item != "chocolat-sundae" {
			t.Errorf("news %d resolves to %+v", n.ID, sel)
		}
	}
}

func TestNewsMarkdownRendered(t *testing.T) {
	site, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}
	if len(site.News) == 0 {
		t.Fatal("no news")
	}
	html := string(site.News[0].HTML)
	if !strings.Contains(html, "<strong>Sundae</strong>") {
		t.Errorf("markdown not rendered: %s", html)
	}
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	html, err := RenderMarkdown("hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Errorf("raw html passed through: %s", html)
	}
}

const minimal = `
brand:
  name: Test Burgers
contact:
  address: 1 rue du Test
  phone: "00"
  email: test@example.com
  hours: always
menu:
  default: Burgers
  categories:
    - name: Burgers
      items:
        - id: a
          name: A
          price: "1€"
    - name: Desserts
      items:
        - id: b
          name: B
          price: "2€"
`

func TestParseMinimal(t *testing.T) {
	site, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if site.Catalog.Len() != 2 {
		t.Errorf("items = %d", site.Catalog.Len())
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "broken specialty link",
			doc: minimal + `
specialties:
  - id: 1
    name: X
    menu_category: Burgers
    menu_item_id: b
`,
			want: ErrBrokenLink,
		},
		{
			name: "broken news link",
			doc: minimal + `
news:
  - id: 1
    title: X
    link: /menu?category=Burgers&item=zzz
`,
			want: ErrBrokenLink,
		},
		{
			name: "duplicate item id",
			doc: strings.Replace(minimal, "id: b", "id: a", 1),
			want: menu.ErrDuplicateItem,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"bad email", strings.Replace(minimal, "test@example.com", "not-an-email", 1), "file.contact.email"},
		{"missing price", strings.Replace(minimal, "price: \"2€\"", "price: \"\"", 1), "file.menu.categories[1].items[0].price"},
		{"duplicate restaurant", minimal + `
restaurants:
  - id: x
    name: X
    address: here
  - id: x
    name: Y
    address: there
`, "restaurants[1].id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestParseUnknownField(t *testing.T) {
	if _, err := Parse([]byte(minimal + "\nextra: true\n")); err == nil {
		t.Error("unknown top-level field accepted")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yml")
	if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
		t.Fatal(err)
	}
	site, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if site.Brand.Name != "Test Burgers" {
		t.Errorf("brand = %q", site.Brand.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("missing file accepted")
	}
	if site, err := Load(""); err != nil || site.Brand.Name != "Craft Burger Co." {
		t.Errorf("Load(\"\") = %v, %v", site, err)
	}
}
