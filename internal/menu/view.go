package menu

import "sync"

// View is the state of one menu page: the active category, the highlighted
// item and a pending scroll. Every category switch bumps the render
// generation; a pending scroll names the generation that must be rendered
// before it may run, so the switch always lands before the scroll.
type View struct {
	mu          sync.Mutex
	catalog     *Catalog
	active      string
	generation  uint64
	rendered    uint64
	highlighted string
	pending     *scroll
}

type scroll struct {
	anchor     string
	generation uint64
}

// NewView starts on the catalog's default category at generation 1.
func NewView(c *Catalog) *View {
	return &View{
		catalog:    c,
		active:     c.Default(),
		generation: 1,
	}
}

// Active returns the active category name.
func (v *View) Active() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// Generation returns the generation the next render must carry.
func (v *View) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.generation
}

// Highlighted returns the emphasized item id, or "".
func (v *View) Highlighted() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.highlighted
}

// SelectCategory activates name, or the default category when name is
// unknown, and returns the active name. Switching drops any highlight.
func (v *View) SelectCategory(name string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectLocked(v.catalog.SelectCategory(name).Name)
	return v.active
}

func (v *View) selectLocked(name string) {
	if name == v.active {
		return
	}
	v.active = name
	v.generation++
	v.highlighted = ""
	v.pending = nil
}

// HighlightItem emphasizes id and requests a scroll to it. An item in
// another category switches the category first, and the scroll then waits
// for the new generation. Unknown ids are ignored.
func (v *View) HighlightItem(id string) bool {
	name, ok := v.catalog.CategoryOf(id)
	if !ok {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectLocked(name)
	v.highlighted = id
	v.pending = &scroll{anchor: Anchor(id), generation: v.generation}
	return true
}

// Apply puts the view in the state a resolved deep link describes.
func (v *View) Apply(sel Selection) {
	v.SelectCategory(sel.Category)
	if sel.Item != "" {
		v.HighlightItem(sel.Item)
	}
}

// Pending reports the scroll waiting for a render, if any.
func (v *View) Pending() (anchor string, generation uint64, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending == nil {
		return "", 0, false
	}
	return v.pending.anchor, v.pending.generation, true
}

// Rendered is the layout-ready signal: generation gen has been rendered.
// It returns the anchor to scroll to when that render satisfies the pending
// scroll, and releases the scroll so it fires exactly once.
func (v *View) Rendered(gen uint64) (anchor string, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen > v.rendered {
		v.rendered = gen
	}
	if v.pending == nil || gen < v.pending.generation {
		return "", false
	}
	anchor = v.pending.anchor
	v.pending = nil
	return anchor, true
}

// Items returns the items of the active category.
func (v *View) Items() []Item {
	return v.catalog.SelectCategory(v.Active()).Items
}
