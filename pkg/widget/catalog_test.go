package widget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pagegrid/pagegrid/pkg/grid"
)

func TestCatalogBuiltins(t *testing.T) {
	c := NewCatalog()

	if !c.Has("heading") {
		t.Error("Has(heading) = false, want true")
	}
	if !c.Has("container") {
		t.Error("Has(container) = false, want true")
	}

	d := c.Lookup("heading")
	if d.Width != 6 || d.Height != 1 {
		t.Errorf("heading size = %dx%d, want 6x1", d.Width, d.Height)
	}
	if d.Config["text"] != "Heading" {
		t.Errorf("heading config = %v", d.Config)
	}

	container := c.Lookup("container")
	if !container.Container {
		t.Error("container definition should be marked Container")
	}
}

func TestCatalogLookupUnknown(t *testing.T) {
	c := NewCatalog()

	d := c.Lookup("hologram")
	if d.Type != "hologram" {
		t.Errorf("Type = %q, want hologram", d.Type)
	}
	if d.Width != DefaultWidth || d.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", d.Width, d.Height, DefaultWidth, DefaultHeight)
	}
	if c.Has("hologram") {
		t.Error("Lookup must not register unknown types")
	}
}

func TestCatalogRegister(t *testing.T) {
	c := NewCatalog()

	c.Register(Definition{Type: "hero", Label: "Hero", Width: 12, Height: 5})
	if !c.Has("hero") {
		t.Fatal("Has(hero) = false after Register")
	}

	// Zero spans get the fallback size.
	c.Register(Definition{Type: "badge", Label: "Badge"})
	d := c.Lookup("badge")
	if d.Width != DefaultWidth || d.Height != DefaultHeight {
		t.Errorf("badge size = %dx%d, want fallback", d.Width, d.Height)
	}

	// Empty type is ignored.
	before := len(c.Definitions())
	c.Register(Definition{Label: "Nameless"})
	if len(c.Definitions()) != before {
		t.Error("Register with empty type should be ignored")
	}
}

func TestCatalogNew(t *testing.T) {
	c := NewCatalog()
	pos := grid.Position{X: 2, Y: 3, Width: 6, Height: 2}

	w := c.New("text", pos)
	if w.ID == "" {
		t.Error("New() instance has no id")
	}
	if w.Type != "text" {
		t.Errorf("Type = %q, want text", w.Type)
	}
	if w.Position.X != 2 || w.Position.Y != 3 {
		t.Errorf("Position = %+v, want (2,3)", w.Position)
	}

	// Config is a copy of the definition default.
	w.Config["text"] = "changed"
	if c.Lookup("text").Config["text"] != "Lorem ipsum dolor sit amet." {
		t.Error("New() shares config with the catalog definition")
	}
}

func TestCatalogDefinitionsSorted(t *testing.T) {
	c := NewCatalog()
	defs := c.Definitions()

	for i := 1; i < len(defs); i++ {
		if defs[i-1].Type >= defs[i].Type {
			t.Fatalf("Definitions not sorted: %q before %q", defs[i-1].Type, defs[i].Type)
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widgets.toml")

	data := `
[[widget]]
type = "hero"
label = "Hero Banner"
width = 12
height = 5
[widget.config]
headline = "Welcome"

[[widget]]
type = "heading"
label = "Big Heading"
width = 12
height = 2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	// New type added.
	hero := c.Lookup("hero")
	if hero.Label != "Hero Banner" || hero.Width != 12 || hero.Height != 5 {
		t.Errorf("hero = %+v", hero)
	}
	if hero.Config["headline"] != "Welcome" {
		t.Errorf("hero config = %v", hero.Config)
	}

	// Built-in replaced.
	heading := c.Lookup("heading")
	if heading.Label != "Big Heading" || heading.Height != 2 {
		t.Errorf("heading = %+v", heading)
	}

	// Other built-ins survive the merge.
	if !c.Has("button") {
		t.Error("built-in button lost after loading catalog file")
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadCatalog(missing) error = nil, want error")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[[widget]\ntype="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Error("LoadCatalog(malformed) error = nil, want error")
	}
}
