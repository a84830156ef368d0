package widget

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/pagegrid/pagegrid/pkg/grid"
)

// Definition describes a widget type: its display label, default grid size,
// and default config. The engine consults the catalog when building a new
// instance for an "add widget" action.
type Definition struct {
	Type      string `toml:"type"`
	Label     string `toml:"label"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Container bool   `toml:"container"`
	Config    Config `toml:"config"`
}

// Fallback size for widget types the catalog does not know.
const (
	DefaultWidth  = 4
	DefaultHeight = 2
)

// Catalog maps widget type identifiers to their definitions.
type Catalog struct {
	defs map[string]Definition
}

// NewCatalog returns a catalog preloaded with the built-in widget types.
func NewCatalog() *Catalog {
	c := &Catalog{defs: make(map[string]Definition, len(builtins))}
	for _, d := range builtins {
		c.defs[d.Type] = d
	}
	return c
}

// builtins is the default per-type table: label, default span, default config.
var builtins = []Definition{
	{Type: "heading", Label: "Heading", Width: 6, Height: 1, Config: Config{"text": "Heading", "level": 2}},
	{Type: "text", Label: "Text", Width: 6, Height: 2, Config: Config{"text": "Lorem ipsum dolor sit amet."}},
	{Type: "image", Label: "Image", Width: 4, Height: 3, Config: Config{"src": "", "alt": ""}},
	{Type: "button", Label: "Button", Width: 2, Height: 1, Config: Config{"label": "Click me", "href": ""}},
	{Type: "divider", Label: "Divider", Width: 12, Height: 1, Config: Config{"style": "solid"}},
	{Type: "spacer", Label: "Spacer", Width: 12, Height: 1, Config: Config{}},
	{Type: "form", Label: "Form", Width: 6, Height: 4, Config: Config{"action": "", "submitLabel": "Submit"}},
	{Type: "video", Label: "Video", Width: 6, Height: 4, Config: Config{"url": "", "autoplay": false}},
	{Type: "container", Label: "Container", Width: 12, Height: 4, Container: true, Config: Config{"direction": "vertical"}},
	{Type: "columns", Label: "Columns", Width: 12, Height: 4, Container: true, Config: Config{"count": 2}},
}

// Register adds or replaces a definition. Definitions with an empty type are
// ignored.
func (c *Catalog) Register(d Definition) {
	if d.Type == "" {
		return
	}
	if d.Width < 1 {
		d.Width = DefaultWidth
	}
	if d.Height < 1 {
		d.Height = DefaultHeight
	}
	c.defs[d.Type] = d
}

// Lookup returns the definition for a widget type. Unknown types get a
// generic definition with the fallback size and an empty config, so adding a
// widget of an unregistered type still yields a well-formed instance.
func (c *Catalog) Lookup(widgetType string) Definition {
	if d, ok := c.defs[widgetType]; ok {
		return d
	}
	return Definition{Type: widgetType, Label: widgetType, Width: DefaultWidth, Height: DefaultHeight, Config: Config{}}
}

// Has reports whether the type is registered.
func (c *Catalog) Has(widgetType string) bool {
	_, ok := c.defs[widgetType]
	return ok
}

// Definitions returns all registered definitions sorted by type for
// deterministic listings.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// New builds a fresh instance of the given type at the given position, with
// a new id and the type's default config.
func (c *Catalog) New(widgetType string, pos grid.Position) Instance {
	d := c.Lookup(widgetType)
	return Instance{
		ID:       NewID(),
		Type:     widgetType,
		Position: pos,
		Config:   d.Config.Clone(),
	}
}

// catalogFile is the TOML shape of a widget catalog file:
//
//	[[widget]]
//	type = "hero"
//	label = "Hero Banner"
//	width = 12
//	height = 5
//	[widget.config]
//	headline = "Welcome"
type catalogFile struct {
	Widgets []Definition `toml:"widget"`
}

// LoadCatalog reads a TOML catalog file and merges its definitions over the
// built-ins. Entries with the same type as a built-in replace it.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c := NewCatalog()
	for _, d := range file.Widgets {
		c.Register(d)
	}
	return c, nil
}
