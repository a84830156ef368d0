package layout

import (
	"testing"

	"github.com/pagegrid/pagegrid/pkg/grid"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

func TestNew(t *testing.T) {
	doc := New(grid.DefaultConfig())

	if doc.Version != Version {
		t.Errorf("Version = %q, want %q", doc.Version, Version)
	}
	if doc.Widgets == nil {
		t.Error("Widgets should be an empty slice, not nil")
	}
	if len(doc.Widgets) != 0 {
		t.Errorf("len(Widgets) = %d, want 0", len(doc.Widgets))
	}
}

func TestCloneIndependence(t *testing.T) {
	doc := New(grid.DefaultConfig())
	doc.Widgets = []widget.Instance{
		{
			ID:       "a",
			Type:     "container",
			Position: grid.Position{X: 0, Y: 0, Width: 12, Height: 4},
			Config:   widget.Config{"direction": "vertical"},
			Children: []widget.Instance{
				{ID: "b", Type: "text", Position: grid.Position{X: 0, Y: 0, Width: 6, Height: 2}},
			},
		},
	}
	doc.Metadata = map[string]any{"title": "Home"}

	clone := doc.Clone()

	clone.Widgets[0].Children[0].Type = "mutated"
	clone.Widgets[0].Config["direction"] = "horizontal"
	clone.Grid.Breakpoints[0].Name = "mutated"
	clone.Metadata["title"] = "Changed"

	if doc.Widgets[0].Children[0].Type != "text" {
		t.Error("Clone shares widget subtrees")
	}
	if doc.Widgets[0].Config["direction"] != "vertical" {
		t.Error("Clone shares widget configs")
	}
	if doc.Grid.Breakpoints[0].Name != grid.BreakpointMobile {
		t.Error("Clone shares grid breakpoints")
	}
	if doc.Metadata["title"] != "Home" {
		t.Error("Clone shares metadata")
	}
}

func TestPlacements(t *testing.T) {
	doc := New(grid.DefaultConfig())
	doc.Widgets = []widget.Instance{
		{ID: "a", Position: grid.Position{X: 0, Y: 0, Width: 4, Height: 2}},
		{ID: "b", Position: grid.Position{X: 4, Y: 0, Width: 4, Height: 2},
			Children: []widget.Instance{{ID: "nested"}}},
	}

	placed := doc.Placements()
	if len(placed) != 2 {
		t.Fatalf("len(Placements) = %d, want 2 (roots only)", len(placed))
	}
	if placed[0].ID != "a" || placed[1].ID != "b" {
		t.Errorf("Placements ids = %v %v", placed[0].ID, placed[1].ID)
	}
}
