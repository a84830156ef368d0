// Package layout defines the page layout document - the unit the engine owns
// and the persistence collaborators exchange - plus the conversion between
// the widget tree and the flat grid-cell representation a rendering surface
// consumes.
package layout

import (
	"maps"

	"github.com/pagegrid/pagegrid/pkg/grid"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// Version is the current layout document version. Documents with any other
// version string are rejected by the loader rather than coerced.
const Version = "1.0"

// MaxRootWidgets is the cap on top-level widgets enforced by the document
// validator. The engine itself does not enforce it.
const MaxRootWidgets = 100

// Document is the complete, versioned description of a page: its grid
// configuration and its widget tree. This is the wire/storage format handed
// to and received from persistence collaborators.
type Document struct {
	Version  string            `json:"version"`
	Grid     grid.Config       `json:"grid"`
	Widgets  []widget.Instance `json:"widgets"`
	Metadata map[string]any    `json:"metadata,omitempty"`
}

// New returns an empty document at the current version with the given grid
// config.
func New(cfg grid.Config) Document {
	return Document{
		Version: Version,
		Grid:    cfg,
		Widgets: []widget.Instance{},
	}
}

// Clone returns a deep copy of the document. Undo snapshots rely on clones
// being fully independent of the live document.
func (d Document) Clone() Document {
	out := d
	out.Grid = d.Grid.Clone()
	out.Widgets = widget.CloneTree(d.Widgets)
	if d.Metadata != nil {
		out.Metadata = maps.Clone(d.Metadata)
	}
	return out
}

// Placements returns the id/position pairs of the document's root-level
// widgets, the set the collision algorithms operate on.
func (d Document) Placements() []grid.Placed {
	out := make([]grid.Placed, len(d.Widgets))
	for i, w := range d.Widgets {
		out[i] = grid.Placed{ID: w.ID, Position: w.Position}
	}
	return out
}
