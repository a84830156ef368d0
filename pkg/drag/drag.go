// Package drag turns low-level drag-gesture events into the two high-level
// intents the layout engine understands: "add widget at position" and "move
// widget to position".
//
// The tracker owns only transient interaction state (what is being dragged,
// what it is currently over); it owns nothing in the widget tree. The
// gesture-capture layer is consumed through the event methods - Start, Over,
// End, Cancel - so any input source that can produce those four calls can
// drive the engine.
package drag

import (
	"github.com/pagegrid/pagegrid/pkg/grid"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// Item describes what is being dragged: either a new widget from the palette
// (WidgetType set) or an existing widget (WidgetID set). Metadata carries
// opaque hints from the gesture layer, e.g. a preferred drop size.
type Item struct {
	WidgetType string
	WidgetID   string
	Metadata   map[string]any
}

// FromPalette builds the item for a new widget dragged in from the palette.
func FromPalette(widgetType string) Item {
	return Item{WidgetType: widgetType}
}

// FromWidget builds the item for an existing widget being moved.
func FromWidget(id string) Item {
	return Item{WidgetID: id}
}

// IsPalette reports whether the item is a new widget being dragged in from
// the palette rather than an existing widget being moved.
func (i Item) IsPalette() bool { return i.WidgetID == "" }

// CellTarget is the grid cell a drop resolved to, as reported by the
// rendering surface. HasSize is false when the target only knows where the
// drop happened, not how large the dropped widget should be.
type CellTarget struct {
	X, Y          int
	Width, Height int
	HasSize       bool
}

// Actions is the slice of the engine's interface the adapter dispatches to.
type Actions interface {
	AddWidget(widgetType string, requested *grid.Position) widget.Instance
	MoveWidget(id string, pos grid.Position)
}

// Tracker tracks one drag interaction at a time.
// The zero value is not usable - use NewTracker.
type Tracker struct {
	actions  Actions
	active   Item
	dragging bool
	overID   string
}

// NewTracker creates a tracker dispatching to the given action sink,
// typically an *engine.Engine.
func NewTracker(actions Actions) *Tracker {
	return &Tracker{actions: actions}
}

// Dragging reports whether a drag is in progress.
func (t *Tracker) Dragging() bool { return t.dragging }

// Active returns the item being dragged. Meaningful only while Dragging.
func (t *Tracker) Active() Item { return t.active }

// OverID returns the id of the current drop target, for hover feedback.
// Empty when the pointer is not over a target.
func (t *Tracker) OverID() string { return t.overID }

// Start begins tracking a drag. A drag already in progress is replaced.
func (t *Tracker) Start(item Item) {
	t.active = item
	t.dragging = true
	t.overID = ""
}

// Over records the current drop-target id. This drives hover feedback only;
// no engine action is dispatched.
func (t *Tracker) Over(targetID string) {
	if !t.dragging {
		return
	}
	t.overID = targetID
}

// End resolves the drop and dispatches the matching intent: "add widget" for
// palette items, "move widget" for existing ones. When the target carries no
// cell coordinates, a palette add is dispatched with no position so the
// engine auto-places it, and a move is dropped entirely - teleporting an
// existing widget to an auto-placed slot on a dead drop would be more
// surprising than leaving it where it was. Tracking state is reset either
// way.
func (t *Tracker) End(target *CellTarget) {
	if !t.dragging {
		return
	}
	item := t.active
	t.reset()

	pos := resolvePosition(target)
	switch {
	case item.IsPalette():
		t.actions.AddWidget(item.WidgetType, pos)
	case pos != nil:
		t.actions.MoveWidget(item.WidgetID, *pos)
	}
}

// Cancel abandons the drag without dispatching anything.
func (t *Tracker) Cancel() {
	t.reset()
}

func (t *Tracker) reset() {
	t.active = Item{}
	t.dragging = false
	t.overID = ""
}

// resolvePosition converts a drop target into a requested position. Targets
// without an explicit size get spans of zero, which the engine's placement
// policy replaces with the widget's default size.
func resolvePosition(target *CellTarget) *grid.Position {
	if target == nil {
		return nil
	}
	pos := &grid.Position{X: target.X, Y: target.Y}
	if target.HasSize {
		pos.Width = target.Width
		pos.Height = target.Height
	}
	return pos
}
