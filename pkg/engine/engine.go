// Package engine implements the layout state machine of the page builder:
// the single owner of the authoritative page document, the current selection
// and editor mode, and the bounded undo/redo history.
//
// All structural mutations flow through the engine's action methods. Each
// action is applied atomically and synchronously; a deep snapshot of the
// pre-mutation document is pushed onto the undo stack before every
// structural change, and the engine's state is immediately consistent when
// the call returns. Actions are total: referencing an unknown widget id is a
// silent no-op, never an error, since the host UI may race a deletion with a
// pending edit.
//
// Readers obtain the current state through [Engine.State] and must treat the
// returned document as immutable - every mutation produces new top-level
// values rather than editing in place, which is what makes the snapshot
// history correct and structural sharing safe.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"

	"github.com/pagegrid/pagegrid/pkg/grid"
	"github.com/pagegrid/pagegrid/pkg/layout"
	"github.com/pagegrid/pagegrid/pkg/observability"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// Mode is the editor mode of the state machine. Mode changes are
// non-structural: they never touch the document or the history.
type Mode string

// Editor modes.
const (
	ModeEdit    Mode = "edit"
	ModePreview Mode = "preview"
	ModeMobile  Mode = "mobile"
	ModeTablet  Mode = "tablet"
	ModeDesktop Mode = "desktop"
)

func (m Mode) valid() bool {
	switch m {
	case ModeEdit, ModePreview, ModeMobile, ModeTablet, ModeDesktop:
		return true
	}
	return false
}

// Action names reported through the observability hooks.
const (
	actionLoad         = "load"
	actionAddWidget    = "add_widget"
	actionUpdateConfig = "update_config"
	actionRemoveWidget = "remove_widget"
	actionSetWidgets   = "set_widgets"
	actionUpdatePos    = "update_position"
	actionMoveWidget   = "move_widget"
	actionToggleLock   = "toggle_lock"
	actionDuplicate    = "duplicate_widget"
	actionUndo         = "undo"
	actionRedo         = "redo"
	actionReset        = "reset"
)

// DefaultNotifyDelay is the default debounce window for change
// notifications. The delay is a latency convenience for hosts, not a
// correctness boundary: engine state is consistent the moment an action
// returns.
const DefaultNotifyDelay = 100 * time.Millisecond

// State is the snapshot handed to observers after every action. The Layout
// field shares structure with the engine's document; treat it as immutable.
type State struct {
	Layout     layout.Document
	SelectedID string
	Mode       Mode
	Dirty      bool
	CanUndo    bool
	CanRedo    bool
	PastLen    int
	FutureLen  int
}

// Subscriber receives debounced state snapshots after actions.
type Subscriber func(State)

// Engine is the action-driven state container. Create one with [New].
//
// The engine is synchronous and effectively single-threaded: a mutex guards
// state only because the debounced notifier fires on a timer goroutine.
type Engine struct {
	mu       sync.Mutex
	doc      layout.Document
	selected string
	mode     Mode
	hist     history
	dirty    bool
	catalog  *widget.Catalog
	logger   *log.Logger
	subs     []Subscriber
	debounce func(func())
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLayout seeds the engine with an existing document instead of an empty
// default. The document is adopted as-is; validate untrusted documents with
// the io package first.
func WithLayout(doc layout.Document) Option {
	return func(e *Engine) { e.doc = doc }
}

// WithHistoryLimit overrides the undo snapshot bound. Values below 1 keep
// the default.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.hist.limit = n
		}
	}
}

// WithCatalog supplies the widget type catalog used to build new instances.
func WithCatalog(c *widget.Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithLogger attaches a logger for placement and optimizer diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithNotifyDelay overrides the debounce window for subscriber notification.
func WithNotifyDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.debounce = debounce.New(d)
		}
	}
}

// New creates an engine owning an empty document on the default grid.
func New(opts ...Option) *Engine {
	e := &Engine{
		doc:      layout.New(grid.DefaultConfig()),
		mode:     ModeEdit,
		hist:     history{limit: DefaultHistoryLimit},
		catalog:  widget.NewCatalog(),
		debounce: debounce.New(DefaultNotifyDelay),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers a change observer. Observers are called with a state
// snapshot after actions, debounced by the notify delay; the last snapshot
// in a burst wins.
func (e *Engine) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.subs = append(e.subs, fn)
	e.mu.Unlock()
}

// State returns the current snapshot. The layout shares structure with the
// engine's document and must be treated as read-only.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	return State{
		Layout:     e.doc,
		SelectedID: e.selected,
		Mode:       e.mode,
		Dirty:      e.dirty,
		CanUndo:    len(e.hist.past) > 0,
		CanRedo:    len(e.hist.future) > 0,
		PastLen:    len(e.hist.past),
		FutureLen:  len(e.hist.future),
	}
}

// SelectedWidget returns the currently selected widget and true, or the zero
// value and false when nothing is selected.
func (e *Engine) SelectedWidget() (widget.Instance, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected == "" {
		return widget.Instance{}, false
	}
	return widget.FindByID(e.doc.Widgets, e.selected)
}

// notifyLocked schedules a debounced delivery of the current snapshot.
// Must be called with the mutex held.
func (e *Engine) notifyLocked() {
	if len(e.subs) == 0 {
		return
	}
	snap := e.stateLocked()
	subs := make([]Subscriber, len(e.subs))
	copy(subs, e.subs)
	e.debounce(func() {
		for _, fn := range subs {
			fn(snap)
		}
	})
}

// snapshotLocked pushes a deep pre-mutation snapshot and marks the document
// dirty. Must be called with the mutex held, before the mutation.
func (e *Engine) snapshotLocked() {
	if dropped := e.hist.push(e.doc.Clone()); dropped > 0 {
		observability.Engine().OnHistoryTrimmed(context.Background(), dropped)
	}
	e.dirty = true
}

// =============================================================================
// Structural Actions
// =============================================================================

// Load replaces the document wholesale, clearing the history and the
// selection. The incoming document is not validated here; run untrusted
// documents through the io package first. Load marks the engine clean.
func (e *Engine) Load(doc layout.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc
	e.hist.clear()
	e.selected = ""
	e.dirty = false
	observability.Engine().OnActionApplied(context.Background(), actionLoad, "")
	e.notifyLocked()
}

// AddWidget builds a widget of the given type with its catalog defaults and
// appends it to the document root, selecting it. A requested position is
// honored when it is valid and collision-free; otherwise the widget is
// auto-placed below the existing layout, so a successful add never overlaps.
// The created instance is returned.
func (e *Engine) AddWidget(widgetType string, requested *grid.Position) widget.Instance {
	e.mu.Lock()
	defer e.mu.Unlock()

	def := e.catalog.Lookup(widgetType)
	if requested != nil {
		// A drop target may resolve coordinates but no size; fill in the
		// type's default spans before judging the request.
		req := requested.Clone()
		if req.Width < 1 {
			req.Width = def.Width
		}
		if req.Height < 1 {
			req.Height = def.Height
		}
		requested = &req
	}
	pos, honored := grid.Resolve(requested, e.doc.Placements(), def.Width, def.Height, e.doc.Grid)
	if requested != nil && !honored {
		observability.Engine().OnPlacementFallback(context.Background(), widgetType, "requested position invalid or occupied")
		if e.logger != nil {
			e.logger.Debug("requested position rejected, auto-placing", "type", widgetType, "x", requested.X, "y", requested.Y)
		}
	}

	w := e.catalog.New(widgetType, pos)

	e.snapshotLocked()
	widgets := make([]widget.Instance, 0, len(e.doc.Widgets)+1)
	widgets = append(widgets, e.doc.Widgets...)
	widgets = append(widgets, w)
	e.doc.Widgets = widgets
	e.selected = w.ID

	observability.Engine().OnActionApplied(context.Background(), actionAddWidget, w.ID)
	e.notifyLocked()
	return w
}

// UpdateWidgetConfig merges a partial config into the widget's config by id.
// Unknown ids are silent no-ops.
func (e *Engine) UpdateWidgetConfig(id string, partial widget.Config) {
	e.structuralUpdate(actionUpdateConfig, id, func(w widget.Instance) widget.Instance {
		w.Config = w.Config.Merge(partial)
		return w
	})
}

// PositionPatch is a partial position update: nil fields are left untouched.
type PositionPatch struct {
	X      *int
	Y      *int
	Width  *int
	Height *int
	ZIndex *int
}

func (p PositionPatch) apply(pos grid.Position) grid.Position {
	if p.X != nil {
		pos.X = *p.X
	}
	if p.Y != nil {
		pos.Y = *p.Y
	}
	if p.Width != nil {
		pos.Width = *p.Width
	}
	if p.Height != nil {
		pos.Height = *p.Height
	}
	if p.ZIndex != nil {
		pos.ZIndex = *p.ZIndex
	}
	return pos
}

// UpdatePosition merges partial position fields into the widget's position
// by id. No collision resolution is applied; hosts that need the
// no-overlap guarantee should use [Engine.MoveWidget]. Unknown ids are
// silent no-ops.
func (e *Engine) UpdatePosition(id string, patch PositionPatch) {
	e.structuralUpdate(actionUpdatePos, id, func(w widget.Instance) widget.Instance {
		w.Position = patch.apply(w.Position)
		return w
	})
}

// MoveWidget moves a widget to a new position under the same placement
// policy as adding: an invalid or colliding target falls back to
// auto-placement below the layout, so a move never introduces an overlap.
// Collision checking applies to root-level widgets; nested widgets take the
// position verbatim, since their coordinates are local to the container.
// Unknown ids are silent no-ops.
func (e *Engine) MoveWidget(id string, pos grid.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, ok := widget.FindByID(e.doc.Widgets, id)
	if !ok {
		observability.Engine().OnActionIgnored(context.Background(), actionMoveWidget, id)
		return
	}

	target := pos
	target.Responsive = current.Position.Responsive
	target.ZIndex = current.Position.ZIndex

	if isRoot := e.rootIndex(id) >= 0; isRoot {
		others := make([]grid.Placed, 0, len(e.doc.Widgets))
		for _, w := range e.doc.Widgets {
			if w.ID != id {
				others = append(others, grid.Placed{ID: w.ID, Position: w.Position})
			}
		}
		if target.Width < 1 {
			target.Width = current.Position.Width
		}
		if target.Height < 1 {
			target.Height = current.Position.Height
		}
		if !grid.IsValid(target, e.doc.Grid) || len(grid.DetectCollisions(others, grid.Placed{ID: id, Position: target})) > 0 {
			observability.Engine().OnPlacementFallback(context.Background(), current.Type, "move target invalid or occupied")
			if e.logger != nil {
				e.logger.Debug("move target rejected, auto-placing", "id", id, "x", pos.X, "y", pos.Y)
			}
			auto := grid.AutoPlace(others, target.Width, target.Height)
			auto.Responsive = target.Responsive
			auto.ZIndex = target.ZIndex
			target = auto
		}
	}

	e.snapshotLocked()
	e.doc.Widgets = widget.UpdateByID(e.doc.Widgets, id, func(w widget.Instance) widget.Instance {
		w.Position = target
		return w
	})
	observability.Engine().OnActionApplied(context.Background(), actionMoveWidget, id)
	e.notifyLocked()
}

// RemoveWidget removes the subtree rooted at id, clearing the selection if
// the selected widget no longer exists afterwards. Unknown ids are silent
// no-ops.
func (e *Engine) RemoveWidget(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := widget.FindByID(e.doc.Widgets, id); !ok {
		observability.Engine().OnActionIgnored(context.Background(), actionRemoveWidget, id)
		return
	}

	e.snapshotLocked()
	e.doc.Widgets = widget.RemoveByID(e.doc.Widgets, id)
	e.reconcileSelectionLocked()
	observability.Engine().OnActionApplied(context.Background(), actionRemoveWidget, id)
	e.notifyLocked()
}

// SetWidgets replaces the widget array wholesale. Used to sync back a
// drag-edited cell layout; no collision resolution is applied, callers are
// trusted to hand in a consistent tree.
func (e *Engine) SetWidgets(widgets []widget.Instance) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.snapshotLocked()
	e.doc.Widgets = widgets
	e.reconcileSelectionLocked()
	observability.Engine().OnActionApplied(context.Background(), actionSetWidgets, "")
	e.notifyLocked()
}

// ToggleLock sets the widget's lock flag. Unknown ids are silent no-ops.
func (e *Engine) ToggleLock(id string, locked bool) {
	e.structuralUpdate(actionToggleLock, id, func(w widget.Instance) widget.Instance {
		w.Locked = locked
		return w
	})
}

// DuplicateWidget deep-clones the subtree rooted at id with fresh ids on
// every node and inserts the clone next to the original, selecting it.
// A root-level clone that would overlap its siblings is auto-placed below
// the layout instead. Unknown ids are silent no-ops. The clone is returned
// with true on success.
func (e *Engine) DuplicateWidget(id string) (widget.Instance, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	widgets, clone, ok := widget.Duplicate(e.doc.Widgets, id)
	if !ok {
		observability.Engine().OnActionIgnored(context.Background(), actionDuplicate, id)
		return widget.Instance{}, false
	}

	e.snapshotLocked()
	e.doc.Widgets = widgets

	// Root-level clones land on top of their original; re-place them to
	// keep the no-overlap invariant.
	if idx := e.rootIndex(clone.ID); idx >= 0 {
		others := make([]grid.Placed, 0, len(e.doc.Widgets)-1)
		for _, w := range e.doc.Widgets {
			if w.ID != clone.ID {
				others = append(others, grid.Placed{ID: w.ID, Position: w.Position})
			}
		}
		if len(grid.DetectCollisions(others, grid.Placed{ID: clone.ID, Position: clone.Position})) > 0 {
			pos := grid.AutoPlace(others, clone.Position.Width, clone.Position.Height)
			pos.Responsive = clone.Position.Responsive
			pos.ZIndex = clone.Position.ZIndex
			e.doc.Widgets = widget.UpdateByID(e.doc.Widgets, clone.ID, func(w widget.Instance) widget.Instance {
				w.Position = pos
				return w
			})
			clone.Position = pos
		}
	}

	e.selected = clone.ID
	observability.Engine().OnActionApplied(context.Background(), actionDuplicate, clone.ID)
	e.notifyLocked()
	return clone, true
}

// Undo restores the most recent pre-mutation snapshot, pushing the current
// document onto the redo stack. A no-op when there is nothing to undo.
func (e *Engine) Undo() {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.hist.undo(e.doc)
	if !ok {
		observability.Engine().OnActionIgnored(context.Background(), actionUndo, "")
		return
	}
	e.doc = doc
	e.dirty = true
	e.reconcileSelectionLocked()
	observability.Engine().OnActionApplied(context.Background(), actionUndo, "")
	e.notifyLocked()
}

// Redo reapplies the most recently undone state. A no-op when there is
// nothing to redo.
func (e *Engine) Redo() {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.hist.redo(e.doc)
	if !ok {
		observability.Engine().OnActionIgnored(context.Background(), actionRedo, "")
		return
	}
	e.doc = doc
	e.dirty = true
	e.reconcileSelectionLocked()
	observability.Engine().OnActionApplied(context.Background(), actionRedo, "")
	e.notifyLocked()
}

// Reset clears all widgets, preserving the grid config.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.snapshotLocked()
	e.doc.Widgets = []widget.Instance{}
	e.selected = ""
	observability.Engine().OnActionApplied(context.Background(), actionReset, "")
	e.notifyLocked()
}

// =============================================================================
// Non-Structural Actions
// =============================================================================

// Select sets the selected widget. An empty id clears the selection; an
// unknown id is a silent no-op. Selection changes never touch the history.
func (e *Engine) Select(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id != "" {
		if _, ok := widget.FindByID(e.doc.Widgets, id); !ok {
			return
		}
	}
	e.selected = id
	e.notifyLocked()
}

// SetMode sets the editor mode. Unknown modes are silent no-ops. Mode
// changes never touch the history.
func (e *Engine) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !m.valid() {
		return
	}
	e.mode = m
	e.notifyLocked()
}

// MarkClean clears the dirty flag, for hosts that have persisted the
// current document.
func (e *Engine) MarkClean() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty = false
}

// =============================================================================
// Internals
// =============================================================================

// structuralUpdate runs a by-id mutator as a structural action: existence
// check, pre-mutation snapshot, tree rebuild, hooks, notification.
func (e *Engine) structuralUpdate(action, id string, fn func(widget.Instance) widget.Instance) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := widget.FindByID(e.doc.Widgets, id); !ok {
		observability.Engine().OnActionIgnored(context.Background(), action, id)
		return
	}

	e.snapshotLocked()
	e.doc.Widgets = widget.UpdateByID(e.doc.Widgets, id, fn)
	observability.Engine().OnActionApplied(context.Background(), action, id)
	e.notifyLocked()
}

// rootIndex returns the index of the id in the root widget array, or -1.
func (e *Engine) rootIndex(id string) int {
	for i, w := range e.doc.Widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// reconcileSelectionLocked clears the selection when the selected widget no
// longer exists in the document.
func (e *Engine) reconcileSelectionLocked() {
	if e.selected == "" {
		return
	}
	if _, ok := widget.FindByID(e.doc.Widgets, e.selected); !ok {
		e.selected = ""
	}
}
