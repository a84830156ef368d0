package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pagegrid/pagegrid/pkg/grid"
	"github.com/pagegrid/pagegrid/pkg/layout"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

func TestAddWidgetAutoPlacement(t *testing.T) {
	e := New()

	// Image widgets default to 4x3. First add lands at the origin, the
	// second stacks below it.
	w1 := e.AddWidget("image", nil)
	if p := w1.Position; p.X != 0 || p.Y != 0 || p.Width != 4 || p.Height != 3 {
		t.Errorf("first add = %+v, want (0,0) 4x3", p)
	}

	w2 := e.AddWidget("image", nil)
	if p := w2.Position; p.X != 0 || p.Y != 3 || p.Width != 4 || p.Height != 3 {
		t.Errorf("second add = %+v, want (0,3) 4x3", p)
	}

	st := e.State()
	if len(st.Layout.Widgets) != 2 {
		t.Fatalf("len(Widgets) = %d, want 2", len(st.Layout.Widgets))
	}
	if st.SelectedID != w2.ID {
		t.Errorf("SelectedID = %q, want the newest widget", st.SelectedID)
	}
}

func TestDefaultSizeStackingWithUndoRedo(t *testing.T) {
	e := New()

	// Uncataloged types fall back to the generic 4x2 definition.
	w1 := e.AddWidget("card", nil)
	if p := w1.Position; p.X != 0 || p.Y != 0 || p.Width != 4 || p.Height != 2 {
		t.Errorf("first add = %+v, want (0,0) 4x2", p)
	}
	one := marshal(t, e.State().Layout)

	w2 := e.AddWidget("card", nil)
	if p := w2.Position; p.X != 0 || p.Y != 2 || p.Width != 4 || p.Height != 2 {
		t.Errorf("second add = %+v, want (0,2) 4x2", p)
	}
	both := marshal(t, e.State().Layout)

	e.Undo()
	if st := e.State(); len(st.Layout.Widgets) != 1 || st.Layout.Widgets[0].ID != w1.ID {
		t.Fatalf("after undo widgets = %+v, want just the first add", st.Layout.Widgets)
	}
	if got := marshal(t, e.State().Layout); got != one {
		t.Errorf("after undo:\n%s\nwant:\n%s", got, one)
	}

	e.Redo()
	if got := marshal(t, e.State().Layout); got != both {
		t.Errorf("after redo:\n%s\nwant:\n%s", got, both)
	}
}

func TestAddWidgetHonorsFreePosition(t *testing.T) {
	e := New()
	e.AddWidget("image", nil) // occupies (0,0) 4x3

	w := e.AddWidget("image", &grid.Position{X: 6, Y: 0, Width: 4, Height: 3})
	if w.Position.X != 6 || w.Position.Y != 0 {
		t.Errorf("Position = %+v, want (6,0)", w.Position)
	}
}

func TestAddWidgetCollisionFallsBack(t *testing.T) {
	e := New()
	e.AddWidget("image", nil) // occupies (0,0) 4x3

	w := e.AddWidget("image", &grid.Position{X: 0, Y: 0, Width: 4, Height: 3})
	if w.Position.Y != 3 {
		t.Errorf("colliding request placed at y=%d, want 3 (auto-placed)", w.Position.Y)
	}
}

func TestAddWidgetSizelessRequest(t *testing.T) {
	e := New()

	// A drop target with coordinates but no spans takes the catalog size.
	w := e.AddWidget("image", &grid.Position{X: 2, Y: 1})
	if w.Position.Width != 4 || w.Position.Height != 3 {
		t.Errorf("spans = %dx%d, want catalog default 4x3", w.Position.Width, w.Position.Height)
	}
	if w.Position.X != 2 || w.Position.Y != 1 {
		t.Errorf("Position = %+v, want (2,1)", w.Position)
	}
}

func TestUndoRedoRestoreExactState(t *testing.T) {
	e := New()

	e.AddWidget("image", nil)
	before := marshal(t, e.State().Layout)

	e.AddWidget("image", nil)
	after := marshal(t, e.State().Layout)

	e.Undo()
	if got := marshal(t, e.State().Layout); got != before {
		t.Errorf("undo state:\n%s\nwant:\n%s", got, before)
	}

	e.Redo()
	if got := marshal(t, e.State().Layout); got != after {
		t.Errorf("redo state:\n%s\nwant:\n%s", got, after)
	}
}

func marshal(t *testing.T, doc layout.Document) string {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestUndoRedoFlags(t *testing.T) {
	e := New()

	st := e.State()
	if st.CanUndo || st.CanRedo {
		t.Error("fresh engine should have no history")
	}

	e.AddWidget("text", nil)
	if st := e.State(); !st.CanUndo || st.CanRedo {
		t.Errorf("after add: CanUndo=%v CanRedo=%v, want true/false", st.CanUndo, st.CanRedo)
	}

	e.Undo()
	if st := e.State(); st.CanUndo || !st.CanRedo {
		t.Errorf("after undo: CanUndo=%v CanRedo=%v, want false/true", st.CanUndo, st.CanRedo)
	}

	// A new edit clears the redo stack.
	e.AddWidget("text", nil)
	if st := e.State(); st.CanRedo {
		t.Error("edit after undo must clear redo")
	}

	// Undo/redo beyond the stacks are no-ops.
	e.Undo()
	e.Undo()
	e.Redo()
	e.Redo()
	if st := e.State(); len(st.Layout.Widgets) != 1 {
		t.Errorf("len(Widgets) = %d after undo/redo churn, want 1", len(st.Layout.Widgets))
	}
}

func TestHistoryLimitEnforced(t *testing.T) {
	e := New(WithHistoryLimit(5))

	for i := 0; i < 10; i++ {
		e.AddWidget("text", nil)
	}
	if st := e.State(); st.PastLen != 5 {
		t.Errorf("PastLen = %d, want 5", st.PastLen)
	}

	// Only five undos take effect.
	for i := 0; i < 10; i++ {
		e.Undo()
	}
	if st := e.State(); len(st.Layout.Widgets) != 5 {
		t.Errorf("len(Widgets) after exhausting undo = %d, want 5", len(st.Layout.Widgets))
	}
}

func TestUpdateWidgetConfigMerges(t *testing.T) {
	e := New()
	w := e.AddWidget("text", nil)

	e.UpdateWidgetConfig(w.ID, widget.Config{"align": "center"})

	got, _ := widget.FindByID(e.State().Layout.Widgets, w.ID)
	if got.Config["align"] != "center" {
		t.Errorf("Config = %v, want align merged", got.Config)
	}
	if got.Config["text"] != "Lorem ipsum dolor sit amet." {
		t.Error("merge must keep existing keys")
	}
}

func TestUpdatePositionPartial(t *testing.T) {
	e := New()
	w := e.AddWidget("text", nil)

	x, z := 3, 7
	e.UpdatePosition(w.ID, PositionPatch{X: &x, ZIndex: &z})

	got, _ := widget.FindByID(e.State().Layout.Widgets, w.ID)
	if got.Position.X != 3 || got.Position.ZIndex != 7 {
		t.Errorf("Position = %+v, want x=3 z=7", got.Position)
	}
	if got.Position.Width != 6 {
		t.Error("unset patch fields must stay untouched")
	}
}

func TestMoveWidgetCollisionFallsBack(t *testing.T) {
	e := New()
	a := e.AddWidget("image", nil) // (0,0) 4x3
	b := e.AddWidget("image", &grid.Position{X: 6, Y: 0, Width: 4, Height: 3})

	// Move b onto a: falls back below the layout.
	e.MoveWidget(b.ID, grid.Position{X: 0, Y: 0, Width: 4, Height: 3})

	got, _ := widget.FindByID(e.State().Layout.Widgets, b.ID)
	if got.Position.Y != 3 {
		t.Errorf("b.Y = %d, want 3 (auto-placed)", got.Position.Y)
	}
	gotA, _ := widget.FindByID(e.State().Layout.Widgets, a.ID)
	if gotA.Position.X != 0 || gotA.Position.Y != 0 {
		t.Error("moving b must not displace a")
	}
}

func TestMoveWidgetPreservesOverrides(t *testing.T) {
	e := New()
	w := e.AddWidget("text", nil)

	// Attach an override through the wholesale sync path, then move.
	e.SetWidgets(widget.UpdateByID(e.State().Layout.Widgets, w.ID, func(i widget.Instance) widget.Instance {
		i.Position = i.Position.WithOverride(grid.ResponsivePosition{Breakpoint: "mobile", X: 0, Y: 0, Width: 4, Height: 2})
		return i
	}))

	e.MoveWidget(w.ID, grid.Position{X: 6, Y: 0, Width: 6, Height: 2})

	got, _ := widget.FindByID(e.State().Layout.Widgets, w.ID)
	if _, ok := got.Position.Override("mobile"); !ok {
		t.Error("move dropped the responsive override")
	}
	if got.Position.X != 6 {
		t.Errorf("X = %d, want 6", got.Position.X)
	}
}

func TestRemoveWidgetClearsSelection(t *testing.T) {
	e := New()
	w := e.AddWidget("text", nil)

	if st := e.State(); st.SelectedID != w.ID {
		t.Fatalf("SelectedID = %q, want %q", st.SelectedID, w.ID)
	}

	e.RemoveWidget(w.ID)
	if st := e.State(); st.SelectedID != "" {
		t.Errorf("SelectedID = %q after removal, want empty", st.SelectedID)
	}
}

func TestUnknownIDsAreSilentNoOps(t *testing.T) {
	e := New()
	e.AddWidget("text", nil)
	before := e.State()

	e.RemoveWidget("ghost")
	e.MoveWidget("ghost", grid.Position{X: 1, Y: 1, Width: 1, Height: 1})
	e.UpdateWidgetConfig("ghost", widget.Config{"a": 1})
	e.ToggleLock("ghost", true)
	if _, ok := e.DuplicateWidget("ghost"); ok {
		t.Error("DuplicateWidget(ghost) = true, want false")
	}

	after := e.State()
	if after.PastLen != before.PastLen {
		t.Errorf("no-op actions grew history: %d -> %d", before.PastLen, after.PastLen)
	}
	if len(after.Layout.Widgets) != 1 {
		t.Errorf("len(Widgets) = %d, want 1", len(after.Layout.Widgets))
	}
}

func TestDuplicateWidget(t *testing.T) {
	e := New()
	w := e.AddWidget("image", nil)

	clone, ok := e.DuplicateWidget(w.ID)
	if !ok {
		t.Fatal("DuplicateWidget failed")
	}
	if clone.ID == w.ID {
		t.Error("clone must get a fresh id")
	}
	// Clone would overlap the original, so it is auto-placed below.
	if clone.Position.Y != 3 {
		t.Errorf("clone.Y = %d, want 3", clone.Position.Y)
	}
	if st := e.State(); st.SelectedID != clone.ID {
		t.Error("clone should be selected")
	}
}

func TestToggleLock(t *testing.T) {
	e := New()
	w := e.AddWidget("text", nil)

	e.ToggleLock(w.ID, true)
	got, _ := widget.FindByID(e.State().Layout.Widgets, w.ID)
	if !got.Locked {
		t.Error("Locked = false, want true")
	}

	e.ToggleLock(w.ID, false)
	got, _ = widget.FindByID(e.State().Layout.Widgets, w.ID)
	if got.Locked {
		t.Error("Locked = true, want false")
	}
}

func TestLoadClearsHistoryAndDirty(t *testing.T) {
	e := New()
	e.AddWidget("text", nil)

	doc := layout.New(grid.DefaultConfig())
	e.Load(doc)

	st := e.State()
	if st.CanUndo || st.CanRedo {
		t.Error("Load must clear the history")
	}
	if st.Dirty {
		t.Error("Load must mark the engine clean")
	}
	if st.SelectedID != "" {
		t.Error("Load must clear the selection")
	}
}

func TestResetKeepsGrid(t *testing.T) {
	cfg := grid.DefaultConfig()
	cfg.Columns = 16
	e := New(WithLayout(layout.New(cfg)))
	e.AddWidget("text", nil)

	e.Reset()

	st := e.State()
	if len(st.Layout.Widgets) != 0 {
		t.Errorf("len(Widgets) = %d, want 0", len(st.Layout.Widgets))
	}
	if st.Layout.Grid.Columns != 16 {
		t.Errorf("Columns = %d, want 16 (grid preserved)", st.Layout.Grid.Columns)
	}
	if !st.CanUndo {
		t.Error("Reset should be undoable")
	}
}

func TestSelectAndMode(t *testing.T) {
	e := New()
	w := e.AddWidget("text", nil)

	e.Select("")
	if st := e.State(); st.SelectedID != "" {
		t.Error("empty id should clear selection")
	}

	e.Select(w.ID)
	if st := e.State(); st.SelectedID != w.ID {
		t.Error("Select by id failed")
	}

	e.Select("ghost")
	if st := e.State(); st.SelectedID != w.ID {
		t.Error("unknown id must not change selection")
	}

	e.SetMode(ModePreview)
	if st := e.State(); st.Mode != ModePreview {
		t.Errorf("Mode = %q, want preview", st.Mode)
	}

	e.SetMode(Mode("bogus"))
	if st := e.State(); st.Mode != ModePreview {
		t.Error("invalid mode must be ignored")
	}

	// Non-structural actions never touch history or dirty tracking.
	e.MarkClean()
	e.Select("")
	e.SetMode(ModeEdit)
	if st := e.State(); st.Dirty {
		t.Error("selection/mode changes must not dirty the document")
	}
}

func TestDirtyTracking(t *testing.T) {
	e := New()
	if e.State().Dirty {
		t.Error("fresh engine should be clean")
	}

	e.AddWidget("text", nil)
	if !e.State().Dirty {
		t.Error("structural action should dirty the document")
	}

	e.MarkClean()
	if e.State().Dirty {
		t.Error("MarkClean failed")
	}

	e.Undo()
	if !e.State().Dirty {
		t.Error("undo is an edit and should dirty the document")
	}
}

func TestSubscribeDebounced(t *testing.T) {
	e := New(WithNotifyDelay(10 * time.Millisecond))

	ch := make(chan State, 8)
	e.Subscribe(func(s State) { ch <- s })

	// A burst of edits collapses to one notification carrying the final state.
	e.AddWidget("text", nil)
	e.AddWidget("text", nil)
	e.AddWidget("text", nil)

	select {
	case st := <-ch:
		if len(st.Layout.Widgets) != 3 {
			t.Errorf("notified with %d widgets, want 3 (last snapshot wins)", len(st.Layout.Widgets))
		}
	case <-time.After(time.Second):
		t.Fatal("no notification delivered")
	}

	select {
	case <-ch:
		t.Error("burst should deliver a single debounced notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUndoRestoresSelectionConsistency(t *testing.T) {
	e := New()
	w := e.AddWidget("text", nil)

	e.Undo() // document no longer contains w
	if st := e.State(); st.SelectedID != "" {
		t.Errorf("SelectedID = %q after undoing the add, want empty", st.SelectedID)
	}

	e.Redo()
	if _, ok := widget.FindByID(e.State().Layout.Widgets, w.ID); !ok {
		t.Error("redo should restore the widget")
	}
}
