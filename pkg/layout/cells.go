package layout

import (
	"context"
	"sort"
	"time"

	"github.com/pagegrid/pagegrid/pkg/grid"
	"github.com/pagegrid/pagegrid/pkg/observability"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// Cell is the position of one widget in the flat coordinate form a generic
// grid-rendering surface works with: one rectangle per root widget, resolved
// for a single breakpoint.
type Cell struct {
	ID     string `json:"id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ceilingMargin bounds how far below the current layout the conflict
// resolver may push an item before pinning it and emitting a diagnostic.
const ceilingMargin = 100

// ToCells resolves the effective position of each root-level widget for the
// given breakpoint. A widget with a responsive override for the breakpoint
// uses it; otherwise the base position is used unscaled. X is clamped so the
// widget stays within the breakpoint's column count - a display-time clamp
// that never touches stored state.
func ToCells(widgets []widget.Instance, bp grid.Breakpoint, cfg grid.Config) []Cell {
	columns := cfg.ColumnsFor(bp)
	cells := make([]Cell, len(widgets))
	for i, w := range widgets {
		x, y, width, height := w.Position.X, w.Position.Y, w.Position.Width, w.Position.Height
		if r, ok := w.Position.Override(bp.Name); ok {
			x, y, width, height = r.X, r.Y, r.Width, r.Height
		}
		cells[i] = Cell{
			ID:     w.ID,
			X:      grid.ClampX(x, width, columns),
			Y:      y,
			Width:  width,
			Height: height,
		}
	}
	return cells
}

// FromCells writes edited cell positions back into the widget tree and
// returns the new tree. When the edited breakpoint is the base breakpoint the
// widget's base position is overwritten; otherwise the cell becomes (or
// replaces) the responsive override for that breakpoint. Cells whose id does
// not match any widget are ignored.
func FromCells(cells []Cell, widgets []widget.Instance, bpName, baseName string) []widget.Instance {
	out := widgets
	for _, c := range cells {
		cell := c
		out = widget.UpdateByID(out, cell.ID, func(w widget.Instance) widget.Instance {
			if bpName == baseName {
				w.Position.X = cell.X
				w.Position.Y = cell.Y
				w.Position.Width = cell.Width
				w.Position.Height = cell.Height
			} else {
				w.Position = w.Position.WithOverride(grid.ResponsivePosition{
					Breakpoint: bpName,
					X:          cell.X,
					Y:          cell.Y,
					Width:      cell.Width,
					Height:     cell.Height,
				})
			}
			return w
		})
	}
	return out
}

// Optimize resolves placement conflicts in an externally edited cell array,
// e.g. after a batch drag. Cells are processed in (y, x) order; each one is
// pushed down one row at a time until it overlaps none of the already placed
// cells. Descent is bounded by a safety ceiling (highest incoming row plus a
// fixed margin): an item that reaches the ceiling is pinned there and a
// diagnostic is emitted through the layout hooks, so the pass always
// terminates. The input is not mutated; the number of moved cells is
// returned alongside the resolved array.
func Optimize(ctx context.Context, cells []Cell) ([]Cell, int) {
	hooks := observability.Layout()
	hooks.OnOptimizeStart(ctx, len(cells))
	start := time.Now()

	out := make([]Cell, len(cells))
	copy(out, cells)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})

	ceiling := 0
	for _, c := range out {
		if bottom := c.Y + c.Height; bottom > ceiling {
			ceiling = bottom
		}
	}
	ceiling += ceilingMargin

	moved := 0
	placed := make([]Cell, 0, len(out))
	for i, c := range out {
		from := c.Y
		for overlapsAny(c, placed) {
			if c.Y >= ceiling {
				hooks.OnOptimizeCeiling(ctx, c.ID, c.Y)
				break
			}
			c.Y++
		}
		if c.Y != from {
			moved++
		}
		out[i] = c
		placed = append(placed, c)
	}

	hooks.OnOptimizeComplete(ctx, len(out), moved, time.Since(start))
	return out, moved
}

func overlapsAny(c Cell, placed []Cell) bool {
	for _, p := range placed {
		if c.X < p.X+p.Width && c.X+c.Width > p.X &&
			c.Y < p.Y+p.Height && c.Y+c.Height > p.Y {
			return true
		}
	}
	return false
}
