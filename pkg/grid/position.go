package grid

import (
	"math"
	"slices"
)

// ResponsivePosition is a per-breakpoint position override. A widget whose
// Position carries an override for a breakpoint is rendered at these
// coordinates on that breakpoint instead of its base coordinates.
type ResponsivePosition struct {
	Breakpoint string `json:"breakpoint"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// Position is the rectangle a widget occupies on the grid, in grid units.
// X and Y are the top-left cell; Width and Height are spans and must be at
// least 1 for a placed widget. Responsive holds at most one override per
// breakpoint name; breakpoints without an entry inherit the base rectangle.
type Position struct {
	X          int                  `json:"x"`
	Y          int                  `json:"y"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Responsive []ResponsivePosition `json:"responsive,omitempty"`
	ZIndex     int                  `json:"zIndex,omitempty"`
}

// Overlaps reports whether two positions intersect. Rectangles are half-open
// on both axes, so widgets that merely touch edges do not overlap.
func (p Position) Overlaps(o Position) bool {
	return p.X < o.X+o.Width && p.X+p.Width > o.X &&
		p.Y < o.Y+o.Height && p.Y+p.Height > o.Y
}

// Override returns the responsive override for the named breakpoint and true,
// or the zero value and false if the position has no override for it.
func (p Position) Override(breakpoint string) (ResponsivePosition, bool) {
	for _, r := range p.Responsive {
		if r.Breakpoint == breakpoint {
			return r, true
		}
	}
	return ResponsivePosition{}, false
}

// WithOverride returns a copy of the position with the override for the given
// breakpoint upserted. An existing entry for the same breakpoint is replaced
// (one entry per breakpoint, last write wins). The receiver is not mutated.
func (p Position) WithOverride(r ResponsivePosition) Position {
	out := p
	out.Responsive = slices.Clone(p.Responsive)
	for i := range out.Responsive {
		if out.Responsive[i].Breakpoint == r.Breakpoint {
			out.Responsive[i] = r
			return out
		}
	}
	out.Responsive = append(out.Responsive, r)
	return out
}

// Clone returns a deep copy of the position.
func (p Position) Clone() Position {
	out := p
	out.Responsive = slices.Clone(p.Responsive)
	return out
}

// IsValid reports whether the position fits the grid: non-negative origin,
// positive spans, and x+width within the grid's base column count.
func IsValid(p Position, cfg Config) bool {
	return p.X >= 0 && p.Y >= 0 && p.Width > 0 && p.Height > 0 &&
		p.X+p.Width <= cfg.Columns
}

// ClampX returns x adjusted so that a widget of the given width stays within
// a row of the given column count. Widgets wider than the row are pinned to
// column zero.
func ClampX(x, width, columns int) int {
	if max := columns - width; x > max {
		x = max
	}
	if x < 0 {
		return 0
	}
	return x
}

// Rescale proportionally maps a position from one breakpoint's column space
// into another's. X and Width are scaled by the ratio of destination to
// source columns and rounded to the nearest grid cell; width never drops
// below 1, and x is re-clamped so the widget stays in bounds. Y, Height, and
// responsive overrides are carried through unchanged (rows are not
// breakpoint-relative).
//
// Rescale is used to seed an editable position for a breakpoint that has no
// explicit override; display-time conversion uses the base position as-is.
func Rescale(p Position, from, to Breakpoint, cfg Config) Position {
	fromCols := cfg.ColumnsFor(from)
	toCols := cfg.ColumnsFor(to)
	if fromCols < 1 || toCols < 1 || fromCols == toCols {
		return p
	}

	ratio := float64(toCols) / float64(fromCols)
	out := p
	out.Width = int(math.Round(float64(p.Width) * ratio))
	if out.Width < 1 {
		out.Width = 1
	}
	out.X = ClampX(int(math.Round(float64(p.X)*ratio)), out.Width, toCols)
	return out
}

// Placed pairs a widget id with its effective position for collision scans.
// The id lets a candidate exclude itself when it is already part of the
// layout (e.g. during a move).
type Placed struct {
	ID       string
	Position Position
}

// DetectCollisions returns every placed item whose position overlaps the
// candidate, excluding the candidate itself by id. The scan is linear, which
// is fine at the page-builder widget-count ceiling.
func DetectCollisions(existing []Placed, candidate Placed) []Placed {
	var hits []Placed
	for _, e := range existing {
		if e.ID == candidate.ID {
			continue
		}
		if e.Position.Overlaps(candidate.Position) {
			hits = append(hits, e)
		}
	}
	return hits
}

// AutoPlace returns a position for a new widget of the given size, appended
// below the lowest occupied row at column zero. Given that the existing
// items do not overlap each other, the returned position never collides.
// Spans below 1 are raised to 1 so the result is always a valid rectangle.
func AutoPlace(existing []Placed, width, height int) Position {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	maxY := 0
	for _, e := range existing {
		if bottom := e.Position.Y + e.Position.Height; bottom > maxY {
			maxY = bottom
		}
	}
	return Position{X: 0, Y: maxY, Width: width, Height: height}
}

// Resolve picks the position a new widget should take under the ordered
// placement policy: a requested position that is valid and collision-free is
// used verbatim; anything else (invalid, colliding, or absent) falls back to
// [AutoPlace] with the requested size, or the default size when no request
// was made. The boolean reports whether the request was honored.
func Resolve(requested *Position, existing []Placed, defaultW, defaultH int, cfg Config) (Position, bool) {
	if requested != nil {
		candidate := requested.Clone()
		if IsValid(candidate, cfg) && len(DetectCollisions(existing, Placed{Position: candidate})) == 0 {
			return candidate, true
		}
		return AutoPlace(existing, candidate.Width, candidate.Height), false
	}
	return AutoPlace(existing, defaultW, defaultH), false
}
