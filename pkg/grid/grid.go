// Package grid defines the column/breakpoint model of the page canvas and the
// pure placement algorithms that operate on it.
//
// All coordinates are expressed in grid units (columns and rows), never pixels.
// A [Config] describes the column count, spacing, and the named responsive
// breakpoints of a page; a [Position] describes the rectangle a widget occupies
// within that grid, optionally with per-breakpoint overrides.
//
// The algorithms in this package (overlap detection, auto-placement, bounds
// checking, breakpoint rescaling) are pure functions: they never mutate their
// inputs and never panic on malformed values - out-of-range inputs are clamped
// or rejected via documented fallbacks.
package grid

import (
	"errors"
	"slices"
)

var (
	// ErrNoBreakpoints is returned by [Config.Validate] when the config has
	// no breakpoints. Every grid needs at least one.
	ErrNoBreakpoints = errors.New("grid config must define at least one breakpoint")

	// ErrUnsortedBreakpoints is returned by [Config.Validate] when breakpoints
	// are not ordered by MinWidth ascending.
	ErrUnsortedBreakpoints = errors.New("breakpoints must be ordered by min width ascending")

	// ErrDuplicateBreakpoint is returned by [Config.Validate] when two
	// breakpoints share a name. Breakpoint names key responsive overrides,
	// so they must be unique.
	ErrDuplicateBreakpoint = errors.New("duplicate breakpoint name")

	// ErrInvalidColumns is returned by [Config.Validate] when the column
	// count of the grid or of a breakpoint override is below one.
	ErrInvalidColumns = errors.New("column count must be at least 1")
)

// Unit is the CSS-style measurement unit of a gap value.
type Unit string

// Supported gap units.
const (
	UnitPx  Unit = "px"
	UnitRem Unit = "rem"
	UnitEm  Unit = "em"
)

// Gap describes the spacing between grid cells. The value is opaque to the
// engine; it is carried through to the rendering surface untouched.
type Gap struct {
	Unit  Unit    `json:"unit"`
	Value float64 `json:"value"`
}

// Breakpoint is a named viewport-width range with an optional column count
// override. MaxWidth zero means the range is open-ended upward. Columns zero
// means the breakpoint inherits the grid-level column count.
type Breakpoint struct {
	Name     string `json:"name"`
	MinWidth int    `json:"minWidth"`
	MaxWidth int    `json:"maxWidth,omitempty"`
	Columns  int    `json:"columns,omitempty"`
}

// Contains reports whether a viewport width in pixels falls inside the
// breakpoint's range. A zero MaxWidth is treated as unbounded.
func (b Breakpoint) Contains(width int) bool {
	if width < b.MinWidth {
		return false
	}
	return b.MaxWidth == 0 || width <= b.MaxWidth
}

// Config is the grid model of a page: the base column count, cell spacing,
// and the ordered set of responsive breakpoints.
//
// The zero value is not usable - use [DefaultConfig] or build one explicitly
// and check it with [Config.Validate].
type Config struct {
	Columns     int          `json:"columns"`
	Gap         Gap          `json:"gap"`
	SnapToGrid  bool         `json:"snapToGrid"`
	Breakpoints []Breakpoint `json:"breakpoints"`
}

// Default breakpoint names used by [DefaultConfig].
const (
	BreakpointMobile  = "mobile"
	BreakpointTablet  = "tablet"
	BreakpointDesktop = "desktop"
	BreakpointWide    = "wide"
)

// DefaultColumns is the base column count used by [DefaultConfig].
const DefaultColumns = 12

// DefaultConfig returns the standard 12-column grid with four breakpoints:
// mobile (4 columns), tablet (8), desktop (12), and wide (12).
func DefaultConfig() Config {
	return Config{
		Columns:    DefaultColumns,
		Gap:        Gap{Unit: UnitPx, Value: 16},
		SnapToGrid: true,
		Breakpoints: []Breakpoint{
			{Name: BreakpointMobile, MinWidth: 0, MaxWidth: 767, Columns: 4},
			{Name: BreakpointTablet, MinWidth: 768, MaxWidth: 1023, Columns: 8},
			{Name: BreakpointDesktop, MinWidth: 1024, MaxWidth: 1439, Columns: 12},
			{Name: BreakpointWide, MinWidth: 1440, Columns: 12},
		},
	}
}

// Validate checks structural integrity of the config and returns nil if valid.
// It verifies that at least one breakpoint exists, that breakpoints are
// ordered by MinWidth ascending with unique names, and that all column counts
// are positive. It does not attempt to resolve overlapping width ranges -
// supplying an unambiguous range partition is the caller's responsibility.
func (c Config) Validate() error {
	if c.Columns < 1 {
		return ErrInvalidColumns
	}
	if len(c.Breakpoints) == 0 {
		return ErrNoBreakpoints
	}
	seen := make(map[string]struct{}, len(c.Breakpoints))
	for i, bp := range c.Breakpoints {
		if _, dup := seen[bp.Name]; dup {
			return ErrDuplicateBreakpoint
		}
		seen[bp.Name] = struct{}{}
		if bp.Columns < 0 || (bp.Columns == 0 && c.Columns < 1) {
			return ErrInvalidColumns
		}
		if i > 0 && bp.MinWidth < c.Breakpoints[i-1].MinWidth {
			return ErrUnsortedBreakpoints
		}
	}
	return nil
}

// Breakpoint returns the breakpoint with the given name and true, or the
// zero value and false if no breakpoint has that name.
func (c Config) Breakpoint(name string) (Breakpoint, bool) {
	for _, bp := range c.Breakpoints {
		if bp.Name == name {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// BreakpointFor returns the breakpoint whose width range contains the given
// viewport width. If no range matches, the last (widest) breakpoint is
// returned as a fallback so that a valid config always resolves.
func (c Config) BreakpointFor(width int) Breakpoint {
	for _, bp := range c.Breakpoints {
		if bp.Contains(width) {
			return bp
		}
	}
	if len(c.Breakpoints) == 0 {
		return Breakpoint{Name: "default", Columns: c.Columns}
	}
	return c.Breakpoints[len(c.Breakpoints)-1]
}

// ColumnsFor returns the effective column count for a breakpoint: the
// breakpoint's own column override when present, otherwise the grid-level
// column count.
func (c Config) ColumnsFor(bp Breakpoint) int {
	if bp.Columns > 0 {
		return bp.Columns
	}
	return c.Columns
}

// BreakpointNames returns the breakpoint names in declaration order.
func (c Config) BreakpointNames() []string {
	names := make([]string, len(c.Breakpoints))
	for i, bp := range c.Breakpoints {
		names[i] = bp.Name
	}
	return names
}

// Clone returns a deep copy of the config.
func (c Config) Clone() Config {
	out := c
	out.Breakpoints = slices.Clone(c.Breakpoints)
	return out
}
