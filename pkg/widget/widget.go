// Package widget defines the page's widget tree and the pure operations that
// transform it.
//
// A page is a forest of [Instance] nodes; container widgets own nested
// widgets through their Children slice, so every node has exactly one owner
// and the tree is acyclic by construction. All operations in this package are
// pure: they return a rebuilt tree and never mutate their input, which is what
// makes snapshot-based undo in the engine cheap to reason about.
package widget

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/pagegrid/pagegrid/pkg/grid"
)

// Config is the opaque, type-specific configuration bag of a widget. The
// engine never interprets its contents beyond merging partial updates; it
// only requires the values to be JSON-serializable.
type Config map[string]any

// Clone returns a shallow copy of the config (values are treated as
// immutable by convention). Returns nil for a nil config.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

// Merge returns a copy of the config with the partial's keys overlaid.
// Neither input is mutated. Merging into a nil config allocates a new one.
func (c Config) Merge(partial Config) Config {
	if len(partial) == 0 {
		return c.Clone()
	}
	out := make(Config, len(c)+len(partial))
	maps.Copy(out, c)
	maps.Copy(out, partial)
	return out
}

// Instance is a single placed widget: a stable id, a type identifier from the
// catalog, a grid position, its opaque config, and - for container types -
// owned child widgets.
type Instance struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Position grid.Position `json:"position"`
	Config   Config        `json:"config,omitempty"`
	Children []Instance    `json:"children,omitempty"`
	Locked   bool          `json:"isLocked,omitempty"`
}

// Clone returns a deep copy of the instance and its whole subtree,
// preserving all ids.
func (w Instance) Clone() Instance {
	out := w
	out.Position = w.Position.Clone()
	out.Config = w.Config.Clone()
	if w.Children != nil {
		out.Children = CloneTree(w.Children)
	}
	return out
}

// NewID returns a fresh unique widget id.
func NewID() string { return uuid.NewString() }

// CloneTree returns a deep copy of a widget forest, preserving ids.
func CloneTree(ws []Instance) []Instance {
	out := make([]Instance, len(ws))
	for i, w := range ws {
		out[i] = w.Clone()
	}
	return out
}

// FindByID returns the widget with the given id and true, searching the whole
// tree depth-first, or the zero value and false if absent. The returned
// instance is a copy; mutating it does not affect the tree.
func FindByID(ws []Instance, id string) (Instance, bool) {
	for _, w := range ws {
		if w.ID == id {
			return w.Clone(), true
		}
		if found, ok := FindByID(w.Children, id); ok {
			return found, true
		}
	}
	return Instance{}, false
}

// UpdateByID returns a new tree in which the widget with the given id has
// been replaced by fn's result. The mutator receives a deep copy, so it may
// freely modify any field except ID, which is restored afterwards to keep
// identity stable. If the id is absent the original tree is returned
// unchanged (shared, not copied).
func UpdateByID(ws []Instance, id string, fn func(Instance) Instance) []Instance {
	for i, w := range ws {
		if w.ID == id {
			updated := fn(w.Clone())
			updated.ID = w.ID
			out := slices.Clone(ws)
			out[i] = updated
			return out
		}
		if children := UpdateByID(w.Children, id, fn); len(w.Children) > 0 && !sameSlice(children, w.Children) {
			out := slices.Clone(ws)
			out[i].Children = children
			return out
		}
	}
	return ws
}

// sameSlice reports whether two slices share the same backing array start,
// which UpdateByID and RemoveByIDs use to detect "nothing changed".
func sameSlice(a, b []Instance) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

// RemoveByID returns a new tree with the subtree rooted at id removed.
// Descendants of the removed widget go with it. An absent id returns the
// original tree unchanged.
func RemoveByID(ws []Instance, id string) []Instance {
	return RemoveByIDs(ws, []string{id})
}

// RemoveByIDs returns a new tree with every subtree rooted at one of the ids
// removed. Absent ids are ignored.
func RemoveByIDs(ws []Instance, ids []string) []Instance {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	return removeSet(ws, drop)
}

func removeSet(ws []Instance, drop map[string]struct{}) []Instance {
	changed := false
	out := make([]Instance, 0, len(ws))
	for _, w := range ws {
		if _, hit := drop[w.ID]; hit {
			changed = true
			continue
		}
		if children := removeSet(w.Children, drop); len(w.Children) > 0 && !sameSlice(children, w.Children) {
			w.Children = children
			changed = true
		}
		out = append(out, w)
	}
	if !changed {
		return ws
	}
	return out
}

// Duplicate returns a new tree in which a deep clone of the subtree rooted at
// id - with fresh ids assigned to every node, descendants included - has been
// inserted immediately after the original within its parent. The clone is
// returned alongside the tree. An absent id returns the original tree, the
// zero instance, and false.
func Duplicate(ws []Instance, id string) ([]Instance, Instance, bool) {
	for i, w := range ws {
		if w.ID == id {
			clone := Reidentify(w.Clone())
			out := slices.Clone(ws)
			out = slices.Insert(out, i+1, clone)
			return out, clone, true
		}
		if children, clone, ok := Duplicate(w.Children, id); ok {
			out := slices.Clone(ws)
			out[i].Children = children
			return out, clone, true
		}
	}
	return ws, Instance{}, false
}

// Reidentify returns a copy of the instance with a fresh id on it and on
// every descendant. Used by Duplicate to keep ids disjoint from the tree.
func Reidentify(w Instance) Instance {
	w.ID = NewID()
	for i := range w.Children {
		w.Children[i] = Reidentify(w.Children[i])
	}
	return w
}

// Flatten returns every widget in the tree in pre-order (parents before
// children). The returned instances are the tree's own values; treat them
// as read-only.
func Flatten(ws []Instance) []Instance {
	var out []Instance
	var walk func([]Instance)
	walk = func(items []Instance) {
		for _, w := range items {
			out = append(out, w)
			walk(w.Children)
		}
	}
	walk(ws)
	return out
}

// Path returns the ancestor chain from a root widget down to the widget with
// the given id, inclusive. Returns nil if the id is absent.
func Path(ws []Instance, id string) []Instance {
	for _, w := range ws {
		if w.ID == id {
			return []Instance{w}
		}
		if rest := Path(w.Children, id); rest != nil {
			return append([]Instance{w}, rest...)
		}
	}
	return nil
}

// CollectIDs returns the ids of every widget in the tree in pre-order.
func CollectIDs(ws []Instance) []string {
	flat := Flatten(ws)
	ids := make([]string, len(flat))
	for i, w := range flat {
		ids[i] = w.ID
	}
	return ids
}

// Count returns the total number of widgets in the tree, descendants included.
func Count(ws []Instance) int {
	n := 0
	for _, w := range ws {
		n += 1 + Count(w.Children)
	}
	return n
}
