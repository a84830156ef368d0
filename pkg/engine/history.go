package engine

import "github.com/pagegrid/pagegrid/pkg/layout"

// DefaultHistoryLimit is the default bound on undo snapshots.
const DefaultHistoryLimit = 50

// history is the linear undo/redo store: past holds pre-mutation snapshots
// oldest first, future holds undone states nearest first. Every new edit
// clears future (no redo-branch preservation).
type history struct {
	past   []layout.Document
	future []layout.Document
	limit  int
}

// push records a pre-mutation snapshot and clears the redo stack. It returns
// the number of oldest entries evicted to stay within the limit.
func (h *history) push(snap layout.Document) int {
	h.past = append(h.past, snap)
	h.future = h.future[:0]

	dropped := 0
	if h.limit > 0 && len(h.past) > h.limit {
		dropped = len(h.past) - h.limit
		h.past = append([]layout.Document(nil), h.past[dropped:]...)
	}
	return dropped
}

// undo pops the most recent past snapshot, stashing the current document at
// the front of future. Returns false with the zero value when past is empty.
func (h *history) undo(current layout.Document) (layout.Document, bool) {
	if len(h.past) == 0 {
		return layout.Document{}, false
	}
	snap := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]layout.Document{current}, h.future...)
	return snap, true
}

// redo shifts the nearest future snapshot, stashing the current document at
// the end of past. Returns false with the zero value when future is empty.
func (h *history) redo(current layout.Document) (layout.Document, bool) {
	if len(h.future) == 0 {
		return layout.Document{}, false
	}
	snap := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, current)
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = append([]layout.Document(nil), h.past[len(h.past)-h.limit:]...)
	}
	return snap, true
}

// clear drops both stacks.
func (h *history) clear() {
	h.past = nil
	h.future = nil
}
