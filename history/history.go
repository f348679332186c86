// Package history provides bounded undo/redo over full scene snapshots.
//
// Every committed mutation pushes a complete scene state; undo and redo move
// whole states between the two stacks and hand the caller the state to
// restore. Interactive gesture frames never push; only the gesture's final
// state commits.
package history

import "github.com/pfpforge/pfp/scene"

// DefaultLimit is the default undo stack capacity.
const DefaultLimit = 50

// History holds the undo and redo stacks.
//
// The undo stack is capped: pushing beyond the limit evicts the oldest entry.
// The oldest remaining entry is the baseline and is never popped by Undo, so
// the initial state always stays restorable. The redo stack is unbounded but
// cleared by every new push.
type History struct {
	limit int
	undo  []scene.State
	redo  []scene.State
}

// New returns a History with the given undo capacity. Limits below 2 fall
// back to DefaultLimit (a baseline plus at least one undoable entry).
func New(limit int) *History {
	if limit < 2 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Reset drops both stacks and installs the given state as the baseline.
func (h *History) Reset(baseline scene.State) {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
	h.undo = append(h.undo, baseline)
}

// Push records a committed mutation. The redo stack is cleared; if the undo
// stack exceeds its capacity the oldest entry is evicted.
func (h *History) Push(st scene.State) {
	h.undo = append(h.undo, st)
	if len(h.undo) > h.limit {
		// Evict the oldest entry, keeping the slice compact.
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.redo = h.redo[:0]
}

// Undo moves the current state to the redo stack and returns the state to
// restore. Reports false when fewer than two entries exist: the baseline
// entry itself is never undone away.
func (h *History) Undo() (scene.State, bool) {
	if len(h.undo) < 2 {
		return scene.State{}, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return h.undo[len(h.undo)-1], true
}

// Redo moves the most recently undone state back to the undo stack and
// returns it for restoring. Reports false when the redo stack is empty.
func (h *History) Redo() (scene.State, bool) {
	if len(h.redo) == 0 {
		return scene.State{}, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, top)
	return top, true
}

// CanUndo reports whether Undo would restore a state.
func (h *History) CanUndo() bool {
	return len(h.undo) >= 2
}

// CanRedo reports whether Redo would restore a state.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Len returns the number of entries on the undo stack.
func (h *History) Len() int {
	return len(h.undo)
}

// RedoLen returns the number of entries on the redo stack.
func (h *History) RedoLen() int {
	return len(h.redo)
}

// ReferencedSources returns the union of source IDs referenced by any state
// on either stack. Callers releasing unused pixel data must keep everything
// in this set, or undo/redo would restore layers whose sources are gone.
func (h *History) ReferencedSources() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, st := range h.undo {
		for id := range st.SourceIDs() {
			ids[id] = struct{}{}
		}
	}
	for _, st := range h.redo {
		for id := range st.SourceIDs() {
			ids[id] = struct{}{}
		}
	}
	return ids
}
