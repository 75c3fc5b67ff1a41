package meshpaint

import "log/slog"

// defaultHistoryCapacity is the default maximum number of strokes kept.
const defaultHistoryCapacity = 10

// UndoAction is one stroke's sparse diff: for every triangle the stroke
// touched, the leaf partition immediately before and immediately after.
type UndoAction struct {
	before map[int][]LeafRegion
	after  map[int][]LeafRegion
}

// History tracks paint strokes as sparse diffs rather than full-mesh
// snapshots, bounded by a configurable maximum length.
//
// Lifecycle: idle -> stroke-open (BeginStroke) -> idle (EndStroke or
// CancelStroke). MarkTriangleModified must be called before any mutation of
// a triangle within the open stroke; the Brush's PaintAt does this
// automatically when given a History.
type History struct {
	mesh     *Mesh
	capacity int

	undo []UndoAction
	redo []UndoAction

	strokeOpen bool
	before     map[int][]LeafRegion
}

// NewHistory creates an undo/redo manager for mesh. The default capacity
// keeps the last 10 strokes; use [WithCapacity] to change it.
func NewHistory(mesh *Mesh, opts ...HistoryOption) *History {
	h := &History{
		mesh:     mesh,
		capacity: defaultHistoryCapacity,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BeginStroke opens a stroke, starting an empty set of touched triangles.
// An already-open stroke is left as is.
func (h *History) BeginStroke() {
	if h.strokeOpen {
		return
	}
	h.strokeOpen = true
	h.before = make(map[int][]LeafRegion)
}

// MarkTriangleModified records triangle i as touched by the open stroke,
// deep-copying its current leaf partition on the first call per index.
// Subsequent calls for the same index within the stroke are no-ops, as are
// calls outside a stroke or with an out-of-range index.
func (h *History) MarkTriangleModified(i int) {
	if !h.strokeOpen || i < 0 || i >= len(h.mesh.Triangles) {
		return
	}
	if _, done := h.before[i]; done {
		return
	}
	h.before[i] = cloneLeaves(h.mesh.Triangles[i].Leaves)
}

// EndStroke closes the stroke. A stroke that touched nothing is discarded
// silently. Otherwise the touched triangles' current (post-mutation)
// partitions are captured, the action is pushed onto the undo stack, the
// redo stack is invalidated, and the oldest actions are dropped to honor
// the capacity.
func (h *History) EndStroke() {
	if !h.strokeOpen {
		return
	}
	h.strokeOpen = false
	before := h.before
	h.before = nil
	if len(before) == 0 {
		return
	}

	after := make(map[int][]LeafRegion, len(before))
	for i := range before {
		after[i] = cloneLeaves(h.mesh.Triangles[i].Leaves)
	}
	h.undo = append(h.undo, UndoAction{before: before, after: after})
	h.redo = nil
	if h.capacity > 0 && len(h.undo) > h.capacity {
		h.undo = append(h.undo[:0], h.undo[len(h.undo)-h.capacity:]...)
	}

	Logger().Debug("stroke recorded",
		slog.Int("touched", len(before)),
		slog.Int("undoDepth", len(h.undo)))
}

// CancelStroke discards the open stroke and everything it captured. The
// caller is responsible for having left the mesh untouched (or for
// restoring it); nothing reaches the undo stack.
func (h *History) CancelStroke() {
	h.strokeOpen = false
	h.before = nil
}

// Undo restores the state before the most recent stroke and moves the
// action to the redo stack. It reports false when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	action := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.restore(action.before)
	h.redo = append(h.redo, action)
	return true
}

// Redo re-applies the most recently undone stroke. It reports false when
// there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	action := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.restore(action.after)
	h.undo = append(h.undo, action)
	return true
}

// UndoCount returns the number of pending undo entries, for UI enablement.
func (h *History) UndoCount() int { return len(h.undo) }

// RedoCount returns the number of pending redo entries.
func (h *History) RedoCount() int { return len(h.redo) }

// restore writes captured partitions back into the mesh. Indices that no
// longer exist (stale after a mesh edit) are skipped defensively. The
// stack's own copies stay pristine: the mesh receives fresh clones.
func (h *History) restore(state map[int][]LeafRegion) {
	for i, leaves := range state {
		if i < 0 || i >= len(h.mesh.Triangles) {
			continue
		}
		h.mesh.Triangles[i].Leaves = cloneLeaves(leaves)
	}
}
