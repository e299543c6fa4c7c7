package mapstruct

// snapshot is a full copy of the store's association state.
type snapshot struct {
	assocs  []*Association
	forward map[FieldID][]string
	reverse map[FieldID][]string
}

// history is a bounded list of snapshots with a cursor. The cursor
// always points at the snapshot equal to the live store state; -1 means
// no snapshot has been captured yet.
type history struct {
	capacity  int
	snapshots []snapshot
	cursor    int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}

	return &history{capacity: capacity, cursor: -1}
}

func (h *history) empty() bool {
	return len(h.snapshots) == 0
}

// push records a new current state: any redo-able snapshots beyond the
// cursor are discarded, then the capacity bound evicts the oldest
// snapshot and pulls the cursor back with it.
func (h *history) push(s snapshot) {
	h.snapshots = append(h.snapshots[:h.cursor+1], s)
	h.cursor = len(h.snapshots) - 1

	if len(h.snapshots) > h.capacity {
		h.snapshots = h.snapshots[1:]
		h.cursor--
	}
}

// undo moves the cursor one position left and returns the snapshot
// there. At the earliest retained snapshot it is a no-op.
func (h *history) undo() (snapshot, bool) {
	if h.cursor <= 0 {
		return snapshot{}, false
	}

	h.cursor--

	return h.snapshots[h.cursor], true
}

// redo moves the cursor one position right. At the latest snapshot it
// is a no-op.
func (h *history) redo() (snapshot, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return snapshot{}, false
	}

	h.cursor++

	return h.snapshots[h.cursor], true
}

func (h *history) canUndo() bool { return h.cursor > 0 }

func (h *history) canRedo() bool { return h.cursor < len(h.snapshots)-1 }
