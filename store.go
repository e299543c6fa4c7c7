package mapstruct

import (
	"fmt"
	"slices"
)

// Association links one or more source fields to one or more target
// fields. Member slices keep insertion order but carry set semantics.
type Association struct {
	ID       string
	Sources  []FieldID
	Targets  []FieldID
	Warnings []string
}

// Cardinality derives the shape classification of the association.
func (a *Association) Cardinality() Cardinality {
	switch {
	case len(a.Sources) > 1:
		return ManyToOne
	case len(a.Targets) > 1:
		return OneToMany
	default:
		return OneToOne
	}
}

func (a *Association) clone() *Association {
	return &Association{
		ID:       a.ID,
		Sources:  slices.Clone(a.Sources),
		Targets:  slices.Clone(a.Targets),
		Warnings: slices.Clone(a.Warnings),
	}
}

func (a *Association) members(side Side) []FieldID {
	if side == SideSource {
		return a.Sources
	}

	return a.Targets
}

// Store holds the current set of associations, a forward index
// (source field -> association ids) and a reverse index (target field
// -> association ids), plus the bounded undo/redo history. It is the
// single source of truth for a mapping session; all accessors return
// copies, never the live structures.
//
// Store is not safe for concurrent use. The session model delivers one
// UI command at a time, so no locking is needed.
type Store struct {
	assocs  []*Association
	forward map[FieldID][]string
	reverse map[FieldID][]string
	hist    *history
	nextID  int
}

// NewStore creates an empty store with the default history capacity.
func NewStore() *Store {
	return NewStoreWithCapacity(DefaultHistoryCapacity)
}

// NewStoreWithCapacity creates an empty store with a custom snapshot
// history bound.
func NewStoreWithCapacity(capacity int) *Store {
	return &Store{
		forward: make(map[FieldID][]string),
		reverse: make(map[FieldID][]string),
		hist:    newHistory(capacity),
	}
}

// Create adds a new association. Both member sets must be non-empty and
// deduplicated, and the exact (source-set, target-set) pair must not
// already exist. On failure nothing is mutated and no snapshot is
// taken.
func (s *Store) Create(sources, targets []FieldID, warnings ...string) (Association, error) {
	if len(sources) == 0 {
		return Association{}, fmt.Errorf("%w: source side", ErrEmptyMemberSet)
	}

	if len(targets) == 0 {
		return Association{}, fmt.Errorf("%w: target side", ErrEmptyMemberSet)
	}

	if id, ok := firstDuplicate(sources); ok {
		return Association{}, fmt.Errorf("%w: source field %s repeated in one attempt", ErrDuplicateAssociation, id)
	}

	if id, ok := firstDuplicate(targets); ok {
		return Association{}, fmt.Errorf("%w: target field %s repeated in one attempt", ErrDuplicateAssociation, id)
	}

	for _, a := range s.assocs {
		if sameMembers(a.Sources, sources) && sameMembers(a.Targets, targets) {
			return Association{}, fmt.Errorf("%w: %s", ErrDuplicateAssociation, a.ID)
		}
	}

	var created *Association

	s.commit(func() {
		s.nextID++
		created = &Association{
			ID:       fmt.Sprintf("m%d", s.nextID),
			Sources:  slices.Clone(sources),
			Targets:  slices.Clone(targets),
			Warnings: slices.Clone(warnings),
		}
		s.assocs = append(s.assocs, created)

		for _, id := range created.Sources {
			s.forward[id] = append(s.forward[id], created.ID)
		}
		for _, id := range created.Targets {
			s.reverse[id] = append(s.reverse[id], created.ID)
		}
	})

	return *created.clone(), nil
}

// RemoveField removes one field from one side of an association.
// Removing the last member of a side deletes the whole association.
// Removing a field that is not a member is a no-op, but a snapshot is
// still taken, mirroring the editor's behavior.
func (s *Store) RemoveField(assocID string, side Side, id FieldID) error {
	idx := slices.IndexFunc(s.assocs, func(a *Association) bool { return a.ID == assocID })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrAssociationNotFound, assocID)
	}

	s.commit(func() {
		a := s.assocs[idx]

		members := a.members(side)

		pos := slices.Index(members, id)
		if pos < 0 {
			return
		}

		members = slices.Delete(members, pos, pos+1)
		if side == SideSource {
			a.Sources = members
		} else {
			a.Targets = members
		}

		s.unindex(side, id, a.ID)

		if len(members) == 0 {
			// The side emptied: drop the association entirely and prune
			// the other side's index entries.
			other := SideTarget
			if side == SideTarget {
				other = SideSource
			}
			for _, m := range a.members(other) {
				s.unindex(other, m, a.ID)
			}

			s.assocs = slices.Delete(s.assocs, idx, idx+1)
		}
	})

	return nil
}

// Clear removes every association. A snapshot is taken first so the
// operation is undoable.
func (s *Store) Clear() {
	s.commit(func() {
		s.assocs = nil
		s.forward = make(map[FieldID][]string)
		s.reverse = make(map[FieldID][]string)
	})
}

// Undo steps the history cursor back one snapshot and restores it.
// Returns false (and leaves state unchanged) at the earliest retained
// snapshot. Undo itself never creates a snapshot.
func (s *Store) Undo() bool {
	snap, ok := s.hist.undo()
	if !ok {
		return false
	}

	s.restore(snap)

	return true
}

// Redo steps the history cursor forward one snapshot and restores it.
// Returns false at the latest snapshot.
func (s *Store) Redo() bool {
	snap, ok := s.hist.redo()
	if !ok {
		return false
	}

	s.restore(snap)

	return true
}

// CanUndo reports whether Undo would change state.
func (s *Store) CanUndo() bool { return s.hist.canUndo() }

// CanRedo reports whether Redo would change state.
func (s *Store) CanRedo() bool { return s.hist.canRedo() }

// Query returns copies of every association referencing the field on
// the given side, via a single index lookup.
func (s *Store) Query(id FieldID, side Side) []Association {
	index := s.forward
	if side == SideTarget {
		index = s.reverse
	}

	ids := index[id]

	out := make([]Association, 0, len(ids))
	for _, assocID := range ids {
		if a := s.byID(assocID); a != nil {
			out = append(out, *a.clone())
		}
	}

	return out
}

// Associations returns copies of all associations in creation order.
func (s *Store) Associations() []Association {
	out := make([]Association, 0, len(s.assocs))
	for _, a := range s.assocs {
		out = append(out, *a.clone())
	}

	return out
}

// Len returns the number of associations.
func (s *Store) Len() int { return len(s.assocs) }

// Get returns a copy of the association with the given id.
func (s *Store) Get(assocID string) (Association, error) {
	if a := s.byID(assocID); a != nil {
		return *a.clone(), nil
	}

	return Association{}, fmt.Errorf("%w: %s", ErrAssociationNotFound, assocID)
}

// commit runs a mutation between history bookkeeping: the pre-mutation
// state is captured once at the very first mutation, and the
// post-mutation state is pushed as the new current snapshot.
func (s *Store) commit(mutate func()) {
	if s.hist.empty() {
		s.hist.push(s.snapshot())
	}

	mutate()
	s.hist.push(s.snapshot())
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		assocs:  make([]*Association, 0, len(s.assocs)),
		forward: cloneIndex(s.forward),
		reverse: cloneIndex(s.reverse),
	}
	for _, a := range s.assocs {
		snap.assocs = append(snap.assocs, a.clone())
	}

	return snap
}

func (s *Store) restore(snap snapshot) {
	s.assocs = make([]*Association, 0, len(snap.assocs))
	for _, a := range snap.assocs {
		s.assocs = append(s.assocs, a.clone())
	}

	s.forward = cloneIndex(snap.forward)
	s.reverse = cloneIndex(snap.reverse)
}

func (s *Store) byID(assocID string) *Association {
	for _, a := range s.assocs {
		if a.ID == assocID {
			return a
		}
	}

	return nil
}

func (s *Store) unindex(side Side, field FieldID, assocID string) {
	index := s.forward
	if side == SideTarget {
		index = s.reverse
	}

	ids := index[field]

	pos := slices.Index(ids, assocID)
	if pos < 0 {
		return
	}

	ids = slices.Delete(ids, pos, pos+1)
	if len(ids) == 0 {
		delete(index, field)
	} else {
		index[field] = ids
	}
}

func cloneIndex(in map[FieldID][]string) map[FieldID][]string {
	out := make(map[FieldID][]string, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
	}

	return out
}

func firstDuplicate(ids []FieldID) (FieldID, bool) {
	seen := make(map[FieldID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}

	return FieldID{}, false
}

func sameMembers(a, b []FieldID) bool {
	if len(a) != len(b) {
		return false
	}

	set := make(map[FieldID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}

	for _, id := range b {
		if !set[id] {
			return false
		}
	}

	return true
}
