package mapstruct

import (
	"errors"
	"fmt"
)

// AutoMap bulk-populates the store from the catalog in one pass.
// Source classes are visited in catalog order, fields in declaration
// order. Each hit creates one 1:1 association, with a directionality
// warning attached when the validator flags one, and claims the target
// for the remainder of the pass so two source fields cannot silently
// consume the same target. Source fields with no match are skipped;
// that is a normal outcome, not an error.
func AutoMap(store *Store, cat *Catalog, m *Matcher) ([]Association, error) {
	if m == nil {
		m = NewMatcher()
	}

	claimed := make(map[FieldID]bool)

	var created []Association

	for _, group := range cat.Source {
		for _, src := range group.Fields {
			tgt, ok := m.Match(src, cat.Target, claimed)
			if !ok {
				continue
			}

			var warnings []string
			if w := DirectionWarning(src.Name, tgt.Owner); w != "" {
				warnings = append(warnings, w)
			}

			a, err := store.Create([]FieldID{src.ID()}, []FieldID{tgt.ID()}, warnings...)
			if err != nil {
				// The pair may already exist from manual mapping; the
				// target is still consumed for this pass.
				if errors.Is(err, ErrDuplicateAssociation) {
					claimed[tgt.ID()] = true
					continue
				}

				return created, fmt.Errorf("auto-mapping %s: %w", src.ID(), err)
			}

			claimed[tgt.ID()] = true
			created = append(created, a)
		}
	}

	return created, nil
}
