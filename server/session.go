// Package server exposes a mapping session over JSON-RPC 2.0 on stdio.
// An editor front end drives one session per service: it pushes the
// catalog, issues mapping operations, and pulls the summary or export
// document back.
package server

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oestevezr/mapstruct"
)

// Session holds the mutable state of one mapping editing session.
type Session struct {
	logger *zap.Logger

	mu      sync.Mutex
	store   *mapstruct.Store
	catalog *mapstruct.Catalog
	matcher *mapstruct.Matcher

	documentID  string
	backendType string
	trxName     string
}

// SessionOptions configure a new session.
type SessionOptions struct {
	// HistoryCapacity bounds the undo history. Zero means the default.
	HistoryCapacity int

	// MatchRules are optional expression-language matching rules
	// appended to the built-in cascade.
	MatchRules []mapstruct.MatchRule

	DocumentID  string
	BackendType string
	TrxName     string
}

// NewSession creates a session with an empty catalog and store.
func NewSession(logger *zap.Logger, opts SessionOptions) *Session {
	capacity := opts.HistoryCapacity
	if capacity <= 0 {
		capacity = mapstruct.DefaultHistoryCapacity
	}

	return &Session{
		logger:      logger,
		store:       mapstruct.NewStoreWithCapacity(capacity),
		catalog:     &mapstruct.Catalog{},
		matcher:     mapstruct.NewMatcher(opts.MatchRules...),
		documentID:  opts.DocumentID,
		backendType: opts.BackendType,
		trxName:     opts.TrxName,
	}
}

// SetCatalog replaces the session catalog. Existing associations are
// kept: the caller decides whether to clear them.
func (s *Session) SetCatalog(cat *mapstruct.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cat
}

// AssociationInfo is the wire shape of one association.
type AssociationInfo struct {
	ID          string                `json:"id"`
	Sources     []mapstruct.FieldID   `json:"sources"`
	Targets     []mapstruct.FieldID   `json:"targets"`
	Cardinality mapstruct.Cardinality `json:"cardinality"`
	Warnings    []string              `json:"warnings,omitempty"`
}

func infoOf(a mapstruct.Association) AssociationInfo {
	return AssociationInfo{
		ID:          a.ID,
		Sources:     a.Sources,
		Targets:     a.Targets,
		Cardinality: a.Cardinality(),
		Warnings:    a.Warnings,
	}
}

func infosOf(assocs []mapstruct.Association) []AssociationInfo {
	out := make([]AssociationInfo, 0, len(assocs))
	for _, a := range assocs {
		out = append(out, infoOf(a))
	}

	return out
}

// Create associates the given source and target fields. Direction
// warnings are computed per (source, target) pair and attached to the
// association; they never block creation.
func (s *Session) Create(sources, targets []mapstruct.FieldID) (AssociationInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var warnings []string
	for _, src := range sources {
		for _, tgt := range targets {
			if w := mapstruct.DirectionWarning(src.Name, tgt.Owner); w != "" {
				warnings = append(warnings, w)
			}
		}
	}

	assoc, err := s.store.Create(sources, targets, warnings...)
	if err != nil {
		return AssociationInfo{}, err
	}

	s.logger.Info("association created",
		zap.String("id", assoc.ID),
		zap.String("cardinality", string(assoc.Cardinality())))

	return infoOf(assoc), nil
}

// RemoveField removes one field from one side of an association.
func (s *Session) RemoveField(assocID string, side mapstruct.Side, id mapstruct.FieldID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.RemoveField(assocID, side, id); err != nil {
		return err
	}

	s.logger.Info("field removed",
		zap.String("association", assocID),
		zap.String("side", string(side)),
		zap.String("field", id.String()))

	return nil
}

// Clear removes every association. Undoable.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Clear()
}

// Undo steps the store back one snapshot.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Undo()
}

// Redo steps the store forward one snapshot.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Redo()
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.CanRedo()
}

// AutoMap runs the name-matching cascade over the catalog and creates
// one association per matched pair.
func (s *Session) AutoMap() ([]AssociationInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := mapstruct.AutoMap(s.store, s.catalog, s.matcher)
	if err != nil {
		return nil, err
	}

	s.logger.Info("auto-mapping finished", zap.Int("created", len(created)))

	return infosOf(created), nil
}

// Associations lists every current association.
func (s *Session) Associations() []AssociationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return infosOf(s.store.Associations())
}

// Summary builds the per-field mapping report.
func (s *Session) Summary(now time.Time) *mapstruct.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return mapstruct.Summarize(s.catalog, s.store, now)
}

// Export builds the backend mapping document.
func (s *Session) Export() *mapstruct.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	return mapstruct.Transform(s.catalog, s.store, s.documentID, s.backendType, s.trxName)
}

// Catalog returns the current catalog.
func (s *Session) Catalog() *mapstruct.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog
}
