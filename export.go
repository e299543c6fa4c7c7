package mapstruct

import "time"

// Summary mapping-kind tags, as rendered in the editor panel.
const (
	KindOneToOne  = "one-to-one"
	KindOneToMany = "one-to-many"
	KindManyToOne = "many-to-one"
)

// Counterpart is one mapped-to/mapped-from entry of a field summary.
type Counterpart struct {
	Field FieldID `json:"field"`
	Kind  string  `json:"mappingType"`
}

// FieldSummary is the per-field view of the mapping state.
type FieldSummary struct {
	Field        Field         `json:"field"`
	Mapped       bool          `json:"mapped"`
	Counterparts []Counterpart `json:"counterparts,omitempty"`
}

// SummaryMetadata mirrors the stats block of the exported editor JSON.
type SummaryMetadata struct {
	GeneratedAt        time.Time `json:"generatedAt"`
	TotalSourceFields  int       `json:"totalDtoFields"`
	TotalTargetFields  int       `json:"totalDaoFields"`
	MappedSourceFields int       `json:"mappedDtoFields"`
	MappedTargetFields int       `json:"mappedDaoFields"`
	Connections        int       `json:"totalConnections"`
}

// Summary is the UI-facing view of the whole session: every catalog
// field on both sides with its mapped status and counterparts.
type Summary struct {
	Metadata SummaryMetadata `json:"metadata"`
	Sources  []FieldSummary  `json:"dtoFields"`
	Targets  []FieldSummary  `json:"daoFields"`
}

// Summarize builds the summary view from the catalogs and the current
// associations. Pure: the store is only read.
func Summarize(cat *Catalog, store *Store, now time.Time) *Summary {
	sum := &Summary{}

	connections := 0
	for _, a := range store.Associations() {
		connections += len(a.Sources) * len(a.Targets)
	}

	for _, f := range cat.SourceFields() {
		sum.Sources = append(sum.Sources, summarizeField(f, store, SideSource))
	}

	for _, f := range cat.Target {
		sum.Targets = append(sum.Targets, summarizeField(f, store, SideTarget))
	}

	sum.Metadata = SummaryMetadata{
		GeneratedAt:        now,
		TotalSourceFields:  len(sum.Sources),
		TotalTargetFields:  len(sum.Targets),
		MappedSourceFields: countMapped(sum.Sources),
		MappedTargetFields: countMapped(sum.Targets),
		Connections:        connections,
	}

	return sum
}

func summarizeField(f Field, store *Store, side Side) FieldSummary {
	fs := FieldSummary{Field: f}

	other := SideTarget
	manyKind := KindOneToMany

	if side == SideTarget {
		other = SideSource
		manyKind = KindManyToOne
	}

	for _, a := range store.Query(f.ID(), side) {
		fs.Mapped = true

		kind := manyKind
		if len(a.Sources) == 1 && len(a.Targets) == 1 {
			kind = KindOneToOne
		}

		for _, id := range a.members(other) {
			fs.Counterparts = append(fs.Counterparts, Counterpart{Field: id, Kind: kind})
		}
	}

	return fs
}

func countMapped(fields []FieldSummary) int {
	n := 0
	for _, f := range fields {
		if f.Mapped {
			n++
		}
	}

	return n
}

// FieldEntry is one flattened (source, target) pair in the transformed
// document. Format is always the owning class name of the DAO-side
// field, verbatim; the code generator keys on it.
type FieldEntry struct {
	Format    string `json:"format"`
	FieldType string `json:"field_type"`
	Source    string `json:"source"`
	Target    string `json:"target"`
}

// DirectionFields routes field entries by the source field's declared
// direction.
type DirectionFields struct {
	Input  []FieldEntry `json:"input_fields"`
	Output []FieldEntry `json:"output_fields"`
}

// TransactionMapping is one backend transaction's mapping block.
// BackendType and TrxName come from the surrounding UI flow, not from
// the engine.
type TransactionMapping struct {
	BackendType string          `json:"backend_type"`
	TrxName     string          `json:"trx_name"`
	Fields      DirectionFields `json:"fields"`
}

// Document is the backend-facing transformed document handed to the
// code-generation collaborator.
type Document struct {
	ID       string               `json:"id"`
	Mappings []TransactionMapping `json:"mappings"`
}

// Transform builds the transformed document from the current
// associations. Fields carrying the input prefix route to input_fields;
// the output prefix routes to output_fields with source and target
// swapped; fields with neither prefix default to input_fields.
// Associations with multiple members on either side emit one entry per
// (source, target) pair, the full cross product.
func Transform(cat *Catalog, store *Store, docID, backendType, trxName string) *Document {
	fields := DirectionFields{
		Input:  []FieldEntry{},
		Output: []FieldEntry{},
	}

	for _, a := range store.Associations() {
		for _, srcID := range a.Sources {
			for _, tgtID := range a.Targets {
				format := tgtID.Owner
				if tgt, ok := cat.TargetByID(tgtID); ok {
					format = tgt.Owner
				}

				dir, _ := FieldDirection(srcID.Name)
				if dir == DirectionOutput {
					fields.Output = append(fields.Output, FieldEntry{
						Format:    format,
						FieldType: "body",
						Source:    tgtID.Name,
						Target:    srcID.Name,
					})
					continue
				}

				fields.Input = append(fields.Input, FieldEntry{
					Format:    format,
					FieldType: "body",
					Source:    srcID.Name,
					Target:    tgtID.Name,
				})
			}
		}
	}

	return &Document{
		ID: docID,
		Mappings: []TransactionMapping{
			{BackendType: backendType, TrxName: trxName, Fields: fields},
		},
	}
}
