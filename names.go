package mapstruct

import "strings"

// Directional prefixes carried by source field names.
const (
	// InputPrefix marks a source field flowing into the backend.
	InputPrefix = "BDtoIn"

	// OutputPrefix marks a source field flowing out of the backend.
	OutputPrefix = "BDtoOut"
)

// Role prefixes and suffixes stripped by the loosest matching strategy.
const (
	sourceRolePrefix = "dto"
	targetRolePrefix = "dao"
	roleFieldSuffix  = "field"
)

// Direction is the declared flow of a source field.
type Direction string

// Direction values.
const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// FieldDirection infers the direction of a source field from its name
// prefix. ok is false when the name carries neither prefix.
// OutputPrefix is checked first: InputPrefix is a prefix of OutputPrefix
// in no alphabet we use, but keeping the longer candidate first makes
// the intent explicit.
func FieldDirection(name string) (Direction, bool) {
	switch {
	case strings.HasPrefix(name, OutputPrefix):
		return DirectionOutput, true
	case strings.HasPrefix(name, InputPrefix):
		return DirectionInput, true
	default:
		return "", false
	}
}

// Direction codes embedded in target owner class names
// (positions 5-6 of the NNNNDDnn shape). Three codes per flavor.
var (
	inputDirectionCodes  = map[string]bool{"CE": true, "EN": true, "IN": true}
	outputDirectionCodes = map[string]bool{"CS": true, "SA": true, "SL": true}
)

// Cardinality classifies the shape of an association.
type Cardinality string

// Cardinality values. ManyToOne covers every association with more than
// one source member regardless of target-side size; the editor never
// produced an N:M class and this engine keeps that behavior.
const (
	OneToOne  Cardinality = "1:1"
	OneToMany Cardinality = "1:N"
	ManyToOne Cardinality = "N:1"
)

// Side selects one of the two member sets of an association.
type Side string

// Side values.
const (
	SideSource Side = "source"
	SideTarget Side = "target"
)

// DefaultHistoryCapacity is the snapshot history bound used when the
// config does not override it.
const DefaultHistoryCapacity = 50
