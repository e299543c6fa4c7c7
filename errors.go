package mapstruct

import "errors"

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .mapstruct.yaml is found.
	ErrConfigNotFound = errors.New("mapstruct: no .mapstruct.yaml found")

	// ErrEmptyMemberSet is returned when an association is attempted
	// with no fields on one side.
	ErrEmptyMemberSet = errors.New("mapstruct: association side has no members")

	// ErrDuplicateAssociation is returned when the exact member-set pair
	// already exists, or a (source, target) pair repeats inside one
	// association attempt.
	ErrDuplicateAssociation = errors.New("mapstruct: association already exists")

	// ErrAssociationNotFound is returned when an association id is not
	// present in the store.
	ErrAssociationNotFound = errors.New("mapstruct: association not found")

	// ErrMalformedDocument is returned when a remote service description
	// is missing required keys or otherwise unusable.
	ErrMalformedDocument = errors.New("mapstruct: malformed service description")
)
