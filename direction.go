package mapstruct

import (
	"fmt"
	"regexp"
	"strings"
)

// targetClassShape is the positional pattern encoding a direction in
// target owner class names: exactly 4 letters, 2 direction letters,
// 2 digits (e.g. "CUSTCE01" carries the code "CE").
var targetClassShape = regexp.MustCompile(`^[A-Za-z]{4}([A-Za-z]{2})[0-9]{2}$`)

// DirectionWarning checks a source field's declared direction against
// the direction encoded in the target's owner class name. The result is
// advisory only and never blocks association creation.
//
// An empty string means no warning: the target class does not follow the
// positional shape, the source name carries no directional prefix, or
// the directions agree.
func DirectionWarning(sourceName, targetOwner string) string {
	m := targetClassShape.FindStringSubmatch(targetOwner)
	if m == nil {
		return ""
	}

	code := strings.ToUpper(m[1])

	dir, ok := FieldDirection(sourceName)
	if !ok {
		return ""
	}

	switch {
	case dir == DirectionInput && outputDirectionCodes[code]:
		return fmt.Sprintf("input field %q mapped to output-flavored class %s (%s)", sourceName, targetOwner, code)
	case dir == DirectionOutput && inputDirectionCodes[code]:
		return fmt.Sprintf("output field %q mapped to input-flavored class %s (%s)", sourceName, targetOwner, code)
	default:
		return ""
	}
}
