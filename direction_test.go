package mapstruct_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oestevezr/mapstruct"
)

func TestDirectionWarning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		sourceName  string
		targetOwner string
		wantWarning bool
	}{
		{
			name:        "input field to input-flavored class",
			sourceName:  "BDtoInUserId",
			targetOwner: "CUSTCE01",
			wantWarning: false,
		},
		{
			name:        "input field to output-flavored class",
			sourceName:  "BDtoInUserId",
			targetOwner: "CUSTCS01",
			wantWarning: true,
		},
		{
			name:        "output field to input-flavored class",
			sourceName:  "BDtoOutTotal",
			targetOwner: "PAYMIN02",
			wantWarning: true,
		},
		{
			name:        "output field to output-flavored class",
			sourceName:  "BDtoOutTotal",
			targetOwner: "PAYMSA02",
			wantWarning: false,
		},
		{
			name:        "no directional prefix",
			sourceName:  "userId",
			targetOwner: "CUSTCS01",
			wantWarning: false,
		},
		{
			name:        "class name too short for the shape",
			sourceName:  "BDtoInUserId",
			targetOwner: "CS01",
			wantWarning: false,
		},
		{
			name:        "class name without trailing digits",
			sourceName:  "BDtoInUserId",
			targetOwner: "CUSTCSXX",
			wantWarning: false,
		},
		{
			name:        "unknown direction code",
			sourceName:  "BDtoInUserId",
			targetOwner: "CUSTZZ01",
			wantWarning: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := mapstruct.DirectionWarning(tt.sourceName, tt.targetOwner)
			if tt.wantWarning {
				assert.NotEmpty(t, w)
			} else {
				assert.Empty(t, w)
			}
		})
	}
}

func TestFieldDirection(t *testing.T) {
	t.Parallel()

	dir, ok := mapstruct.FieldDirection("BDtoInUserId")
	assert.True(t, ok)
	assert.Equal(t, mapstruct.DirectionInput, dir)

	dir, ok = mapstruct.FieldDirection("BDtoOutTotal")
	assert.True(t, ok)
	assert.Equal(t, mapstruct.DirectionOutput, dir)

	_, ok = mapstruct.FieldDirection("plainName")
	assert.False(t, ok)
}
