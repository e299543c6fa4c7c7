package mapstruct_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oestevezr/mapstruct"
)

func TestMatcherCascade(t *testing.T) {
	t.Parallel()

	targets := []mapstruct.Field{
		{Name: "customerName", Type: "String", Owner: "CUSTCE01"},
		{Name: "userId", Type: "String", Owner: "CUSTCE01"},
		{Name: "daoAmountField", Type: "BigDecimal", Owner: "PAYMCE02"},
	}

	tests := []struct {
		name   string
		source mapstruct.Field
		want   string
		wantOK bool
	}{
		{
			name:   "exact case-insensitive",
			source: mapstruct.Field{Name: "UserID", Owner: "UserDTO"},
			want:   "userId",
			wantOK: true,
		},
		{
			name:   "input prefix stripped",
			source: mapstruct.Field{Name: "BDtoInUserId", Owner: "UserDTO"},
			want:   "userId",
			wantOK: true,
		},
		{
			name:   "output prefix stripped",
			source: mapstruct.Field{Name: "BDtoOutUserId", Owner: "UserDTO"},
			want:   "userId",
			wantOK: true,
		},
		{
			name:   "substring source in target",
			source: mapstruct.Field{Name: "customer", Owner: "UserDTO"},
			want:   "customerName",
			wantOK: true,
		},
		{
			name:   "substring target in source",
			source: mapstruct.Field{Name: "fullCustomerNameUpper", Owner: "UserDTO"},
			want:   "customerName",
			wantOK: true,
		},
		{
			name:   "role prefixes and field suffix cleaned",
			source: mapstruct.Field{Name: "dtoAmount", Owner: "UserDTO"},
			want:   "daoAmountField",
			wantOK: true,
		},
		{
			name:   "no match",
			source: mapstruct.Field{Name: "unrelated", Owner: "UserDTO"},
			wantOK: false,
		},
	}

	m := mapstruct.NewMatcher()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := m.Match(tt.source, targets, nil)
			require.Equal(t, tt.wantOK, ok)

			if ok {
				assert.Equal(t, tt.want, got.Name)
			}
		})
	}
}

func TestMatcherSubstringIsOrderDependent(t *testing.T) {
	t.Parallel()

	// Two targets satisfy the substring relation; the first in catalog
	// order wins. Reordering the catalog changes the outcome, matching
	// the editor's behavior.
	m := mapstruct.NewMatcher()
	source := mapstruct.Field{Name: "name", Owner: "UserDTO"}

	a := mapstruct.Field{Name: "firstName", Owner: "CUSTCE01"}
	b := mapstruct.Field{Name: "lastName", Owner: "CUSTCE01"}

	got, ok := m.Match(source, []mapstruct.Field{a, b}, nil)
	require.True(t, ok)
	assert.Equal(t, "firstName", got.Name)

	got, ok = m.Match(source, []mapstruct.Field{b, a}, nil)
	require.True(t, ok)
	assert.Equal(t, "lastName", got.Name)
}

func TestMatcherClaimedTargetsExcluded(t *testing.T) {
	t.Parallel()

	m := mapstruct.NewMatcher()
	targets := []mapstruct.Field{
		{Name: "userId", Owner: "CUSTCE01"},
	}
	claimed := map[mapstruct.FieldID]bool{
		{Owner: "CUSTCE01", Name: "userId"}: true,
	}

	_, ok := m.Match(mapstruct.Field{Name: "userId", Owner: "UserDTO"}, targets, claimed)
	assert.False(t, ok, "claimed targets must not be re-proposed")
}

func TestMatcherUserRules(t *testing.T) {
	t.Parallel()

	rules, err := mapstruct.CompileMatchRules([]string{
		`source.Type == target.Type && target.Owner == "CUSTCE01"`,
	})
	require.NoError(t, err)

	m := mapstruct.NewMatcher(rules...)

	targets := []mapstruct.Field{
		{Name: "completelyDifferent", Type: "Instant", Owner: "CUSTCE01"},
	}

	got, ok := m.Match(mapstruct.Field{Name: "createdAt", Type: "Instant", Owner: "UserDTO"}, targets, nil)
	require.True(t, ok)
	assert.Equal(t, "completelyDifferent", got.Name)
}

func TestCompileMatchRulesRejectsBadExpression(t *testing.T) {
	t.Parallel()

	_, err := mapstruct.CompileMatchRules([]string{`source.Name ==`})
	assert.Error(t, err)
}

func TestStripDirectionPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UserId", mapstruct.StripDirectionPrefix("BDtoInUserId"))
	assert.Equal(t, "Total", mapstruct.StripDirectionPrefix("BDtoOutTotal"))
	assert.Equal(t, "plain", mapstruct.StripDirectionPrefix("plain"))
}
