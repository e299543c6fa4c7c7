package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oestevezr/mapstruct"
	"github.com/oestevezr/mapstruct/extract"
)

const userDTO = `package com.example.business.v1.dto;

import java.util.List;

/**
 * Transfer object for the user service.
 */
public class UserDTO {
    private String BDtoInUserId;
    protected java.math.BigDecimal balance;
    private final List<Long> accountIds;
    public static final String VERSION = "1";

    public String getUserId() {
        return BDtoInUserId;
    }
}
`

const custDAO = `package com.example.business.v1.dao.model.kcdt;

public class CUSTCE01 {
    @Campo
    private String userId;

    @Campo(longitud = 10)
    private String customerName;

    // Not mapped: no annotation.
    private String internalFlag;
}
`

func TestFields(t *testing.T) {
	t.Parallel()

	t.Run("all declarations without filter", func(t *testing.T) {
		t.Parallel()

		fields, err := extract.Fields([]byte(userDTO), "UserDTO", false)
		require.NoError(t, err)

		want := []mapstruct.Field{
			{Name: "BDtoInUserId", Type: "String", Owner: "UserDTO"},
			{Name: "balance", Type: "java.math.BigDecimal", Owner: "UserDTO"},
			{Name: "accountIds", Type: "List<Long>", Owner: "UserDTO"},
		}
		assert.Equal(t, want, fields)
	})

	t.Run("annotated only", func(t *testing.T) {
		t.Parallel()

		fields, err := extract.Fields([]byte(custDAO), "CUSTCE01", true)
		require.NoError(t, err)

		want := []mapstruct.Field{
			{Name: "userId", Type: "String", Owner: "CUSTCE01"},
			{Name: "customerName", Type: "String", Owner: "CUSTCE01"},
		}
		assert.Equal(t, want, fields)
	})

	t.Run("methods and initializers are not fields", func(t *testing.T) {
		t.Parallel()

		src := `public class C {
    private int counter = 0;
    public String name() { return "x"; }
    private String kept;
}`

		fields, err := extract.Fields([]byte(src), "C", false)
		require.NoError(t, err)

		want := []mapstruct.Field{{Name: "kept", Type: "String", Owner: "C"}}
		assert.Equal(t, want, fields)
	})

	t.Run("generic maps keep their full type", func(t *testing.T) {
		t.Parallel()

		src := `public class C {
    private Map<String,List<Long>> index;
    private String[] names;
}`

		fields, err := extract.Fields([]byte(src), "C", false)
		require.NoError(t, err)

		want := []mapstruct.Field{
			{Name: "index", Type: "Map<String,List<Long>>", Owner: "C"},
			{Name: "names", Type: "String[]", Owner: "C"},
		}
		assert.Equal(t, want, fields)
	})

	t.Run("annotation does not leak past a declaration", func(t *testing.T) {
		t.Parallel()

		src := `public class C {
    @Campo
    private String first;
    private String second;
}`

		fields, err := extract.Fields([]byte(src), "C", true)
		require.NoError(t, err)

		want := []mapstruct.Field{{Name: "first", Type: "String", Owner: "C"}}
		assert.Equal(t, want, fields)
	})
}
