package remote

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oestevezr/mapstruct"
)

const validDescription = `{
  "details": {"id": "svc-payments", "name": "Payments"},
  "backendAccess": {
    "backend_type": "APX",
    "transactions": [
      {
        "trx_name": "KCDTB001",
        "fields": [
          {"name": "customerId", "type": "String", "format": "CUSTCE01"},
          {"name": "amount", "type": "BigDecimal", "format": "PAYMCS02"}
        ]
      }
    ]
  },
  "serviceMapping": {
    "classes": [
      {
        "name": "PaymentDTO",
        "fields": [
          {"name": "BDtoInCustomerId", "type": "String"},
          {"name": "BDtoOutAmount", "type": "BigDecimal"}
        ]
      }
    ]
  }
}`

func TestParseDescription(t *testing.T) {
	t.Parallel()

	desc, err := ParseDescription([]byte(validDescription))
	require.NoError(t, err)

	assert.Equal(t, "svc-payments", desc.Details.ID)
	assert.Equal(t, "APX", desc.BackendAccess.BackendType)
	require.Len(t, desc.BackendAccess.Transactions, 1)
	assert.Equal(t, "KCDTB001", desc.BackendAccess.Transactions[0].Name)
	require.Len(t, desc.ServiceMapping.Classes, 1)
	assert.Equal(t, "PaymentDTO", desc.ServiceMapping.Classes[0].Name)
}

func TestParseDescriptionMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{
			name: "invalid json",
			data: `{"details": `,
		},
		{
			name: "missing backend access",
			data: `{
				"details": {"id": "svc"},
				"serviceMapping": {"classes": [{"name": "A", "fields": [{"name": "x"}]}]}
			}`,
		},
		{
			name: "transaction without fields",
			data: `{
				"details": {"id": "svc"},
				"backendAccess": {"backend_type": "APX", "transactions": [{"trx_name": "T1", "fields": []}]},
				"serviceMapping": {"classes": [{"name": "A", "fields": [{"name": "x"}]}]}
			}`,
		},
		{
			name: "backend field without format",
			data: `{
				"details": {"id": "svc"},
				"backendAccess": {"backend_type": "APX", "transactions": [{"trx_name": "T1", "fields": [{"name": "x", "type": "String"}]}]},
				"serviceMapping": {"classes": [{"name": "A", "fields": [{"name": "x"}]}]}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDescription([]byte(tt.data))
			assert.ErrorIs(t, err, mapstruct.ErrMalformedDocument)
		})
	}
}

func TestDescriptionCatalog(t *testing.T) {
	t.Parallel()

	desc, err := ParseDescription([]byte(validDescription))
	require.NoError(t, err)

	cat := desc.Catalog()

	wantSource := []mapstruct.ClassGroup{
		{
			Name: "PaymentDTO",
			Fields: []mapstruct.Field{
				{Name: "BDtoInCustomerId", Type: "String", Owner: "PaymentDTO"},
				{Name: "BDtoOutAmount", Type: "BigDecimal", Owner: "PaymentDTO"},
			},
		},
	}
	wantTarget := []mapstruct.Field{
		{Name: "customerId", Type: "String", Owner: "CUSTCE01"},
		{Name: "amount", Type: "BigDecimal", Owner: "PAYMCS02"},
	}

	if diff := cmp.Diff(wantSource, cat.Source); diff != "" {
		t.Errorf("source groups mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantTarget, cat.Target); diff != "" {
		t.Errorf("target fields mismatch (-want +got):\n%s", diff)
	}
}
