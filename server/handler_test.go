package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/oestevezr/mapstruct"
)

// call invokes the handler with one request and captures the reply.
func call(t *testing.T, h jsonrpc2.Handler, method string, params any) (any, error) {
	t.Helper()

	req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), method, params)
	require.NoError(t, err)

	var (
		gotResult any
		gotErr    error
	)

	reply := func(_ context.Context, result any, err error) error {
		gotResult = result
		gotErr = err
		return nil
	}

	require.NoError(t, h(context.Background(), reply, req))

	return gotResult, gotErr
}

func TestHandlerCreateAndUndo(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	h := Handler(s)

	result, err := call(t, h, MethodCreate, CreateParams{
		Sources: []mapstruct.FieldID{{Owner: "PaymentDTO", Name: "BDtoInCustomerId"}},
		Targets: []mapstruct.FieldID{{Owner: "CUSTCE01", Name: "customerId"}},
	})
	require.NoError(t, err)

	info, ok := result.(AssociationInfo)
	require.True(t, ok)
	assert.Equal(t, "m1", info.ID)

	result, err = call(t, h, MethodUndo, nil)
	require.NoError(t, err)

	step, ok := result.(StepResult)
	require.True(t, ok)
	assert.True(t, step.Applied)
	assert.True(t, step.CanRedo)
	assert.Empty(t, s.Associations())
}

func TestHandlerRemoveUnknownAssociation(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	h := Handler(s)

	_, err := call(t, h, MethodRemove, RemoveParams{
		Association: "m99",
		Side:        mapstruct.SideSource,
		Field:       mapstruct.FieldID{Owner: "PaymentDTO", Name: "BDtoInCustomerId"},
	})
	assert.ErrorIs(t, err, mapstruct.ErrAssociationNotFound)
}

func TestHandlerAutoMapExport(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	h := Handler(s)

	result, err := call(t, h, MethodAutoMap, nil)
	require.NoError(t, err)

	automap, ok := result.(AutoMapResult)
	require.True(t, ok)
	assert.Len(t, automap.Created, 2)

	result, err = call(t, h, MethodExport, nil)
	require.NoError(t, err)

	doc, ok := result.(*mapstruct.Document)
	require.True(t, ok)
	assert.Equal(t, "svc-payments", doc.ID)
}

func TestHandlerCatalogReplace(t *testing.T) {
	t.Parallel()

	s := NewSession(zap.NewNop(), SessionOptions{})
	h := Handler(s)

	cat := &mapstruct.Catalog{}
	cat.AddSource("OrderDTO", mapstruct.Field{Name: "orderId", Owner: "OrderDTO"})
	cat.AddTarget(mapstruct.Field{Name: "orderId", Owner: "ORDRCE01"})

	result, err := call(t, h, MethodCatalog, CatalogParams{Catalog: cat})
	require.NoError(t, err)

	got, ok := result.(*mapstruct.Catalog)
	require.True(t, ok)
	require.Len(t, got.Source, 1)
	assert.Equal(t, "OrderDTO", got.Source[0].Name)
}

func TestHandlerUnknownMethod(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	h := Handler(s)

	req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), "mapping/bogus", nil)
	require.NoError(t, err)

	var gotErr error
	reply := func(_ context.Context, _ any, err error) error {
		gotErr = err
		return nil
	}

	require.NoError(t, h(context.Background(), reply, req))
	assert.ErrorIs(t, gotErr, jsonrpc2.ErrMethodNotFound)
}
