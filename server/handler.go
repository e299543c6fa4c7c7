package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/oestevezr/mapstruct"
)

// JSON-RPC method names.
const (
	MethodCreate  = "mapping/create"
	MethodRemove  = "mapping/remove"
	MethodClear   = "mapping/clear"
	MethodUndo    = "mapping/undo"
	MethodRedo    = "mapping/redo"
	MethodAutoMap = "mapping/autoMap"
	MethodSummary = "mapping/summary"
	MethodExport  = "mapping/export"
	MethodCatalog = "mapping/catalog"
)

// CreateParams carry the member sets of a new association.
type CreateParams struct {
	Sources []mapstruct.FieldID `json:"sources"`
	Targets []mapstruct.FieldID `json:"targets"`
}

// RemoveParams identify one field inside one association.
type RemoveParams struct {
	Association string            `json:"association"`
	Side        mapstruct.Side    `json:"side"`
	Field       mapstruct.FieldID `json:"field"`
}

// StepResult reports the outcome of an undo or redo request.
type StepResult struct {
	Applied bool `json:"applied"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// AutoMapResult lists the associations an auto-mapping pass created.
type AutoMapResult struct {
	Created []AssociationInfo `json:"created"`
}

// CatalogParams optionally replace the session catalog. With a nil
// Catalog the request is a plain read.
type CatalogParams struct {
	Catalog *mapstruct.Catalog `json:"catalog,omitempty"`
}

// Handler dispatches mapping requests to the session.
func Handler(s *Session) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case MethodCreate:
			var params CreateParams
			if err := unmarshalParams(req, &params); err != nil {
				return reply(ctx, nil, err)
			}

			info, err := s.Create(params.Sources, params.Targets)
			if err != nil {
				return reply(ctx, nil, err)
			}

			return reply(ctx, info, nil)

		case MethodRemove:
			var params RemoveParams
			if err := unmarshalParams(req, &params); err != nil {
				return reply(ctx, nil, err)
			}

			return reply(ctx, nil, s.RemoveField(params.Association, params.Side, params.Field))

		case MethodClear:
			s.Clear()
			return reply(ctx, nil, nil)

		case MethodUndo:
			applied := s.Undo()
			return reply(ctx, StepResult{Applied: applied, CanUndo: s.CanUndo(), CanRedo: s.CanRedo()}, nil)

		case MethodRedo:
			applied := s.Redo()
			return reply(ctx, StepResult{Applied: applied, CanUndo: s.CanUndo(), CanRedo: s.CanRedo()}, nil)

		case MethodAutoMap:
			created, err := s.AutoMap()
			if err != nil {
				return reply(ctx, nil, err)
			}

			return reply(ctx, AutoMapResult{Created: created}, nil)

		case MethodSummary:
			return reply(ctx, s.Summary(time.Now()), nil)

		case MethodExport:
			return reply(ctx, s.Export(), nil)

		case MethodCatalog:
			var params CatalogParams
			if len(req.Params()) > 0 {
				if err := unmarshalParams(req, &params); err != nil {
					return reply(ctx, nil, err)
				}
			}

			if params.Catalog != nil {
				s.SetCatalog(params.Catalog)
			}

			return reply(ctx, s.Catalog(), nil)

		default:
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
	}
}

func unmarshalParams(req jsonrpc2.Request, v any) error {
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return fmt.Errorf("%w: %v", jsonrpc2.ErrParse, err)
	}

	return nil
}

// Serve runs the session over a JSON-RPC connection on in/out until
// the peer disconnects or ctx is cancelled.
func Serve(ctx context.Context, logger *zap.Logger, in io.Reader, out io.Writer, session *Session) error {
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	conn := jsonrpc2.NewConn(stream)

	conn.Go(ctx, Handler(session))
	logger.Info("mapping server listening on stdio")

	<-conn.Done()

	return conn.Err()
}

// readWriteCloser wraps separate reader/writer into io.ReadWriteCloser.
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	if c, ok := rwc.Writer.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
