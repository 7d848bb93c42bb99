package generator

import (
	"strings"

	"github.com/erraggy/oasts/emit"
	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/operations"
)

// mockData feeds msw-handlers.ts.tmpl.
type mockData struct {
	Header   string
	Handlers []mockHandler
}

type mockHandler struct {
	Name   string
	Method string
	Path   string
	// Route is the path in msw's :param syntax
	Route       string
	PathType    string
	QueryType   string
	BodyType    string
	SuccessType string
	ParamsType  string
	CallArgs    string
}

func newMockHandler(op operations.Operation) mockHandler {
	h := mockHandler{
		Name:        naming.SnakeToCamel(op.OperationID),
		Method:      op.Method,
		Path:        op.Path,
		Route:       mockRoute(op.Path),
		SuccessType: "void",
	}
	if op.SuccessType != "" {
		h.SuccessType = typeRef(op.SuccessType)
	}

	var params, args []string
	if len(op.PathParams) > 0 {
		h.PathType = paramTypeName(op, suffixPathParams)
		params = append(params, "path: T."+h.PathType)
		args = append(args, "path: path.data")
	}
	if len(op.QueryParams) > 0 {
		h.QueryType = paramTypeName(op, suffixQueryParams)
		params = append(params, "query: T."+h.QueryType)
		args = append(args, "query: query.data")
	}
	if op.BodyType != "" {
		h.BodyType = naming.TypeName(op.BodyType)
		params = append(params, "body: T."+h.BodyType)
		args = append(args, "body: body.data")
	}
	params = append(params, "req: Request", "cookies: Cookies")
	args = append(args, "req: request", "cookies")
	h.ParamsType = strings.Join(params, "; ")
	h.CallArgs = strings.Join(args, ", ")
	return h
}

// writeMocks emits msw-handlers.ts. Websocket operations have no HTTP
// handler.
func (p *plan) writeMocks(ctx emit.Context) error {
	data := mockData{Header: p.header}
	for _, op := range p.operations {
		if op.WebSocket {
			continue
		}
		data.Handlers = append(data.Handlers, newMockHandler(op))
	}
	out, err := executeTemplate("msw-handlers.ts.tmpl", data, len(p.operations))
	if err != nil {
		return err
	}
	ctx.Write(out)
	return nil
}
