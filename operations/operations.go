// Package operations flattens the paths of an OpenAPI document into the
// normalized operation list the generators consume.
//
// Operations are produced in path order, then method order (see
// parser.Methods). An operation without an operationId is skipped. Path-level
// parameters are merged into each operation, with the operation's own
// parameter winning when name and location match, and local component
// references for parameters, request bodies and responses are resolved.
package operations

import (
	"fmt"

	"github.com/erraggy/oasts/internal/refs"
	"github.com/erraggy/oasts/parser"
)

// Param is a single path or query parameter.
type Param struct {
	// Name is the wire name
	Name        string
	Required    bool
	Schema      *parser.Schema
	Description string
}

// Operation is the normalized form of one path × method entry.
type Operation struct {
	OperationID string
	// Method is the lower-case HTTP method
	Method      string
	Path        string
	PathParams  []Param
	QueryParams []Param
	// BodyType is the schema name of a JSON request body, set only for
	// post, put and patch when the body is a named reference.
	BodyType string
	// SuccessType is the schema name of the first success response whose
	// JSON body is a named reference.
	SuccessType string
	// Doc is the description, or the summary when there is none
	Doc        string
	WebSocket  bool
	Deprecated bool
	Tags       []string
}

// SuccessCodes are checked in order for the success response type.
var SuccessCodes = []string{"200", "201", "202", "203", "206"}

// Extension keys marking an operation as a websocket endpoint.
const (
	ExtWebSocket         = "x-websocket"
	ExtDropshotWebSocket = "x-dropshot-websocket"
)

// Extract returns every operation of doc with an operationId.
func Extract(doc *parser.Document, logger parser.Logger) ([]Operation, error) {
	if logger == nil {
		logger = parser.NopLogger{}
	}
	x := &extractor{doc: doc, logger: logger}

	var ops []Operation
	for _, entry := range doc.Paths {
		if entry.Item == nil {
			continue
		}
		for _, method := range parser.Methods {
			op := entry.Item.Operation(method)
			if op == nil {
				continue
			}
			if op.OperationID == "" {
				logger.Debug("skipping operation without operationId", "method", method, "path", entry.Path)
				continue
			}
			o, err := x.operation(entry.Path, method, entry.Item, op)
			if err != nil {
				return nil, fmt.Errorf("operations: %s %s: %w", method, entry.Path, err)
			}
			ops = append(ops, o)
		}
	}
	return ops, nil
}

type extractor struct {
	doc    *parser.Document
	logger parser.Logger
}

func (x *extractor) operation(path, method string, item *parser.PathItem, op *parser.Operation) (Operation, error) {
	o := Operation{
		OperationID: op.OperationID,
		Method:      method,
		Path:        path,
		Doc:         op.Description,
		WebSocket:   isWebSocket(op.Extensions),
		Deprecated:  op.Deprecated,
		Tags:        op.Tags,
	}
	if o.Doc == "" {
		o.Doc = op.Summary
	}

	params, err := x.mergeParams(item.Parameters, op.Parameters)
	if err != nil {
		return Operation{}, err
	}
	for _, p := range params {
		param := Param{Name: p.Name, Required: p.Required, Schema: p.Schema, Description: p.Description}
		switch p.In {
		case parser.ParamInPath:
			// path parameters are always required
			param.Required = true
			o.PathParams = append(o.PathParams, param)
		case parser.ParamInQuery:
			o.QueryParams = append(o.QueryParams, param)
		}
	}

	if hasBody(method) && op.RequestBody != nil {
		body, err := x.requestBody(op.RequestBody)
		if err != nil {
			return Operation{}, err
		}
		if s := parser.JSONSchema(body.Content); s != nil && s.Ref != "" {
			o.BodyType = refs.ToName(s.Ref)
		}
	}

	// only the first present success response counts, named or not
	for _, code := range SuccessCodes {
		resp, ok := op.Responses[code]
		if !ok || resp == nil {
			continue
		}
		resp, err := x.response(resp)
		if err != nil {
			return Operation{}, err
		}
		if s := parser.JSONSchema(resp.Content); s != nil && s.Ref != "" {
			o.SuccessType = refs.ToName(s.Ref)
		}
		break
	}
	return o, nil
}

// mergeParams overlays operation parameters on path-level ones. A parameter
// is identified by name and location.
func (x *extractor) mergeParams(pathLevel, opLevel []*parser.Parameter) ([]*parser.Parameter, error) {
	type key struct{ name, in string }
	var merged []*parser.Parameter
	index := make(map[key]int)

	add := func(list []*parser.Parameter) error {
		for _, p := range list {
			p, err := x.parameter(p)
			if err != nil {
				return err
			}
			k := key{p.Name, p.In}
			if i, ok := index[k]; ok {
				merged[i] = p
				continue
			}
			index[k] = len(merged)
			merged = append(merged, p)
		}
		return nil
	}
	if err := add(pathLevel); err != nil {
		return nil, err
	}
	if err := add(opLevel); err != nil {
		return nil, err
	}
	return merged, nil
}

func (x *extractor) parameter(p *parser.Parameter) (*parser.Parameter, error) {
	if p == nil || p.Ref == "" {
		return p, nil
	}
	name := refs.ToName(p.Ref)
	resolved, ok := x.doc.Components.Parameters[name]
	if !ok || resolved == nil {
		return nil, fmt.Errorf("unresolved parameter reference %q", p.Ref)
	}
	return resolved, nil
}

func (x *extractor) requestBody(b *parser.RequestBody) (*parser.RequestBody, error) {
	if b.Ref == "" {
		return b, nil
	}
	resolved, ok := x.doc.Components.RequestBodies[refs.ToName(b.Ref)]
	if !ok || resolved == nil {
		return nil, fmt.Errorf("unresolved request body reference %q", b.Ref)
	}
	return resolved, nil
}

func (x *extractor) response(r *parser.Response) (*parser.Response, error) {
	if r.Ref == "" {
		return r, nil
	}
	resolved, ok := x.doc.Components.Responses[refs.ToName(r.Ref)]
	if !ok || resolved == nil {
		return nil, fmt.Errorf("unresolved response reference %q", r.Ref)
	}
	return resolved, nil
}

func hasBody(method string) bool {
	switch method {
	case parser.MethodPost, parser.MethodPut, parser.MethodPatch:
		return true
	}
	return false
}

func isWebSocket(ext map[string]any) bool {
	if _, ok := ext[ExtDropshotWebSocket]; ok {
		return true
	}
	v, ok := ext[ExtWebSocket].(bool)
	return ok && v
}
