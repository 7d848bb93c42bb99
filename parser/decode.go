package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasts/oaserrors"
	"go.yaml.in/yaml/v4"
)

// decoder turns a yaml.Node tree into the document model. Working on nodes
// rather than maps keeps mapping keys in document order.
type decoder struct {
	source string
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return &oaserrors.ParseError{Path: d.source, Line: line, Message: fmt.Sprintf(format, args...)}
}

func (d *decoder) decode(n *yaml.Node, v any) error {
	if err := n.Decode(v); err != nil {
		return &oaserrors.ParseError{Path: d.source, Line: n.Line, Cause: err}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// pairs calls fn for every entry of a mapping node in document order.
func (d *decoder) pairs(n *yaml.Node, at string, fn func(key string, val *yaml.Node) error) error {
	n = resolveAlias(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return d.errorf(n, "%s: expected a mapping", at)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, resolveAlias(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// items calls fn for every element of a sequence node.
func (d *decoder) items(n *yaml.Node, at string, fn func(i int, val *yaml.Node) error) error {
	n = resolveAlias(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return d.errorf(n, "%s: expected a sequence", at)
	}
	for i, c := range n.Content {
		if err := fn(i, resolveAlias(c)); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) extension(exts map[string]any, key string, val *yaml.Node) (map[string]any, error) {
	var v any
	if err := d.decode(val, &v); err != nil {
		return exts, err
	}
	if exts == nil {
		exts = make(map[string]any)
	}
	exts[key] = v
	return exts, nil
}

func (d *decoder) document(root *yaml.Node) (*Document, error) {
	n := resolveAlias(root)
	if n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, d.errorf(n, "empty document")
		}
		n = resolveAlias(n.Content[0])
	}
	if isNull(n) {
		return nil, d.errorf(n, "empty document")
	}

	doc := &Document{
		Components: Components{
			Parameters:    make(map[string]*Parameter),
			RequestBodies: make(map[string]*RequestBody),
			Responses:     make(map[string]*Response),
		},
	}
	err := d.pairs(n, "document", func(key string, val *yaml.Node) error {
		switch key {
		case "openapi":
			doc.OpenAPI = val.Value
		case "swagger":
			return d.errorf(val, "OpenAPI %s documents are not supported", val.Value)
		case "info":
			doc.Info = &Info{}
			return d.decode(val, doc.Info)
		case "paths":
			return d.pairs(val, "paths", func(path string, item *yaml.Node) error {
				pi, err := d.pathItem(item, path)
				if err != nil {
					return err
				}
				doc.Paths = append(doc.Paths, PathEntry{Path: path, Item: pi})
				return nil
			})
		case "components":
			return d.components(val, &doc.Components)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if doc.OpenAPI == "" {
		return nil, d.errorf(n, "missing openapi version field")
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, d.errorf(n, "unsupported OpenAPI version %q", doc.OpenAPI)
	}
	return doc, nil
}

func (d *decoder) components(n *yaml.Node, c *Components) error {
	return d.pairs(n, "components", func(key string, val *yaml.Node) error {
		switch key {
		case "schemas":
			return d.pairs(val, "components.schemas", func(name string, sn *yaml.Node) error {
				s, err := d.schema(sn, name)
				if err != nil {
					return err
				}
				c.Schemas = append(c.Schemas, NamedSchema{Name: name, Schema: s})
				return nil
			})
		case "parameters":
			return d.pairs(val, "components.parameters", func(name string, pn *yaml.Node) error {
				p, err := d.parameter(pn, "components.parameters."+name)
				c.Parameters[name] = p
				return err
			})
		case "requestBodies":
			return d.pairs(val, "components.requestBodies", func(name string, bn *yaml.Node) error {
				b, err := d.requestBody(bn, "components.requestBodies."+name)
				c.RequestBodies[name] = b
				return err
			})
		case "responses":
			return d.pairs(val, "components.responses", func(name string, rn *yaml.Node) error {
				r, err := d.response(rn, "components.responses."+name)
				c.Responses[name] = r
				return err
			})
		}
		return nil
	})
}

func (d *decoder) pathItem(n *yaml.Node, at string) (*PathItem, error) {
	item := &PathItem{}
	err := d.pairs(n, at, func(key string, val *yaml.Node) error {
		switch key {
		case "summary":
			item.Summary = val.Value
		case "description":
			item.Description = val.Value
		case "parameters":
			ps, err := d.parameters(val, at+".parameters")
			item.Parameters = ps
			return err
		default:
			if !slices.Contains(Methods, key) {
				return nil
			}
			op, err := d.operation(val, at+"."+key)
			if err != nil {
				return err
			}
			setOperation(item, key, op)
		}
		return nil
	})
	return item, err
}

func setOperation(item *PathItem, method string, op *Operation) {
	switch method {
	case MethodGet:
		item.Get = op
	case MethodPut:
		item.Put = op
	case MethodPost:
		item.Post = op
	case MethodDelete:
		item.Delete = op
	case MethodOptions:
		item.Options = op
	case MethodHead:
		item.Head = op
	case MethodPatch:
		item.Patch = op
	case MethodTrace:
		item.Trace = op
	}
}

func (d *decoder) operation(n *yaml.Node, at string) (*Operation, error) {
	op := &Operation{}
	err := d.pairs(n, at, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "operationId":
			op.OperationID = val.Value
		case "summary":
			op.Summary = val.Value
		case "description":
			op.Description = val.Value
		case "tags":
			err = d.decode(val, &op.Tags)
		case "deprecated":
			err = d.decode(val, &op.Deprecated)
		case "parameters":
			op.Parameters, err = d.parameters(val, at+".parameters")
		case "requestBody":
			op.RequestBody, err = d.requestBody(val, at+".requestBody")
		case "responses":
			op.Responses = make(map[string]*Response)
			err = d.pairs(val, at+".responses", func(code string, rn *yaml.Node) error {
				r, rerr := d.response(rn, at+".responses."+code)
				op.Responses[code] = r
				return rerr
			})
		default:
			if strings.HasPrefix(key, "x-") {
				op.Extensions, err = d.extension(op.Extensions, key, val)
			}
		}
		return err
	})
	return op, err
}

func (d *decoder) parameters(n *yaml.Node, at string) ([]*Parameter, error) {
	var out []*Parameter
	err := d.items(n, at, func(i int, val *yaml.Node) error {
		p, err := d.parameter(val, fmt.Sprintf("%s[%d]", at, i))
		out = append(out, p)
		return err
	})
	return out, err
}

func (d *decoder) parameter(n *yaml.Node, at string) (*Parameter, error) {
	p := &Parameter{}
	err := d.pairs(n, at, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			p.Ref = val.Value
		case "name":
			p.Name = val.Value
		case "in":
			p.In = val.Value
		case "description":
			p.Description = val.Value
		case "required":
			err = d.decode(val, &p.Required)
		case "deprecated":
			err = d.decode(val, &p.Deprecated)
		case "schema":
			p.Schema, err = d.schema(val, at+".schema")
		}
		return err
	})
	return p, err
}

func (d *decoder) requestBody(n *yaml.Node, at string) (*RequestBody, error) {
	b := &RequestBody{}
	err := d.pairs(n, at, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			b.Ref = val.Value
		case "description":
			b.Description = val.Value
		case "required":
			err = d.decode(val, &b.Required)
		case "content":
			b.Content, err = d.content(val, at+".content")
		}
		return err
	})
	return b, err
}

func (d *decoder) response(n *yaml.Node, at string) (*Response, error) {
	r := &Response{}
	err := d.pairs(n, at, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			r.Ref = val.Value
		case "description":
			r.Description = val.Value
		case "content":
			r.Content, err = d.content(val, at+".content")
		}
		return err
	})
	return r, err
}

func (d *decoder) content(n *yaml.Node, at string) (map[string]*MediaType, error) {
	out := make(map[string]*MediaType)
	err := d.pairs(n, at, func(mediaType string, val *yaml.Node) error {
		mt := &MediaType{}
		out[mediaType] = mt
		return d.pairs(val, at+"."+mediaType, func(key string, sn *yaml.Node) error {
			if key != "schema" {
				return nil
			}
			s, err := d.schema(sn, at+"."+mediaType+".schema")
			mt.Schema = s
			return err
		})
	})
	return out, err
}

func (d *decoder) schemaList(n *yaml.Node, at string) ([]*Schema, error) {
	var out []*Schema
	err := d.items(n, at, func(i int, val *yaml.Node) error {
		s, err := d.schema(val, fmt.Sprintf("%s[%d]", at, i))
		out = append(out, s)
		return err
	})
	return out, err
}

func (d *decoder) schema(n *yaml.Node, at string) (*Schema, error) {
	n = resolveAlias(n)
	if n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!bool" {
		// Boolean schemas: true accepts anything.
		if n.Value == "true" {
			return &Schema{}, nil
		}
		return nil, d.errorf(n, "%s: false schemas are not supported", at)
	}

	s := &Schema{}
	err := d.pairs(n, at, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			s.Ref = val.Value
		case "type":
			err = d.schemaType(val, s, at)
		case "format":
			s.Format = val.Value
		case "title":
			s.Title = val.Value
		case "description":
			s.Description = val.Value
		case "pattern":
			s.Pattern = val.Value
		case "enum":
			err = d.decode(val, &s.Enum)
		case "const":
			if len(s.Enum) == 0 {
				var v any
				err = d.decode(val, &v)
				s.Enum = []any{v}
			}
		case "default":
			err = d.decode(val, &s.Default)
		case "nullable":
			err = d.decode(val, &s.Nullable)
		case "deprecated":
			err = d.decode(val, &s.Deprecated)
		case "readOnly":
			err = d.decode(val, &s.ReadOnly)
		case "writeOnly":
			err = d.decode(val, &s.WriteOnly)
		case "uniqueItems":
			err = d.decode(val, &s.UniqueItems)
		case "minLength":
			s.MinLength, err = d.intPtr(val)
		case "maxLength":
			s.MaxLength, err = d.intPtr(val)
		case "minItems":
			s.MinItems, err = d.intPtr(val)
		case "maxItems":
			s.MaxItems, err = d.intPtr(val)
		case "minimum":
			s.Minimum, err = d.floatPtr(val)
		case "maximum":
			s.Maximum, err = d.floatPtr(val)
		case "required":
			err = d.decode(val, &s.Required)
		case "items":
			s.Items, err = d.schema(val, at+".items")
		case "properties":
			err = d.pairs(val, at+".properties", func(name string, pn *yaml.Node) error {
				ps, perr := d.schema(pn, at+".properties."+name)
				s.Properties = append(s.Properties, Property{Name: name, Schema: ps})
				return perr
			})
		case "additionalProperties":
			if val.Kind == yaml.ScalarNode && val.Tag == "!!bool" {
				if val.Value == "true" {
					s.AdditionalProperties = &Schema{}
				}
				return nil
			}
			s.AdditionalProperties, err = d.schema(val, at+".additionalProperties")
		case "oneOf":
			s.OneOf, err = d.schemaList(val, at+".oneOf")
		case "anyOf":
			s.AnyOf, err = d.schemaList(val, at+".anyOf")
		case "allOf":
			s.AllOf, err = d.schemaList(val, at+".allOf")
		default:
			if strings.HasPrefix(key, "x-") {
				s.Extensions, err = d.extension(s.Extensions, key, val)
			}
		}
		return err
	})
	return s, err
}

// schemaType handles both the scalar form and the OAS 3.1 list form, where
// "null" in the list marks the schema nullable.
func (d *decoder) schemaType(n *yaml.Node, s *Schema, at string) error {
	if n.Kind == yaml.ScalarNode {
		s.Type = n.Value
		return nil
	}
	var types []string
	if err := d.decode(n, &types); err != nil {
		return err
	}
	for _, t := range types {
		if t == "null" {
			s.Nullable = true
			continue
		}
		if s.Type != "" {
			return d.errorf(n, "%s: multiple non-null types %v are not supported", at, types)
		}
		s.Type = t
	}
	return nil
}

func (d *decoder) intPtr(n *yaml.Node) (*int, error) {
	var v int
	if err := d.decode(n, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *decoder) floatPtr(n *yaml.Node) (*float64, error) {
	var v float64
	if err := d.decode(n, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
