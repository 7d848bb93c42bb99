package generator

import (
	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/internal/refs"
	"github.com/erraggy/oasts/internal/toposort"
	"github.com/erraggy/oasts/operations"
	"github.com/erraggy/oasts/parser"
)

// declaration is one named type emitted to both types.ts and validate.ts.
type declaration struct {
	// Name is the wire name used to resolve references
	Name string
	// TypeName is the generated identifier
	TypeName string
	Schema   *parser.Schema
	// Interface renders the type as an interface instead of an alias
	Interface bool
	// Params marks an operation's path or query parameter object, whose
	// values arrive as strings and are coerced by its validator
	Params bool
	// Recursive declarations reference a schema not yet declared
	Recursive bool
}

// plan is everything the artifact emitters need, computed once per run.
type plan struct {
	doc          *parser.Document
	header       string
	declarations []declaration
	// position of every declaration's wire name
	position   map[string]int
	operations []operations.Operation
	// order is the sorted component schema order
	order []string
}

// parameter type name suffixes
const (
	suffixPathParams  = "PathParams"
	suffixQueryParams = "QueryParams"
)

func newPlan(doc *parser.Document, ops []operations.Operation, header string, logger parser.Logger) *plan {
	vertices := make([]toposort.Vertex, 0, len(doc.Components.Schemas))
	known := make(map[string]bool, len(doc.Components.Schemas))
	for _, s := range doc.Components.Schemas {
		known[s.Name] = true
	}
	for _, s := range doc.Components.Schemas {
		deps := refs.Dependencies(s.Schema)
		for _, d := range deps {
			if !known[d] {
				logger.Warn("reference to undefined schema", "schema", s.Name, "ref", d)
			}
		}
		vertices = append(vertices, toposort.Vertex{Name: s.Name, Deps: deps})
	}
	order := toposort.Sort(vertices)
	recursive := toposort.Forward(vertices, order)
	logger.Debug("sorted schemas", "order", order)

	p := &plan{
		doc:        doc,
		header:     header,
		position:   make(map[string]int),
		operations: ops,
		order:      order,
	}
	for _, name := range order {
		p.add(declaration{
			Name:      name,
			TypeName:  naming.TypeName(name),
			Schema:    doc.Schema(name),
			Recursive: recursive[name],
		})
	}
	for _, op := range ops {
		if len(op.PathParams) > 0 {
			p.add(paramDeclaration(op, suffixPathParams, op.PathParams))
		}
		if len(op.QueryParams) > 0 {
			p.add(paramDeclaration(op, suffixQueryParams, op.QueryParams))
		}
	}
	return p
}

func (p *plan) add(d declaration) {
	p.position[d.Name] = len(p.declarations)
	p.declarations = append(p.declarations, d)
}

// paramTypeName is the generated name of an operation's parameter object.
func paramTypeName(op operations.Operation, suffix string) string {
	return naming.SnakeToPascal(op.OperationID) + suffix
}

// paramDeclaration builds an object schema with one property per parameter,
// so parameter types go through the same matcher as component schemas.
func paramDeclaration(op operations.Operation, suffix string, params []operations.Param) declaration {
	obj := &parser.Schema{Type: "object"}
	for _, param := range params {
		s := &parser.Schema{}
		if param.Schema != nil {
			cp := *param.Schema
			s = &cp
		}
		if s.Description == "" {
			s.Description = param.Description
		}
		obj.Properties = append(obj.Properties, parser.Property{Name: param.Name, Schema: s})
		if param.Required {
			obj.Required = append(obj.Required, param.Name)
		}
	}
	name := paramTypeName(op, suffix)
	return declaration{
		// parameter objects are never referenced by wire name; the type
		// name keeps them distinct from component schemas
		Name:      "#" + name,
		TypeName:  name,
		Schema:    obj,
		Interface: true,
		Params:    true,
	}
}

// requiresQuery reports whether any query parameter is required.
func requiresQuery(op operations.Operation) bool {
	for _, q := range op.QueryParams {
		if q.Required {
			return true
		}
	}
	return false
}
