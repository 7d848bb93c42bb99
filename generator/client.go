package generator

import (
	"regexp"
	"strings"

	"github.com/erraggy/oasts/emit"
	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/operations"
)

// clientData feeds client.ts.tmpl.
type clientData struct {
	Header  string
	Methods []clientMethod
	Sockets []clientMethod
}

// clientMethod is one Api method or websocket URL builder.
type clientMethod struct {
	Name          string
	HTTPMethod    string
	Doc           []string
	Deprecated    bool
	PathTemplate  string
	PathType      string
	QueryType     string
	QueryRequired bool
	BodyType      string
	SuccessType   string
	Signature     string
}

var pathParamPattern = regexp.MustCompile(`\{([^}]+)\}`)

// clientPath turns /a/{b_c} into /a/${path.bC}.
func clientPath(path string) string {
	return pathParamPattern.ReplaceAllStringFunc(path, func(m string) string {
		return "${path." + naming.PropertyName(m[1:len(m)-1]) + "}"
	})
}

// mockRoute turns /a/{b_c} into /a/:b_c.
func mockRoute(path string) string {
	return pathParamPattern.ReplaceAllString(path, ":$1")
}

func docLines(doc string) []string {
	doc = strings.TrimSpace(strings.ReplaceAll(doc, "*/", "*\\/"))
	if doc == "" {
		return nil
	}
	return strings.Split(doc, "\n")
}

// typeRef renders a schema name as a member of the types module.
func typeRef(name string) string {
	if name == "" {
		return ""
	}
	return "T." + naming.TypeName(name)
}

func newClientMethod(op operations.Operation) clientMethod {
	m := clientMethod{
		Name:          naming.SnakeToCamel(op.OperationID),
		HTTPMethod:    strings.ToUpper(op.Method),
		Doc:           docLines(op.Doc),
		Deprecated:    op.Deprecated,
		PathTemplate:  clientPath(op.Path),
		QueryRequired: requiresQuery(op),
		BodyType:      typeRef(op.BodyType),
		SuccessType:   "void",
	}
	if len(op.PathParams) > 0 {
		m.PathType = "T." + paramTypeName(op, suffixPathParams)
	}
	if len(op.QueryParams) > 0 {
		m.QueryType = "T." + paramTypeName(op, suffixQueryParams)
	}
	if op.SuccessType != "" {
		m.SuccessType = typeRef(op.SuccessType)
	}

	var names, types []string
	if m.PathType != "" {
		names = append(names, "path")
		types = append(types, "path: "+m.PathType)
	}
	if m.QueryType != "" {
		if m.QueryRequired {
			names = append(names, "query")
			types = append(types, "query: "+m.QueryType)
		} else {
			names = append(names, "query = {}")
			types = append(types, "query?: "+m.QueryType)
		}
	}
	if m.BodyType != "" {
		names = append(names, "body")
		types = append(types, "body: "+m.BodyType)
	}
	if len(names) == 0 {
		m.Signature = "_: Record<string, never> = {}"
	} else {
		m.Signature = "{ " + strings.Join(names, ", ") + " }: { " + strings.Join(types, "; ") + " }"
	}
	return m
}

// writeClient emits Api.ts.
func (p *plan) writeClient(ctx emit.Context) error {
	data := clientData{Header: p.header}
	for _, op := range p.operations {
		if op.WebSocket {
			data.Sockets = append(data.Sockets, newClientMethod(op))
			continue
		}
		data.Methods = append(data.Methods, newClientMethod(op))
	}
	out, err := executeTemplate("client.ts.tmpl", data, len(p.operations))
	if err != nil {
		return err
	}
	ctx.Write(out)
	return nil
}
