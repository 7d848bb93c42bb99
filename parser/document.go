package parser

import "strings"

// HTTP methods in the order operations are read from a path item.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods lists the supported HTTP methods in path item order.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// Document is a parsed OpenAPI 3.x document.
type Document struct {
	OpenAPI    string
	Info       *Info
	Paths      []PathEntry
	Components Components
}

// Info holds the document metadata used in generated file headers.
type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// PathEntry pairs a path template with its item, in document order.
type PathEntry struct {
	Path string
	Item *PathItem
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Summary     string
	Description string
	Parameters  []*Parameter
	Get         *Operation
	Put         *Operation
	Post        *Operation
	Delete      *Operation
	Options     *Operation
	Head        *Operation
	Patch       *Operation
	Trace       *Operation
}

// Operation returns the operation for a lower-case HTTP method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	switch strings.ToLower(method) {
	case MethodGet:
		return p.Get
	case MethodPut:
		return p.Put
	case MethodPost:
		return p.Post
	case MethodDelete:
		return p.Delete
	case MethodOptions:
		return p.Options
	case MethodHead:
		return p.Head
	case MethodPatch:
		return p.Patch
	case MethodTrace:
		return p.Trace
	}
	return nil
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  []*Parameter
	RequestBody *RequestBody
	// Responses is keyed by status code ("200", "default", ...)
	Responses  map[string]*Response
	Extensions map[string]any
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Ref         string
	Name        string
	In          string
	Description string
	Required    bool
	Deprecated  bool
	Schema      *Schema
}

// Parameter locations.
const (
	ParamInPath   = "path"
	ParamInQuery  = "query"
	ParamInHeader = "header"
	ParamInCookie = "cookie"
)

// RequestBody describes a request body.
type RequestBody struct {
	Ref         string
	Description string
	Required    bool
	Content     map[string]*MediaType
}

// Response describes a single response from an API operation.
type Response struct {
	Ref         string
	Description string
	Content     map[string]*MediaType
}

// MediaType pairs a content type with its schema.
type MediaType struct {
	Schema *Schema
}

// MediaTypeJSON is the content type whose schemas drive generation.
const MediaTypeJSON = "application/json"

// JSONSchema returns the application/json schema of content, or nil.
func JSONSchema(content map[string]*MediaType) *Schema {
	if mt, ok := content[MediaTypeJSON]; ok && mt != nil {
		return mt.Schema
	}
	return nil
}

// Components holds reusable objects. Schemas keep document order; the other
// maps are only used to resolve local references.
type Components struct {
	Schemas       []NamedSchema
	Parameters    map[string]*Parameter
	RequestBodies map[string]*RequestBody
	Responses     map[string]*Response
}

// NamedSchema is an entry of components.schemas.
type NamedSchema struct {
	Name   string
	Schema *Schema
}

// Schema returns the named component schema, or nil.
func (d *Document) Schema(name string) *Schema {
	for _, s := range d.Components.Schemas {
		if s.Name == name {
			return s.Schema
		}
	}
	return nil
}

// SchemaNames returns component schema names in document order.
func (d *Document) SchemaNames() []string {
	names := make([]string, 0, len(d.Components.Schemas))
	for _, s := range d.Components.Schemas {
		names = append(names, s.Name)
	}
	return names
}
