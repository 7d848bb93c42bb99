package operations

import (
	"testing"

	"github.com/erraggy/oasts/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widgets(t *testing.T) *parser.Document {
	t.Helper()
	result, err := parser.ParseWithOptions(parser.WithFilePath("../testdata/widgets.yaml"))
	require.NoError(t, err)
	return result.Document
}

func TestExtractWidgets(t *testing.T) {
	ops, err := Extract(widgets(t), nil)
	require.NoError(t, err)

	ids := make([]string, 0, len(ops))
	for _, op := range ops {
		ids = append(ids, op.OperationID)
	}
	// ping has no operationId
	assert.Equal(t, []string{"widget_list", "widget_create", "widget_view", "widget_delete", "widget_events"}, ids)

	tests := []struct {
		name  string
		index int
		check func(t *testing.T, op Operation)
	}{
		{
			name:  "list has query params and a success type",
			index: 0,
			check: func(t *testing.T, op Operation) {
				assert.Equal(t, parser.MethodGet, op.Method)
				assert.Equal(t, "/v1/widgets", op.Path)
				assert.Empty(t, op.PathParams)
				require.Len(t, op.QueryParams, 2)
				assert.Equal(t, "limit", op.QueryParams[0].Name)
				assert.False(t, op.QueryParams[0].Required)
				assert.Equal(t, "uint32", op.QueryParams[0].Schema.Format)
				assert.Equal(t, "page_token", op.QueryParams[1].Name)
				assert.Empty(t, op.BodyType)
				assert.Equal(t, "WidgetResultsPage", op.SuccessType)
				assert.Equal(t, "List widgets", op.Doc)
			},
		},
		{
			name:  "create records body and 201 success",
			index: 1,
			check: func(t *testing.T, op Operation) {
				assert.Equal(t, parser.MethodPost, op.Method)
				assert.Equal(t, "WidgetCreate", op.BodyType)
				assert.Equal(t, "Widget", op.SuccessType)
				assert.Equal(t, "Create a widget.", op.Doc)
			},
		},
		{
			name:  "view inherits the path-level parameter reference",
			index: 2,
			check: func(t *testing.T, op Operation) {
				require.Len(t, op.PathParams, 1)
				assert.Equal(t, "widget_id", op.PathParams[0].Name)
				assert.True(t, op.PathParams[0].Required)
				assert.Equal(t, "uuid", op.PathParams[0].Schema.Format)
				assert.Equal(t, "Widget", op.SuccessType)
			},
		},
		{
			name:  "delete has no success type",
			index: 3,
			check: func(t *testing.T, op Operation) {
				assert.Equal(t, parser.MethodDelete, op.Method)
				assert.Empty(t, op.SuccessType)
				assert.Len(t, op.PathParams, 1)
			},
		},
		{
			name:  "events is a websocket",
			index: 4,
			check: func(t *testing.T, op Operation) {
				assert.True(t, op.WebSocket)
				assert.Empty(t, op.SuccessType)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ops[tt.index])
		})
	}
}

func TestExtractRules(t *testing.T) {
	src := `openapi: 3.0.3
paths:
  /things/{id}:
    parameters:
      - name: id
        in: path
        description: path level
        schema: {type: string}
      - name: verbose
        in: query
        schema: {type: boolean}
    put:
      operationId: thing_put
      x-websocket: true
      parameters:
        - name: id
          in: path
          required: true
          description: operation level
          schema: {type: integer}
        - name: x-trace
          in: header
          schema: {type: string}
      requestBody:
        $ref: '#/components/requestBodies/Thing'
      responses:
        "202":
          $ref: '#/components/responses/Accepted'
        "204":
          description: no body
    get:
      operationId: thing_get
      x-websocket: false
      requestBody:
        content:
          application/json:
            schema: {$ref: '#/components/schemas/Thing'}
      responses:
        "200":
          description: inline body
          content:
            application/json:
              schema: {type: object}
components:
  requestBodies:
    Thing:
      content:
        application/json:
          schema: {$ref: '#/components/schemas/Thing'}
  responses:
    Accepted:
      description: accepted
      content:
        application/json:
          schema: {$ref: '#/components/schemas/Receipt'}
  schemas:
    Thing: {type: object}
    Receipt: {type: object}
`
	doc, err := parser.ParseBytes([]byte(src))
	require.NoError(t, err)
	ops, err := Extract(doc, nil)
	require.NoError(t, err)
	require.Len(t, ops, 2)

	get, put := ops[0], ops[1]
	assert.Equal(t, "thing_get", get.OperationID)
	assert.False(t, get.WebSocket)
	assert.Empty(t, get.BodyType, "get never records a body type")
	assert.Empty(t, get.SuccessType, "inline response schema is not a named type")

	assert.Equal(t, "thing_put", put.OperationID)
	assert.True(t, put.WebSocket)
	require.Len(t, put.PathParams, 1)
	assert.Equal(t, "operation level", put.PathParams[0].Description)
	assert.Equal(t, "integer", put.PathParams[0].Schema.Type)
	require.Len(t, put.QueryParams, 1)
	assert.Equal(t, "verbose", put.QueryParams[0].Name)
	assert.Equal(t, "Thing", put.BodyType)
	assert.Equal(t, "Receipt", put.SuccessType)
}

func TestSuccessTypeFirstPresentCode(t *testing.T) {
	tests := []struct {
		name      string
		responses string
		want      string
	}{
		{
			name: "inline 200 hides named 201",
			responses: `
        "200":
          description: inline
          content:
            application/json:
              schema: {type: object}
        "201":
          description: named
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Receipt'}`,
			want: "",
		},
		{
			name: "bodiless 200 hides named 202",
			responses: `
        "200":
          description: no body
        "202":
          description: named
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Receipt'}`,
			want: "",
		},
		{
			name: "named 201 when 200 is absent",
			responses: `
        "201":
          description: named
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Receipt'}
        "202":
          description: other
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Other'}`,
			want: "Receipt",
		},
		{
			name: "named 206 alone",
			responses: `
        "206":
          description: partial
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Receipt'}`,
			want: "Receipt",
		},
		{
			name: "no success code",
			responses: `
        "204":
          description: empty
        default:
          description: error
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Other'}`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `openapi: 3.0.3
paths:
  /things:
    post:
      operationId: thing_create
      responses:` + tt.responses + `
components:
  schemas:
    Receipt: {type: object}
    Other: {type: object}
`
			doc, err := parser.ParseBytes([]byte(src))
			require.NoError(t, err)
			ops, err := Extract(doc, nil)
			require.NoError(t, err)
			require.Len(t, ops, 1)
			assert.Equal(t, tt.want, ops[0].SuccessType)
		})
	}
}

func TestExtractUnresolvedReference(t *testing.T) {
	src := `openapi: 3.0.3
paths:
  /a:
    get:
      operationId: a
      parameters:
        - $ref: '#/components/parameters/Missing'
      responses: {}
`
	doc, err := parser.ParseBytes([]byte(src))
	require.NoError(t, err)
	_, err = Extract(doc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get /a")
	assert.Contains(t, err.Error(), "Missing")
}
