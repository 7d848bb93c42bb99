// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasts capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/oasts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasts MCP server: generates TypeScript types, zod validators, an API client and mock handlers from OpenAPI 3.x documents, lists the operations a client would expose, and checks JSON values against component schemas.

Configuration: defaults are read from OASTS_* environment variables set in your MCP client config.

Key settings:
- OASTS_CLIENT (default: true) generate Api.ts
- OASTS_MOCK_HANDLERS (default: false) generate msw-handlers.ts
- OASTS_TYPE_TESTS (default: false) generate type-test.ts
- OASTS_OPERATIONS_LIMIT (default: 100) default result limit for the operations tool
- OASTS_CACHE_ENABLED (default: true) disable document caching entirely
- OASTS_CACHE_FILE_TTL / OASTS_CACHE_CONTENT_TTL (default: 15m) cache TTLs

Caching: parsed documents are cached per session. File entries use path+mtime as key, so they are invalidated when the file changes.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer(ctx).Run(ctx, &mcp.StdioTransport{})
}

func newServer(ctx context.Context) *mcp.Server {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasts", Version: oasts.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate TypeScript from an OpenAPI 3.x document: types.ts always, validate.ts (zod) unless validators=false, Api.ts unless client=false, msw-handlers.ts with mock_handlers=true and type-test.ts with type_tests=true. Writes to output_dir when given, otherwise returns the file contents inline. Feature defaults are configurable via OASTS_CLIENT, OASTS_MOCK_HANDLERS and OASTS_TYPE_TESTS.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "operations",
		Description: "List the operations the generated client exposes: operationId, method, path, path/query parameter names, request body and success response types. Operations without an operationId are skipped, as in generation. Filter by tag, method, path pattern (* matches one segment) or websocket. Use group_by (tag or method) to get distribution counts instead of individual items. Use offset/limit to paginate; the default limit is configurable via OASTS_OPERATIONS_LIMIT.",
	}, handleOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Validate a JSON value against a named component schema with the same rules as the generated zod validators: defaults are applied, undeclared properties are dropped, booleans and dates are coerced. Returns valid=false with every issue and its JSON pointer on failure.",
	}, handleCheck)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.OperationsLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.OperationsLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is empty or one of allowed.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matching never meets an invalid
// pattern.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchPath reports whether an API path matches pattern. A pattern without
// glob characters must match exactly.
func matchPath(pattern, apiPath string) bool {
	if pattern == "" {
		return true
	}
	ok, err := path.Match(pattern, apiPath)
	return err == nil && ok
}
