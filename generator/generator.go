package generator

import (
	"fmt"
	"time"

	"github.com/erraggy/oasts"
	"github.com/erraggy/oasts/emit"
	"github.com/erraggy/oasts/oaserrors"
	"github.com/erraggy/oasts/operations"
	"github.com/erraggy/oasts/parser"
)

// GeneratedFile represents a single generated file
type GeneratedFile = emit.GeneratedFile

// GenerateResult contains the results of generating code from an OpenAPI document
type GenerateResult struct {
	// Files contains all generated files, in emission order
	Files []GeneratedFile
	// SourcePath is the path the document was read from
	SourcePath string
	// SourceVersion is the document's openapi field
	SourceVersion string
	// SchemaCount is the number of component schemas emitted
	SchemaCount int
	// OperationCount is the number of operations emitted
	OperationCount int
	// Order is the dependency order the schemas were emitted in
	Order []string
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator handles code generation from OpenAPI documents
type Generator struct {
	// Validators enables validate.ts (zod schemas)
	// Default: true
	Validators bool

	// MockHandlers enables msw-handlers.ts. It needs the validators, so
	// enabling it also enables Validators.
	MockHandlers bool

	// TypeTests enables type-test.ts. It is only emitted when validators
	// are enabled.
	TypeTests bool

	// Client enables Api.ts
	// Default: true
	Client bool

	// Logger receives diagnostics. Defaults to NopLogger.
	Logger parser.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		Validators: true,
		Client:     true,
		Logger:     parser.NopLogger{},
	}
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	data     []byte
	parsed   *parser.ParseResult

	validators   bool
	mockHandlers bool
	typeTests    bool
	client       bool
	logger       parser.Logger
}

// GenerateWithOptions generates code from an OpenAPI document using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithMockHandlers(true),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		Validators:   cfg.validators,
		MockHandlers: cfg.mockHandlers,
		TypeTests:    cfg.typeTests,
		Client:       cfg.client,
		Logger:       cfg.logger,
	}

	switch {
	case cfg.filePath != nil:
		return g.Generate(*cfg.filePath)
	case cfg.data != nil:
		parsed, err := parser.ParseWithOptions(parser.WithBytes(cfg.data), parser.WithLogger(g.logger()))
		if err != nil {
			return nil, fmt.Errorf("generator: failed to parse document: %w", err)
		}
		return g.GenerateParsed(*parsed)
	default:
		return g.GenerateParsed(*cfg.parsed)
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		validators: true,
		client:     true,
		logger:     parser.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sourceCount := 0
	if cfg.filePath != nil {
		sourceCount++
	}
	if cfg.data != nil {
		sourceCount++
	}
	if cfg.parsed != nil {
		sourceCount++
	}
	if sourceCount == 0 {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "must specify an input source (use WithFilePath, WithBytes or WithParsed)"}
	}
	if sourceCount > 1 {
		return nil, &oaserrors.ConfigError{Option: "input", Value: sourceCount, Message: "must specify exactly one input source"}
	}

	if cfg.mockHandlers {
		cfg.validators = true
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "WithFilePath", Message: "path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies an in-memory document as the input source
func WithBytes(data []byte) Option {
	return func(cfg *generateConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "WithBytes", Message: "data cannot be nil"}
		}
		cfg.data = data
		return nil
	}
}

// WithParsed specifies an already parsed document as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if result.Document == nil {
			return &oaserrors.ConfigError{Option: "WithParsed", Message: "parse result has no document"}
		}
		cfg.parsed = &result
		return nil
	}
}

// WithValidators enables or disables validate.ts
func WithValidators(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.validators = enabled
		return nil
	}
}

// WithMockHandlers enables or disables msw-handlers.ts. Enabling mock
// handlers also enables validators.
func WithMockHandlers(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.mockHandlers = enabled
		return nil
	}
}

// WithTypeTests enables or disables type-test.ts
func WithTypeTests(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.typeTests = enabled
		return nil
	}
}

// WithClient enables or disables Api.ts
func WithClient(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.client = enabled
		return nil
	}
}

// WithLogger sets the logger for generation diagnostics
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "WithLogger", Message: "logger cannot be nil"}
		}
		cfg.logger = l
		return nil
	}
}

func (g *Generator) logger() parser.Logger {
	if g.Logger == nil {
		return parser.NopLogger{}
	}
	return g.Logger
}

// Generate parses the document at specPath and generates code from it
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	parsed, err := parser.ParseWithOptions(parser.WithFilePath(specPath), parser.WithLogger(g.logger()))
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse document: %w", err)
	}
	return g.GenerateParsed(*parsed)
}

// GenerateParsed generates code from an already parsed document. Files are
// collected in memory; use WriteFiles to store them.
func (g *Generator) GenerateParsed(parsed parser.ParseResult) (*GenerateResult, error) {
	start := time.Now()
	sink := &emit.MemorySink{}
	p, err := g.emit(parsed.Document, sink)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{
		Files:          sink.Files,
		SourcePath:     parsed.SourcePath,
		SourceVersion:  parsed.Version,
		SchemaCount:    len(p.order),
		OperationCount: len(p.operations),
		Order:          p.order,
		LoadTime:       parsed.LoadTime,
		GenerateTime:   time.Since(start),
	}, nil
}

// Emit writes every enabled artifact of doc to sink, in a fixed order:
// types, validators, client, mock handlers, type tests.
func (g *Generator) Emit(doc *parser.Document, sink emit.Sink) error {
	_, err := g.emit(doc, sink)
	return err
}

func (g *Generator) emit(doc *parser.Document, sink emit.Sink) (*plan, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
	}
	log := g.logger()
	if err := checkErrorShape(doc); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	ops, err := operations.Extract(doc, log)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	p := newPlan(doc, ops, header(doc), log)

	validators := g.Validators || g.MockHandlers
	steps := []struct {
		enabled bool
		name    string
		write   func(emit.Context) error
	}{
		{true, FileTypes, p.writeTypes},
		{validators, FileValidate, p.writeValidators},
		{g.Client, FileClient, p.writeClient},
		{g.MockHandlers, FileMocks, p.writeMocks},
		{validators && g.TypeTests, FileTypeTests, func(ctx emit.Context) error { return p.writeTypeTests(ctx, g.Client) }},
	}
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := sink.Artifact(step.name, step.write); err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
		log.Debug("emitted artifact", "file", step.name)
	}
	log.Info("generated code",
		"schemas", len(p.order),
		"operations", len(ops),
		"declarations", len(p.declarations),
	)
	return p, nil
}

// header is the provenance comment at the top of every artifact.
func header(doc *parser.Document) string {
	source := "an OpenAPI document"
	if doc.Info != nil && doc.Info.Title != "" {
		source = doc.Info.Title
		if doc.Info.Version != "" {
			source += " " + doc.Info.Version
		}
	}
	return fmt.Sprintf("Code generated by oasts %s from %s. DO NOT EDIT.", oasts.Version(), source)
}
