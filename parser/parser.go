package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/oasts/oaserrors"
	"go.yaml.in/yaml/v4"
)

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
)

// ParseResult contains the parsed document and metadata about its source.
type ParseResult struct {
	// SourcePath is the file path the document was read from, or
	// "<bytes>" / "<reader>" for in-memory sources.
	SourcePath string
	// SourceFormat is the detected input format
	SourceFormat SourceFormat
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Version is the document's openapi field
	Version string
	// Document is the parsed document
	Document *Document
	// LoadTime is the time taken to read and decode the source
	LoadTime time.Duration
}

// Option configures a parse operation
type Option func(*parseConfig) error

type parseConfig struct {
	filePath *string
	data     []byte
	reader   io.Reader
	logger   Logger
}

// WithFilePath reads the document from a file
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "WithFilePath", Message: "path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithBytes parses the document from memory
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		cfg.data = data
		return nil
	}
}

// WithReader parses the document read from r
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithLogger sets the logger for parse diagnostics
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// ParseWithOptions parses a document using functional options.
// Exactly one of WithFilePath, WithBytes or WithReader must be given.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithLogger(logger),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg := &parseConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.data != nil {
		sources++
	}
	if cfg.reader != nil {
		sources++
	}
	if sources != 1 {
		return nil, &oaserrors.ConfigError{
			Option:  "input",
			Value:   sources,
			Message: "exactly one of WithFilePath, WithBytes or WithReader is required",
		}
	}

	start := time.Now()
	source := "<bytes>"
	data := cfg.data
	switch {
	case cfg.filePath != nil:
		source = *cfg.filePath
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: source, Message: "reading file", Cause: err}
		}
		data = b
	case cfg.reader != nil:
		source = "<reader>"
		b, err := io.ReadAll(cfg.reader)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: source, Message: "reading input", Cause: err}
		}
		data = b
	}

	doc, err := parseData(data, source)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		SourcePath:   source,
		SourceFormat: detectFormat(data),
		SourceSize:   int64(len(data)),
		Version:      doc.OpenAPI,
		Document:     doc,
		LoadTime:     time.Since(start),
	}
	cfg.logger.Debug("parsed document",
		"source", source,
		"version", result.Version,
		"paths", len(doc.Paths),
		"schemas", len(doc.Components.Schemas),
	)
	return result, nil
}

// ParseBytes is a shorthand for decoding an in-memory document.
func ParseBytes(data []byte) (*Document, error) {
	return parseData(data, "<bytes>")
}

func parseData(data []byte, source string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "empty document"}
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "decoding document", Cause: err}
	}
	d := &decoder{source: source}
	doc, err := d.document(&root)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return doc, nil
}

// detectFormat reports JSON when the first non-space byte opens an object.
func detectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
