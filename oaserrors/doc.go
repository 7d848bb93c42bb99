// Package oaserrors provides structured error types for the oasts generator.
//
// Import path: github.com/erraggy/oasts/oaserrors
//
// Every error the generator reports is fatal to the run. The types exist so
// callers can tell the categories apart via [errors.Is] and [errors.As]:
//
//   - [ParseError]: the document could not be read or decoded
//   - [UnhandledSchemaError]: a schema fell through every classification rule
//   - [ShapeMismatchError]: a schema with a hand-maintained counterpart drifted from it
//   - [ConfigError]: invalid generator options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrUnhandledSchema]: Matches any [UnhandledSchemaError]
//   - [ErrShapeMismatch]: Matches any [ShapeMismatchError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := generator.GenerateWithOptions(generator.WithFilePath("api.yaml"))
//	if errors.Is(err, oaserrors.ErrUnhandledSchema) {
//	    var se *oaserrors.UnhandledSchemaError
//	    errors.As(err, &se)
//	    fmt.Printf("cannot generate %s: %#v\n", se.Path, se.Schema)
//	}
package oaserrors
