// Package oasts generates TypeScript from OpenAPI 3.x documents.
//
// From one document it derives a family of artifacts that agree with each
// other and with the document: static types, zod validators, a fetch-based
// client, msw mock handlers and a type-equality test file.
//
// # Overview
//
// The library consists of these packages:
//
//   - parser: Parse OpenAPI 3.0 and 3.1 documents into an ordered model
//   - matcher: Classify schemas and fold them into any output representation
//   - generator: Emit types.ts, validate.ts, Api.ts, msw-handlers.ts and type-test.ts
//   - operations: Flatten paths into a normalized operation list
//   - validate: Check JSON values against named schemas in Go, with the same
//     rules the generated validators apply
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithMockHandlers(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./generated"); err != nil {
//		log.Fatal(err)
//	}
//
// Check a value in-process:
//
//	set, err := validate.Compile(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	value, err := set.ValidateJSON("Widget", data)
//
// # Command line
//
// The oasts command wraps the same packages:
//
//	oasts generate -o ./generated openapi.yaml
//	oasts operations openapi.yaml
//	oasts check openapi.yaml Widget value.json
//	oasts mcp
package oasts
