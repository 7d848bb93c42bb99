// Package generator emits TypeScript artifacts from OpenAPI 3.x documents.
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithMockHandlers(true),
//		generator.WithTypeTests(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./generated"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.MockHandlers = true
//	result, _ := g.Generate("openapi.yaml")
//
// # Generated Files
//
//   - types.ts: one type per component schema in dependency order, plus
//     PathParams and QueryParams interfaces per operation
//   - validate.ts: one zod schema per type of types.ts (Validators)
//   - Api.ts: fetch client with one method per operation (Client)
//   - msw-handlers.ts: msw request handlers (MockHandlers)
//   - type-test.ts: compile-time checks that every type equals the input
//     type of its validator (TypeTests, needs Validators)
//
// # Type Mapping
//
//   - string → string (date-time → Date)
//   - integer, number → number
//   - boolean → boolean
//   - enum → literal union
//   - array → (T)[]
//   - object → object type, or Record<string, T> without properties
//   - oneOf/anyOf → union, allOf → intersection
//   - nullable → T | null
//
// Properties are optional unless required. A property with a default is
// optional in the type; its validator substitutes the default.
//
// Integer formats uint8 through int64 derive validator bounds: unsigned
// [0, 2^bits-1], signed [-(2^(bits-1)-1), 2^(bits-1)-1]. An explicit
// minimum or maximum wins.
package generator
