// Package validate checks JSON values against the named schemas of an
// OpenAPI document, in Go, with the rules the generated zod validators apply.
//
// Compile builds one goskema schema per component schema by walking it with
// the matcher package, the same walk that drives code generation. Objects,
// arrays and records come from the goskema dsl builders; formats, bounds and
// the zod coercions are refinements on top:
//
//	set, err := validate.Compile(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	value, err := set.ValidateJSON("WidgetCreate", []byte(`{"name": "w", "kind": "round"}`))
//	// value is map[string]any{"name": "w", "kind": "round", "size": json.Number("4")}
//
// Object properties are checked by their wire names. As with z.object,
// properties the schema does not declare are dropped from the result, and
// absent properties with a default receive it. Issues carry the goskema
// issue code alongside the message.
//
// Integer formats uint8 through int64 bound the accepted range the same way
// the generated validators do. Booleans follow the generated SafeBoolean
// helper: the string "false" is false and every other value is coerced by
// JavaScript truthiness.
package validate
