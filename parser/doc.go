// Package parser reads OpenAPI 3.x documents into the ordered, read-only model
// consumed by the oasts generator.
//
// Documents may be YAML or JSON. Key order of path items, component schemas
// and schema properties is preserved, because generated output follows
// document order wherever no dependency ordering applies.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range result.Document.Components.Schemas {
//		fmt.Println(s.Name)
//	}
//
// # Immutability
//
// Nothing downstream modifies a parsed [Document]. Schemas are shared by
// pointer between the document, the emitters and the runtime validator.
//
// # Logging
//
// See [Logger]. The default is [NopLogger].
package parser
