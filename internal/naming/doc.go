// Package naming provides the case conversions used for every identifier the
// generator prints.
//
// Wire names in OpenAPI documents are snake_case. Generated TypeScript uses
// PascalCase for type and validator names and camelCase for properties,
// parameters and client methods. Conversions split strictly on underscores;
// no other separator is recognized.
//
// A short rename table intercepts the few identifiers that would collide
// with TypeScript globals the generated code depends on. It is applied
// before any conversion so all outputs agree on the renamed form.
package naming
