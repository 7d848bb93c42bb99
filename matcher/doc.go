// Package matcher classifies schemas and walks them with a pluggable output
// algebra.
//
// Every schema falls into exactly one [Variant]. [Classify] tests the
// variants in a fixed order and the order matters: an integer schema with an
// enum list is an enum, a string with format date-time is a date, a schema
// with both a $ref and siblings is a reference. A schema that matches
// nothing is an [oaserrors.UnhandledSchemaError]; nothing is skipped.
//
// [Walk] is the single traversal shared by every emitter. It computes child
// results first (items, properties, additional properties, union arms,
// intersection members), then hands them to the one [Algebra] method for the
// schema's variant, and finally applies [Algebra.Nullable] when the schema
// is nullable. Emitters differ only in the Algebra they pass in, so the
// TypeScript types, the zod validators and the Go runtime checks can never
// disagree on classification or on which properties are optional.
package matcher
