package generator

import (
	"fmt"

	"github.com/erraggy/oasts/emit"
)

// Artifact file names.
const (
	FileTypes     = "types.ts"
	FileValidate  = "validate.ts"
	FileClient    = "Api.ts"
	FileMocks     = "msw-handlers.ts"
	FileTypeTests = "type-test.ts"
)

// validatorHelpers is written at the top of validate.ts.
const validatorHelpers = `/**
 * Zod only supports string enums. IntEnum checks membership in a fixed set of
 * numbers and keeps the literal union type.
 */
const IntEnum = <T extends readonly number[]>(values: T) =>
  z.number().refine((n) => values.includes(n), {
    message: ` + "`Expected one of ${values.join(\", \")}`" + `,
  }) as unknown as z.ZodType<T[number], z.ZodTypeDef, T[number]>;

/** Accepts the strings "true" and "false" as well as booleans */
const SafeBoolean = z.preprocess(
  (v) => (v === "false" ? false : v),
  z.coerce.boolean(),
) as unknown as z.ZodType<boolean, z.ZodTypeDef, boolean>;

/** Items in the array must be unique */
const uniqueItems = (items: unknown[]) => new Set(items).size === items.length;
`

func writeHeader(ctx emit.Context, header string) {
	ctx.WriteLine("/* eslint-disable */")
	ctx.WriteLine("")
	ctx.WriteLine("// " + header)
}

// path names a declaration in error messages.
func (d declaration) path() string {
	if d.Interface {
		return d.TypeName
	}
	return d.Name
}

// writeTypes emits types.ts: one type per schema in dependency order, then
// the parameter interfaces.
func (p *plan) writeTypes(ctx emit.Context) error {
	writeHeader(ctx, p.header)
	for _, d := range p.declarations {
		f, err := typeExpression(d.Schema, d.path())
		if err != nil {
			return fmt.Errorf("%s: %w", FileTypes, err)
		}
		ctx.WriteLine("")
		docComment(d.Schema.Description)(ctx)
		if d.Interface {
			ctx.WriteLine("export interface " + d.TypeName + " " + emit.String(f))
			continue
		}
		ctx.WriteLine("export type " + d.TypeName + " =" + emit.String(assigned(f)) + ";")
	}
	return nil
}

// writeValidators emits validate.ts with one zod schema per declaration of
// types.ts, in the same order.
func (p *plan) writeValidators(ctx emit.Context) error {
	writeHeader(ctx, p.header)
	ctx.WriteLine("")
	ctx.WriteLine(`import { z } from "zod";`)
	if p.hasRecursive() {
		ctx.WriteLine(`import type * as T from "./types";`)
	}
	ctx.WriteLine("")
	ctx.Write(validatorHelpers)

	for i, d := range p.declarations {
		f, err := validatorExpression(d.Schema, d.path(), p.position, i, d.Params)
		if err != nil {
			return fmt.Errorf("%s: %w", FileValidate, err)
		}
		annotation := ""
		if d.Recursive {
			annotation = fmt.Sprintf(": z.ZodType<T.%[1]s, z.ZodTypeDef, T.%[1]s>", d.TypeName)
		}
		ctx.WriteLine("")
		docComment(d.Schema.Description)(ctx)
		ctx.WriteLine("export const " + d.TypeName + annotation + " =" + emit.String(assigned(f)) + ";")
	}
	return nil
}

func (p *plan) hasRecursive() bool {
	for _, d := range p.declarations {
		if d.Recursive {
			return true
		}
	}
	return false
}

// writeTypeTests emits type-test.ts asserting that every static type equals
// the input type of its validator.
func (p *plan) writeTypeTests(ctx emit.Context, client bool) error {
	writeHeader(ctx, p.header)
	ctx.WriteLine("")
	ctx.WriteLine(`import { z } from "zod";`)
	ctx.WriteLine(`import { assert, type Equals } from "tsafe";`)
	ctx.WriteLine(`import type * as T from "./types";`)
	ctx.WriteLine(`import * as V from "./validate";`)
	errorBody := client && p.doc.Schema(ErrorSchemaName) != nil
	if errorBody {
		ctx.WriteLine(`import type { ErrorBody } from "./Api";`)
	}
	ctx.WriteLine("")
	for _, d := range p.declarations {
		ctx.WriteLine(fmt.Sprintf("assert<Equals<T.%[1]s, z.input<typeof V.%[1]s>>>();", d.TypeName))
	}
	if errorBody {
		ctx.WriteLine(fmt.Sprintf("assert<Equals<ErrorBody, T.%s>>();", errorTypeName()))
	}
	return nil
}
