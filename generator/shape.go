package generator

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/matcher"
	"github.com/erraggy/oasts/oaserrors"
	"github.com/erraggy/oasts/parser"
)

// ErrorSchemaName is the component schema the client's ErrorBody mirrors.
const ErrorSchemaName = "Error"

// errorBodyFields is the shape of ErrorBody in Api.ts, by wire name.
var errorBodyFields = []struct {
	name     string
	required bool
}{
	{name: "error_code", required: false},
	{name: "message", required: true},
	{name: "request_id", required: true},
}

func errorTypeName() string {
	return naming.TypeName(ErrorSchemaName)
}

// checkErrorShape verifies that the document's Error schema, when there is
// one, describes exactly the hand-written ErrorBody.
func checkErrorShape(doc *parser.Document) error {
	s := doc.Schema(ErrorSchemaName)
	if s == nil {
		return nil
	}
	mismatch := func(format string, args ...any) error {
		return &oaserrors.ShapeMismatchError{Name: ErrorSchemaName, Message: fmt.Sprintf(format, args...)}
	}

	if v, err := matcher.Classify(s); err != nil || v != matcher.Object {
		return mismatch("must be an object schema")
	}
	if s.Nullable {
		return mismatch("must not be nullable")
	}

	expected := make([]string, 0, len(errorBodyFields))
	for _, f := range errorBodyFields {
		expected = append(expected, f.name)
		prop := s.Property(f.name)
		if prop == nil {
			return mismatch("missing property %q", f.name)
		}
		if v, err := matcher.Classify(prop); err != nil || v != matcher.String || prop.Nullable {
			return mismatch("property %q must be a non-nullable string", f.name)
		}
		required := matcher.PresenceOf(s, f.name, prop) == matcher.Required
		if required != f.required {
			if f.required {
				return mismatch("property %q must be required", f.name)
			}
			return mismatch("property %q must be optional", f.name)
		}
	}
	for _, p := range s.Properties {
		if !slices.Contains(expected, p.Name) {
			return mismatch("unexpected property %q", p.Name)
		}
	}
	return nil
}
