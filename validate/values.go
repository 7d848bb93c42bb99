package validate

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
	"time"
	"unicode/utf16"

	"github.com/goccy/go-json"
)

// kind names a value the way validation messages report it.
func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case time.Time:
		return "date"
	}
	if _, ok := toRat(v); ok {
		return "number"
	}
	return reflect.TypeOf(v).String()
}

// toRat converts any numeric value to an exact rational.
func toRat(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case json.Number:
		return new(big.Rat).SetString(string(n))
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case int8:
		return new(big.Rat).SetInt64(int64(n)), true
	case int16:
		return new(big.Rat).SetInt64(int64(n)), true
	case int32:
		return new(big.Rat).SetInt64(int64(n)), true
	case int64:
		return new(big.Rat).SetInt64(n), true
	case uint:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint8:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Rat).SetUint64(n), true
	case float32:
		return ratFloat(float64(n))
	case float64:
		return ratFloat(n)
	}
	return nil, false
}

// toNumber converts any numeric value to a json.Number.
func toNumber(v any) (json.Number, bool) {
	switch n := v.(type) {
	case json.Number:
		return n, true
	case int:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int8:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int16:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int32:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int64:
		return json.Number(strconv.FormatInt(n, 10)), true
	case uint:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint8:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint16:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint32:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint64:
		return json.Number(strconv.FormatUint(n, 10)), true
	case float32:
		return json.Number(strconv.FormatFloat(float64(n), 'f', -1, 32)), true
	case float64:
		return json.Number(strconv.FormatFloat(n, 'f', -1, 64)), true
	}
	return "", false
}

func ratFloat(f float64) (*big.Rat, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return new(big.Rat).SetFloat64(f), true
}

// parseBound parses a decimal bound produced by matcher.IntegerBounds or
// matcher.FormatNumber. An empty string is no bound.
func parseBound(s string) *big.Rat {
	if s == "" {
		return nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil
	}
	return r
}

// equal compares decoded values: numbers by value, everything else deeply.
func equal(a, b any) bool {
	ra, aNum := toRat(a)
	rb, bNum := toRat(b)
	if aNum || bNum {
		return aNum && bNum && ra.Cmp(rb) == 0
	}
	return reflect.DeepEqual(a, b)
}

// uniqueKey identifies primitive values for uniqueness checks. Arrays and
// objects have no key: like a JavaScript Set, two of them are never the same.
func uniqueKey(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "null", true
	case string:
		return "s" + x, true
	case bool:
		return "b" + strconv.FormatBool(x), true
	}
	if r, ok := toRat(v); ok {
		return "n" + r.RatString(), true
	}
	return "", false
}

// jsLength is the length of s in UTF-16 code units.
func jsLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// truthy applies JavaScript's Boolean() to a decoded value.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if r, ok := toRat(v); ok {
		return r.Sign() != 0
	}
	if n, ok := v.(json.Number); ok {
		// NaN spelled as a number
		return string(n) != "NaN"
	}
	return true
}

// copyValue deep copies a decoded default so results never alias the
// document.
func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyValue(e)
		}
		return out
	}
	return v
}

// merge combines the results of intersection members. Objects merge by
// key, arrays element-wise, and anything else must be equal.
func merge(a, b any) (any, bool) {
	switch x := a.(type) {
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok {
			return nil, false
		}
		out := make(map[string]any, len(x)+len(y))
		for k, v := range x {
			out[k] = v
		}
		for k, v := range y {
			if prev, ok := out[k]; ok {
				m, ok := merge(prev, v)
				if !ok {
					return nil, false
				}
				v = m
			}
			out[k] = v
		}
		return out, true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return nil, false
		}
		out := make([]any, len(x))
		for i := range x {
			m, ok := merge(x[i], y[i])
			if !ok {
				return nil, false
			}
			out[i] = m
		}
		return out, true
	case time.Time:
		y, ok := b.(time.Time)
		return a, ok && x.Equal(y)
	}
	return a, equal(a, b)
}
