package matcher

import (
	"regexp"
	"strconv"

	"github.com/erraggy/oasts/parser"
)

var intFormat = regexp.MustCompile(`^(u?)int(8|16|32|64)$`)

// maxSafeInteger is Number.MAX_SAFE_INTEGER.
const maxSafeInteger = 1<<53 - 1

// IntegerBounds returns the inclusive bounds of an integer schema as decimal
// strings, empty when unbounded. Formats of the form [u]int{8,16,32,64}
// derive a range: unsigned is [0, 2^bits-1] and signed is
// [-(2^(bits-1)-1), 2^(bits-1)-1]. A derived bound whose magnitude exceeds
// 2^53-1 is left empty, since a JavaScript number cannot hold it exactly.
// An explicit minimum or maximum replaces the derived value.
func IntegerBounds(s *parser.Schema) (lo, hi string) {
	if m := intFormat.FindStringSubmatch(s.Format); m != nil {
		bits, _ := strconv.Atoi(m[2])
		if m[1] == "u" {
			lo = "0"
			if limit := uint64(1)<<bits - 1; limit <= maxSafeInteger {
				hi = strconv.FormatUint(limit, 10)
			}
		} else if limit := uint64(1)<<(bits-1) - 1; limit <= maxSafeInteger {
			lo = "-" + strconv.FormatUint(limit, 10)
			hi = strconv.FormatUint(limit, 10)
		}
	}
	if s.Minimum != nil {
		lo = FormatNumber(*s.Minimum)
	}
	if s.Maximum != nil {
		hi = FormatNumber(*s.Maximum)
	}
	return lo, hi
}

// FormatNumber renders a bound without exponent or trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
