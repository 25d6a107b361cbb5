package check

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"astron-hq/astroncheck/pkg/document"
)

// Integer is a parsed integer scalar. Channels use the full uint64 range, so
// the value is kept as a sign and a magnitude.
type Integer struct {
	Negative  bool
	Magnitude uint64
}

// IsPositive reports whether the value is strictly greater than zero.
func (i Integer) IsPositive() bool {
	return !i.Negative && i.Magnitude > 0
}

// String returns the decimal representation.
func (i Integer) String() string {
	if i.Negative {
		return "-" + strconv.FormatUint(i.Magnitude, 10)
	}
	return strconv.FormatUint(i.Magnitude, 10)
}

// ParseInteger parses a scalar node as a 64-bit integer.
// Decimal, 0x, 0o and 0b forms are accepted; negative values must fit int64.
func ParseInteger(n *document.Node) (Integer, bool) {
	if !n.IsScalar() || n.Tag == document.TagBool || n.Tag == document.TagFloat {
		return Integer{}, false
	}

	s := strings.TrimSpace(n.Value)
	var out Integer
	switch {
	case strings.HasPrefix(s, "-"):
		out.Negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" || s[0] == '-' || s[0] == '+' {
		return Integer{}, false
	}

	mag, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		mag, err = strconv.ParseUint(s, 0, 64)
		if err != nil {
			return Integer{}, false
		}
	}
	if out.Negative && mag > uint64(math.MaxInt64)+1 {
		return Integer{}, false
	}
	if mag == 0 {
		out.Negative = false
	}
	out.Magnitude = mag
	return out, true
}

// Int accepts scalars that parse as 64-bit integers.
func Int() Checker {
	return func(n *document.Node) *Problem {
		if _, ok := ParseInteger(n); !ok {
			if !n.IsScalar() {
				return kindProblem("must be an integer, got %s", n.Describe())
			}
			return kindProblem("must be an integer, got %q", n.Value)
		}
		return nil
	}
}

// Positive accepts integers strictly greater than zero.
func Positive() Checker {
	return func(n *document.Node) *Problem {
		v, ok := ParseInteger(n)
		if !ok {
			return nil
		}
		if !v.IsPositive() {
			return Problemf("value must be positive, got %s", v)
		}
		return nil
	}
}

// Band is an inclusive range of reserved identifiers.
type Band struct {
	Min uint64
	Max uint64
}

// Contains reports whether v lies inside the band.
func (b Band) Contains(v uint64) bool {
	return v >= b.Min && v <= b.Max
}

// IsZero reports whether the band reserves nothing.
func (b Band) IsZero() bool {
	return b.Min == 0 && b.Max == 0
}

// String returns "[min, max]".
func (b Band) String() string {
	return fmt.Sprintf("[%d, %d]", b.Min, b.Max)
}

// NotReserved rejects positive integers inside band. Zero and negative values
// are left to Positive so each problem is reported once.
func NotReserved(band Band) Checker {
	return func(n *document.Node) *Problem {
		if band.IsZero() {
			return nil
		}
		v, ok := ParseInteger(n)
		if !ok || !v.IsPositive() {
			return nil
		}
		if band.Contains(v.Magnitude) {
			return Problemf("value is in reserved range %s, got %s", band, v)
		}
		return nil
	}
}

// AtMost reports whether a <= b. It backs the min/max cross-field rules.
func AtMost(a, b Integer) bool {
	switch {
	case a.Negative && !b.Negative:
		return true
	case !a.Negative && b.Negative:
		return a.Magnitude == 0 && b.Magnitude == 0
	case a.Negative && b.Negative:
		return a.Magnitude >= b.Magnitude
	default:
		return a.Magnitude <= b.Magnitude
	}
}
