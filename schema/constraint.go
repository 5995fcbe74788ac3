package schema

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/tomlcore/tomlcore/value"
)

// Constraint checks one property of a field's value beyond its Kind,
// returning a human-readable violation message on failure. Each
// constructor below mirrors one Validator type in
// internal/orm/validation/validators.go, narrowed to the value kinds a
// TOML field can actually hold.
type Constraint interface {
	Check(v value.Value) (message string, ok bool)
}

type constraintFunc func(value.Value) (string, bool)

func (f constraintFunc) Check(v value.Value) (string, bool) { return f(v) }

// MinValue requires a numeric field to be >= min.
func MinValue(min float64) Constraint {
	return constraintFunc(func(v value.Value) (string, bool) {
		n, ok := numeric(v)
		if !ok {
			return "", true
		}
		if n < min {
			return fmt.Sprintf("must be >= %g, got %g", min, n), false
		}
		return "", true
	})
}

// MaxValue requires a numeric field to be <= max.
func MaxValue(max float64) Constraint {
	return constraintFunc(func(v value.Value) (string, bool) {
		n, ok := numeric(v)
		if !ok {
			return "", true
		}
		if n > max {
			return fmt.Sprintf("must be <= %g, got %g", max, n), false
		}
		return "", true
	})
}

// MinLength requires a string's rune count, or an array's element
// count, to be >= min.
func MinLength(min int) Constraint {
	return constraintFunc(func(v value.Value) (string, bool) {
		n, ok := length(v)
		if !ok {
			return "", true
		}
		if n < min {
			return fmt.Sprintf("length must be >= %d, got %d", min, n), false
		}
		return "", true
	})
}

// MaxLength requires a string's rune count, or an array's element
// count, to be <= max.
func MaxLength(max int) Constraint {
	return constraintFunc(func(v value.Value) (string, bool) {
		n, ok := length(v)
		if !ok {
			return "", true
		}
		if n > max {
			return fmt.Sprintf("length must be <= %d, got %d", max, n), false
		}
		return "", true
	})
}

// OneOf requires a string field's value to be one of options.
func OneOf(options ...string) Constraint {
	set := make(map[string]struct{}, len(options))
	for _, o := range options {
		set[o] = struct{}{}
	}
	return constraintFunc(func(v value.Value) (string, bool) {
		if v.Kind != value.KindString {
			return "", true
		}
		if _, ok := set[v.Str]; !ok {
			return fmt.Sprintf("must be one of %v, got %q", options, v.Str), false
		}
		return "", true
	})
}

// Pattern requires a string field to match a regular expression.
func Pattern(expr string) Constraint {
	re := regexp.MustCompile(expr)
	return constraintFunc(func(v value.Value) (string, bool) {
		if v.Kind != value.KindString {
			return "", true
		}
		if !re.MatchString(v.Str) {
			return fmt.Sprintf("must match pattern %q", expr), false
		}
		return "", true
	})
}

// Custom wraps an arbitrary predicate as a Constraint, for rules that
// don't fit the shapes above (cross-field checks aside — those belong
// at the caller, since Validate only ever sees one field at a time).
func Custom(name string, predicate func(value.Value) bool) Constraint {
	return constraintFunc(func(v value.Value) (string, bool) {
		if !predicate(v) {
			return fmt.Sprintf("failed constraint %q", name), false
		}
		return "", true
	})
}

func numeric(v value.Value) (float64, bool) {
	switch v.Kind {
	case value.KindInteger:
		return float64(v.Int), true
	case value.KindFloat:
		return v.Flt, true
	default:
		return 0, false
	}
}

func length(v value.Value) (int, bool) {
	switch v.Kind {
	case value.KindString:
		return utf8.RuneCountInString(v.Str), true
	case value.KindArray:
		return len(v.Arr), true
	default:
		return 0, false
	}
}
