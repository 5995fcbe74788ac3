// Package value implements the TOML value tree: the tagged sum of scalar
// and container kinds every other package in this module parses into,
// validates against, or serializes back out of.
package value

import "fmt"

// Kind identifies which alternative of the Value sum is populated.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDatetime
	KindDate
	KindTime
	KindArray
	KindTable

	// KindAny is a schema-only sentinel: a FieldSchema using it accepts
	// a value of any other Kind. No Value is ever itself of KindAny.
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Value is a single TOML value: exactly one of the fields below is
// meaningful, selected by Kind. Table and Array values are themselves
// trees of Value, so a *Table is a complete, self-contained document.
type Value struct {
	Kind Kind

	Str   string
	Int   int64
	Flt   float64
	Bool  bool
	DT    Datetime
	D     Date
	T     Time
	Arr   []Value
	Table *Table
}

func String(s string) Value       { return Value{Kind: KindString, Str: s} }
func Integer(i int64) Value       { return Value{Kind: KindInteger, Int: i} }
func Float(f float64) Value       { return Value{Kind: KindFloat, Flt: f} }
func Boolean(b bool) Value        { return Value{Kind: KindBoolean, Bool: b} }
func DatetimeVal(dt Datetime) Value { return Value{Kind: KindDatetime, DT: dt} }
func DateVal(d Date) Value        { return Value{Kind: KindDate, D: d} }
func TimeVal(t Time) Value        { return Value{Kind: KindTime, T: t} }
func ArrayVal(a []Value) Value    { return Value{Kind: KindArray, Arr: a} }
func TableVal(t *Table) Value     { return Value{Kind: KindTable, Table: t} }

// IsScalar reports whether the value is one of the non-container kinds.
func (v Value) IsScalar() bool {
	switch v.Kind {
	case KindArray, KindTable:
		return false
	default:
		return true
	}
}

// TypeName returns the human-readable type name used in error messages
// and schema mismatch reports.
func (v Value) TypeName() string { return v.Kind.String() }

// Equal reports deep structural equality, used by round-trip tests.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindInteger:
		return v.Int == other.Int
	case KindFloat:
		return v.Flt == other.Flt || (isNaN(v.Flt) && isNaN(other.Flt))
	case KindBoolean:
		return v.Bool == other.Bool
	case KindDatetime:
		return v.DT == other.DT
	case KindDate:
		return v.D == other.D
	case KindTime:
		return v.T == other.T
	case KindArray:
		if len(v.Arr) != len(other.Arr) {
			return false
		}
		for i := range v.Arr {
			if !v.Arr[i].Equal(other.Arr[i]) {
				return false
			}
		}
		return true
	case KindTable:
		return v.Table.Equal(other.Table)
	default:
		return false
	}
}

func isNaN(f float64) bool { return f != f }

func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return fmt.Sprintf("%q", v.Str)
	case KindInteger:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Flt)
	case KindBoolean:
		return fmt.Sprintf("%t", v.Bool)
	case KindDatetime:
		return v.DT.String()
	case KindDate:
		return v.D.String()
	case KindTime:
		return v.T.String()
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.Arr))
	case KindTable:
		return fmt.Sprintf("table[%d]", v.Table.Len())
	default:
		return "<invalid value>"
	}
}
