// Package schema implements declarative, non-mutating validation of a
// value.Table against a declared shape, in the style of
// internal/orm/validation/validators.go in this corpus's Conduit
// compiler: one Validator per constraint kind, accumulating every
// violation instead of stopping at the first.
package schema

import (
	"fmt"

	"github.com/tomlcore/tomlcore/value"
)

// FieldSchema describes one expected field of a table.
type FieldSchema struct {
	Name     string
	Kind     value.Kind
	Required bool
	Constraints []Constraint
	Nested   *Schema // populated when Kind == value.KindTable
}

// Schema describes the expected shape of a table.
type Schema struct {
	Fields      []FieldSchema
	AllowUnknown bool

	byName map[string]FieldSchema
}

// NewSchema builds a Schema from its fields, indexing them by name for
// O(1) "is this field declared" checks during validation — the hash-set
// approach chosen over a per-field linear scan.
func NewSchema(fields []FieldSchema, allowUnknown bool) *Schema {
	s := &Schema{Fields: fields, AllowUnknown: allowUnknown, byName: make(map[string]FieldSchema, len(fields))}
	for _, f := range fields {
		s.byName[f.Name] = f
	}
	return s
}

// Result accumulates every violation found by Validate. It is never
// used to short-circuit or mutate the table under validation.
type Result struct {
	Errors []string
}

// OK reports whether validation produced no violations.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Validate checks t against s, collecting every violation rather than
// returning on the first.
func Validate(s *Schema, t *value.Table) Result {
	var res Result
	validateTable(s, t, "", &res)
	return res
}

func validateTable(s *Schema, t *value.Table, prefix string, res *Result) {
	for _, f := range s.Fields {
		path := joinPath(prefix, f.Name)
		v, present := t.Get(f.Name)
		if !present {
			if f.Required {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: required field is missing", path))
			}
			continue
		}
		if f.Kind != value.KindAny && v.Kind != f.Kind {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: expected %s, got %s", path, f.Kind, v.Kind))
			continue
		}
		for _, c := range f.Constraints {
			if msg, ok := c.Check(v); !ok {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", path, msg))
			}
		}
		if f.Kind == value.KindTable && f.Nested != nil {
			validateTable(f.Nested, v.Table, path, res)
		}
	}

	if !s.AllowUnknown {
		for _, k := range t.Keys() {
			if _, declared := s.byName[k]; !declared {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown field", joinPath(prefix, k)))
			}
		}
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
