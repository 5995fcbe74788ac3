// Package toml is the public façade for this module: parsing,
// navigating, serializing, validating, and binding TOML 1.0.0
// documents. It wires together value, lexer, parser, errs, serialize,
// schema, and binding behind the small surface spec.md §6 names.
package toml

import (
	"errors"
	"strings"

	"github.com/tomlcore/tomlcore/errs"
	"github.com/tomlcore/tomlcore/parser"
	"github.com/tomlcore/tomlcore/value"
)

// Parse parses source and returns the resulting table, or the first
// diagnostic as a plain error if parsing failed. Callers that need the
// full structured diagnostic (source context, hint, every error rather
// than just the first) should call ParseWithContext instead.
func Parse(source []byte) (*value.Table, error) {
	t, diags := parser.Parse(string(source))
	if len(diags) > 0 {
		return nil, errors.New(diags[0].Error())
	}
	return t, nil
}

// ParseWithContext parses source and returns every diagnostic produced,
// each carrying a rendered source window and, where applicable, a hint.
func ParseWithContext(source []byte) (*value.Table, []*errs.Error) {
	return parser.Parse(string(source))
}

// GetString returns the string at key in t's direct keys.
func GetString(t *value.Table, key string) (string, bool) {
	v, ok := t.Get(key)
	if !ok || v.Kind != value.KindString {
		return "", false
	}
	return v.Str, true
}

// GetInt returns the integer at key in t's direct keys.
func GetInt(t *value.Table, key string) (int64, bool) {
	v, ok := t.Get(key)
	if !ok || v.Kind != value.KindInteger {
		return 0, false
	}
	return v.Int, true
}

// GetFloat returns the float at key in t's direct keys.
func GetFloat(t *value.Table, key string) (float64, bool) {
	v, ok := t.Get(key)
	if !ok || v.Kind != value.KindFloat {
		return 0, false
	}
	return v.Flt, true
}

// GetBool returns the boolean at key in t's direct keys.
func GetBool(t *value.Table, key string) (bool, bool) {
	v, ok := t.Get(key)
	if !ok || v.Kind != value.KindBoolean {
		return false, false
	}
	return v.Bool, true
}

// GetTable returns the sub-table at key in t's direct keys.
func GetTable(t *value.Table, key string) (*value.Table, bool) {
	v, ok := t.Get(key)
	if !ok || v.Kind != value.KindTable {
		return nil, false
	}
	return v.Table, true
}

// GetArray returns the array at key in t's direct keys.
func GetArray(t *value.Table, key string) ([]value.Value, bool) {
	v, ok := t.Get(key)
	if !ok || v.Kind != value.KindArray {
		return nil, false
	}
	return v.Arr, true
}

// GetDatetime returns the datetime at key in t's direct keys.
func GetDatetime(t *value.Table, key string) (value.Datetime, bool) {
	v, ok := t.Get(key)
	if !ok || v.Kind != value.KindDatetime {
		return value.Datetime{}, false
	}
	return v.DT, true
}

// GetPath resolves a dotted path (e.g. "server.listen.port") against t,
// descending through sub-tables and returning the leaf value. There is
// no allocator involved in the split: strings.Cut in a loop needs no
// intermediate buffer.
func GetPath(t *value.Table, path string) (value.Value, bool) {
	cur := t
	rest := path
	for {
		seg, tail, more := strings.Cut(rest, ".")
		v, ok := cur.Get(seg)
		if !ok {
			return value.Value{}, false
		}
		if !more {
			return v, true
		}
		if v.Kind != value.KindTable {
			return value.Value{}, false
		}
		cur = v.Table
		rest = tail
	}
}
