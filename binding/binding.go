// Package binding converts between a value.Table and a host Go struct
// via reflection, the way internal/orm/tracking/change_tracker.go in
// this corpus's Conduit compiler walks reflect.Value trees to deep-copy
// ORM record state — here applied to TOML's value tree instead of a
// database row.
package binding

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tomlcore/tomlcore/value"
)

// MissingFieldError reports a required struct field with no matching
// table key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("binding: missing required field %q", e.Field)
}

// TypeMismatchError reports a table value whose kind doesn't match the
// destination struct field's Go type.
type TypeMismatchError struct {
	Field    string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("binding: field %q expected %s, got %s", e.Field, e.Expected, e.Got)
}

// Bind populates dst, a pointer to a struct, from t. On any error dst is
// left in a partially-written state but the caller should discard it —
// there is no partial value returned, which plays the role spec.md's
// "release partially-built record on failure" requirement describes in
// a non-GC host language.
func Bind(dst interface{}, t *value.Table) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("binding: Bind requires a pointer to a struct, got %T", dst)
	}
	return bindStruct(rv.Elem(), t, "")
}

func bindStruct(rv reflect.Value, t *value.Table, path string) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name, omitempty := tagName(sf)
		if name == "-" {
			continue
		}
		fieldPath := joinPath(path, name)
		fv := rv.Field(i)

		v, present := t.Get(name)
		if !present {
			if fv.Kind() == reflect.Ptr || omitempty {
				continue
			}
			return &MissingFieldError{Field: fieldPath}
		}
		if err := bindValue(fv, v, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func bindValue(fv reflect.Value, v value.Value, path string) error {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return bindValue(fv.Elem(), v, path)
	}

	switch fv.Kind() {
	case reflect.String:
		if v.Kind != value.KindString {
			return &TypeMismatchError{Field: path, Expected: "string", Got: v.TypeName()}
		}
		fv.SetString(v.Str)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Kind != value.KindInteger {
			return &TypeMismatchError{Field: path, Expected: "integer", Got: v.TypeName()}
		}
		fv.SetInt(v.Int)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Kind != value.KindInteger {
			return &TypeMismatchError{Field: path, Expected: "integer", Got: v.TypeName()}
		}
		fv.SetUint(uint64(v.Int))
	case reflect.Float32, reflect.Float64:
		switch v.Kind {
		case value.KindFloat:
			fv.SetFloat(v.Flt)
		case value.KindInteger:
			fv.SetFloat(float64(v.Int))
		default:
			return &TypeMismatchError{Field: path, Expected: "float", Got: v.TypeName()}
		}
	case reflect.Bool:
		if v.Kind != value.KindBoolean {
			return &TypeMismatchError{Field: path, Expected: "boolean", Got: v.TypeName()}
		}
		fv.SetBool(v.Bool)
	case reflect.Slice:
		if v.Kind != value.KindArray {
			return &TypeMismatchError{Field: path, Expected: "array", Got: v.TypeName()}
		}
		out := reflect.MakeSlice(fv.Type(), len(v.Arr), len(v.Arr))
		for i, elem := range v.Arr {
			if err := bindValue(out.Index(i), elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		fv.Set(out)
	case reflect.Struct:
		switch fv.Type() {
		case reflect.TypeOf(value.Datetime{}):
			if v.Kind != value.KindDatetime {
				return &TypeMismatchError{Field: path, Expected: "datetime", Got: v.TypeName()}
			}
			fv.Set(reflect.ValueOf(v.DT))
		case reflect.TypeOf(value.Date{}):
			if v.Kind != value.KindDate {
				return &TypeMismatchError{Field: path, Expected: "date", Got: v.TypeName()}
			}
			fv.Set(reflect.ValueOf(v.D))
		case reflect.TypeOf(value.Time{}):
			if v.Kind != value.KindTime {
				return &TypeMismatchError{Field: path, Expected: "time", Got: v.TypeName()}
			}
			fv.Set(reflect.ValueOf(v.T))
		default:
			if v.Kind != value.KindTable {
				return &TypeMismatchError{Field: path, Expected: "table", Got: v.TypeName()}
			}
			return bindStruct(fv, v.Table, path)
		}
	default:
		return fmt.Errorf("binding: unsupported destination field kind %s at %s", fv.Kind(), path)
	}
	return nil
}

func tagName(sf reflect.StructField) (name string, omitempty bool) {
	tag := sf.Tag.Get("toml")
	if tag == "" {
		return sf.Name, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = sf.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
