package schema

import (
	"reflect"
	"strings"

	"github.com/tomlcore/tomlcore/value"
)

// Generate derives a Schema from a Go struct type by walking its
// exported fields and their `toml` tags, the same reflect-driven
// traversal package binding uses to bind values the other direction.
// A field is Required unless it is a pointer type or tagged
// `,omitempty`. Generate does not infer Constraints — those express
// domain rules no struct tag can carry, and are added by the caller
// after generation.
func Generate(sample interface{}) *Schema {
	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return generateStruct(t)
}

func generateStruct(t reflect.Type) *Schema {
	var fields []FieldSchema
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		name, omitempty := tagName(sf)
		if name == "-" {
			continue
		}
		kind, nested := kindOf(sf.Type)
		fields = append(fields, FieldSchema{
			Name:     name,
			Kind:     kind,
			Required: !omitempty && sf.Type.Kind() != reflect.Ptr,
			Nested:   nested,
		})
	}
	return NewSchema(fields, false)
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

func kindOf(t reflect.Type) (value.Kind, *Schema) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return value.KindString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.KindInteger, nil
	case reflect.Float32, reflect.Float64:
		return value.KindFloat, nil
	case reflect.Bool:
		return value.KindBoolean, nil
	case reflect.Slice, reflect.Array:
		return value.KindArray, nil
	case reflect.Struct:
		if t == reflect.TypeOf(value.Datetime{}) {
			return value.KindDatetime, nil
		}
		if t == reflect.TypeOf(value.Date{}) {
			return value.KindDate, nil
		}
		if t == reflect.TypeOf(value.Time{}) {
			return value.KindTime, nil
		}
		return value.KindTable, generateStruct(t)
	default:
		return value.KindString, nil
	}
}
