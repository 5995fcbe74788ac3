package binding

import (
	"fmt"
	"reflect"

	"github.com/tomlcore/tomlcore/value"
)

// Unbind is the reverse of Bind: it walks src, a struct or pointer to
// one, and produces the equivalent value.Table. A nil pointer field is
// omitted entirely rather than encoded as some sentinel "null" value —
// TOML has no null, so an optional field's absence IS its zero state.
func Unbind(src interface{}) (*value.Table, error) {
	rv := reflect.ValueOf(src)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return value.NewTable(), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("binding: Unbind requires a struct or pointer to one, got %T", src)
	}
	return unbindStruct(rv)
}

func unbindStruct(rv reflect.Value) (*value.Table, error) {
	rt := rv.Type()
	t := value.NewTable()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name, omitempty := tagName(sf)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Ptr && fv.IsNil() {
			continue
		}
		if omitempty && fv.IsZero() {
			continue
		}
		v, err := unbindValue(fv)
		if err != nil {
			return nil, err
		}
		t.Set(name, v)
	}
	return t, nil
}

func unbindValue(fv reflect.Value) (value.Value, error) {
	if fv.Kind() == reflect.Ptr {
		fv = fv.Elem()
	}
	switch fv.Kind() {
	case reflect.String:
		return value.String(fv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Integer(fv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Integer(int64(fv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.Float(fv.Float()), nil
	case reflect.Bool:
		return value.Boolean(fv.Bool()), nil
	case reflect.Slice, reflect.Array:
		elems := make([]value.Value, fv.Len())
		for i := 0; i < fv.Len(); i++ {
			v, err := unbindValue(fv.Index(i))
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.ArrayVal(elems), nil
	case reflect.Struct:
		switch fv.Type() {
		case reflect.TypeOf(value.Datetime{}):
			return value.DatetimeVal(fv.Interface().(value.Datetime)), nil
		case reflect.TypeOf(value.Date{}):
			return value.DateVal(fv.Interface().(value.Date)), nil
		case reflect.TypeOf(value.Time{}):
			return value.TimeVal(fv.Interface().(value.Time)), nil
		default:
			t, err := unbindStruct(fv)
			if err != nil {
				return value.Value{}, err
			}
			return value.TableVal(t), nil
		}
	default:
		return value.Value{}, fmt.Errorf("binding: unsupported source field kind %s", fv.Kind())
	}
}
