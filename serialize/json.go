package serialize

import (
	"errors"
	"math"

	"github.com/segmentio/encoding/json"

	"github.com/tomlcore/tomlcore/value"
)

// ErrNonFiniteFloat is returned by JSON/JSONPretty when the table
// contains a NaN or Infinity float. JSON has no literal for non-finite
// numbers; rather than silently emit `null` or an invalid bare `nan`
// token, this module treats it as a hard encoding error so callers
// notice the lossy conversion instead of shipping corrupt JSON.
var ErrNonFiniteFloat = errors.New("serialize: cannot represent non-finite float as JSON")

// JSON renders t as compact JSON using segmentio/encoding/json, which
// this module uses in place of encoding/json for its faster, lower-
// allocation Marshal path on the map-shaped trees a parsed TOML
// document produces.
func JSON(t *value.Table) ([]byte, error) {
	m, err := tableToJSON(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// JSONPretty renders t as indented JSON, indent spaces per level.
func JSONPretty(t *value.Table, indent int) ([]byte, error) {
	m, err := tableToJSON(t)
	if err != nil {
		return nil, err
	}
	prefix := ""
	pad := ""
	for i := 0; i < indent; i++ {
		pad += " "
	}
	return json.MarshalIndent(m, prefix, pad)
}

func tableToJSON(t *value.Table) (map[string]interface{}, error) {
	out := make(map[string]interface{}, t.Len())
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		jv, err := valueToJSON(v)
		if err != nil {
			return nil, err
		}
		out[k] = jv
	}
	return out, nil
}

func valueToJSON(v value.Value) (interface{}, error) {
	switch v.Kind {
	case value.KindString:
		return v.Str, nil
	case value.KindInteger:
		return v.Int, nil
	case value.KindFloat:
		if math.IsNaN(v.Flt) || math.IsInf(v.Flt, 0) {
			return nil, ErrNonFiniteFloat
		}
		return v.Flt, nil
	case value.KindBoolean:
		return v.Bool, nil
	case value.KindDatetime:
		return v.DT.String(), nil
	case value.KindDate:
		return v.D.String(), nil
	case value.KindTime:
		return v.T.String(), nil
	case value.KindArray:
		arr := make([]interface{}, len(v.Arr))
		for i, e := range v.Arr {
			jv, err := valueToJSON(e)
			if err != nil {
				return nil, err
			}
			arr[i] = jv
		}
		return arr, nil
	case value.KindTable:
		return tableToJSON(v.Table)
	default:
		return nil, errors.New("serialize: unknown value kind")
	}
}
