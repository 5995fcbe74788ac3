package toml

import (
	"github.com/tomlcore/tomlcore/binding"
	"github.com/tomlcore/tomlcore/schema"
	"github.com/tomlcore/tomlcore/serialize"
	"github.com/tomlcore/tomlcore/value"
)

// Stringify renders t back out as TOML text.
func Stringify(t *value.Table, opts ...serialize.Option) ([]byte, error) {
	return serialize.TOML(t, opts...)
}

// ToJSON renders t as compact JSON.
func ToJSON(t *value.Table) ([]byte, error) {
	return serialize.JSON(t)
}

// ToJSONPretty renders t as indented JSON.
func ToJSONPretty(t *value.Table, indent int) ([]byte, error) {
	return serialize.JSONPretty(t, indent)
}

// Validate checks t against s, accumulating every violation.
func Validate(s *schema.Schema, t *value.Table) schema.Result {
	return schema.Validate(s, t)
}

// ParseInto parses source and binds the result directly into dst, a
// pointer to a struct, in one call.
func ParseInto(dst interface{}, source []byte) error {
	t, err := Parse(source)
	if err != nil {
		return err
	}
	return binding.Bind(dst, t)
}
