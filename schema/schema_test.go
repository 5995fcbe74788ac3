package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomlcore/tomlcore/parser"
	"github.com/tomlcore/tomlcore/value"
)

func TestValidateRequiredFieldMissing(t *testing.T) {
	s := NewSchema([]FieldSchema{
		{Name: "name", Kind: value.KindString, Required: true},
	}, false)
	tbl, errs := parser.Parse("age = 30\n")
	require.Empty(t, errs)

	res := Validate(s, tbl)
	assert.False(t, res.OK())
	assert.Contains(t, res.Errors[0], "name")
}

func TestValidateTypeMismatch(t *testing.T) {
	s := NewSchema([]FieldSchema{
		{Name: "age", Kind: value.KindInteger, Required: true},
	}, false)
	tbl, errs := parser.Parse("age = \"old\"\n")
	require.Empty(t, errs)

	res := Validate(s, tbl)
	assert.False(t, res.OK())
}

func TestValidateUnknownFieldRejected(t *testing.T) {
	s := NewSchema([]FieldSchema{{Name: "name", Kind: value.KindString}}, false)
	tbl, errs := parser.Parse("name = \"tom\"\nextra = 1\n")
	require.Empty(t, errs)

	res := Validate(s, tbl)
	assert.False(t, res.OK())
}

func TestValidateAllowUnknownPermitsExtraFields(t *testing.T) {
	s := NewSchema([]FieldSchema{{Name: "name", Kind: value.KindString}}, true)
	tbl, errs := parser.Parse("name = \"tom\"\nextra = 1\n")
	require.Empty(t, errs)

	res := Validate(s, tbl)
	assert.True(t, res.OK())
}

func TestValidateConstraints(t *testing.T) {
	s := NewSchema([]FieldSchema{
		{Name: "port", Kind: value.KindInteger, Constraints: []Constraint{MinValue(1), MaxValue(65535)}},
	}, false)
	tbl, errs := parser.Parse("port = 99999\n")
	require.Empty(t, errs)

	res := Validate(s, tbl)
	assert.False(t, res.OK())
}

func TestValidateKindAnyAcceptsAnyValueKind(t *testing.T) {
	s := NewSchema([]FieldSchema{{Name: "payload", Kind: value.KindAny, Required: true}}, false)

	tbl, errs := parser.Parse("payload = [1, 2, 3]\n")
	require.Empty(t, errs)
	assert.True(t, Validate(s, tbl).OK())

	tbl, errs = parser.Parse("payload = \"anything\"\n")
	require.Empty(t, errs)
	assert.True(t, Validate(s, tbl).OK())
}

func TestGenerateSchemaFromStruct(t *testing.T) {
	type Server struct {
		Host string `toml:"host"`
		Port int    `toml:"port"`
	}
	s := Generate(Server{})
	assert.Len(t, s.Fields, 2)
}
