package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomlcore/tomlcore/parser"
	"github.com/tomlcore/tomlcore/value"
)

func TestTOMLRoundTripsScalars(t *testing.T) {
	tbl, errs := parser.Parse("name = \"tom\"\nage = 30\nactive = true\n")
	require.Empty(t, errs)

	out, err := TOML(tbl)
	require.NoError(t, err)

	reparsed, errs := parser.Parse(string(out))
	require.Empty(t, errs)
	assert.True(t, tbl.Equal(reparsed))
}

func TestTOMLEmitsNestedTableSections(t *testing.T) {
	tbl := value.NewTable()
	server := value.NewTable()
	server.Set("host", value.String("localhost"))
	tbl.Set("server", value.TableVal(server))

	out, err := TOML(tbl)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[server]")
	assert.Contains(t, string(out), "host = \"localhost\"")
}

func TestTOMLEmitsArrayOfTablesSections(t *testing.T) {
	fruit := value.ArrayVal([]value.Value{
		value.TableVal(tableWith("name", value.String("apple"))),
		value.TableVal(tableWith("name", value.String("banana"))),
	})
	tbl := value.NewTable()
	tbl.Set("fruit", fruit)

	out, err := TOML(tbl)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[[fruit]]")
	assert.Contains(t, string(out), "\"apple\"")
	assert.Contains(t, string(out), "\"banana\"")
}

func TestTOMLIndentsNestedKeysBySize(t *testing.T) {
	tbl := value.NewTable()
	server := value.NewTable()
	server.Set("host", value.String("localhost"))
	tbl.Set("server", value.TableVal(server))

	out, err := TOML(tbl, Indent(4))
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n    host = \"localhost\"\n")
}

func TestTOMLUseTabsIndentsWithOneTabPerLevel(t *testing.T) {
	tbl := value.NewTable()
	server := value.NewTable()
	server.Set("host", value.String("localhost"))
	tbl.Set("server", value.TableVal(server))

	out, err := TOML(tbl, UseTabs())
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n\thost = \"localhost\"\n")
}

func TestTOMLBlankLinesInsertsSeparatorBetweenSections(t *testing.T) {
	tbl := value.NewTable()
	a := value.NewTable()
	a.Set("x", value.Integer(1))
	b := value.NewTable()
	b.Set("y", value.Integer(2))
	tbl.Set("a", value.TableVal(a))
	tbl.Set("b", value.TableVal(b))

	withBlank, err := TOML(tbl, BlankLines())
	require.NoError(t, err)
	withoutBlank, err := TOML(tbl)
	require.NoError(t, err)

	assert.Contains(t, string(withBlank), "\n\n[b]")
	assert.NotContains(t, string(withoutBlank), "\n\n[b]")
}

func TestOptionsFromMapRejectsUnknownKey(t *testing.T) {
	_, err := OptionsFromMap(map[string]interface{}{"bogus": true})
	assert.Error(t, err)
}

func TestOptionsFromMapAppliesRecognizedKeys(t *testing.T) {
	opts, err := OptionsFromMap(map[string]interface{}{
		"indent_size": 4,
		"use_spaces":  false,
		"blank_lines": true,
		"sort_keys":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, Options{IndentSize: 4, UseSpaces: false, BlankLines: true, SortKeys: true}, opts)
}

func TestJSONRejectsNonFiniteFloat(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set("x", value.Float(nan()))

	_, err := JSON(tbl)
	assert.ErrorIs(t, err, ErrNonFiniteFloat)
}

func TestJSONEncodesScalars(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set("name", value.String("tom"))
	tbl.Set("age", value.Integer(30))

	out, err := JSON(tbl)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"tom","age":30}`, string(out))
}

func tableWith(key string, v value.Value) *value.Table {
	t := value.NewTable()
	t.Set(key, v)
	return t
}

func nan() float64 { var z float64; return z / z }
