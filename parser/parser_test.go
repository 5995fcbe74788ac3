package parser

import (
	"math"
	"testing"

	"github.com/tomlcore/tomlcore/errs"
	"github.com/tomlcore/tomlcore/value"
)

func mustParse(t *testing.T, src string) *value.Table {
	t.Helper()
	tbl, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors for %q: %v", src, errs)
	}
	return tbl
}

func TestParseSimpleKeyValue(t *testing.T) {
	tbl := mustParse(t, `name = "tom"`+"\n"+"age = 30\n")
	v, ok := tbl.Get("name")
	if !ok || v.Str != "tom" {
		t.Errorf("name = %v", v)
	}
	v, ok = tbl.Get("age")
	if !ok || v.Int != 30 {
		t.Errorf("age = %v", v)
	}
}

func TestParseDottedKeys(t *testing.T) {
	tbl := mustParse(t, "physical.color = \"orange\"\nphysical.shape = \"round\"\n")
	physical, ok := tbl.Get("physical")
	if !ok || physical.Kind != value.KindTable {
		t.Fatalf("physical = %v", physical)
	}
	color, ok := physical.Table.Get("color")
	if !ok || color.Str != "orange" {
		t.Errorf("color = %v", color)
	}
}

func TestParseTableHeader(t *testing.T) {
	tbl := mustParse(t, "[server]\nhost = \"localhost\"\nport = 8080\n")
	server, ok := tbl.Get("server")
	if !ok || server.Kind != value.KindTable {
		t.Fatalf("server = %v", server)
	}
	port, _ := server.Table.Get("port")
	if port.Int != 8080 {
		t.Errorf("port = %v", port)
	}
}

func TestParseNestedTableHeader(t *testing.T) {
	tbl := mustParse(t, "[a.b.c]\nx = 1\n")
	a, _ := tbl.Get("a")
	b, _ := a.Table.Get("b")
	c, _ := b.Table.Get("c")
	x, ok := c.Table.Get("x")
	if !ok || x.Int != 1 {
		t.Errorf("a.b.c.x = %v", x)
	}
}

func TestParseArrayOfTables(t *testing.T) {
	tbl := mustParse(t, "[[fruit]]\nname = \"apple\"\n\n[[fruit]]\nname = \"banana\"\n")
	fruit, ok := tbl.Get("fruit")
	if !ok || fruit.Kind != value.KindArray || len(fruit.Arr) != 2 {
		t.Fatalf("fruit = %v", fruit)
	}
	n0, _ := fruit.Arr[0].Table.Get("name")
	n1, _ := fruit.Arr[1].Table.Get("name")
	if n0.Str != "apple" || n1.Str != "banana" {
		t.Errorf("names = %v, %v", n0, n1)
	}
}

func TestParseInlineTable(t *testing.T) {
	tbl := mustParse(t, "point = { x = 1, y = 2 }\n")
	point, ok := tbl.Get("point")
	if !ok || point.Kind != value.KindTable {
		t.Fatalf("point = %v", point)
	}
	x, _ := point.Table.Get("x")
	if x.Int != 1 {
		t.Errorf("x = %v", x)
	}
}

func TestParseArray(t *testing.T) {
	tbl := mustParse(t, "nums = [1, 2, 3]\n")
	nums, ok := tbl.Get("nums")
	if !ok || len(nums.Arr) != 3 {
		t.Fatalf("nums = %v", nums)
	}
}

func TestParseDuplicateKeyIsError(t *testing.T) {
	_, errs := Parse("a = 1\na = 2\n")
	if len(errs) == 0 {
		t.Fatal("expected a duplicate key error")
	}
}

func TestParseDuplicateTableHeaderIsError(t *testing.T) {
	_, errs := Parse("[a]\nx = 1\n[a]\ny = 2\n")
	if len(errs) == 0 {
		t.Fatal("expected a duplicate table error")
	}
}

func TestParseInlineTableRejectsNewline(t *testing.T) {
	_, errs := Parse("point = { x = 1,\ny = 2 }\n")
	if len(errs) == 0 {
		t.Fatal("expected a parse error for a newline inside an inline table")
	}
}

func TestParseDatetimeWithOffset(t *testing.T) {
	tbl := mustParse(t, "ts = 1979-05-27T07:32:00-07:00\n")
	ts, ok := tbl.Get("ts")
	if !ok || ts.Kind != value.KindDatetime {
		t.Fatalf("ts = %v", ts)
	}
	if !ts.DT.OffsetSet || ts.DT.OffsetMinute != -420 {
		t.Errorf("offset = %+v", ts.DT)
	}
}

func TestParseLocalDatetimeHasNoOffset(t *testing.T) {
	tbl := mustParse(t, "ts = 1979-05-27T07:32:00\n")
	ts, _ := tbl.Get("ts")
	if ts.DT.OffsetSet {
		t.Errorf("expected no offset, got %+v", ts.DT)
	}
}

func TestParseBareNanSucceeds(t *testing.T) {
	tbl := mustParse(t, "x = nan\n")
	x, ok := tbl.Get("x")
	if !ok || x.Kind != value.KindFloat || !math.IsNaN(x.Flt) {
		t.Fatalf("x = %v", x)
	}
}

func TestParseRejectsLeadingZero(t *testing.T) {
	_, errs := Parse("num = 007\n")
	if len(errs) == 0 {
		t.Fatal("expected an error for a leading zero")
	}
}

func TestParseRejectsMisplacedUnderscore(t *testing.T) {
	_, errs := Parse("num = 1__2\n")
	if len(errs) == 0 {
		t.Fatal("expected an error for a misplaced underscore")
	}
}

func TestParseUnterminatedStringHasUnterminatedStringKind(t *testing.T) {
	_, parseErrs := Parse("name = \"unterminated\n")
	if len(parseErrs) == 0 {
		t.Fatal("expected an error")
	}
	if parseErrs[0].Kind != errs.UnterminatedString {
		t.Errorf("got kind %v, want UnterminatedString", parseErrs[0].Kind)
	}
}

func TestParseInvalidEscapeHasInvalidEscapeKind(t *testing.T) {
	_, parseErrs := Parse("name = \"bad \\q escape\"\n")
	if len(parseErrs) == 0 {
		t.Fatal("expected an error")
	}
	if parseErrs[0].Kind != errs.InvalidEscape {
		t.Errorf("got kind %v, want InvalidEscape", parseErrs[0].Kind)
	}
}
