package toml

import "testing"

const sample = `
title = "example"

[owner]
name = "tom"

[database]
ports = [8001, 8002]
enabled = true
`

func TestParseAndGetters(t *testing.T) {
	tbl, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	title, ok := GetString(tbl, "title")
	if !ok || title != "example" {
		t.Errorf("title = %q, %v", title, ok)
	}
	owner, ok := GetTable(tbl, "owner")
	if !ok {
		t.Fatal("expected owner table")
	}
	name, ok := GetString(owner, "name")
	if !ok || name != "tom" {
		t.Errorf("owner.name = %q", name)
	}
}

func TestGetPathDescendsDottedPath(t *testing.T) {
	tbl, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := GetPath(tbl, "owner.name")
	if !ok || v.Str != "tom" {
		t.Errorf("owner.name via GetPath = %v, %v", v, ok)
	}
}

func TestStringifyThenReparse(t *testing.T) {
	tbl, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Stringify(tbl)
	if err != nil {
		t.Fatalf("Stringify: %v", err)
	}
	tbl2, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !tbl.Equal(tbl2) {
		t.Error("expected round-trip to be value-equal")
	}
}

func TestParseIntoStruct(t *testing.T) {
	type Owner struct {
		Name string `toml:"name"`
	}
	type Doc struct {
		Title string `toml:"title"`
		Owner Owner  `toml:"owner"`
	}
	var d Doc
	if err := ParseInto(&d, []byte(sample)); err != nil {
		t.Fatalf("ParseInto: %v", err)
	}
	if d.Title != "example" || d.Owner.Name != "tom" {
		t.Errorf("d = %+v", d)
	}
}

func TestParseWithContextReturnsDiagnostics(t *testing.T) {
	_, diags := ParseWithContext([]byte("a = 1\na = 2\n"))
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}
