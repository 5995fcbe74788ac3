package lexer

import (
	"testing"

	"github.com/tomlcore/tomlcore/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScanBasicKeyValue(t *testing.T) {
	toks, errs := New(`name = "tom"` + "\n").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Type{token.Identifier, token.Equals, token.String, token.Newline, token.EOF}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if toks[2].Literal.(string) != "tom" {
		t.Errorf("string literal = %q, want %q", toks[2].Literal, "tom")
	}
}

func TestScanNumbers(t *testing.T) {
	cases := []struct {
		src  string
		typ  token.Type
	}{
		{"42", token.Integer},
		{"-17", token.Integer},
		{"3.14", token.Float},
		{"5e+22", token.Float},
		{"1_000_000", token.Integer},
		{"+inf", token.Float},
		{"-inf", token.Float},
		{"inf", token.Float},
		{"+nan", token.Float},
		{"nan", token.Float},
	}
	for _, c := range cases {
		toks, errs := New(c.src).Scan()
		if len(errs) != 0 {
			t.Errorf("%q: unexpected errors: %v", c.src, errs)
			continue
		}
		if len(toks) < 1 || toks[0].Type != c.typ {
			t.Errorf("%q: got %v, want %v", c.src, toks[0].Type, c.typ)
		}
	}
}

func TestScanRadixIntegersAreRejected(t *testing.T) {
	for _, src := range []string{"0xDEADBEEF", "0o755", "0b1010"} {
		_, errs := New(src).Scan()
		if len(errs) == 0 {
			t.Errorf("%q: expected a lexical error, got none", src)
			continue
		}
		if errs[0].Kind != InvalidValue {
			t.Errorf("%q: got kind %v, want InvalidValue", src, errs[0].Kind)
		}
	}
}

func TestScanLeadingZeroIsRejected(t *testing.T) {
	_, errs := New("007").Scan()
	if len(errs) == 0 {
		t.Fatal("expected a lexical error for a leading zero")
	}
	if errs[0].Kind != InvalidValue {
		t.Errorf("got kind %v, want InvalidValue", errs[0].Kind)
	}
}

func TestScanMisplacedUnderscoresAreRejected(t *testing.T) {
	for _, src := range []string{"1__2", "1_", "1_.5", "1e_5"} {
		_, errs := New(src).Scan()
		if len(errs) == 0 {
			t.Errorf("%q: expected a lexical error, got none", src)
			continue
		}
		if errs[0].Kind != InvalidValue {
			t.Errorf("%q: got kind %v, want InvalidValue", src, errs[0].Kind)
		}
	}
}

func TestScanTableHeaders(t *testing.T) {
	toks, errs := New("[[a.b]]\n").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Type{token.LeftDoubleBracket, token.Identifier, token.Dot, token.Identifier, token.RightDoubleBracket, token.Newline, token.EOF}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanMultilineBasicString(t *testing.T) {
	toks, errs := New("\"\"\"\nhello\nworld\"\"\"").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != token.String {
		t.Fatalf("got %v, want STRING", toks[0].Type)
	}
	if toks[0].Literal.(string) != "hello\nworld" {
		t.Errorf("literal = %q", toks[0].Literal)
	}
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	_, errs := New(`"unterminated`).Scan()
	if len(errs) == 0 {
		t.Fatal("expected a lexical error for an unterminated string")
	}
}

func TestScanDateAndDatetime(t *testing.T) {
	toks, errs := New("1979-05-27T07:32:00Z\n1979-05-27\n07:32:00").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != token.Datetime {
		t.Errorf("got %v, want DATETIME", toks[0].Type)
	}
}
