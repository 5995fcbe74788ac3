package token

import "testing"

func TestTokenString(t *testing.T) {
	tok := Token{Type: Identifier, Lexeme: "host", Literal: "host", Line: 2, Column: 1}
	got := tok.String()
	want := "IDENTIFIER(host) [2:1]"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTypeStringCoversAllKinds(t *testing.T) {
	for typ := Illegal; typ <= RightBrace; typ++ {
		if typ.String() == "UNKNOWN" {
			t.Errorf("Type %d has no String() case", typ)
		}
	}
}
