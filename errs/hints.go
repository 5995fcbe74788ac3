package errs

import (
	"fmt"
	"strings"
)

// HintForUnexpectedToken derives the fixed-phrase hint the parser
// attaches to an UnexpectedToken diagnostic, the same dispatch-by-
// expectation idea as suggestFix in compiler/errors/suggestions.go but
// collapsed to the handful of expected/got pairs TOML's grammar
// actually produces. got is normalized to lowercase before comparison
// since it always arrives as token.Type.String()'s uppercase form.
func HintForUnexpectedToken(expected, got string) string {
	got = strings.ToLower(got)
	switch {
	case expected == "=" && got == "newline":
		return "a key must be followed by '=' before its value"
	case expected == "]" && got == "newline":
		return "table headers must be closed with ']' on the same line"
	case expected == "]]" && got == "newline":
		return "array-of-tables headers must be closed with ']]' on the same line"
	case expected == "key":
		return "expected a bare key, quoted key, or dotted key"
	case expected == "value":
		return "expected a string, number, boolean, date, array, or inline table"
	case expected == "}":
		return "inline tables must be closed with '}' on the same line they were opened"
	default:
		return fmt.Sprintf("expected %s, found %s", expected, got)
	}
}

// HintForDuplicateKey explains why redefining key failed.
func HintForDuplicateKey(key string) string {
	return fmt.Sprintf("key %q is already defined in this table", key)
}

// HintForNumberFormat explains a malformed numeric literal.
func HintForNumberFormat(lexeme string) string {
	return fmt.Sprintf("%q is not a valid TOML integer or float literal", lexeme)
}
