package lexer

import (
	"strconv"
	"strings"

	"github.com/tomlcore/tomlcore/token"
)

// scanNumberOrDatetime handles every token that can start with a digit
// or a leading sign: integers, floats (including inf/nan), and
// date/time literals, disambiguated by lookahead the way TOML's
// grammar requires (a bare digit run followed by '-' is a date,
// followed by ':' is a time, otherwise a number). TOML's hex/octal/
// binary integer prefixes are recognized only to be rejected.
func (l *Lexer) scanNumberOrDatetime(first rune) {
	switch first {
	case '+', '-':
		if l.peek() == 'i' {
			l.consumeWord("inf")
			l.addToken(token.Float, signedInf(first), l.lexeme())
			return
		}
		if l.peek() == 'n' {
			l.consumeWord("nan")
			l.addToken(token.Float, nan(), l.lexeme())
			return
		}
	case 'i':
		l.consumeWord("nf") // "i" already consumed as first
		l.addToken(token.Float, posInf(), l.lexeme())
		return
	case 'n':
		l.consumeWord("an") // "n" already consumed as first
		l.addToken(token.Float, nan(), l.lexeme())
		return
	}

	if first == '0' && (l.peek() == 'x' || l.peek() == 'o' || l.peek() == 'b') {
		l.rejectRadixInteger()
		return
	}

	// Collect the leading digit run; up to 4 digits followed by '-' and
	// 2 more digits signals a date, which takes over entirely.
	digitsStart := l.current - 1
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	digitCount := l.current - digitsStart

	if digitCount == 4 && l.peek() == '-' && isDigit(l.peekAt(1)) {
		l.scanDateOrDatetime()
		return
	}
	if digitCount == 2 && l.peek() == ':' && first != '+' && first != '-' {
		l.scanLocalTimeFrom()
		return
	}

	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	lexeme := l.lexeme()
	if msg := validateNumberFormat(lexeme); msg != "" {
		l.addError(InvalidValue, msg)
		l.addToken(token.Illegal, nil, lexeme)
		return
	}
	clean := stripUnderscores(lexeme)
	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			l.addError(NumberFormat, "invalid float literal "+strconv.Quote(lexeme))
			l.addToken(token.Illegal, nil, lexeme)
			return
		}
		l.addToken(token.Float, f, lexeme)
		return
	}
	base := 10
	n, err := strconv.ParseInt(clean, base, 64)
	if err != nil {
		l.addError(NumberFormat, "invalid integer literal "+strconv.Quote(lexeme))
		l.addToken(token.Illegal, nil, lexeme)
		return
	}
	l.addToken(token.Integer, n, lexeme)
}

// validateNumberFormat applies TOML's underscore-placement and
// leading-zero rules to a scanned integer or float lexeme (sign
// included), returning a descriptive message if either is violated, or
// "" if the lexeme is well-formed.
func validateNumberFormat(lexeme string) string {
	body := lexeme
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}

	intPart := body
	fracPart := ""
	if i := strings.IndexByte(intPart, '.'); i >= 0 {
		fracPart = intPart[i+1:]
		intPart = intPart[:i]
	}

	expPart := ""
	expSearch := fracPart
	if expSearch == "" {
		expSearch = intPart
	}
	if j := strings.IndexAny(expSearch, "eE"); j >= 0 {
		expPart = expSearch[j+1:]
		if len(expPart) > 0 && (expPart[0] == '+' || expPart[0] == '-') {
			expPart = expPart[1:]
		}
		if fracPart == "" {
			intPart = expSearch[:j]
		} else {
			fracPart = expSearch[:j]
		}
	}

	if !validDigitGroup(intPart) || (fracPart != "" && !validDigitGroup(fracPart)) || (expPart != "" && !validDigitGroup(expPart)) {
		return "invalid underscore placement in numeric literal " + strconv.Quote(lexeme)
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return "leading zero in numeric literal " + strconv.Quote(lexeme)
	}
	return ""
}

// validDigitGroup reports whether a run of digits-and-underscores has
// no leading, trailing, or consecutive underscores.
func validDigitGroup(s string) bool {
	if s == "" || s[0] == '_' || s[len(s)-1] == '_' {
		return false
	}
	return !strings.Contains(s, "__")
}

// consumeWord advances past exactly the given, not-yet-consumed runes;
// callers pass only the portion of the target word still unconsumed.
func (l *Lexer) consumeWord(remaining string) {
	for i := 0; i < len(remaining); i++ {
		l.advance()
	}
}

func signedInf(sign rune) float64 {
	if sign == '-' {
		return negInf()
	}
	return posInf()
}

func posInf() float64 { var z float64; return 1 / z }
func negInf() float64 { var z float64; return -1 / z }
func nan() float64     { var z float64; return z / z }

// rejectRadixInteger consumes a 0x/0o/0b-prefixed digit run and reports
// it as invalid: hex/octal/binary integer literals are explicitly
// disallowed, not merely an alternate radix to parse.
func (l *Lexer) rejectRadixInteger() {
	l.advance() // consume x/o/b
	for isHexDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	lexeme := l.lexeme()
	l.addError(InvalidValue, "hex/octal/binary integer literals are not supported: "+strconv.Quote(lexeme))
	l.addToken(token.Illegal, nil, lexeme)
}

func (l *Lexer) scanDateOrDatetime() {
	// Already consumed the 4 year digits; consume "-MM-DD".
	l.advance() // '-'
	for isDigit(l.peek()) {
		l.advance()
	}
	l.advance() // '-'
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == 'T' || l.peek() == 't' || (l.peek() == ' ' && isDigit(l.peekAt(1))) {
		l.advance() // T or space separator
		for isDigit(l.peek()) {
			l.advance()
		}
		l.advance() // ':'
		for isDigit(l.peek()) {
			l.advance()
		}
		l.advance() // ':'
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == '.' {
			l.advance()
			for isDigit(l.peek()) {
				l.advance()
			}
		}
		if l.peek() == 'Z' || l.peek() == 'z' {
			l.advance()
		} else if l.peek() == '+' || l.peek() == '-' {
			l.advance()
			for isDigit(l.peek()) {
				l.advance()
			}
			l.advance() // ':'
			for isDigit(l.peek()) {
				l.advance()
			}
		}
		lexeme := l.lexeme()
		l.addToken(token.Datetime, lexeme, lexeme)
		return
	}

	lexeme := l.lexeme()
	l.addToken(token.LocalDate, lexeme, lexeme)
}

func (l *Lexer) scanLocalTimeFrom() {
	l.advance() // ':'
	for isDigit(l.peek()) {
		l.advance()
	}
	l.advance() // ':'
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	lexeme := l.lexeme()
	l.addToken(token.LocalTime, lexeme, lexeme)
}
