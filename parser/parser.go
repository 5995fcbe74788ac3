// Package parser turns a token stream from package lexer into a
// value.Table, in the style of compiler/parser/parser.go in this
// corpus's Conduit compiler: one token of lookahead, a Parser struct
// carrying position/current-table state, and an accumulated error list
// instead of a panic on the first bad construct.
package parser

import (
	"strings"

	"github.com/tomlcore/tomlcore/errs"
	"github.com/tomlcore/tomlcore/lexer"
	"github.com/tomlcore/tomlcore/token"
	"github.com/tomlcore/tomlcore/value"
)

// Parser builds a value.Table from a token stream, tracking the
// "current table" pointer the TOML grammar defines: every bare
// key = value line outside a header is inserted into whichever table
// the most recent [header] or [[header]] selected, or the document
// root if none has appeared yet.
type Parser struct {
	tokens []token.Token
	current int
	source  string

	errors []*errs.Error

	root *value.Table
	cur  *value.Table

	// definedTables records, by dotted path, whether a table at that
	// path has already been given an explicit header — redefining one
	// is a DuplicateKey error, but a table may be implicitly created by
	// a dotted key and *then* given one real header.
	definedTables map[string]bool

	// arrayLength records, by dotted path, how many elements an
	// array-of-tables has received so far.
	arrayLength map[string]int
}

// Parse scans and parses source in one call, returning the finished
// table or every lexical and grammatical error encountered.
func Parse(source string) (*value.Table, []*errs.Error) {
	toks, lexErrs := lexer.New(source).Scan()
	p := &Parser{
		tokens:        toks,
		source:        source,
		root:          value.NewTable(),
		definedTables: make(map[string]bool),
		arrayLength:   make(map[string]int),
	}
	p.cur = p.root
	for _, le := range lexErrs {
		p.errors = append(p.errors, errs.New(mapLexKind(le.Kind), le.Line, le.Column, le.Message).EnrichFromSource(source))
	}
	p.parseDocument()
	return p.root, p.errors
}

// mapLexKind translates a lexer-stage error category onto the matching
// errs.Kind so a lexical failure isn't flattened into one generic kind.
func mapLexKind(k lexer.Kind) errs.Kind {
	switch k {
	case lexer.InvalidEscape:
		return errs.InvalidEscape
	case lexer.UnterminatedString:
		return errs.UnterminatedString
	case lexer.NumberFormat:
		return errs.NumberFormat
	case lexer.InvalidValue:
		return errs.InvalidValue
	default:
		return errs.UnexpectedCharacter
	}
}

func (p *Parser) parseDocument() {
	for !p.isAtEnd() {
		p.skipNewlines()
		if p.isAtEnd() {
			return
		}
		switch p.peek().Type {
		case token.LeftDoubleBracket:
			p.parseArrayTableHeader()
		case token.LeftBracket:
			p.parseTableHeader()
		case token.Identifier, token.String:
			p.parseKeyValueLine()
		default:
			p.errorAtCurrent(errs.UnexpectedToken, "expected a key or a table header")
			p.synchronize()
		}
	}
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.Type) bool { return p.peek().Type == t }

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, onMissing string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.errorAtCurrent(errs.UnexpectedToken, onMissing)
	return p.peek(), false
}

func (p *Parser) skipNewlines() {
	for p.check(token.Newline) {
		p.advance()
	}
}

func (p *Parser) expectLineEnd() {
	if p.check(token.Newline) {
		p.advance()
		return
	}
	if p.isAtEnd() {
		return
	}
	p.errorAtCurrent(errs.UnexpectedToken, "expected a newline after this value")
}

func (p *Parser) errorAtCurrent(kind errs.Kind, message string) *errs.Error {
	t := p.peek()
	e := errs.New(kind, t.Line, t.Column, message).EnrichFromSource(p.source)
	e.Hint = errs.HintForUnexpectedToken(message, t.Type.String())
	p.errors = append(p.errors, e)
	return e
}

func (p *Parser) errorAt(t token.Token, kind errs.Kind, message string) *errs.Error {
	e := errs.New(kind, t.Line, t.Column, message).EnrichFromSource(p.source)
	p.errors = append(p.errors, e)
	return e
}

// synchronize implements panic-mode recovery: skip to the next newline
// or header start so one bad line doesn't cascade into spurious errors
// for the rest of the document, mirroring Parser.synchronize in
// compiler/parser/parser.go.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.check(token.Newline) {
			p.advance()
			return
		}
		if p.check(token.LeftBracket) || p.check(token.LeftDoubleBracket) {
			return
		}
		p.advance()
	}
}

// parseKeyChain parses a dotted key (bare or quoted segments joined by
// '.') and returns its segments.
func (p *Parser) parseKeyChain() ([]string, bool) {
	var segs []string
	seg, ok := p.parseKeySegment()
	if !ok {
		return nil, false
	}
	segs = append(segs, seg)
	for p.match(token.Dot) {
		seg, ok := p.parseKeySegment()
		if !ok {
			return segs, false
		}
		segs = append(segs, seg)
	}
	return segs, true
}

func (p *Parser) parseKeySegment() (string, bool) {
	switch p.peek().Type {
	case token.Identifier:
		t := p.advance()
		return t.Lexeme, true
	case token.String:
		t := p.advance()
		return t.Literal.(string), true
	case token.Integer:
		t := p.advance()
		return t.Lexeme, true
	default:
		p.errorAtCurrent(errs.UnexpectedToken, "key")
		return "", false
	}
}

func pathString(segs []string) string { return strings.Join(segs, ".") }
