package parser

import (
	"strconv"
	"strings"

	"github.com/tomlcore/tomlcore/errs"
	"github.com/tomlcore/tomlcore/token"
	"github.com/tomlcore/tomlcore/value"
)

// parseKeyValueLine parses `dotted.key = value` and inserts the result
// under the current table, walking (and implicitly creating) any
// intermediate tables the dotted key names.
func (p *Parser) parseKeyValueLine() {
	segs, ok := p.parseKeyChain()
	if !ok {
		p.synchronize()
		return
	}
	if _, ok := p.consume(token.Equals, "="); !ok {
		p.synchronize()
		return
	}
	v, ok := p.parseValue()
	if !ok {
		p.synchronize()
		return
	}
	p.expectLineEnd()

	target := p.navigateImplicit(p.cur, segs[:len(segs)-1], func(i int) string { return pathString(segs[:i+1]) })
	if target == nil {
		return
	}
	last := segs[len(segs)-1]
	if target.Has(last) {
		p.errorAt(p.previous(), errs.DuplicateKey, "key "+pathString(segs)+" is already defined").Hint = errs.HintForDuplicateKey(pathString(segs))
		return
	}
	target.Set(last, v)
}

func (p *Parser) parseValue() (value.Value, bool) {
	t := p.peek()
	switch t.Type {
	case token.String:
		p.advance()
		return value.String(t.Literal.(string)), true
	case token.Integer:
		p.advance()
		return value.Integer(t.Literal.(int64)), true
	case token.Float:
		p.advance()
		return value.Float(t.Literal.(float64)), true
	case token.Boolean:
		p.advance()
		return value.Boolean(t.Literal.(bool)), true
	case token.Datetime:
		p.advance()
		dt, err := parseDatetime(t.Lexeme)
		if err != nil {
			p.errorAt(t, errs.InvalidValue, err.Error())
			return value.Value{}, false
		}
		return value.DatetimeVal(dt), true
	case token.LocalDate:
		p.advance()
		d, err := parseDate(t.Lexeme)
		if err != nil {
			p.errorAt(t, errs.InvalidValue, err.Error())
			return value.Value{}, false
		}
		return value.DateVal(d), true
	case token.LocalTime:
		p.advance()
		tm, err := parseTime(t.Lexeme)
		if err != nil {
			p.errorAt(t, errs.InvalidValue, err.Error())
			return value.Value{}, false
		}
		return value.TimeVal(tm), true
	case token.LeftBracket:
		return p.parseArray()
	case token.LeftBrace:
		return p.parseInlineTable()
	default:
		p.errorAtCurrent(errs.InvalidValue, "value")
		return value.Value{}, false
	}
}

// parseArray parses `[ v1, v2, ... ]`. Unlike top-level statements,
// newlines inside an array are insignificant and freely skipped.
func (p *Parser) parseArray() (value.Value, bool) {
	p.advance() // '['
	var elems []value.Value
	p.skipNewlines()
	for !p.check(token.RightBracket) {
		if p.isAtEnd() {
			p.errorAtCurrent(errs.InvalidArray, "]")
			return value.Value{}, false
		}
		v, ok := p.parseValue()
		if !ok {
			return value.Value{}, false
		}
		elems = append(elems, v)
		p.skipNewlines()
		if !p.match(token.Comma) {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	if _, ok := p.consume(token.RightBracket, "]"); !ok {
		return value.Value{}, false
	}
	return value.ArrayVal(elems), true
}

// parseInlineTable parses `{ k = v, ... }`. TOML 1.0.0 forbids a raw
// newline between the braces; this enforces that strictly, per the
// inline-table grammar resolution.
func (p *Parser) parseInlineTable() (value.Value, bool) {
	p.advance() // '{'
	t := value.NewTable()
	if p.check(token.RightBrace) {
		p.advance()
		return value.TableVal(t), true
	}
	for {
		if p.check(token.Newline) {
			p.errorAtCurrent(errs.UnexpectedToken, "}")
			return value.Value{}, false
		}
		segs, ok := p.parseKeyChain()
		if !ok {
			return value.Value{}, false
		}
		if _, ok := p.consume(token.Equals, "="); !ok {
			return value.Value{}, false
		}
		v, ok := p.parseValue()
		if !ok {
			return value.Value{}, false
		}
		target := p.navigateImplicit(t, segs[:len(segs)-1], func(i int) string { return pathString(segs[:i+1]) })
		if target == nil {
			return value.Value{}, false
		}
		last := segs[len(segs)-1]
		if target.Has(last) {
			p.errorAt(p.previous(), errs.DuplicateKey, "key "+pathString(segs)+" is already defined")
			return value.Value{}, false
		}
		target.Set(last, v)

		if p.check(token.Newline) {
			p.errorAtCurrent(errs.UnexpectedToken, "}")
			return value.Value{}, false
		}
		if !p.match(token.Comma) {
			break
		}
	}
	if _, ok := p.consume(token.RightBrace, "}"); !ok {
		return value.Value{}, false
	}
	return value.TableVal(t), true
}

func parseDate(lexeme string) (value.Date, error) {
	parts := strings.SplitN(lexeme, "-", 3)
	if len(parts) != 3 {
		return value.Date{}, strconvErr("date", lexeme)
	}
	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return value.Date{}, strconvErr("date", lexeme)
	}
	return value.Date{Year: y, Month: m, Day: d}, nil
}

func parseTime(lexeme string) (value.Time, error) {
	var hh, mm, ss, ns int
	main := lexeme
	if idx := strings.IndexByte(lexeme, '.'); idx >= 0 {
		main = lexeme[:idx]
		frac := lexeme[idx+1:]
		for len(frac) < 9 {
			frac += "0"
		}
		n, err := strconv.Atoi(frac[:9])
		if err != nil {
			return value.Time{}, strconvErr("time", lexeme)
		}
		ns = n
	}
	parts := strings.SplitN(main, ":", 3)
	if len(parts) != 3 {
		return value.Time{}, strconvErr("time", lexeme)
	}
	var err error
	if hh, err = strconv.Atoi(parts[0]); err != nil {
		return value.Time{}, strconvErr("time", lexeme)
	}
	if mm, err = strconv.Atoi(parts[1]); err != nil {
		return value.Time{}, strconvErr("time", lexeme)
	}
	if ss, err = strconv.Atoi(parts[2]); err != nil {
		return value.Time{}, strconvErr("time", lexeme)
	}
	return value.Time{Hour: hh, Minute: mm, Second: ss, Nanosecond: ns}, nil
}

func parseDatetime(lexeme string) (value.Datetime, error) {
	sep := strings.IndexAny(lexeme, "Tt ")
	if sep < 0 {
		return value.Datetime{}, strconvErr("datetime", lexeme)
	}
	d, err := parseDate(lexeme[:sep])
	if err != nil {
		return value.Datetime{}, err
	}
	rest := lexeme[sep+1:]

	offsetSet := false
	offsetMin := 0
	timePart := rest
	if strings.HasSuffix(rest, "Z") || strings.HasSuffix(rest, "z") {
		offsetSet = true
		timePart = rest[:len(rest)-1]
	} else if idx := strings.LastIndexAny(rest, "+-"); idx > 0 {
		offsetSet = true
		timePart = rest[:idx]
		sign := 1
		if rest[idx] == '-' {
			sign = -1
		}
		offStr := rest[idx+1:]
		offParts := strings.SplitN(offStr, ":", 2)
		if len(offParts) == 2 {
			oh, _ := strconv.Atoi(offParts[0])
			om, _ := strconv.Atoi(offParts[1])
			offsetMin = sign * (oh*60 + om)
		}
	}
	tm, err := parseTime(timePart)
	if err != nil {
		return value.Datetime{}, err
	}
	return value.Datetime{Date: d, Time: tm, OffsetSet: offsetSet, OffsetMinute: offsetMin}, nil
}

func strconvErr(kind, lexeme string) error {
	return &strconvError{kind: kind, lexeme: lexeme}
}

type strconvError struct {
	kind   string
	lexeme string
}

func (e *strconvError) Error() string {
	return "invalid " + e.kind + " literal " + strconv.Quote(e.lexeme)
}
