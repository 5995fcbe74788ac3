package parser

import (
	"github.com/tomlcore/tomlcore/errs"
	"github.com/tomlcore/tomlcore/token"
	"github.com/tomlcore/tomlcore/value"
)

// navigateImplicit walks segs from start, creating intermediate tables
// as needed (and diving into the last element of any array-of-tables it
// passes through), returning the table those segments name. It reports
// an error and returns nil if an intermediate segment already holds a
// non-table scalar or array.
func (p *Parser) navigateImplicit(start *value.Table, segs []string, fullPath func(i int) string) *value.Table {
	t := start
	for i, seg := range segs {
		existing, ok := t.Get(seg)
		if !ok {
			child := value.NewTable()
			t.Set(seg, value.TableVal(child))
			t = child
			continue
		}
		switch existing.Kind {
		case value.KindTable:
			t = existing.Table
		case value.KindArray:
			if len(existing.Arr) == 0 || existing.Arr[len(existing.Arr)-1].Kind != value.KindTable {
				p.errorAtCurrent(errs.InvalidTable, "cannot extend "+fullPath(i)+": not a table")
				return nil
			}
			t = existing.Arr[len(existing.Arr)-1].Table
		default:
			p.errorAtCurrent(errs.InvalidTable, "cannot redefine "+fullPath(i)+" as a table")
			return nil
		}
	}
	return t
}

// parseTableHeader parses `[ dotted.key ]` and repositions the current
// table pointer at the named table, creating any missing ancestors.
func (p *Parser) parseTableHeader() {
	p.advance() // '['
	segs, ok := p.parseKeyChain()
	if !ok {
		p.synchronize()
		return
	}
	if _, ok := p.consume(token.RightBracket, "]"); !ok {
		p.synchronize()
		return
	}
	p.expectLineEnd()

	parent := p.navigateImplicit(p.root, segs[:len(segs)-1], func(i int) string { return pathString(segs[:i+1]) })
	if parent == nil {
		return
	}
	last := segs[len(segs)-1]
	full := pathString(segs)

	existing, has := parent.Get(last)
	switch {
	case !has:
		child := value.NewTable()
		parent.Set(last, value.TableVal(child))
		parent.MarkExplicit(last)
		p.definedTables[full] = true
		p.cur = child
	case has && existing.Kind == value.KindTable && !p.definedTables[full]:
		// implicitly created by an earlier dotted key; giving it its
		// first explicit header is allowed exactly once
		parent.MarkExplicit(last)
		p.definedTables[full] = true
		p.cur = existing.Table
	default:
		p.errorAt(p.previous(), errs.DuplicateKey, "table "+full+" is already defined")
		p.cur = value.NewTable() // isolate further keys from the real tree
	}
}

// parseArrayTableHeader parses `[[ dotted.key ]]`, appending a fresh
// table element to the named array-of-tables (creating it on first
// use) and repositioning the current table pointer at that element.
func (p *Parser) parseArrayTableHeader() {
	p.advance() // '[['
	segs, ok := p.parseKeyChain()
	if !ok {
		p.synchronize()
		return
	}
	if _, ok := p.consume(token.RightDoubleBracket, "]]"); !ok {
		p.synchronize()
		return
	}
	p.expectLineEnd()

	parent := p.navigateImplicit(p.root, segs[:len(segs)-1], func(i int) string { return pathString(segs[:i+1]) })
	if parent == nil {
		return
	}
	last := segs[len(segs)-1]
	full := pathString(segs)

	existing, has := parent.Get(last)
	elem := value.NewTable()
	switch {
	case !has:
		parent.Set(last, value.ArrayVal([]value.Value{value.TableVal(elem)}))
		parent.MarkExplicit(last)
		p.arrayLength[full] = 1
	case has && existing.Kind == value.KindArray:
		existing.Arr = append(existing.Arr, value.TableVal(elem))
		parent.Set(last, existing)
		p.arrayLength[full]++
	default:
		p.errorAt(p.previous(), errs.DuplicateKey, full+" is already defined and is not an array of tables")
		p.cur = value.NewTable()
		return
	}
	p.cur = elem
}
