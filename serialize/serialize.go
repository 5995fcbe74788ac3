// Package serialize renders a value.Table back out as TOML or JSON, in
// the style of internal/format/formatter.go in this corpus's Conduit
// compiler: a small buffer-backed writer walking the tree and emitting
// sections in passes rather than one single recursive descent.
package serialize

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tomlcore/tomlcore/value"
)

// Options configures TOML emission. The recognized options are exactly
// these four; OptionsFromMap rejects any other key.
type Options struct {
	IndentSize int  // columns per nesting level when UseSpaces is true
	UseSpaces  bool // false indents with one tab per level instead
	BlankLines bool // blank line between sibling sections/array elements
	SortKeys   bool
}

// DefaultOptions returns the Options TOML uses when no Option is given:
// two-space indent, spaces (not tabs), no blank-line separators,
// insertion-order keys.
func DefaultOptions() Options {
	return Options{IndentSize: 2, UseSpaces: true}
}

// Option mutates an Options value, cobra/viper-flag style.
type Option func(*Options)

// SortKeys emits every table's keys in lexical order instead of
// insertion order, useful for deterministic diffs of generated config.
func SortKeys() Option { return func(o *Options) { o.SortKeys = true } }

// Indent sets the number of columns per nesting level (ignored when
// UseTabs is also given, since a tab stop is always exactly one tab).
func Indent(size int) Option { return func(o *Options) { o.IndentSize = size } }

// UseTabs indents with one tab character per nesting level instead of
// IndentSize spaces.
func UseTabs() Option { return func(o *Options) { o.UseSpaces = false } }

// BlankLines inserts a blank line between sibling table sections and
// between array-of-table elements.
func BlankLines() Option { return func(o *Options) { o.BlankLines = true } }

// WithOptions replaces the accumulated Options outright, letting a
// caller that already assembled one — e.g. via OptionsFromMap — pass it
// straight to TOML alongside or instead of the functional Options above.
func WithOptions(o Options) Option { return func(dst *Options) { *dst = o } }

// OptionsFromMap builds Options from a string-keyed set, the shape a
// config file or CLI flag layer hands in rather than the compile-time
// Option chain above. Only the four recognized keys are accepted;
// anything else is rejected rather than silently ignored.
func OptionsFromMap(raw map[string]interface{}) (Options, error) {
	opts := DefaultOptions()
	for k, v := range raw {
		switch k {
		case "indent_size":
			n, ok := v.(int)
			if !ok {
				return Options{}, fmt.Errorf("serialize: indent_size must be an int, got %T", v)
			}
			opts.IndentSize = n
		case "use_spaces":
			b, ok := v.(bool)
			if !ok {
				return Options{}, fmt.Errorf("serialize: use_spaces must be a bool, got %T", v)
			}
			opts.UseSpaces = b
		case "blank_lines":
			b, ok := v.(bool)
			if !ok {
				return Options{}, fmt.Errorf("serialize: blank_lines must be a bool, got %T", v)
			}
			opts.BlankLines = b
		case "sort_keys":
			b, ok := v.(bool)
			if !ok {
				return Options{}, fmt.Errorf("serialize: sort_keys must be a bool, got %T", v)
			}
			opts.SortKeys = b
		default:
			return Options{}, fmt.Errorf("serialize: unrecognized format option %q", k)
		}
	}
	return opts, nil
}

type writer struct {
	buf  bytes.Buffer
	opts Options
}

// indent returns the prefix for a line nested depth levels deep.
func (w *writer) indent(depth int) string {
	if w.opts.UseSpaces {
		return strings.Repeat(strings.Repeat(" ", w.opts.IndentSize), depth)
	}
	return strings.Repeat("\t", depth)
}

// TOML renders t as a complete TOML document using the standard
// three-pass layout: scalars and leaf arrays at the current level
// first, then nested `[dotted.path]` table sections, then
// `[[dotted.path]]` array-of-tables sections — so that every value
// appears under the header that introduces its table, the way a human
// author would structure the file by hand.
func TOML(t *value.Table, opts ...Option) ([]byte, error) {
	w := &writer{opts: DefaultOptions()}
	for _, opt := range opts {
		opt(&w.opts)
	}
	if err := w.formatTable(t, nil); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

func (w *writer) orderedKeys(t *value.Table) []string {
	keys := append([]string(nil), t.Keys()...)
	if w.opts.SortKeys {
		sort.Strings(keys)
	}
	return keys
}

func (w *writer) formatTable(t *value.Table, path []string) error {
	keys := w.orderedKeys(t)
	prefix := w.indent(len(path))

	// Pass 1: scalars and arrays that are not arrays of tables (any table
	// inside such an array is written inline). Table values wait for pass 2.
	for _, k := range keys {
		v, _ := t.Get(k)
		if isSubTable(v) || isArrayOfTables(v) {
			continue
		}
		w.buf.WriteString(prefix)
		w.buf.WriteString(quoteKeyIfNeeded(k))
		w.buf.WriteString(" = ")
		if err := w.formatValue(v); err != nil {
			return err
		}
		w.buf.WriteByte('\n')
	}

	// Pass 2: nested sub-tables, each under its own `[dotted.path]`.
	for _, k := range keys {
		v, _ := t.Get(k)
		if !isSubTable(v) {
			continue
		}
		sub := append(append([]string(nil), path...), k)
		if w.opts.BlankLines {
			w.buf.WriteByte('\n')
		}
		w.buf.WriteString("[" + strings.Join(dotQuote(sub), ".") + "]\n")
		if err := w.formatTable(v.Table, sub); err != nil {
			return err
		}
	}

	// Pass 3: arrays of tables, one `[[dotted.path]]` header per element.
	for _, k := range keys {
		v, _ := t.Get(k)
		if !isArrayOfTables(v) {
			continue
		}
		sub := append(append([]string(nil), path...), k)
		for _, elem := range v.Arr {
			if w.opts.BlankLines {
				w.buf.WriteByte('\n')
			}
			w.buf.WriteString("[[" + strings.Join(dotQuote(sub), ".") + "]]\n")
			if err := w.formatTable(elem.Table, sub); err != nil {
				return err
			}
		}
	}
	return nil
}

func isSubTable(v value.Value) bool { return v.Kind == value.KindTable }

func isArrayOfTables(v value.Value) bool {
	return v.Kind == value.KindArray && len(v.Arr) > 0 && allTables(v.Arr)
}

func allTables(vs []value.Value) bool {
	for _, v := range vs {
		if v.Kind != value.KindTable {
			return false
		}
	}
	return true
}

func (w *writer) formatValue(v value.Value) error {
	switch v.Kind {
	case value.KindString:
		w.buf.WriteString(quoteString(v.Str))
	case value.KindInteger:
		w.buf.WriteString(strconv.FormatInt(v.Int, 10))
	case value.KindFloat:
		w.buf.WriteString(formatFloat(v.Flt))
	case value.KindBoolean:
		w.buf.WriteString(strconv.FormatBool(v.Bool))
	case value.KindDatetime:
		w.buf.WriteString(v.DT.String())
	case value.KindDate:
		w.buf.WriteString(v.D.String())
	case value.KindTime:
		w.buf.WriteString(v.T.String())
	case value.KindArray:
		w.buf.WriteByte('[')
		for i, elem := range v.Arr {
			if i > 0 {
				w.buf.WriteString(", ")
			}
			if err := w.formatValue(elem); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
	case value.KindTable:
		w.buf.WriteByte('{')
		keys := w.orderedKeys(v.Table)
		for i, k := range keys {
			if i > 0 {
				w.buf.WriteString(", ")
			}
			elem, _ := v.Table.Get(k)
			w.buf.WriteString(quoteKeyIfNeeded(k))
			w.buf.WriteString(" = ")
			if err := w.formatValue(elem); err != nil {
				return err
			}
		}
		w.buf.WriteByte('}')
	default:
		return fmt.Errorf("serialize: unsupported value kind %v", v.Kind)
	}
	return nil
}

func formatFloat(f float64) string {
	if f != f {
		return "nan"
	}
	if f > 1.7976931348623157e+308 {
		return "inf"
	}
	if f < -1.7976931348623157e+308 {
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareKeySafe(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

func quoteKeyIfNeeded(k string) string {
	if isBareKeySafe(k) {
		return k
	}
	return quoteString(k)
}

func dotQuote(segs []string) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = quoteKeyIfNeeded(s)
	}
	return out
}
