package value

// Table is a TOML table: an ordered, string-keyed collection of Values.
// Order is preserved for round-trip serialization even though lookup is
// O(1) via the backing map, mirroring the way compiler/parser/ast.go
// keeps both a slice (for emission order) and does name lookups over it.
type Table struct {
	keys   []string
	values map[string]Value

	// explicit marks keys that were defined by a `[table]` or `[[array]]`
	// header, as opposed to implicit parents created while walking a
	// dotted path (`[a.b.c]` implicitly creates `a` and `a.b`). Only
	// explicit tables may be redeclared as an error; implicit ones may
	// later be given an explicit header once.
	explicit map[string]bool
}

// NewTable returns an empty table ready for Set calls.
func NewTable() *Table {
	return &Table{values: make(map[string]Value)}
}

// Len returns the number of direct keys in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the direct keys in insertion order. The returned slice
// must not be mutated by the caller.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Get returns the direct value for key and whether it was present.
func (t *Table) Get(key string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present directly on the table.
func (t *Table) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.values[key]
	return ok
}

// Set inserts or overwrites key with v, appending to the key order on
// first insertion. Callers enforcing the "no duplicate keys" invariant
// must check Has before calling Set; Table itself does not reject
// duplicates, since the parser needs to distinguish "new key" from
// "key exists, which is an error" at the call site to report a precise
// DuplicateKey diagnostic.
func (t *Table) Set(key string, v Value) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// IsExplicit reports whether key was defined via an explicit table or
// array-of-tables header rather than created implicitly while resolving
// a dotted path.
func (t *Table) IsExplicit(key string) bool {
	if t == nil || t.explicit == nil {
		return false
	}
	return t.explicit[key]
}

// MarkExplicit records that key was given an explicit header.
func (t *Table) MarkExplicit(key string) {
	if t.explicit == nil {
		t.explicit = make(map[string]bool)
	}
	t.explicit[key] = true
}

// Equal reports deep structural equality between two tables, ignoring
// key order and the explicit/implicit bookkeeping (which is a parser
// concern, not part of the value's identity).
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.keys) != len(other.keys) {
		return false
	}
	for _, k := range t.keys {
		a, ok := t.values[k]
		if !ok {
			return false
		}
		b, ok := other.values[k]
		if !ok {
			return false
		}
		if !a.Equal(b) {
			return false
		}
	}
	return true
}
