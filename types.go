// Package binconf defines the core data structures for binconf parsing.
package binconf

// Value represents any binconf value: an integer or a table.
//
// The two implementations are Integer and *Table; no other type
// satisfies the interface.
type Value interface {
	value()
}

// Integer is the result of a binary literal such as 0b1010.
type Integer int64

func (Integer) value() {}

// Table is an insertion-ordered string-keyed mapping, the language's
// only composite value. A key written twice keeps its original
// position and takes the later value.
type Table struct {
	keys    []string
	entries map[string]Value
}

func (*Table) value() {}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Value)}
}

// Set stores value under key, overwriting any previous binding.
// A new key is appended to the iteration order; an existing key keeps
// its place.
func (t *Table) Set(key string, value Value) {
	if _, ok := t.entries[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = value
}

// Get returns the value bound to key, if any.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Has reports whether key is bound.
func (t *Table) Has(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}
