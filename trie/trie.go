// Package trie implements the embedded ordered string-map capability LITS
// leaves on when PMSS picks a trie subtree: find/begin/lookup/insert/
// upsert/remove, cursor iteration to a sentinel end, and sorted bulk-insert.
//
// It wraps github.com/hashicorp/go-immutable-radix's persistent radix tree.
// The tree's root is a single pointer, so a *Trie fits the "root handle in
// one word" property the original's height-optimized trie (HOT) relied on.
package trie

import (
	"bytes"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// Trie is an ordered byte-string to uint64 map.
type Trie struct {
	root *iradix.Tree
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{root: iradix.New()}
}

// Len returns the number of keys stored.
func (t *Trie) Len() int {
	return t.root.Len()
}

// Lookup returns the value for key and whether it was present.
func (t *Trie) Lookup(key []byte) (uint64, bool) {
	v, ok := t.root.Get(key)
	if !ok {
		return 0, false
	}
	return v.(uint64), true
}

// Insert adds key/value if key is absent. It reports whether the insert
// happened.
func (t *Trie) Insert(key []byte, value uint64) bool {
	newRoot, _, existed := t.root.Insert(key, value)
	if existed {
		return false
	}
	t.root = newRoot
	return true
}

// Upsert installs key/value, returning the previous value (0 if key was
// absent) and whether key was already present.
func (t *Trie) Upsert(key []byte, value uint64) (uint64, bool) {
	newRoot, prev, existed := t.root.Insert(key, value)
	t.root = newRoot
	if !existed {
		return 0, false
	}
	return prev.(uint64), true
}

// Remove deletes key, reporting whether it was present.
func (t *Trie) Remove(key []byte) bool {
	newRoot, _, existed := t.root.Delete(key)
	if !existed {
		return false
	}
	t.root = newRoot
	return true
}

// BulkInsert loads a sorted, unique run of key/value pairs in a single
// transaction.
func (t *Trie) BulkInsert(keys [][]byte, values []uint64) {
	txn := t.root.Txn()
	for i := range keys {
		txn.Insert(keys[i], values[i])
	}
	t.root = txn.CommitOnly()
}

// Each calls fn for every key/value pair in ascending order.
func (t *Trie) Each(fn func(key []byte, value uint64)) {
	it := t.root.Root().Iterator()
	for {
		k, v, ok := it.Next()
		if !ok {
			return
		}
		fn(k, v.(uint64))
	}
}

// Cursor walks the trie's entries in ascending key order, starting either at
// an exact key (Find) or at the smallest key (Begin). IsEnd reports whether
// the cursor has run past the last entry.
type Cursor struct {
	it    *iradix.Iterator
	key   []byte
	value uint64
	end   bool
}

// Find returns a cursor positioned exactly at key, or an end cursor if key
// is absent. It is an exact-anchor lookup, not a lower-bound search.
func (t *Trie) Find(key []byte) *Cursor {
	it := t.root.Root().Iterator()
	it.SeekLowerBound(key)
	k, v, ok := it.Next()
	if !ok || !bytes.Equal(k, key) {
		return &Cursor{end: true}
	}
	return &Cursor{it: it, key: k, value: v.(uint64)}
}

// Begin returns a cursor positioned at the smallest key, or an end cursor if
// the trie is empty.
func (t *Trie) Begin() *Cursor {
	it := t.root.Root().Iterator()
	k, v, ok := it.Next()
	if !ok {
		return &Cursor{end: true}
	}
	return &Cursor{it: it, key: k, value: v.(uint64)}
}

// IsEnd reports whether the cursor has been exhausted.
func (c *Cursor) IsEnd() bool {
	return c.end
}

// Key returns the key of the entry the cursor currently points to. Calling
// it on an end cursor panics.
func (c *Cursor) Key() []byte {
	if c.end {
		panic("lits/trie: Key of end cursor")
	}
	return c.key
}

// Value returns the value of the entry the cursor currently points to.
func (c *Cursor) Value() uint64 {
	if c.end {
		panic("lits/trie: Value of end cursor")
	}
	return c.value
}

// Next advances the cursor, setting IsEnd once the trie is exhausted.
func (c *Cursor) Next() {
	if c.end || c.it == nil {
		c.end = true
		return
	}
	k, v, ok := c.it.Next()
	if !ok {
		c.end = true
		return
	}
	c.key, c.value = k, v.(uint64)
}
