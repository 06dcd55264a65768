package lits

import "github.com/schencoding/lits/trie"

type iteratorFrameKind uint8

const (
	frameInner iteratorFrameKind = iota
	frameCNode
)

// iteratorFrame is one entry of an Iterator's path: either "resume
// scanning this inner node's items from idx" or "resume scanning this
// cnode's entries from cnIdx".
type iteratorFrame struct {
	kind  iteratorFrameKind
	node  *innerNode
	idx   int
	cn    *cnode
	cnIdx int
}

// Iterator is a stack-based cursor walking ascending key order across
// inner nodes, cnodes, singletons and embedded tries. It is invalidated by
// any structural mutation of the index it was built from; callers must not
// insert, upsert, or remove while an Iterator is live.
//
// valid and end track two different things. end means the walk has run
// past the last entry, whether by repeated Next calls or because Find
// never had anything to land on. valid is false only for an iterator
// returned by a Find call that matched no key; an iterator from Begin or
// from a matching Find stays valid even after its walk has run past the
// last entry.
type Iterator struct {
	stack    []iteratorFrame
	sub      *trie.Cursor
	curKey   []byte
	curValue uint64
	end      bool
	valid    bool
}

// IsEnd reports whether the iterator has run past the last entry.
func (it *Iterator) IsEnd() bool {
	return it.end
}

// Valid reports whether the iterator was anchored successfully. A Find
// call that finds no exact match returns an iterator with Valid false;
// Valid is not cleared when Next runs past the last entry.
func (it *Iterator) Valid() bool {
	return it.valid
}

// NotFinish reports whether the iterator has not yet run past the last
// entry. It is the complement of IsEnd.
func (it *Iterator) NotFinish() bool {
	return !it.end
}

// Key returns the key at the iterator's current position. Calling it at
// end panics.
func (it *Iterator) Key() []byte {
	if it.end {
		panic("lits: Key of exhausted iterator")
	}
	return it.curKey
}

// Value returns the value at the iterator's current position. Calling it
// at end panics.
func (it *Iterator) Value() uint64 {
	if it.end {
		panic("lits: Value of exhausted iterator")
	}
	return it.curValue
}

// GetKV returns the key and value at the iterator's current position.
// Calling it at end panics.
func (it *Iterator) GetKV() ([]byte, uint64) {
	if it.end {
		panic("lits: GetKV of exhausted iterator")
	}
	return it.curKey, it.curValue
}

// Read returns the value at the iterator's current position. Calling it
// at end panics.
func (it *Iterator) Read() uint64 {
	_, v := it.GetKV()
	return v
}

// Next advances the iterator to the next entry in ascending key order.
func (it *Iterator) Next() {
	if it.end {
		return
	}
	it.advance()
}

// pushDown resolves target into the iterator's current position: a Single
// settles immediately, a CNode or InnerNode pushes a resumable frame, and
// a Trie seeds the embedded-trie sub-cursor. It reports whether target
// already yielded a current position (true for Single and a non-empty
// Trie), false if the caller must keep unwinding the stack to find one
// (CNode/InnerNode pushed a frame with nothing resolved yet, or an empty
// Trie/Empty slot produced nothing).
func (it *Iterator) pushDown(target *item) bool {
	switch target.kind {
	case itemSingle:
		it.curKey, it.curValue = target.single.key, target.single.value
		return true
	case itemCNode:
		it.stack = append(it.stack, iteratorFrame{kind: frameCNode, cn: target.cnode})
		return false
	case itemInner:
		it.stack = append(it.stack, iteratorFrame{kind: frameInner, node: target.inner})
		return false
	case itemTrie:
		cur := target.trie.Begin()
		if cur.IsEnd() {
			return false
		}
		it.sub = cur
		it.curKey, it.curValue = cur.Key(), cur.Value()
		return true
	default: // itemEmpty
		return false
	}
}

// advance moves to the next entry, returning false and marking the
// iterator ended if none remains.
func (it *Iterator) advance() bool {
	if it.sub != nil {
		it.sub.Next()
		if !it.sub.IsEnd() {
			it.curKey, it.curValue = it.sub.Key(), it.sub.Value()
			return true
		}
		it.sub = nil
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		switch top.kind {
		case frameCNode:
			if top.cnIdx < len(top.cn.data) {
				e := top.cn.data[top.cnIdx].ref
				top.cnIdx++
				it.curKey, it.curValue = e.key, e.value
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]
		case frameInner:
			next := top.node.nextOccupied(top.idx)
			if next == -1 {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			top.idx = next + 1
			if it.pushDown(&top.node.items[next]) {
				return true
			}
		}
	}

	it.end = true
	return false
}

// Begin returns an iterator positioned at the smallest key in the index,
// or an exhausted iterator if the index is empty.
func (idx *Index) Begin() *Iterator {
	idx.assertBuilt()
	it := &Iterator{valid: true}
	if !it.pushDown(&idx.root) {
		it.advance()
	}
	return it
}

// Find returns an iterator positioned exactly at key. If no exact match
// exists, the returned iterator is invalid (Valid reports false) and
// already finished (IsEnd reports true); it is an exact-anchor lookup, not
// a lower-bound search.
func (idx *Index) Find(key []byte) *Iterator {
	idx.assertBuilt()
	it := &Iterator{valid: true}

	target := &idx.root
	ccpl := 0
	for target.kind == itemInner {
		node := target.inner
		pos := predictPos(node, key, &ccpl, idx.model)
		it.stack = append(it.stack, iteratorFrame{kind: frameInner, node: node, idx: pos + 1})
		target = &node.items[pos]
	}

	switch target.kind {
	case itemSingle:
		if target.single.verify(key, ccpl) {
			it.curKey, it.curValue = target.single.key, target.single.value
			return it
		}
	case itemCNode:
		if e, pos, ok := target.cnode.searchIndex(key); ok {
			it.stack = append(it.stack, iteratorFrame{kind: frameCNode, cn: target.cnode, cnIdx: pos + 1})
			it.curKey, it.curValue = e.key, e.value
			return it
		}
	case itemTrie:
		cur := target.trie.Find(key)
		if !cur.IsEnd() {
			it.sub = cur
			it.curKey, it.curValue = cur.Key(), cur.Value()
			return it
		}
	}

	it.valid = false
	it.end = true
	return it
}
