package lits

import "github.com/schencoding/lits/hpt"

// maxStack bounds the recorded ancestor path of a mutation. An index deep
// enough to overflow it would already be a pathological input far beyond
// any practical key distribution.
const maxStack = 128

type pathFrame struct {
	node   *innerNode
	father *item
	ccpl   int
}

// pathStack records, root to leaf, every inner node a mutation descended
// through, so the walk back up can maintain each ancestor's key count and
// trigger a resize the moment one goes out of its sized range.
type pathStack struct {
	frames [maxStack]pathFrame
	n      int
}

func (s *pathStack) record(node *innerNode, father *item, ccpl int) {
	s.frames[s.n] = pathFrame{node: node, father: father, ccpl: ccpl}
	s.n++
}

// changeCount applies delta (+1 after a successful insert, -1 after a
// successful remove) to every recorded ancestor's key count. The first
// ancestor, walking from the root, that becomes over- or under-full is
// re-bulk-loaded from its own freshly extracted keys; since that rebuild
// replaces the whole subtree, any deeper ancestors' counts no longer
// matter and the walk stops.
func (s *pathStack) changeCount(delta int, model *hpt.Table) {
	for i := 0; i < s.n; i++ {
		f := &s.frames[i]
		f.node.numKeys += delta
		f.node.occ = nil

		itemArrayLen := len(f.node.items)
		overFull := f.node.numKeys >= 2*itemArrayLen
		underFull := 4*f.node.numKeys <= itemArrayLen
		if overFull || underFull {
			var entries []*entry
			f.father.recursiveExtract(&entries)
			*f.father = pmssBulk(entries, f.ccpl, model)
			return
		}
	}
}

// descend walks from the index root through inner nodes, recording the
// path, and returns the leaf item key should be applied to along with the
// confirmed common prefix length at that leaf.
func (idx *Index) descend(key []byte, stack *pathStack) (*item, int) {
	it := &idx.root
	ccpl := 0
	for it.kind == itemInner {
		node := it.inner
		if stack != nil {
			stack.record(node, it, ccpl)
		}
		pos := predictPos(node, key, &ccpl, idx.model)
		it = &node.items[pos]
	}
	return it, ccpl
}

func singleInsert(it *item, key []byte, value uint64, ccpl int) bool {
	old := it.single
	cmp := old.keycmp(key, ccpl)
	if cmp == 0 {
		return false
	}
	ne := newEntry(key, value)
	data := make([]hashedRef, 2)
	if cmp < 0 {
		data[0], data[1] = newHashedRef(old), newHashedRef(ne)
	} else {
		data[0], data[1] = newHashedRef(ne), newHashedRef(old)
	}
	*it = item{kind: itemCNode, cnode: &cnode{ccpl: ccpl, data: data}}
	return true
}

func singleUpsert(it *item, key []byte, value uint64, ccpl int) (uint64, bool) {
	old := it.single
	cmp := old.keycmp(key, ccpl)
	if cmp == 0 {
		prev := old.value
		old.value = value
		return prev, true
	}
	ne := newEntry(key, value)
	data := make([]hashedRef, 2)
	if cmp < 0 {
		data[0], data[1] = newHashedRef(old), newHashedRef(ne)
	} else {
		data[0], data[1] = newHashedRef(ne), newHashedRef(old)
	}
	*it = item{kind: itemCNode, cnode: &cnode{ccpl: ccpl, data: data}}
	return 0, false
}

func singleRemove(it *item, key []byte, ccpl int) bool {
	if it.single.keycmp(key, ccpl) != 0 {
		return false
	}
	*it = item{}
	return true
}

func cnodeInsert(it *item, key []byte, value uint64, ccpl int, model *hpt.Table) bool {
	c := it.cnode
	if c.hasRoom() {
		return c.insertWithRoom(key, value)
	}
	entries, ok := c.extractSortedWithInsert(key, value)
	if !ok {
		return false
	}
	*it = pmssBulk(entries, ccpl, model)
	return true
}

func cnodeUpsert(it *item, key []byte, value uint64, ccpl int, model *hpt.Table) (uint64, bool) {
	c := it.cnode
	if c.hasRoom() {
		return c.upsertWithRoom(key, value)
	}
	entries, old, existed := c.extractSortedWithUpsert(key, value)
	if existed {
		return old, true
	}
	*it = pmssBulk(entries, ccpl, model)
	return 0, false
}

func cnodeRemove(it *item, key []byte) bool {
	c := it.cnode
	if c.moreThanTwo() {
		return c.removeWithRoom(key)
	}
	survivor, ok := c.degrade(key)
	if !ok {
		return false
	}
	*it = item{kind: itemSingle, single: survivor}
	return true
}

// Insert adds key/value if key is absent, returning whether the insert
// happened. Preconditions: key is non-empty and every byte is in the
// supported alphabet (0x01..0x7F); a violation panics rather than
// returning an error.
func (idx *Index) Insert(key []byte, value uint64) bool {
	idx.assertBuilt()
	assertValidKey(key)

	var stack pathStack
	it, ccpl := idx.descend(key, &stack)

	var ok bool
	switch it.kind {
	case itemEmpty:
		*it = item{kind: itemSingle, single: newEntry(key, value)}
		ok = true
	case itemSingle:
		ok = singleInsert(it, key, value, ccpl)
	case itemCNode:
		ok = cnodeInsert(it, key, value, ccpl, idx.model)
	case itemTrie:
		ok = it.trie.Insert(key, value)
	}

	if ok {
		idx.count++
		stack.changeCount(1, idx.model)
	}
	return ok
}

// Upsert installs key/value unconditionally, returning the value key
// previously held (0 if it was absent) and whether it was present.
func (idx *Index) Upsert(key []byte, value uint64) (uint64, bool) {
	idx.assertBuilt()
	assertValidKey(key)

	var stack pathStack
	it, ccpl := idx.descend(key, &stack)

	var old uint64
	var existed bool
	switch it.kind {
	case itemEmpty:
		*it = item{kind: itemSingle, single: newEntry(key, value)}
	case itemSingle:
		old, existed = singleUpsert(it, key, value, ccpl)
	case itemCNode:
		old, existed = cnodeUpsert(it, key, value, ccpl, idx.model)
	case itemTrie:
		old, existed = it.trie.Upsert(key, value)
	}

	if !existed {
		idx.count++
		stack.changeCount(1, idx.model)
	}
	return old, existed
}

// Remove deletes key, reporting whether it was present.
func (idx *Index) Remove(key []byte) bool {
	idx.assertBuilt()
	assertValidKey(key)

	var stack pathStack
	it, ccpl := idx.descend(key, &stack)

	var ok bool
	switch it.kind {
	case itemEmpty:
		ok = false
	case itemSingle:
		ok = singleRemove(it, key, ccpl)
	case itemCNode:
		ok = cnodeRemove(it, key)
	case itemTrie:
		ok = it.trie.Remove(key)
	}

	if ok {
		idx.count--
		stack.changeCount(-1, idx.model)
	}
	return ok
}

// Lookup returns the value stored for key and whether it was present.
func (idx *Index) Lookup(key []byte) (uint64, bool) {
	idx.assertBuilt()
	it, ccpl := idx.descend(key, nil)
	switch it.kind {
	case itemSingle:
		if it.single.verify(key, ccpl) {
			return it.single.value, true
		}
		return 0, false
	case itemCNode:
		e, ok := it.cnode.search(key)
		if !ok {
			return 0, false
		}
		return e.value, true
	case itemTrie:
		return it.trie.Lookup(key)
	default: // itemEmpty
		return 0, false
	}
}
