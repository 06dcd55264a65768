package lits

import "github.com/schencoding/lits/trie"

// itemKind tags which of the five leaf/branch shapes an item currently
// holds. Go has no tagged union, so item carries one pointer field per
// kind instead of reinterpreting a single word.
type itemKind uint8

const (
	itemEmpty itemKind = iota
	itemSingle
	itemInner
	itemTrie
	itemCNode
)

// item is a single sparse-array slot: either empty, a single entry, a
// learned inner node, an embedded trie, or a compact node.
type item struct {
	kind   itemKind
	single *entry
	inner  *innerNode
	trie   *trie.Trie
	cnode  *cnode
}

func (it *item) isEmpty() bool {
	return it.kind == itemEmpty
}

// recursiveExtract appends every entry reachable from it, in ascending key
// order, to *out. It does not mutate it; a caller that is discarding it
// (resize) simply lets the old value be overwritten.
func (it *item) recursiveExtract(out *[]*entry) {
	switch it.kind {
	case itemEmpty:
		return
	case itemSingle:
		*out = append(*out, it.single)
	case itemCNode:
		it.cnode.extract(out)
	case itemInner:
		it.inner.extract(out)
	case itemTrie:
		it.trie.Each(func(key []byte, value uint64) {
			*out = append(*out, newEntry(key, value))
		})
	}
}
