package lits

import (
	"github.com/dustin/go-humanize"
	"github.com/zeebo/xxh3"
)

// ByteSize estimates the index's total in-memory footprint, walking the
// live structure rather than tracking allocations as they happen.
func (idx *Index) ByteSize() int {
	idx.assertBuilt()
	size := idx.model.ByteSize()
	size += itemByteSize(&idx.root)
	return size
}

// MemoryFootprint renders ByteSize as a human-readable size, in the style
// of the corpus's own diagnostics helpers.
func (idx *Index) MemoryFootprint() string {
	return humanize.Bytes(uint64(idx.ByteSize()))
}

func itemByteSize(it *item) int {
	switch it.kind {
	case itemSingle:
		return 24 + len(it.single.key)
	case itemCNode:
		size := 16
		for _, d := range it.cnode.data {
			size += 10 + len(d.ref.key)
		}
		return size
	case itemInner:
		n := it.inner
		size := 40 + len(n.prefix) + len(n.items)*16
		for i := range n.items {
			size += itemByteSize(&n.items[i])
		}
		return size
	case itemTrie:
		return it.trie.Len() * 48
	default:
		return 0
	}
}

// Stats summarizes the shape of the built index: total entries and a
// breakdown of how many of each leaf kind (single, cnode, trie) and inner
// node currently exist.
type Stats struct {
	Entries    int
	Singles    int
	CNodes     int
	InnerNodes int
	Tries      int
}

// Stats walks the structure and reports Stats.
func (idx *Index) Stats() Stats {
	idx.assertBuilt()
	var s Stats
	s.Entries = idx.count
	tallyItem(&idx.root, &s)
	return s
}

func tallyItem(it *item, s *Stats) {
	switch it.kind {
	case itemSingle:
		s.Singles++
	case itemCNode:
		s.CNodes++
	case itemTrie:
		s.Tries++
	case itemInner:
		s.InnerNodes++
		for i := range it.inner.items {
			tallyItem(&it.inner.items[i], s)
		}
	}
}

// Fingerprint returns a content digest of every (key, value) pair
// currently in the index, order-independent. Two indexes built from the
// same key/value set have the same Fingerprint, regardless of insertion
// order or intermediate mutation history.
func (idx *Index) Fingerprint() uint64 {
	idx.assertBuilt()
	var acc uint64
	for it := idx.Begin(); !it.IsEnd(); it.Next() {
		h := xxh3.New()
		h.Write(it.Key())
		var vb [8]byte
		for i := range vb {
			vb[i] = byte(it.Value() >> (8 * i))
		}
		h.Write(vb[:])
		acc ^= h.Sum64()
	}
	return acc
}
