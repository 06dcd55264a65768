package lits

import (
	"github.com/schencoding/lits/hpt"
	"github.com/schencoding/lits/pmss"
	"github.com/schencoding/lits/trie"
	"github.com/schencoding/lits/utils"
)

// scaleFactor oversizes an inner node's item array relative to its key
// count, leaving room for the node to absorb inserts before it must be
// resized.
const scaleFactor = 2

// pmssBulk builds the smallest sufficient item for a sorted, duplicate-free
// run of entries starting at confirmed common prefix length ccpl: a single
// entry, a compact node, a learned inner node, or, when none of those fit,
// an embedded trie.
func pmssBulk(entries []*entry, ccpl int, model *hpt.Table) item {
	size := len(entries)

	if size == 1 {
		return item{kind: itemSingle, single: entries[0]}
	}

	if size <= cnodeSize {
		return item{kind: itemCNode, cnode: newCNode(entries, ccpl)}
	}

	if pmss.Decide(size, gpklOfEntries(entries)) == pmss.UseModelNode {
		if node, ok := buildInnerNode(entries, ccpl, model); ok {
			return item{kind: itemInner, inner: node}
		}
	}

	return item{kind: itemTrie, trie: bulkTrie(entries)}
}

func bulkTrie(entries []*entry) *trie.Trie {
	keys := utils.Map(entries, func(e *entry) []byte { return e.key })
	values := utils.Map(entries, func(e *entry) uint64 { return e.value })
	t := trie.New()
	t.BulkInsert(keys, values)
	return t
}

func gpklOfEntries(entries []*entry) float64 {
	keys := make([][]byte, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return gpkl(keys, 0, len(keys))
}

type bulkGroup struct {
	idx, l, r int
}

// buildInnerNode attempts to lay entries out in a sparse, learned-position
// item array. It fails (ok=false) when the model cannot discriminate the
// range's first and last keys, or when a predicted position goes out of
// bounds or out of order; in either case the caller falls back to a trie.
func buildInnerNode(entries []*entry, ccpl int, model *hpt.Table) (node *innerNode, ok bool) {
	size := len(entries)
	itemArrayLen := size * scaleFactor

	first, last := entries[0].key, entries[size-1].key
	gcpl := ucpl(first, last)
	icpl := gcpl - ccpl

	minCdf := model.GetCdf(first, gcpl)
	maxCdf := model.GetCdf(last, gcpl)
	if maxCdf <= minCdf {
		return nil, false
	}
	k := 1.0 / (maxCdf - minCdf)
	b := minCdf / (minCdf - maxCdf)

	prefix := make([]byte, icpl)
	copy(prefix, first[ccpl:gcpl])

	node = &innerNode{
		items:   make([]item, itemArrayLen),
		numKeys: size,
		k:       k,
		b:       b,
		prefix:  prefix,
	}

	tmp1, tmp2 := ccpl, ccpl
	firstIdx := predictPos(node, first, &tmp1, model)
	lastIdx := predictPos(node, last, &tmp2, model)
	if firstIdx >= lastIdx {
		return nil, false
	}

	var groups []bulkGroup
	prevIdx, groupBegin := -1, 0
	for i := 0; i < size; i++ {
		tmp := ccpl
		idx := predictPos(node, entries[i].key, &tmp, model)
		if idx < prevIdx || idx < 0 || idx >= itemArrayLen {
			return nil, false
		}
		if idx != prevIdx {
			if prevIdx >= 0 {
				groups = append(groups, bulkGroup{prevIdx, groupBegin, i})
			}
			groupBegin = i
		}
		prevIdx = idx
	}
	groups = append(groups, bulkGroup{prevIdx, groupBegin, size})

	for _, g := range groups {
		node.items[g.idx] = pmssBulk(entries[g.l:g.r], gcpl, model)
	}

	return node, true
}
