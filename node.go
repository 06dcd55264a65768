package lits

import (
	"github.com/hillbig/rsdic"

	"github.com/schencoding/lits/hpt"
	"github.com/schencoding/lits/utils"
)

// innerNode is a learned model node: a sparse array of items whose
// occupied slot for a key is predicted by a trained HPT position model
// plus a per-node linear calibration (k, b), rather than found by
// comparison. prefix holds the bytes the node's whole key range shares
// beyond its parent's confirmed common prefix.
type innerNode struct {
	items   []item
	numKeys int
	k, b    float64
	prefix  []byte

	// occ is a cached occupancy bitmap over items, lazily constructed and
	// invalidated whenever a slot's emptiness changes. It exists only
	// to accelerate the iterator's "next occupied slot" scan; predictPos
	// and mutation never consult it.
	occ *rsdic.RSDic
}

// occupancy returns (building if necessary) a succinct bit vector where bit
// i is set iff items[i] is non-empty. A slot's emptiness can change when a
// mutation turns an Empty item into a Single or back, so every successful
// insert or remove clears the cached bitmap of each inner node on its path
// (pathStack.changeCount) and the next call here rebuilds it.
func (n *innerNode) occupancy() *rsdic.RSDic {
	if n.occ != nil {
		return n.occ
	}
	bv := rsdic.New()
	for i := range n.items {
		bv.PushBack(!n.items[i].isEmpty())
	}
	n.occ = bv
	return n.occ
}

// nextOccupied returns the smallest index >= from that holds a non-empty
// item, or -1 if none remains. It locates that index with Rank/Select
// rather than scanning items itself: Rank(from) counts the occupied slots
// strictly before from, and Select on that count walks straight to the
// occupied slot that follows them, skipping every empty slot in between.
func (n *innerNode) nextOccupied(from int) int {
	bv := n.occupancy()
	if uint64(from) >= bv.Num() {
		return -1
	}
	rank := bv.Rank(uint64(from), true)
	if rank >= bv.OneNum() {
		return -1
	}
	return int(bv.Select(rank, true))
}

// extract appends every entry reachable from the node, in ascending slot
// order (which is ascending key order), to *out.
func (n *innerNode) extract(out *[]*entry) {
	occupied := utils.Filter(n.items, func(it item) bool { return !it.isEmpty() })
	for i := range occupied {
		occupied[i].recursiveExtract(out)
	}
}

// cmpPrefixAt compares prefix against key starting at offset ofs, treating
// any byte past the end of key as 0, so a prefix that runs past the end of
// key always compares greater than key at that position.
func cmpPrefixAt(prefix, key []byte, ofs int) int {
	for i, pb := range prefix {
		var kb byte
		if ofs+i < len(key) {
			kb = key[ofs+i]
		}
		if pb != kb {
			if pb > kb {
				return 1
			}
			return -1
		}
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// predictPos locates the slot key should occupy within node. ccpl is the
// confirmed common prefix length on entry (shared with node's parents) and,
// when key matches node's cached prefix, is advanced past that prefix on
// return, ready for use one level deeper. A key outside the prefix goes to
// boundary slot 0 or len-1 with ccpl unchanged.
func predictPos(node *innerNode, key []byte, ccpl *int, model *hpt.Table) int {
	icpl := len(node.prefix)
	if icpl > 0 {
		switch cmp := cmpPrefixAt(node.prefix, key, *ccpl); {
		case cmp < 0:
			return len(node.items) - 1
		case cmp > 0:
			return 0
		}
	}

	var pos int
	if *ccpl+icpl > 0 {
		pos = model.GetPos(key, len(node.items)-2, *ccpl+icpl, node.k, node.b) + 1
	} else {
		pos = model.GetPosNoGCPL(key, len(node.items)-2, node.k, node.b) + 1
	}
	*ccpl += icpl
	return clampInt(pos, 1, len(node.items)-2)
}
