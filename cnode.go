package lits

// cnodeSize is CNODE_SIZE: a compact node holds entries up to and including
// this count before it is re-bulk-loaded into a larger structure.
const cnodeSize = 16

// cnode is a compact leaf node: a small sorted array of hash-annotated
// entries scanned linearly on every lookup. ccpl is the confirmed common
// prefix length shared with the item's position in the tree, so key
// comparisons only need to look at bytes from ccpl onward.
type cnode struct {
	ccpl int
	data []hashedRef
}

// newCNode builds a cnode from a sorted, duplicate-free run of entries.
func newCNode(entries []*entry, ccpl int) *cnode {
	data := make([]hashedRef, len(entries))
	for i, e := range entries {
		data[i] = newHashedRef(e)
	}
	return &cnode{ccpl: ccpl, data: data}
}

func (c *cnode) hasRoom() bool     { return len(c.data) < cnodeSize }
func (c *cnode) moreThanTwo() bool { return len(c.data) > 2 }

// search performs the linear, hash-gated scan for key.
func (c *cnode) search(key []byte) (*entry, bool) {
	e, _, ok := c.searchIndex(key)
	return e, ok
}

// searchIndex is search but also reports the matching slot, so callers
// positioning an iterator don't need a second scan.
func (c *cnode) searchIndex(key []byte) (*entry, int, bool) {
	hv := hashStr(key)
	for i, d := range c.data {
		if d.hash != hv {
			continue
		}
		if d.ref.verify(key, c.ccpl) {
			return d.ref, i, true
		}
	}
	return nil, -1, false
}

func (c *cnode) extract(out *[]*entry) {
	for _, d := range c.data {
		*out = append(*out, d.ref)
	}
}

// insertWithRoom inserts key/value into sorted position, assuming the node
// is not yet at cnodeSize. It reports whether key was absent.
func (c *cnode) insertWithRoom(key []byte, value uint64) bool {
	cut := len(c.data)
	for i, d := range c.data {
		cmp := d.ref.keycmp(key, c.ccpl)
		if cmp == 0 {
			return false
		}
		if cmp > 0 {
			cut = i
			break
		}
	}
	c.data = insertHashedRef(c.data, cut, newHashedRef(newEntry(key, value)))
	return true
}

// upsertWithRoom installs key/value, returning the previous value and
// whether key was already present.
func (c *cnode) upsertWithRoom(key []byte, value uint64) (uint64, bool) {
	hv := hashStr(key)
	for _, d := range c.data {
		if d.hash == hv && d.ref.verify(key, c.ccpl) {
			old := d.ref.value
			d.ref.value = value
			return old, true
		}
	}
	cut := len(c.data)
	for i, d := range c.data {
		if d.ref.keycmp(key, c.ccpl) > 0 {
			cut = i
			break
		}
	}
	c.data = insertHashedRef(c.data, cut, newHashedRef(newEntry(key, value)))
	return 0, false
}

// removeWithRoom deletes key, reporting whether it was present. Only valid
// while moreThanTwo(); shrinking to a single entry is degrade's job.
func (c *cnode) removeWithRoom(key []byte) bool {
	hv := hashStr(key)
	for i, d := range c.data {
		if d.hash == hv && d.ref.verify(key, c.ccpl) {
			c.data = append(c.data[:i:i], c.data[i+1:]...)
			return true
		}
	}
	return false
}

// degrade removes key from a two-entry node and returns the surviving
// entry, or ok=false if key was not present.
func (c *cnode) degrade(key []byte) (survivor *entry, ok bool) {
	hv := hashStr(key)
	for i, d := range c.data {
		if d.hash == hv && d.ref.verify(key, c.ccpl) {
			return c.data[1-i].ref, true
		}
	}
	return nil, false
}

// extractSortedWithInsert returns the node's entries merged with a new
// key/value in sorted order, or ok=false if key duplicates an existing
// entry. Used when the node has no room and must be re-bulk-loaded.
func (c *cnode) extractSortedWithInsert(key []byte, value uint64) (entries []*entry, ok bool) {
	cut := len(c.data)
	for i, d := range c.data {
		cmp := d.ref.keycmp(key, c.ccpl)
		if cmp == 0 {
			return nil, false
		}
		if cmp > 0 {
			cut = i
			break
		}
	}
	return mergeEntries(c.data, cut, newEntry(key, value)), true
}

// extractSortedWithUpsert is extractSortedWithInsert's upsert counterpart:
// on a duplicate key it updates in place and reports the previous value
// rather than asking for a rebuild.
func (c *cnode) extractSortedWithUpsert(key []byte, value uint64) (entries []*entry, old uint64, existed bool) {
	hv := hashStr(key)
	for _, d := range c.data {
		if d.hash == hv && d.ref.verify(key, c.ccpl) {
			old = d.ref.value
			d.ref.value = value
			return nil, old, true
		}
	}
	cut := len(c.data)
	for i, d := range c.data {
		if d.ref.keycmp(key, c.ccpl) > 0 {
			cut = i
			break
		}
	}
	return mergeEntries(c.data, cut, newEntry(key, value)), 0, false
}

func mergeEntries(data []hashedRef, cut int, e *entry) []*entry {
	out := make([]*entry, 0, len(data)+1)
	for _, d := range data[:cut] {
		out = append(out, d.ref)
	}
	out = append(out, e)
	for _, d := range data[cut:] {
		out = append(out, d.ref)
	}
	return out
}

func insertHashedRef(data []hashedRef, pos int, hr hashedRef) []hashedRef {
	out := make([]hashedRef, len(data)+1)
	copy(out, data[:pos])
	out[pos] = hr
	copy(out[pos+1:], data[pos:])
	return out
}
