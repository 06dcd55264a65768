package lits

// entry is a heap-resident key/value record. An entry is referenced by at
// most one item at any time.
type entry struct {
	key   []byte
	value uint64
}

// newEntry copies key into a freshly owned entry. The caller's slice may be
// reused or mutated afterward without affecting the entry.
func newEntry(key []byte, value uint64) *entry {
	owned := make([]byte, len(key))
	copy(owned, key)
	return &entry{key: owned, value: value}
}

// verify reports whether the suffix of e's key at offset ofs equals the
// suffix of key at the same offset.
func (e *entry) verify(key []byte, ofs int) bool {
	return ustrcmp(e.key[minInt(ofs, len(e.key)):], key[minInt(ofs, len(key)):]) == 0
}

// keycmp compares key against e's key, both starting at offset ofs.
func (e *entry) keycmp(key []byte, ofs int) int {
	return ustrcmp(e.key[minInt(ofs, len(e.key)):], key[minInt(ofs, len(key)):])
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// hashedRef is a hash-annotated pointer: a 16-bit hashStr of the referenced
// entry's key alongside the entry itself. CNodes use these to
// short-circuit linear scans.
type hashedRef struct {
	hash uint16
	ref  *entry
}

func newHashedRef(e *entry) hashedRef {
	return hashedRef{hash: hashStr(e.key), ref: e}
}
