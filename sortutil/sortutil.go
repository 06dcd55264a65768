// Package sortutil prepares a raw, unordered key/value corpus for bulk
// loading: sorting by key and rejecting duplicates, the precondition every
// bulk-load entry point requires of its input.
package sortutil

import (
	"encoding/binary"

	"github.com/dgryski/go-radixsort"
)

// Pair is a single key/value entry awaiting sort.
type Pair struct {
	Key   []byte
	Value uint64
}

// indexTagLen is the width of the original-index suffix tagKey appends.
const indexTagLen = 8

// PrepareSorted sorts pairs by Key ascending, using go-radixsort's in-place
// byte-string sort to do the actual ordering, and reports whether the
// result contains a duplicate key.
//
// radixsort.Bytes only reorders a [][]byte; it carries no bookkeeping of
// which Pair a sorted key came from, and LITS keys are NUL-free (the
// supported alphabet is 0x01..0x7F), so each key is tagged with a 0x00
// separator followed by its original index before sorting. The separator
// is smaller than every valid key byte, so it reproduces the same
// shorter-prefix-sorts-first rule ustrcmp applies (see cmpPrefixAt); two
// distinct keys already differ before either one's separator is reached,
// so the tag can only ever break a tie between two equal keys, which is
// exactly the duplicate case this function needs to detect.
func PrepareSorted(pairs []Pair) (sorted []Pair, hasDuplicate bool) {
	tagged := make([][]byte, len(pairs))
	for i, p := range pairs {
		tagged[i] = tagKey(p.Key, i)
	}

	radixsort.Bytes(tagged)

	sorted = make([]Pair, len(pairs))
	for i, tk := range tagged {
		sorted[i] = pairs[untagIndex(tk)]
		if i > 0 && bytesEqual(sorted[i-1].Key, sorted[i].Key) {
			hasDuplicate = true
		}
	}
	return sorted, hasDuplicate
}

func tagKey(key []byte, idx int) []byte {
	tagged := make([]byte, len(key)+1+indexTagLen)
	copy(tagged, key)
	// tagged[len(key)] is left 0x00, the separator.
	binary.BigEndian.PutUint64(tagged[len(key)+1:], uint64(idx))
	return tagged
}

func untagIndex(tagged []byte) int {
	return int(binary.BigEndian.Uint64(tagged[len(tagged)-indexTagLen:]))
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
