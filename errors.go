package lits

import (
	"errors"
	"fmt"
)

// minBulkLoadSize is the default floor on Bulkload's input: a corpus this
// small trains an HPT on too few samples to be worth a learned structure
// at all.
const minBulkLoadSize = 1000

// Sentinel errors reported by Bulkload. The returned ones are wrapped with
// context via fmt.Errorf's %w so callers can still match with errors.Is;
// ErrAlreadyBuilt is instead the value a second Bulkload call panics with.
var (
	ErrTooFewKeys   = errors.New("lits: bulk-load input has fewer keys than the minimum bulk-load size")
	ErrUnsorted     = errors.New("lits: bulk-load input is not strictly increasing")
	ErrDuplicate    = errors.New("lits: bulk-load input contains a duplicate key")
	ErrAlreadyBuilt = errors.New("lits: index already built")
)

// assertValidKey panics on a PreconditionViolation: an out-of-alphabet
// byte is a programming error in the caller, not a recoverable failure.
func assertValidKey(key []byte) {
	if len(key) == 0 {
		panic("lits: key must be non-empty")
	}
	if !validKey(key) {
		panic(fmt.Sprintf("lits: key %q contains a byte outside the supported alphabet (0x01..0x7f)", key))
	}
}

// assertBuilt panics when an operation other than Bulkload is called
// before the index has been built.
func (idx *Index) assertBuilt() {
	if !idx.built {
		panic("lits: operation called before Bulkload")
	}
}
