package lits

import (
	"fmt"

	"github.com/schencoding/lits/hpt"
	"github.com/schencoding/lits/sortutil"
	"github.com/schencoding/lits/utils"
)

// Index is a learned string index: an ordered, in-memory map from
// NUL-free byte-string keys (alphabet 0x01..0x7F) to uint64 values. It
// must be built once via Bulkload before any other operation is valid,
// and it is not safe for concurrent use.
type Index struct {
	root  item
	model *hpt.Table
	count int

	built           bool
	pretrained      bool
	minBulkLoadSize int
}

// NewIndex returns an unbuilt Index. Call Bulkload before any other
// operation.
func NewIndex(opts ...Option) *Index {
	idx := &Index{minBulkLoadSize: minBulkLoadSize}
	for _, opt := range opts {
		opt.apply(idx)
	}
	return idx
}

// Bulkload builds the index from a sorted, duplicate-free run of keys and
// their matching values. It fails (returning a wrapped sentinel error,
// index left unbuilt) when there are fewer than the configured minimum
// keys, the keys are not strictly increasing, or an adjacent pair is
// equal. Calling Bulkload a second time is a PreconditionViolation.
func (idx *Index) Bulkload(keys [][]byte, values []uint64) error {
	if idx.built {
		panic(ErrAlreadyBuilt)
	}
	if len(keys) != len(values) {
		panic("lits: keys and values must have equal length")
	}
	if len(keys) < idx.minBulkLoadSize {
		return fmt.Errorf("%w: got %d, need at least %d", ErrTooFewKeys, len(keys), idx.minBulkLoadSize)
	}
	for i, k := range keys {
		assertValidKey(k)
		if i > 0 {
			switch ustrcmp(keys[i-1], k) {
			case 0:
				return fmt.Errorf("%w: %q", ErrDuplicate, k)
			case 1:
				return fmt.Errorf("%w: %q before %q", ErrUnsorted, keys[i-1], k)
			}
		}
	}

	if !idx.pretrained {
		idx.model = hpt.New()
		idx.model.Train(keys)
	}

	entries := make([]*entry, len(keys))
	for i := range keys {
		entries[i] = newEntry(keys[i], values[i])
	}

	idx.root = pmssBulk(entries, 0, idx.model)
	idx.count = len(entries)
	idx.built = true
	return nil
}

// BulkloadPairs is Bulkload for callers holding an unordered corpus: it
// sorts pairs by key (via sortutil.PrepareSorted) before building.
func (idx *Index) BulkloadPairs(pairs []sortutil.Pair) error {
	sorted, dup := sortutil.PrepareSorted(pairs)
	if dup {
		return fmt.Errorf("%w", ErrDuplicate)
	}
	keys := utils.Map(sorted, func(p sortutil.Pair) []byte { return p.Key })
	values := utils.Map(sorted, func(p sortutil.Pair) uint64 { return p.Value })
	return idx.Bulkload(keys, values)
}

// Len returns the number of keys currently stored.
func (idx *Index) Len() int {
	idx.assertBuilt()
	return idx.count
}

// Destroy releases every entry, inner node, cnode, and embedded trie the
// index owns and returns it to an unbuilt state. Go's garbage collector
// reclaims the underlying memory once nothing references it; Destroy's
// job is to drop the index's own references so that can happen without
// waiting for the Index value itself to become unreachable.
func (idx *Index) Destroy() {
	idx.assertBuilt()
	idx.root = item{}
	idx.count = 0
	idx.built = false
}
