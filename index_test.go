package lits

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schencoding/lits/hpt"
	"github.com/schencoding/lits/sortutil"
)

func TestOperationsPanicBeforeBulkload(t *testing.T) {
	idx := NewIndex()
	require.Panics(t, func() { idx.Lookup([]byte("a")) })
	require.Panics(t, func() { idx.Insert([]byte("a"), 1) })
	require.Panics(t, func() { idx.Upsert([]byte("a"), 1) })
	require.Panics(t, func() { idx.Remove([]byte("a")) })
	require.Panics(t, func() { idx.Len() })
	require.Panics(t, func() { idx.Begin() })
	require.Panics(t, func() { idx.Find([]byte("a")) })
	require.Panics(t, func() { idx.Stats() })
	require.Panics(t, func() { idx.ByteSize() })
	require.Panics(t, func() { idx.Destroy() })
}

func TestBulkloadTwicePanics(t *testing.T) {
	idx := buildSequential(t, 1000)
	require.Panics(t, func() { idx.Bulkload([][]byte{[]byte("x")}, []uint64{1}) })
}

func TestInvalidKeyPanics(t *testing.T) {
	idx := buildSequential(t, 1000)
	require.Panics(t, func() { idx.Insert(nil, 1) })
	require.Panics(t, func() { idx.Insert([]byte{0x00}, 1) })
	require.Panics(t, func() { idx.Insert([]byte{0x80}, 1) })
}

func TestDestroyResetsIndex(t *testing.T) {
	idx := buildSequential(t, 1000)
	require.Equal(t, 1000, idx.Len())

	idx.Destroy()
	require.Panics(t, func() { idx.Len() })

	keys := make([][]byte, 1000)
	values := make([]uint64, 1000)
	for i := range keys {
		keys[i] = keyN(i)
		values[i] = uint64(i)
	}
	require.NoError(t, idx.Bulkload(keys, values))
	require.Equal(t, 1000, idx.Len())
}

func TestStatsTallyMatchesEntryCount(t *testing.T) {
	idx := buildSequential(t, 2000)
	s := idx.Stats()
	require.Equal(t, 2000, s.Entries)
	require.Equal(t, s.Singles+sumCNodeEntries(idx)+sumTrieEntries(idx), s.Entries)
}

func sumCNodeEntries(idx *Index) int {
	n := 0
	walkItems(&idx.root, func(it *item) {
		if it.kind == itemCNode {
			n += len(it.cnode.data)
		}
	})
	return n
}

func sumTrieEntries(idx *Index) int {
	n := 0
	walkItems(&idx.root, func(it *item) {
		if it.kind == itemTrie {
			n += it.trie.Len()
		}
	})
	return n
}

func walkItems(it *item, fn func(*item)) {
	fn(it)
	if it.kind == itemInner {
		for i := range it.inner.items {
			walkItems(&it.inner.items[i], fn)
		}
	}
}

func TestMemoryFootprintIsNonEmptyString(t *testing.T) {
	idx := buildSequential(t, 1000)
	require.NotEmpty(t, idx.MemoryFootprint())
	require.Greater(t, idx.ByteSize(), 0)
}

func TestWithPretrainedHPTSkipsTraining(t *testing.T) {
	keys := make([][]byte, 1000)
	values := make([]uint64, 1000)
	for i := range keys {
		keys[i] = keyN(i)
		values[i] = uint64(i)
	}
	model := hpt.New()
	model.Train(keys)

	idx := NewIndex(WithPretrainedHPT(model))
	require.NoError(t, idx.Bulkload(keys, values))

	v, ok := idx.Lookup(keyN(500))
	require.True(t, ok)
	require.EqualValues(t, 500, v)
}

func TestWithMinBulkLoadSizeOverride(t *testing.T) {
	idx := NewIndex(WithMinBulkLoadSize(3))
	keys := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	values := []uint64{1, 2, 3}
	require.NoError(t, idx.Bulkload(keys, values))
	require.Equal(t, 3, idx.Len())
}

func TestBulkloadPairsSortsUnorderedInput(t *testing.T) {
	n := 1200
	pairs := make([]sortutil.Pair, n)
	for i := 0; i < n; i++ {
		pairs[n-1-i] = sortutil.Pair{Key: []byte(fmt.Sprintf("rec%06d", i)), Value: uint64(i)}
	}
	idx := NewIndex()
	require.NoError(t, idx.BulkloadPairs(pairs))

	v, ok := idx.Lookup([]byte(fmt.Sprintf("rec%06d", 500)))
	require.True(t, ok)
	require.EqualValues(t, 500, v)
}
