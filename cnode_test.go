package lits

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sortedEntries(n int) []*entry {
	entries := make([]*entry, n)
	for i := 0; i < n; i++ {
		entries[i] = newEntry([]byte(fmt.Sprintf("key%04d", i)), uint64(i))
	}
	return entries
}

func TestCNodeSearch(t *testing.T) {
	c := newCNode(sortedEntries(10), 0)

	e, ok := c.search([]byte("key0005"))
	require.True(t, ok)
	require.EqualValues(t, 5, e.value)

	_, ok = c.search([]byte("key9999"))
	require.False(t, ok)
}

func TestCNodeInsertWithRoom(t *testing.T) {
	c := newCNode(sortedEntries(5), 0)
	require.True(t, c.hasRoom())

	ok := c.insertWithRoom([]byte("key0002a"), 99)
	require.True(t, ok)

	e, found := c.search([]byte("key0002a"))
	require.True(t, found)
	require.EqualValues(t, 99, e.value)

	ok = c.insertWithRoom([]byte("key0002"), 111)
	require.False(t, ok)
}

func TestCNodeUpsertWithRoom(t *testing.T) {
	c := newCNode(sortedEntries(5), 0)

	old, existed := c.upsertWithRoom([]byte("key0002"), 500)
	require.True(t, existed)
	require.EqualValues(t, 2, old)
	e, _ := c.search([]byte("key0002"))
	require.EqualValues(t, 500, e.value)

	old, existed = c.upsertWithRoom([]byte("key9999"), 500)
	require.False(t, existed)
	require.EqualValues(t, 0, old)
}

func TestCNodeRemoveWithRoom(t *testing.T) {
	c := newCNode(sortedEntries(5), 0)
	require.True(t, c.moreThanTwo())

	require.True(t, c.removeWithRoom([]byte("key0002")))
	require.False(t, c.removeWithRoom([]byte("key0002")))

	_, ok := c.search([]byte("key0002"))
	require.False(t, ok)
}

func TestCNodeDegrade(t *testing.T) {
	c := newCNode(sortedEntries(2), 0)

	survivor, ok := c.degrade([]byte("key0000"))
	require.True(t, ok)
	require.Equal(t, []byte("key0001"), survivor.key)

	_, ok = c.degrade([]byte("key9999"))
	require.False(t, ok)
}

func TestCNodeFullTriggersNoRoom(t *testing.T) {
	c := newCNode(sortedEntries(cnodeSize), 0)
	require.False(t, c.hasRoom())

	entries, ok := c.extractSortedWithInsert([]byte("key9999"), 999)
	require.True(t, ok)
	require.Len(t, entries, cnodeSize+1)
	require.Equal(t, []byte("key9999"), entries[cnodeSize].key)
}

func TestCNodeExtractSortedWithInsertRejectsDuplicate(t *testing.T) {
	c := newCNode(sortedEntries(cnodeSize), 0)
	_, ok := c.extractSortedWithInsert([]byte("key0003"), 999)
	require.False(t, ok)
}

func TestCNodeExtractSortedWithUpsert(t *testing.T) {
	c := newCNode(sortedEntries(cnodeSize), 0)

	entries, old, existed := c.extractSortedWithUpsert([]byte("key0003"), 777)
	require.True(t, existed)
	require.EqualValues(t, 3, old)
	require.Nil(t, entries)
	e, _ := c.search([]byte("key0003"))
	require.EqualValues(t, 777, e.value)

	entries, old, existed = c.extractSortedWithUpsert([]byte("key9999"), 777)
	require.False(t, existed)
	require.EqualValues(t, 0, old)
	require.Len(t, entries, cnodeSize+1)
}

func TestCNodeExtract(t *testing.T) {
	c := newCNode(sortedEntries(6), 0)
	var out []*entry
	c.extract(&out)
	require.Len(t, out, 6)
	for i, e := range out {
		require.Equal(t, fmt.Sprintf("key%04d", i), string(e.key))
	}
}
