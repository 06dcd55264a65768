package hpt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sortedKeys(n int) [][]byte {
	keys := make([][]byte, n)
	for i := 0; i < n; i++ {
		keys[i] = []byte(fmt.Sprintf("key%05d", i))
	}
	return keys
}

func TestTrainMonotoneGetPos(t *testing.T) {
	keys := sortedKeys(500)
	table := New()
	table.Train(keys)

	k, b := 1.0, 0.0
	prev := -1
	for _, key := range keys {
		pos := table.GetPosNoGCPL(key, len(keys), k, b)
		require.GreaterOrEqual(t, pos, prev)
		prev = pos
	}
}

func TestGetCdfMonotone(t *testing.T) {
	keys := sortedKeys(200)
	table := New()
	table.Train(keys)

	prev := -1.0
	for _, key := range keys {
		cdf := table.GetCdf(key, 0)
		require.GreaterOrEqual(t, cdf, prev)
		prev = cdf
	}
}

func TestUntrainedTableIsZero(t *testing.T) {
	table := New()
	require.Equal(t, 0, table.GetPosNoGCPL([]byte("anything"), 100, 1, 0))
	require.Equal(t, 0.0, table.GetCdf([]byte("anything"), 0))
}

func TestTrainEmptyCorpusNoPanic(t *testing.T) {
	table := New()
	require.NotPanics(t, func() { table.Train(nil) })
}

func TestByteSizeIsFixed(t *testing.T) {
	a := New()
	b := New()
	b.Train(sortedKeys(50))
	require.Equal(t, a.ByteSize(), b.ByteSize())
	require.Greater(t, a.ByteSize(), 0)
}

func TestGetPosWithGCPL(t *testing.T) {
	keys := make([][]byte, 0, 300)
	for i := 0; i < 300; i++ {
		keys = append(keys, []byte(fmt.Sprintf("sharedprefix-%05d", i)))
	}
	table := New()
	table.Train(keys)

	gcpl := 13
	first := table.GetPos(keys[0], len(keys), gcpl, 1, 0)
	last := table.GetPos(keys[len(keys)-1], len(keys), gcpl, 1, 0)
	require.LessOrEqual(t, first, last)
}
