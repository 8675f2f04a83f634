package broadphase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_PutGetDelete(t *testing.T) {
	tbl := newTable[string, int]()

	_, ok := tbl.Get("missing")
	assert.False(t, ok)
	assert.False(t, tbl.Delete("missing"))

	tbl.Put("a", 1)
	tbl.Put("b", 2)
	tbl.Put("a", 3)

	assert.Equal(t, 2, tbl.Len())

	v, ok := tbl.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	require.True(t, tbl.Delete("a"))
	_, ok = tbl.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, tbl.Len())

	// A tombstoned slot is reusable.
	tbl.Put("a", 4)
	v, ok = tbl.Get("a")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestTable_GrowthKeepsEntries(t *testing.T) {
	tbl := newTable[int, int]()

	const n = 1000
	for i := 0; i < n; i++ {
		tbl.Put(i, i*i)
	}

	require.Equal(t, n, tbl.Len())

	for i := 0; i < n; i++ {
		v, ok := tbl.Get(i)
		require.True(t, ok, "key %d lost", i)
		require.Equal(t, i*i, v)
	}
}

func TestTable_ChurnDropsTombstones(t *testing.T) {
	tbl := newTable[string, int]()

	for round := 0; round < 50; round++ {
		for i := 0; i < 20; i++ {
			tbl.Put(fmt.Sprintf("r%d-%d", round, i), i)
		}
		for i := 0; i < 20; i++ {
			require.True(t, tbl.Delete(fmt.Sprintf("r%d-%d", round, i)))
		}
	}

	assert.Equal(t, 0, tbl.Len())

	// The table stays bounded despite the churn: rehashes drop
	// tombstones instead of accumulating them.
	assert.LessOrEqual(t, len(tbl.slots), 64)
}

func TestTable_Range(t *testing.T) {
	tbl := newTable[string, int]()
	tbl.Put("a", 1)
	tbl.Put("b", 2)
	tbl.Put("c", 3)
	tbl.Delete("b")

	seen := map[string]int{}
	tbl.Range(func(k string, v int) bool {
		seen[k] = v

		return true
	})

	assert.Equal(t, map[string]int{"a": 1, "c": 3}, seen)

	// An early stop visits fewer entries.
	calls := 0
	tbl.Range(func(string, int) bool {
		calls++

		return false
	})
	assert.Equal(t, 1, calls)
}
