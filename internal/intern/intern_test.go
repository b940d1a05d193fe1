package intern

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type value struct{ key string }

func TestIntern(t *testing.T) {
	tbl := New[string, *value](4)

	a, stored := tbl.Intern("a", func() *value { return &value{key: "a"} })
	require.True(t, stored)

	b, stored := tbl.Intern("a", func() *value {
		t.Fatal("mk called for known key")
		return nil
	})
	assert.False(t, stored)
	assert.Same(t, a, b)

	v, ok := tbl.Load("a")
	assert.True(t, ok)
	assert.Same(t, a, v)

	_, ok = tbl.Load("b")
	assert.False(t, ok)
	assert.Equal(t, 1, tbl.Len())
}

func TestZeroPartitions(t *testing.T) {
	tbl := New[int, int](0)
	assert.Equal(t, 1, tbl.NumPart())

	v, _ := tbl.Intern(7, func() int { return 49 })
	assert.Equal(t, 49, v)
}

func TestInternConcurrent(t *testing.T) {
	const numWorker, numKey = 16, 500

	tbl := New[string, *value](DefaultNumPart)
	var numMk atomic.Int64
	results := make([][]*value, numWorker)

	var g errgroup.Group
	for w := 0; w < numWorker; w++ {
		g.Go(func() error {
			results[w] = make([]*value, numKey)
			for i := 0; i < numKey; i++ {
				k := fmt.Sprintf("k%d", i)
				results[w][i], _ = tbl.Intern(k, func() *value {
					numMk.Add(1)
					return &value{key: k}
				})
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, numKey, numMk.Load(), "each key is built exactly once")
	assert.Equal(t, numKey, tbl.Len())
	for w := 1; w < numWorker; w++ {
		for i := 0; i < numKey; i++ {
			assert.Same(t, results[0][i], results[w][i])
		}
	}
}
