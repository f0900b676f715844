package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorSequentialUnique(t *testing.T) {
	alloc := NewAllocator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := alloc.Next()
		require.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
}

func TestAllocatorConcurrentUnique(t *testing.T) {
	alloc := NewAllocator()

	const workers = 16
	const perWorker = 500

	var wg sync.WaitGroup
	results := make([][]string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				ids = append(ids, alloc.Next())
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()

	seen := make(map[string]bool, workers*perWorker)
	for _, ids := range results {
		for _, id := range ids {
			require.False(t, seen[id], "duplicate identifier %s", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestAllocatorsHaveDistinctTokens(t *testing.T) {
	a := NewAllocator()
	b := NewAllocator()
	assert.NotEqual(t, a.Token(), b.Token())
	assert.NotEqual(t, a.Next(), b.Next())
}
