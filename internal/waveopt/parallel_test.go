package waveopt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkRange_CoversWholeRangeExactlyOnce(t *testing.T) {
	for _, n := range []int{0, 1, 5, 7, 100} {
		for _, workers := range []int{1, 2, 3, 8} {
			chunks := chunkRange(n, workers)
			covered := make([]bool, n)
			for _, c := range chunks {
				for i := c.lo; i < c.hi; i++ {
					assert.False(t, covered[i], "index %d covered twice (n=%d, workers=%d)", i, n, workers)
					covered[i] = true
				}
			}
			for i, ok := range covered {
				assert.True(t, ok, "index %d never covered (n=%d, workers=%d)", i, n, workers)
			}
		}
	}
}

func TestRunChunked_NoSharedMutationRace(t *testing.T) {
	n := 1000
	chunks := chunkRange(n, 8)
	results := make([]int, len(chunks))
	var mu sync.Mutex
	runChunked(chunks, nil, func(ci, lo, hi int) {
		sum := 0
		for i := lo; i < hi; i++ {
			sum += i
		}
		mu.Lock()
		results[ci] = sum
		mu.Unlock()
	})

	total := 0
	for _, r := range results {
		total += r
	}
	assert.Equal(t, n*(n-1)/2, total)
}

func TestCancelFlag(t *testing.T) {
	var cf cancelFlag
	assert.False(t, cf.IsSet())
	cf.Set()
	assert.True(t, cf.IsSet())
}

func TestRunChunked_PreSetCancelFlagSkipsAllChunks(t *testing.T) {
	chunks := chunkRange(1000, 1) // single chunk: exercises the sequential path
	var cf cancelFlag
	cf.Set()
	ran := false
	runChunked(chunks, &cf, func(_, _, _ int) { ran = true })
	assert.False(t, ran, "a pre-set cancelFlag must stop runChunked before it starts any chunk")
}
