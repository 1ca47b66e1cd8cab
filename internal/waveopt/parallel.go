package waveopt

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// chunk is a contiguous [lo, hi) sub-range of OrderIds or AisleIds assigned
// to one worker during an index build or order scoring pass.
type chunk struct {
	lo, hi int
}

// chunkRange partitions [0, n) into at most workerCount contiguous chunks of
// roughly equal size. workerCount <= 1 yields a single chunk, which keeps
// BuildIndex/order-scoring sequential without a separate code path.
func chunkRange(n, workerCount int) []chunk {
	if workerCount < 1 {
		workerCount = 1
	}
	if n == 0 {
		return nil
	}
	if workerCount > n {
		workerCount = n
	}
	base := n / workerCount
	rem := n % workerCount
	chunks := make([]chunk, 0, workerCount)
	lo := 0
	for i := 0; i < workerCount; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, chunk{lo: lo, hi: lo + size})
		lo += size
	}
	return chunks
}

// runChunked runs fn once per chunk, fanning out across an errgroup when
// there is more than one chunk. Each invocation receives
// its chunk index so callers can write into pre-sized per-chunk result
// slices without any shared mutable state between workers. The merge back
// into a single ordered result happens in the caller, on the calling
// goroutine, preserving the determinism guarantee of the overall merge.
//
// cf may be nil, meaning the kernel can't be safely interrupted mid-run
// (e.g. BuildIndex: a partial IndexBundle would silently corrupt every
// downstream bound check). When cf is non-nil and becomes set, chunks not
// yet started are skipped; a chunk already running is never preempted
// mid-chunk, only drained.
func runChunked(chunks []chunk, cf *cancelFlag, fn func(chunkIndex, lo, hi int)) {
	if len(chunks) <= 1 {
		for i, c := range chunks {
			if cf != nil && cf.IsSet() {
				return
			}
			fn(i, c.lo, c.hi)
		}
		return
	}

	var g errgroup.Group
	for i, c := range chunks {
		if cf != nil && cf.IsSet() {
			break
		}
		i, c := i, c
		g.Go(func() error {
			fn(i, c.lo, c.hi)
			return nil
		})
	}
	_ = g.Wait() // fn never returns an error; kept for the errgroup idiom
}

// cancelFlag is the shared atomic cancel signal polled between chunks: once
// set, a worker drains its in-flight chunk and returns the best-so-far
// rather than starting a new one. No preemption happens inside a single
// chunk.
type cancelFlag struct {
	v atomic.Bool
}

func (c *cancelFlag) Set()          { c.v.Store(true) }
func (c *cancelFlag) IsSet() bool   { return c.v.Load() }
