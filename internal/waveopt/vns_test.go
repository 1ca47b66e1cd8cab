package waveopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVNS_NeverWorsensRatio(t *testing.T) {
	in, err := NewInstance(3, 3, 3, 10, 12,
		[][]Demand{
			{{Item: 0, Qty: 10}},
			{{Item: 1, Qty: 1}, {Item: 2, Qty: 1}},
			{{Item: 0, Qty: 2}},
		},
		[][]Demand{
			{{Item: 0, Qty: 12}},
			{{Item: 1, Qty: 5}},
			{{Item: 2, Qty: 5}},
		},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	construct, err := Construct(in, idx, DefaultConfig())
	require.NoError(t, err)
	require.True(t, construct.ReachedLB)
	startRatio := construct.Solution.Ratio()

	cfg := DefaultConfig()
	refined, err := RunVNS(in, idx, cfg, construct.Solution, startRatio, 7, 2)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, refined.Ratio(), startRatio)

	fr := CheckFeasibility(in, refined, true)
	assert.True(t, fr.OK())
}

func TestRunVNS_DeterministicAcrossWorkerCounts(t *testing.T) {
	in, err := NewInstance(3, 3, 3, 10, 12,
		[][]Demand{
			{{Item: 0, Qty: 10}},
			{{Item: 1, Qty: 1}, {Item: 2, Qty: 1}},
			{{Item: 0, Qty: 2}},
		},
		[][]Demand{
			{{Item: 0, Qty: 12}},
			{{Item: 1, Qty: 5}},
			{{Item: 2, Qty: 5}},
		},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	construct, err := Construct(in, idx, DefaultConfig())
	require.NoError(t, err)
	require.True(t, construct.ReachedLB)
	startRatio := construct.Solution.Ratio()
	cfg := DefaultConfig()

	var results []*Solution
	for _, workers := range []int{1, 2, 4, 8} {
		refined, err := RunVNS(in, idx, cfg, construct.Solution.Clone(), startRatio, 7, workers)
		require.NoError(t, err)
		results = append(results, refined)
	}

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0].Orders(), results[i].Orders(), "workerCount must not change which orders RunVNS settles on")
		assert.Equal(t, results[0].Aisles(), results[i].Aisles())
		assert.Equal(t, results[0].Ratio(), results[i].Ratio())
	}
}

func TestShake_SwapKeepsSelectionSizeStable(t *testing.T) {
	in, err := NewInstance(1, 4, 1, 0, 100,
		[][]Demand{{{Item: 0, Qty: 3}}, {{Item: 0, Qty: 4}}, {{Item: 0, Qty: 5}}, {{Item: 0, Qty: 6}}},
		[][]Demand{{{Item: 0, Qty: 20}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	sol := NewSolution(idx)
	sol.AddOrder(0)
	sol.AddOrder(1)

	rng := workerRNG(1, 0)
	shakeSwap(in, idx, sol, rng, 1)

	assert.Len(t, sol.Orders(), 2)
}
