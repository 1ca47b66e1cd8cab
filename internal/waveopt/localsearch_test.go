package waveopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSearch_AddsPositiveValueOrder(t *testing.T) {
	in, err := NewInstance(2, 2, 2, 0, 100,
		[][]Demand{{{Item: 0, Qty: 10}}, {{Item: 1, Qty: 10}}},
		[][]Demand{{{Item: 0, Qty: 10}}, {{Item: 1, Qty: 10}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	sol := NewSolution(idx)
	sol.AddOrder(0)
	sol.ReplaceCover(map[AisleID]struct{}{0: {}})

	refined, err := LocalSearch(in, idx, DefaultConfig(), sol, 0.5)
	require.NoError(t, err)
	assert.True(t, refined.HasOrder(1))
}

func TestLocalSearch_RollsBackInfeasibleMove(t *testing.T) {
	// Order 1 requires more stock than aisle 0 can provide once selected
	// alongside order 0; adding it should never leave a stock violation.
	in, err := NewInstance(1, 2, 1, 0, 100,
		[][]Demand{{{Item: 0, Qty: 5}}, {{Item: 0, Qty: 10}}},
		[][]Demand{{{Item: 0, Qty: 8}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	sol := NewSolution(idx)
	sol.AddOrder(0)
	sol.ReplaceCover(map[AisleID]struct{}{0: {}})

	refined, err := LocalSearch(in, idx, DefaultConfig(), sol, 0.1)
	require.NoError(t, err)

	fr := CheckFeasibility(in, refined, true)
	assert.True(t, fr.OK())
}

func TestLocalSearch_RemoveRespectsLowerBound(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 3, 100,
		[][]Demand{{{Item: 0, Qty: 3}}},
		[][]Demand{{{Item: 0, Qty: 5}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	sol := NewSolution(idx)
	sol.AddOrder(0)
	sol.ReplaceCover(map[AisleID]struct{}{0: {}})

	refined, err := LocalSearch(in, idx, DefaultConfig(), sol, 10.0)
	require.NoError(t, err)
	assert.True(t, refined.HasOrder(0))
}
