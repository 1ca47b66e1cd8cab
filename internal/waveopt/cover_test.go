package waveopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCover_PicksFewestAislesForSharedItem(t *testing.T) {
	in, err := NewInstance(1, 1, 2, 0, 100,
		[][]Demand{{{Item: 0, Qty: 5}}},
		[][]Demand{{{Item: 0, Qty: 3}}, {{Item: 0, Qty: 10}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	demand := map[ItemID]int{0: 5}
	cover, err := BuildCover(in, idx, demand)
	require.NoError(t, err)

	// Aisle 1 alone satisfies demand=5 with higher coverage score than
	// aisle 0; the greedy should pick it first and stop.
	assert.Contains(t, cover, AisleID(1))
}

func TestBuildCover_InfeasibleWhenSupplyInsufficient(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 0, 100,
		[][]Demand{{{Item: 0, Qty: 10}}},
		[][]Demand{{{Item: 0, Qty: 3}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	_, err = BuildCover(in, idx, map[ItemID]int{0: 10})
	require.Error(t, err)
	assert.IsType(t, CoverInfeasibleError{}, err)
}

func TestBuildCover_NeverExceedsTrivialCover(t *testing.T) {
	in, err := NewInstance(3, 1, 3, 0, 100,
		[][]Demand{{{Item: 0, Qty: 1}, {Item: 1, Qty: 1}, {Item: 2, Qty: 1}}},
		[][]Demand{
			{{Item: 0, Qty: 5}, {Item: 1, Qty: 5}, {Item: 2, Qty: 5}},
			{{Item: 0, Qty: 5}},
			{{Item: 1, Qty: 5}},
		},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	demand := map[ItemID]int{0: 1, 1: 1, 2: 1}
	cover, err := BuildCover(in, idx, demand)
	require.NoError(t, err)
	trivial := TrivialCover(idx, demand)

	assert.LessOrEqual(t, len(cover), len(trivial))
}
