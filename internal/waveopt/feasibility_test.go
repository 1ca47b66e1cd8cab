package waveopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFeasibility_OK(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 1, 10,
		[][]Demand{{{Item: 0, Qty: 3}}},
		[][]Demand{{{Item: 0, Qty: 5}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	s := NewSolution(idx)
	s.AddOrder(0)
	s.ReplaceCover(map[AisleID]struct{}{0: {}})

	fr := CheckFeasibility(in, s, true)
	assert.True(t, fr.OK())
}

func TestCheckFeasibility_BelowLowerBound(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 10, 20,
		[][]Demand{{{Item: 0, Qty: 3}}},
		[][]Demand{{{Item: 0, Qty: 5}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	s := NewSolution(idx)
	s.AddOrder(0)
	s.ReplaceCover(map[AisleID]struct{}{0: {}})

	fr := CheckFeasibility(in, s, true)
	assert.Equal(t, BelowLowerBound, fr.Status)
	assert.False(t, fr.OK())
}

func TestCheckFeasibility_StockInsufficient(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 0, 20,
		[][]Demand{{{Item: 0, Qty: 10}}},
		[][]Demand{{{Item: 0, Qty: 5}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	s := NewSolution(idx)
	s.AddOrder(0)
	s.ReplaceCover(map[AisleID]struct{}{0: {}})

	fr := CheckFeasibility(in, s, true)
	assert.Equal(t, StockInsufficient, fr.Status)
}

func TestCheckFeasibility_SkipsStockCheckWhenDisabled(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 0, 20,
		[][]Demand{{{Item: 0, Qty: 10}}},
		[][]Demand{{{Item: 0, Qty: 5}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	s := NewSolution(idx)
	s.AddOrder(0)
	s.ReplaceCover(map[AisleID]struct{}{0: {}})

	fr := CheckFeasibility(in, s, false)
	assert.True(t, fr.OK())
}

func TestCheckFeasibility_UnknownOrder(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 0, 20,
		[][]Demand{{{Item: 0, Qty: 1}}},
		[][]Demand{{{Item: 0, Qty: 5}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)
	for len(idx.TotalUnits) <= 5 {
		idx.TotalUnits = append(idx.TotalUnits, 1) // allow AddOrder(5) without index panic
	}

	s := NewSolution(idx)
	s.AddOrder(5)

	fr := CheckFeasibility(in, s, true)
	assert.Equal(t, UnknownOrder, fr.Status)
	assert.Equal(t, 5, fr.ID)
}
