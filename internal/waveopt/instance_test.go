package waveopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstance_SumsDuplicateItemsAndDropsZero(t *testing.T) {
	in, err := NewInstance(2, 1, 1, 0, 10,
		[][]Demand{{{Item: 0, Qty: 2}, {Item: 0, Qty: 3}, {Item: 1, Qty: 0}}},
		[][]Demand{{{Item: 0, Qty: 10}}},
	)
	require.NoError(t, err)
	assert.Equal(t, map[ItemID]int{0: 5}, in.Order(0))
}

func TestNewInstance_RejectsOutOfRangeItem(t *testing.T) {
	_, err := NewInstance(1, 1, 1, 0, 10,
		[][]Demand{{{Item: 5, Qty: 1}}},
		[][]Demand{{{Item: 0, Qty: 1}}},
	)
	assert.Error(t, err)
	assert.IsType(t, InvalidInstanceError{}, err)
}

func TestNewInstance_RejectsLBGreaterThanUB(t *testing.T) {
	_, err := NewInstance(1, 1, 1, 10, 5,
		[][]Demand{{{Item: 0, Qty: 1}}},
		[][]Demand{{{Item: 0, Qty: 1}}},
	)
	assert.Error(t, err)
}

func TestSolution_AddRemoveOrder(t *testing.T) {
	idx := &IndexBundle{TotalUnits: []int{3, 5, 2}}
	s := NewSolution(idx)

	s.AddOrder(0)
	s.AddOrder(1)
	assert.Equal(t, 8, s.TotalUnits())
	assert.True(t, s.HasOrder(0))

	s.RemoveOrder(0)
	assert.Equal(t, 5, s.TotalUnits())
	assert.False(t, s.HasOrder(0))

	// Clone is independent.
	clone := s.Clone()
	clone.AddOrder(2)
	assert.Equal(t, 5, s.TotalUnits())
	assert.Equal(t, 7, clone.TotalUnits())
}

func TestSolution_RatioZeroWithNoAisles(t *testing.T) {
	idx := &IndexBundle{TotalUnits: []int{3}}
	s := NewSolution(idx)
	s.AddOrder(0)
	assert.Equal(t, 0.0, s.Ratio())
}
