package waveopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruct_InfeasibleBoundsWhenTotalDemandBelowLB(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 5, 10,
		[][]Demand{{{Item: 0, Qty: 2}}},
		[][]Demand{{{Item: 0, Qty: 2}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	_, err = Construct(in, idx, DefaultConfig())
	require.Error(t, err)
	assert.IsType(t, InfeasibleBoundsError{}, err)
}

func TestConstruct_ReachesLBAndRecordsFeasibleMark(t *testing.T) {
	in, err := NewInstance(1, 1, 1, 1, 10,
		[][]Demand{{{Item: 0, Qty: 3}}},
		[][]Demand{{{Item: 0, Qty: 5}}},
	)
	require.NoError(t, err)
	idx, err := BuildIndex(in, 1)
	require.NoError(t, err)

	result, err := Construct(in, idx, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, result.ReachedLB)
	assert.True(t, result.FeasibleMark.OK())
}
