package waveopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerRNG_DeterministicForSameInputs(t *testing.T) {
	a := workerRNG(42, 3)
	b := workerRNG(42, 3)
	assert.Equal(t, a.Int63(), b.Int63())
}

func TestWorkerRNG_DiffersAcrossWorkerIndex(t *testing.T) {
	a := workerRNG(42, 0)
	b := workerRNG(42, 1)
	assert.NotEqual(t, a.Int63(), b.Int63())
}
