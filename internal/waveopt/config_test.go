package waveopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Validates(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate_RejectsBadEpsilon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Epsilon = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsHardLessThanSoft(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeBudgetHardFraction = cfg.TimeBudgetSoftFraction
	assert.Error(t, cfg.Validate())
}

func TestResolvedWorkerCount_ClampsExplicitValue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkerCount = 64
	assert.Equal(t, 8, cfg.ResolvedWorkerCount())
}

func TestResolvedWorkerCount_ResolvesZeroToCoresClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkerCount = 0
	n := cfg.ResolvedWorkerCount()
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 8)
}
