package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoundRobinConfig(t *testing.T) {
	cfg, err := NewRoundRobinConfig(3)
	require.NoError(t, err)
	assert.Equal(t, RoundRobinConfig{Quantum: 3}, cfg)

	for _, q := range []int64{0, -2} {
		_, err := NewRoundRobinConfig(q)
		assert.ErrorIs(t, err, ErrInvalidQuantum, "quantum %d", q)
	}
}

func TestNewMLFQConfig_FieldEquivalence(t *testing.T) {
	quanta := []int64{4, 8, 16}
	got, err := NewMLFQConfig(3, quanta, 50)
	require.NoError(t, err)
	assert.Equal(t, MLFQConfig{Quanta: []int64{4, 8, 16}, BoostInterval: 50}, got)
	assert.Equal(t, 3, got.NumQueues())

	// The config owns its quanta.
	quanta[0] = 99
	assert.Equal(t, int64(4), got.Quanta[0])
}

func TestNewMLFQConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		numQueues int
		quanta    []int64
		boost     int64
		wantErr   error
	}{
		{"count mismatch", 3, []int64{4, 8}, 50, ErrConfigMismatch},
		{"no queues", 0, nil, 0, ErrConfigMismatch},
		{"zero quantum", 2, []int64{4, 0}, 0, ErrInvalidQuantum},
		{"negative quantum", 1, []int64{-1}, 0, ErrInvalidQuantum},
		{"negative boost", 1, []int64{2}, -5, ErrInvalidBoost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMLFQConfig(tt.numQueues, tt.quanta, tt.boost)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMLFQConfig_ZeroBoostIsValid(t *testing.T) {
	_, err := NewMLFQConfig(1, []int64{1}, 0)
	assert.NoError(t, err)
}
