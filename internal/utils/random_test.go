package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureRandomInt_Bounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n, err := SecureRandomInt(1, 10)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 10)
	}
}

func TestSecureRandomInt_SingleValue(t *testing.T) {
	n, err := SecureRandomInt(7, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestSecureRandomInt_InvalidRange(t *testing.T) {
	_, err := SecureRandomInt(5, 1)
	assert.Error(t, err)
}

func TestSequenceRandom(t *testing.T) {
	rnd := SequenceRandom(3, 50, -2)

	tests := []struct {
		name     string
		expected int
	}{
		{"in range value passes through", 3},
		{"above range clamps to max", 10},
		{"below range clamps to min", 1},
		{"sequence wraps", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := rnd(1, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}
