package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/arena"
)

func TestArena_Reserve(t *testing.T) {
	t.Parallel()

	budget := arena.New(10)
	require.NoError(t, budget.Reserve(6))
	require.NoError(t, budget.Reserve(4))
	assert.Equal(t, int64(10), budget.Used())

	err := budget.Reserve(1)
	require.ErrorIs(t, err, arena.ErrOutOfMemory)
	assert.Equal(t, int64(10), budget.Used(), "failed reservation must not be charged")

	budget.Release(5)
	assert.Equal(t, int64(5), budget.Used())
	assert.Equal(t, int64(10), budget.Peak())
	assert.Equal(t, int64(10), budget.Limit())
}

func TestArena_Unlimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		budget *arena.Arena
	}{
		{name: "nil arena", budget: nil},
		{name: "zero limit", budget: arena.New(0)},
		{name: "negative limit", budget: arena.New(-5)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, testCase.budget.Reserve(1<<40))
			assert.Zero(t, testCase.budget.Limit())
		})
	}
}

func TestArena_ReleaseClampsAtZero(t *testing.T) {
	t.Parallel()

	budget := arena.New(0)
	require.NoError(t, budget.Reserve(3))
	budget.Release(10)
	assert.Zero(t, budget.Used())
}
