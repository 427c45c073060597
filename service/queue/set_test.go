package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrLevel)

	set, err := New(DefaultLevels)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Levels())
	assert.True(t, set.IsEmpty())
}

func TestSet_FIFOAtLevelZero(t *testing.T) {
	set, err := New(DefaultLevels)
	require.NoError(t, err)
	for _, slot := range []int{4, 1, 7} {
		require.NoError(t, set.Enqueue(slot, 0))
	}

	var order []int
	slot, _, ok := set.DispatchNext()
	require.True(t, ok)
	order = append(order, slot)
	require.NoError(t, set.Enqueue(9, 0))
	for !set.IsEmpty() {
		slot, level, ok := set.DispatchNext()
		require.True(t, ok)
		assert.Equal(t, 0, level)
		order = append(order, slot)
	}
	assert.Equal(t, []int{4, 1, 7, 9}, order)
}

func TestSet_StrictPriority(t *testing.T) {
	set, err := New(DefaultLevels)
	require.NoError(t, err)
	require.NoError(t, set.Enqueue(1, 2))
	require.NoError(t, set.Enqueue(2, 1))
	require.NoError(t, set.Enqueue(3, 0))
	require.NoError(t, set.Enqueue(4, 1))

	var testCases = []struct {
		slot  int
		level int
	}{
		{slot: 3, level: 0},
		{slot: 2, level: 1},
		{slot: 4, level: 1},
		{slot: 1, level: 2},
	}
	for _, testCase := range testCases {
		slot, level, ok := set.DispatchNext()
		assert.True(t, ok)
		assert.Equal(t, testCase.slot, slot)
		assert.Equal(t, testCase.level, level)
	}
	_, _, ok := set.DispatchNext()
	assert.False(t, ok)
	assert.True(t, set.IsEmpty())
}

func TestSet_Membership(t *testing.T) {
	set, err := New(2)
	require.NoError(t, err)

	require.NoError(t, set.Enqueue(5, 1))
	assert.ErrorIs(t, set.Enqueue(5, 0), ErrQueued)
	assert.ErrorIs(t, set.Enqueue(6, 2), ErrLevel)
	assert.ErrorIs(t, set.Enqueue(6, -1), ErrLevel)

	level, ok := set.Contains(5)
	assert.True(t, ok)
	assert.Equal(t, 1, level)
	assert.False(t, set.IsEmpty())
	assert.Equal(t, 1, set.Total())
	assert.Equal(t, 1, set.Len(1))
	assert.Equal(t, 0, set.Len(7))

	head, ok := set.Peek(1)
	assert.True(t, ok)
	assert.Equal(t, 5, head)
	_, ok = set.Peek(0)
	assert.False(t, ok)

	assert.Equal(t, [][]int{{}, {5}}, set.Snapshot())
	set.Reset()
	assert.True(t, set.IsEmpty())
	_, ok = set.Contains(5)
	assert.False(t, ok)
}
