package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue holding [4, 7]
	rq := &ReadyQueue{}
	rq.Enqueue(4)
	rq.Enqueue(7)

	// WHEN Peek() is called
	got, ok := rq.Peek()

	// THEN it returns the front element without removing it
	require.True(t, ok)
	assert.Equal(t, 4, got)
	assert.Equal(t, 2, rq.Len())
}

func TestReadyQueue_Empty_PeekAndDequeueReportNotOK(t *testing.T) {
	rq := &ReadyQueue{}

	_, ok := rq.Peek()
	assert.False(t, ok)
	_, ok = rq.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, "[]", rq.String())
}

func TestReadyQueue_DequeuePreservesFIFOOrder(t *testing.T) {
	rq := &ReadyQueue{}
	for _, i := range []int{2, 0, 1} {
		rq.Enqueue(i)
	}
	assert.Equal(t, "[2 0 1]", rq.String())

	var got []int
	for {
		i, ok := rq.Dequeue()
		if !ok {
			break
		}
		got = append(got, i)
	}
	assert.Equal(t, []int{2, 0, 1}, got)
	assert.Equal(t, 0, rq.Len())
}

func TestReadyQueue_Drain_EmptiesQueue(t *testing.T) {
	rq := &ReadyQueue{}
	rq.Enqueue(3)
	rq.Enqueue(5)

	assert.Equal(t, []int{3, 5}, rq.Drain())
	assert.Equal(t, 0, rq.Len())
	assert.Empty(t, rq.Items())
}

func TestMultiLevelQueue_HighestNonEmpty(t *testing.T) {
	// GIVEN three levels with entries only in level 2
	mq := NewMultiLevelQueue(3)
	_, ok := mq.HighestNonEmpty()
	assert.False(t, ok)
	mq.Enqueue(2, 9)

	// WHEN an entry is added to level 1
	level, ok := mq.HighestNonEmpty()
	require.True(t, ok)
	assert.Equal(t, 2, level)
	mq.Enqueue(1, 8)

	// THEN level 1 wins
	level, ok = mq.HighestNonEmpty()
	require.True(t, ok)
	assert.Equal(t, 1, level)
	assert.Equal(t, []int{0, 1, 1}, mq.Depths())
}

func TestMultiLevelQueue_Flatten_AppendsLowerLevelsInAscendingOrder(t *testing.T) {
	// GIVEN level 0 = [0], level 1 = [1, 2], level 2 = [3]
	mq := NewMultiLevelQueue(3)
	mq.Enqueue(0, 0)
	mq.Enqueue(1, 1)
	mq.Enqueue(1, 2)
	mq.Enqueue(2, 3)

	// WHEN the levels are flattened
	moved := mq.Flatten()

	// THEN lower levels join the tail of level 0 in level order
	assert.Equal(t, []int{1, 2, 3}, moved)
	assert.Equal(t, []int{0, 1, 2, 3}, mq.Level(0).Items())
	assert.Equal(t, []int{4, 0, 0}, mq.Depths())
}

func TestNewMultiLevelQueue_NoLevels_Panics(t *testing.T) {
	assert.Panics(t, func() { NewMultiLevelQueue(0) })
}
