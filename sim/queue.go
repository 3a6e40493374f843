// Implements the ready queues used by the preemptive policies.
// Entries are indices into the process slice of the running invocation.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a growable FIFO of process indices waiting for the CPU.
type ReadyQueue struct {
	queue []int
}

// Enqueue adds a process index to the back of the queue.
func (rq *ReadyQueue) Enqueue(i int) {
	rq.queue = append(rq.queue, i)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range rq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of queued entries.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the head without removing it. ok is false when the queue is empty.
func (rq *ReadyQueue) Peek() (i int, ok bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	return rq.queue[0], true
}

// Dequeue removes and returns the head. ok is false when the queue is empty.
func (rq *ReadyQueue) Dequeue() (i int, ok bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	i = rq.queue[0]
	rq.queue = rq.queue[1:]
	return i, true
}

// Items returns the queue contents in FIFO order.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (rq *ReadyQueue) Items() []int {
	return rq.queue
}

// Drain removes and returns every entry, preserving order.
func (rq *ReadyQueue) Drain() []int {
	out := rq.queue
	rq.queue = nil
	return out
}

// MultiLevelQueue holds one ReadyQueue per priority level.
// Level 0 is the highest priority.
type MultiLevelQueue struct {
	levels []*ReadyQueue
}

// NewMultiLevelQueue creates n empty levels. Panics if n < 1.
func NewMultiLevelQueue(n int) *MultiLevelQueue {
	if n < 1 {
		panic(fmt.Sprintf("NewMultiLevelQueue: need at least one level, got %d", n))
	}
	levels := make([]*ReadyQueue, n)
	for i := range levels {
		levels[i] = &ReadyQueue{}
	}
	return &MultiLevelQueue{levels: levels}
}

// NumLevels returns the number of levels.
func (mq *MultiLevelQueue) NumLevels() int {
	return len(mq.levels)
}

// Level returns the queue of one level.
func (mq *MultiLevelQueue) Level(level int) *ReadyQueue {
	return mq.levels[level]
}

// Enqueue appends a process index to the tail of level.
func (mq *MultiLevelQueue) Enqueue(level, i int) {
	mq.levels[level].Enqueue(i)
}

// HighestNonEmpty returns the lowest-numbered level holding an entry.
func (mq *MultiLevelQueue) HighestNonEmpty() (level int, ok bool) {
	for l, q := range mq.levels {
		if q.Len() > 0 {
			return l, true
		}
	}
	return 0, false
}

// Flatten moves every entry of levels 1..n-1 to the tail of level 0,
// scanning levels in ascending order and preserving each level's order.
// It returns the moved indices in their new order.
func (mq *MultiLevelQueue) Flatten() []int {
	var moved []int
	for l := 1; l < len(mq.levels); l++ {
		for _, i := range mq.levels[l].Drain() {
			mq.levels[0].Enqueue(i)
			moved = append(moved, i)
		}
	}
	return moved
}

// Depths returns the number of entries per level.
func (mq *MultiLevelQueue) Depths() []int {
	d := make([]int, len(mq.levels))
	for l, q := range mq.levels {
		d[l] = q.Len()
	}
	return d
}
