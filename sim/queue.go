// Implements the FIFO queues the scheduler moves processes through.
// Both the job queue and the ready queue hold indices into the simulator's process slice.

package sim

import (
	"fmt"
	"strings"
)

// Queue is a FIFO of process indices. Preempted processes rotate by PopFront + PushBack.
type Queue struct {
	items []int
}

// NewQueue returns a queue holding items in order.
func NewQueue(items ...int) *Queue {
	q := &Queue{items: make([]int, 0, len(items))}
	q.items = append(q.items, items...)
	return q
}

// PushBack appends an index to the back of the queue.
func (q *Queue) PushBack(idx int) {
	q.items = append(q.items, idx)
}

// PopFront removes and returns the front index. Panics on an empty queue.
func (q *Queue) PopFront() int {
	if len(q.items) == 0 {
		panic("PopFront: queue is empty")
	}
	idx := q.items[0]
	q.items = q.items[1:]
	return idx
}

// Front returns the front index without removing it. Panics on an empty queue.
func (q *Queue) Front() int {
	if len(q.items) == 0 {
		panic("Front: queue is empty")
	}
	return q.items[0]
}

// Len returns the number of queued indices.
func (q *Queue) Len() int {
	return len(q.items)
}

// Empty reports whether the queue holds nothing.
func (q *Queue) Empty() bool {
	return len(q.items) == 0
}

// Items returns the queue contents front to back.
// The returned slice is the queue's internal storage: callers MUST NOT modify it.
func (q *Queue) Items() []int {
	return q.items
}

func (q *Queue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range q.items {
		sb.WriteString(fmt.Sprint(val))
		if i < len(q.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
