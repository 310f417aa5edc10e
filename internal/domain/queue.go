package domain

import (
	"math/rand"
	"slices"
)

// GroupQueue is the sorted multiset of party sizes still waiting for seats.
// Pops are destructive; one queue belongs to one run.
type GroupQueue struct {
	sizes []int // ascending
}

// NewGroupQueue copies and sorts sizes.
func NewGroupQueue(sizes ...int) *GroupQueue {
	s := slices.Clone(sizes)
	slices.Sort(s)
	return &GroupQueue{sizes: s}
}

func (q *GroupQueue) Len() int    { return len(q.sizes) }
func (q *GroupQueue) Empty() bool { return len(q.sizes) == 0 }

// Total is the number of people still queued.
func (q *GroupQueue) Total() int {
	n := 0
	for _, s := range q.sizes {
		n += s
	}
	return n
}

// Sizes returns the queued sizes in ascending order.
func (q *GroupQueue) Sizes() []int { return slices.Clone(q.sizes) }

func (q *GroupQueue) Clone() *GroupQueue { return &GroupQueue{sizes: slices.Clone(q.sizes)} }

func (q *GroupQueue) PopLargest() (int, bool) {
	if len(q.sizes) == 0 {
		return 0, false
	}
	n := len(q.sizes) - 1
	v := q.sizes[n]
	q.sizes = q.sizes[:n]
	return v, true
}

func (q *GroupQueue) PopSmallest() (int, bool) {
	if len(q.sizes) == 0 {
		return 0, false
	}
	v := q.sizes[0]
	q.sizes = q.sizes[1:]
	return v, true
}

// PopRandom removes a uniformly chosen entry.
func (q *GroupQueue) PopRandom(rng *rand.Rand) (int, bool) {
	if len(q.sizes) == 0 {
		return 0, false
	}
	i := rng.Intn(len(q.sizes))
	v := q.sizes[i]
	q.sizes = slices.Delete(q.sizes, i, i+1)
	return v, true
}

// Pop removes the next group according to order. rng is only read for Random.
func (q *GroupQueue) Pop(order PopOrder, rng *rand.Rand) (int, bool) {
	switch order {
	case Ascending:
		return q.PopSmallest()
	case Random:
		return q.PopRandom(rng)
	default:
		return q.PopLargest()
	}
}
