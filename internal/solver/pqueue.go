package solver

import (
	"github.com/zyedidia/generic/heap"

	"svw.info/seatplan/internal/domain"
)

// seatQueue is a max-priority queue of empty seats keyed by distance.
//
// Keys are changed with lazy deletion: Push on a queued seat supersedes its
// previous entry by bumping the seat's version, and Pop discards entries
// whose version is no longer current. Remove drops a seat without touching
// the heap. Equal keys pop in row-major order.
type seatQueue struct {
	h    *heap.Heap[seatEntry]
	live map[domain.Coord]seatEntry
	seq  int
}

type seatEntry struct {
	c       domain.Coord
	key     float64
	version int
}

func seatLess(a, b seatEntry) bool {
	if a.key != b.key {
		return a.key > b.key
	}
	return a.c.Less(b.c)
}

func newSeatQueue() *seatQueue {
	return &seatQueue{
		h:    heap.New[seatEntry](seatLess),
		live: make(map[domain.Coord]seatEntry),
	}
}

// Len counts live seats, not heap entries.
func (q *seatQueue) Len() int { return len(q.live) }

// Push queues c with key, replacing any live entry for c.
func (q *seatQueue) Push(c domain.Coord, key float64) {
	q.seq++
	e := seatEntry{c: c, key: key, version: q.seq}
	q.live[c] = e
	q.h.Push(e)
	if q.h.Size() > 4*len(q.live)+64 {
		q.compact()
	}
}

// Update rekeys c if it is still queued.
func (q *seatQueue) Update(c domain.Coord, key float64) {
	if e, ok := q.live[c]; ok && e.key != key {
		q.Push(c, key)
	}
}

// Remove drops c from the queue.
func (q *seatQueue) Remove(c domain.Coord) { delete(q.live, c) }

// Pop returns the live seat with the highest key.
func (q *seatQueue) Pop() (domain.Coord, float64, bool) {
	for {
		e, ok := q.h.Pop()
		if !ok {
			return domain.Coord{}, 0, false
		}
		if cur, ok := q.live[e.c]; ok && cur.version == e.version {
			delete(q.live, e.c)
			return e.c, e.key, true
		}
	}
}

// compact rebuilds the heap from live entries once stale ones dominate.
func (q *seatQueue) compact() {
	entries := make([]seatEntry, 0, len(q.live))
	for _, e := range q.live {
		entries = append(entries, e)
	}
	q.h = heap.From[seatEntry](seatLess, entries...)
}
