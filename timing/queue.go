package timing

import (
	"container/heap"
)

type queuedEvent struct {
	evt   Event
	index int
}

// eventQueue orders events by time, then by handle so that events scheduled
// for the same time are handled first-in first-out. It supports removal by
// handle. It is not thread safe; engines guard it.
type eventQueue struct {
	events eventHeap
	byID   map[Handle]*queuedEvent
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		events: make(eventHeap, 0),
		byID:   make(map[Handle]*queuedEvent),
	}
	heap.Init(&q.events)

	return q
}

func (q *eventQueue) Push(evt Event) {
	if _, exists := q.byID[evt.ID()]; exists {
		panic("event scheduled twice")
	}

	item := &queuedEvent{evt: evt}
	heap.Push(&q.events, item)
	q.byID[evt.ID()] = item
}

func (q *eventQueue) Pop() Event {
	if q.events.Len() == 0 {
		return nil
	}

	item := heap.Pop(&q.events).(*queuedEvent)
	delete(q.byID, item.evt.ID())

	return item.evt
}

func (q *eventQueue) Peek() Event {
	if q.events.Len() == 0 {
		return nil
	}

	return q.events[0].evt
}

func (q *eventQueue) Len() int {
	return q.events.Len()
}

func (q *eventQueue) Remove(h Handle) bool {
	item, ok := q.byID[h]
	if !ok {
		return false
	}

	heap.Remove(&q.events, item.index)
	delete(q.byID, h)

	return true
}

type eventHeap []*queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	ti, tj := h[i].evt.Time(), h[j].evt.Time()
	if ti != tj {
		return ti < tj
	}

	return h[i].evt.ID() < h[j].evt.ID()
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	item := x.(*queuedEvent)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]

	return item
}
