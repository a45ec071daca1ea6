package monitoring

import (
	"sync"

	"github.com/Pallavi2687/cpu-scheduler-frontend/layout"
)

const subscriberBuffer = 64

type subscriber struct {
	frames chan layout.Frame
}

// push queues a frame. When the queue is full the oldest frame is dropped,
// since only the latest frames matter to a viewer.
func (s *subscriber) push(f layout.Frame) {
	for {
		select {
		case s.frames <- f:
			return
		default:
		}

		select {
		case <-s.frames:
		default:
		}
	}
}

// frameHub fans frames out to the connected viewers.
type frameHub struct {
	lock sync.Mutex
	subs map[*subscriber]struct{}
}

func newFrameHub() *frameHub {
	return &frameHub{subs: make(map[*subscriber]struct{})}
}

func (h *frameHub) subscribe() *subscriber {
	s := &subscriber{frames: make(chan layout.Frame, subscriberBuffer)}

	h.lock.Lock()
	h.subs[s] = struct{}{}
	h.lock.Unlock()

	return s
}

func (h *frameHub) unsubscribe(s *subscriber) {
	h.lock.Lock()
	delete(h.subs, s)
	h.lock.Unlock()
}

func (h *frameHub) broadcast(f layout.Frame) {
	h.lock.Lock()
	defer h.lock.Unlock()

	for s := range h.subs {
		s.push(f)
	}
}

func (h *frameHub) count() int {
	h.lock.Lock()
	defer h.lock.Unlock()

	return len(h.subs)
}
