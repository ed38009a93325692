package parmap

import "sync"

// oneShot carries a single payload from a worker to the coordinator.
//
// The channel has room for the payload, so Send never blocks and the worker
// can exit before anyone receives. Close is idempotent and is always called
// when the worker returns, which is what lets Recv tell a worker that died
// without sending apart from one that is still running.
type oneShot[T any] struct {
	ch   chan T
	once sync.Once
}

func newOneShot[T any]() *oneShot[T] {
	return &oneShot[T]{ch: make(chan T, 1)}
}

// Send transmits the payload and closes the channel. Only the first call
// has an effect.
func (t *oneShot[T]) Send(data T) {
	t.once.Do(func() {
		t.ch <- data
		close(t.ch)
	})
}

// Close closes the channel without a payload unless Send already ran.
func (t *oneShot[T]) Close() {
	t.once.Do(func() {
		close(t.ch)
	})
}

// Recv blocks until the payload arrives or the sender closed the channel.
// ok is false when the worker closed without sending.
func (t *oneShot[T]) Recv() (data T, ok bool) {
	data, ok = <-t.ch
	return data, ok
}

// transport holds one oneShot per worker id.
type transport[T any] struct {
	peers []*oneShot[T]
}

func newTransport[T any](workers int) *transport[T] {
	peers := make([]*oneShot[T], workers)
	for i := range peers {
		peers[i] = newOneShot[T]()
	}
	return &transport[T]{peers: peers}
}

func (t *transport[T]) peer(id int) *oneShot[T] {
	return t.peers[id]
}
