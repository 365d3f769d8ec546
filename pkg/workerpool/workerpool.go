// Package workerpool implements the fixed-size connection dispatcher
// described in spec.md §5: a constant number of workers, each with its
// own inbound queue, fed round-robin. Sizing and queue depth are the
// pool's contract; what each worker does with a connection is entirely
// up to the handler function it's given (spec.md explicitly treats the
// pool's internals as a collaborator, not a subject of the spec).
//
// Grounded on original_source/thread_pool.rs's per-worker mpsc::Sender
// fan-out, generalized here with golang.org/x/sync/errgroup supervising
// the worker goroutines instead of manually joined native threads.
package workerpool

import (
	"net"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Handler processes one accepted connection. It is responsible for the
// connection's full lifecycle, including closing it.
type Handler func(net.Conn)

// Pool is a fixed set of worker goroutines, each draining its own
// bounded queue of connections.
type Pool struct {
	queues []chan net.Conn
	next   uint64
	group  *errgroup.Group
}

// New starts size workers, each running handler over its own queue of
// the given depth. Dispatch must not be called after Close.
func New(size, queueDepth int, handler Handler) *Pool {
	if size <= 0 {
		size = 1
	}
	if queueDepth <= 0 {
		queueDepth = 64
	}

	p := &Pool{
		queues: make([]chan net.Conn, size),
		group:  &errgroup.Group{},
	}

	for i := 0; i < size; i++ {
		queue := make(chan net.Conn, queueDepth)
		p.queues[i] = queue
		p.group.Go(func() error {
			for conn := range queue {
				handler(conn)
			}
			return nil
		})
	}

	return p
}

// Dispatch assigns conn to the next worker in round-robin order. It
// blocks if that worker's queue is full, applying natural backpressure
// to the accept loop.
func (p *Pool) Dispatch(conn net.Conn) {
	i := atomic.AddUint64(&p.next, 1) % uint64(len(p.queues))
	p.queues[i] <- conn
}

// Close stops accepting new work and waits for every worker to drain
// its queue and exit.
func (p *Pool) Close() error {
	for _, q := range p.queues {
		close(q)
	}
	return p.group.Wait()
}
