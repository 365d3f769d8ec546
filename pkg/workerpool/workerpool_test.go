package workerpool

import (
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeConn struct {
	net.Conn
	closed int32
}

func (f *fakeConn) Close() error {
	atomic.StoreInt32(&f.closed, 1)
	return nil
}

func TestPoolHandlesEveryDispatchedConnection(t *testing.T) {
	var handled int64
	var wg sync.WaitGroup

	p := New(4, 8, func(conn net.Conn) {
		atomic.AddInt64(&handled, 1)
		conn.Close()
		wg.Done()
	})

	const n = 50
	wg.Add(n)
	for i := 0; i < n; i++ {
		p.Dispatch(&fakeConn{})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for all connections to be handled")
	}

	if atomic.LoadInt64(&handled) != n {
		t.Fatalf("handled = %d, want %d", handled, n)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestPoolCloseWaitsForWorkers(t *testing.T) {
	p := New(2, 4, func(conn net.Conn) {
		conn.Close()
	})
	c1, c2 := &fakeConn{}, &fakeConn{}
	p.Dispatch(c1)
	p.Dispatch(c2)

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if atomic.LoadInt32(&c1.closed) != 1 || atomic.LoadInt32(&c2.closed) != 1 {
		t.Fatal("Close() returned before every queued connection was handled")
	}
}
