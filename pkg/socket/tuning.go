// Package socket applies cross-platform TCP tuning to accepted connections.
//
// An embeddable origin server benefits from a few well-known socket
// options (TCP_NODELAY, buffer sizing, keepalive) applied by the worker
// that picks up an accepted connection, before it serves it. The options
// themselves are commodity; platform-specific plumbing lives in
// tuning_linux.go and tuning_other.go.
package socket

import (
	"net"
	"time"
)

// Config describes the socket options applied to an accepted connection.
// Zero values fall back to OS defaults.
type Config struct {
	// NoDelay disables Nagle's algorithm (TCP_NODELAY). Recommended for
	// request/response traffic where latency matters more than packing.
	NoDelay bool

	// RecvBuffer and SendBuffer override SO_RCVBUF / SO_SNDBUF in bytes.
	// Zero leaves the OS default untouched.
	RecvBuffer int
	SendBuffer int

	// KeepAlive enables SO_KEEPALIVE with KeepAlivePeriod between probes.
	KeepAlive       bool
	KeepAlivePeriod int // seconds
}

// DefaultConfig returns tuning suited to short-lived HTTP/1.1 exchanges.
func DefaultConfig() Config {
	return Config{
		NoDelay:         true,
		KeepAlive:       true,
		KeepAlivePeriod: 60,
	}
}

// Apply tunes conn according to cfg. Non-TCP connections (e.g. those used
// in tests via net.Pipe) are left untouched and Apply returns nil.
func Apply(conn net.Conn, cfg Config) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}

	if cfg.NoDelay {
		if err := tcpConn.SetNoDelay(true); err != nil {
			return err
		}
	}
	if cfg.KeepAlive {
		_ = tcpConn.SetKeepAlive(true)
		if cfg.KeepAlivePeriod > 0 {
			_ = tcpConn.SetKeepAlivePeriod(time.Duration(cfg.KeepAlivePeriod) * time.Second)
		}
	}

	rawConn, err := tcpConn.SyscallConn()
	if err != nil {
		return err
	}
	return rawConn.Control(func(fd uintptr) {
		if cfg.RecvBuffer > 0 {
			setRecvBuffer(fd, cfg.RecvBuffer)
		}
		if cfg.SendBuffer > 0 {
			setSendBuffer(fd, cfg.SendBuffer)
		}
	})
}
