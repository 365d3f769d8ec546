// Package forge is an embeddable HTTP/1.1 origin server: a byte-level
// request parser, a streaming body reader (including multipart/form-data
// with incremental file spooling), a response emitter (chunked
// transfer, byte-range serving, lazy file streaming), and a routing
// table with middleware chains, multiplexed across a fixed worker pool.
//
// TLS, HTTP/2, and WebSocket upgrade are out of scope; forge expects to
// sit behind a reverse proxy or be embedded directly for plaintext use.
package forge

import (
	"fmt"
	"net"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/watt-toolkit/forge/internal/logx"
	"github.com/watt-toolkit/forge/pkg/httpcore"
	"github.com/watt-toolkit/forge/pkg/socket"
	"github.com/watt-toolkit/forge/pkg/workerpool"
)

// EndPoint is an IPv4 address and port to bind the listener to.
type EndPoint struct {
	A, B, C, D byte
	Port       uint16
}

// String renders the endpoint as "A.B.C.D:Port".
func (e EndPoint) String() string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", e.A, e.B, e.C, e.D, e.Port)
}

// Server binds a router and connection tunables to a listen address
// and a fixed-size worker pool.
type Server struct {
	endpoint  EndPoint
	router    *httpcore.Router
	config    httpcore.ServerConfig
	socketCfg socket.Config
	poolSize  int
	log       *logrus.Logger
}

// New constructs a Server. poolSize is the number of worker goroutines
// that will share the accept loop's connections; 0 picks a small
// default.
func New(endpoint EndPoint, cfg httpcore.ServerConfig, poolSize int) *Server {
	if poolSize <= 0 {
		poolSize = 8
	}
	return &Server{
		endpoint:  endpoint,
		router:    httpcore.NewRouter(),
		config:    cfg,
		socketCfg: socket.DefaultConfig(),
		poolSize:  poolSize,
		log:       logx.New(cfg.OpenLog),
	}
}

// Route begins registering methods against path, mirroring the
// route(methods, path).reg(handler) / .reg_with_middlewares(mw, handler)
// shape from the source API.
func (s *Server) Route(methods []string, path string) *httpcore.RouteBuilder {
	return s.router.Route(methods, path)
}

// SetNotFound overrides the handler invoked when no route matches.
func (s *Server) SetNotFound(h httpcore.Handler) {
	s.router.SetNotFound(h)
}

// Run binds the listen address and blocks, dispatching accepted
// connections across the worker pool until Accept fails (e.g. the
// listener is closed from another goroutine).
func (s *Server) Run() error {
	if err := os.MkdirAll(s.config.UploadDirectory, 0o755); err != nil {
		return fmt.Errorf("forge: preparing upload directory: %w", err)
	}

	ln, err := net.Listen("tcp", s.endpoint.String())
	if err != nil {
		return fmt.Errorf("forge: listening on %s: %w", s.endpoint, err)
	}
	defer ln.Close()

	pool := workerpool.New(s.poolSize, 64, func(conn net.Conn) {
		if err := socket.Apply(conn, s.socketCfg); err != nil && s.config.OpenLog {
			s.log.WithError(err).Debug("forge: applying socket tuning")
		}
		httpcore.ServeConn(conn, s.router, s.config, s.log)
	})
	defer pool.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("forge: accept: %w", err)
		}
		pool.Dispatch(conn)
	}
}
