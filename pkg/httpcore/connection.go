package httpcore

import (
	"errors"
	"net"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ServeConn drives one TCP connection end to end per spec.md §4.6: it
// loops reading a request, dispatching it through router, and writing
// the response, applying ReadTimeout/WriteTimeout each cycle, until the
// peer asks to close, a protocol error occurs, or the connection drops.
func ServeConn(conn net.Conn, router *Router, cfg ServerConfig, log *logrus.Logger) {
	defer conn.Close()

	for {
		if cfg.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		}

		head, leftover, err := readHead(conn, cfg.ReadBuffIncreaseSize, cfg.MaxHeaderSize)
		if err != nil {
			if cfg.OpenLog && !errors.Is(err, ErrConnectionLost) {
				log.WithError(err).Debug("httpcore: reading request head")
			}
			return
		}

		method, urlStr, version, headers, err := parseHead(head)
		if err != nil {
			if cfg.OpenLog {
				log.WithError(err).Debug("httpcore: parsing request head")
			}
			return
		}

		if cfg.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		}

		body, bodyErr := readBody(conn, headers, leftover, cfg)
		if bodyErr != nil && body.Kind == BodyTooLarge {
			if cfg.OpenLog {
				log.WithError(bodyErr).Debug("httpcore: request body too large")
			}
			writeSimpleStatus(conn, version, 413)
			return
		}
		if bodyErr != nil {
			if cfg.OpenLog {
				log.WithError(bodyErr).Debug("httpcore: reading request body")
			}
			return
		}

		req := &Request{Method: method, URL: urlStr, Version: version, Headers: headers, Body: body}
		resp := NewResponse(req, cfg)

		router.Dispatch(req, resp)

		if cfg.WriteTimeout > 0 {
			conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
		}

		keepAlive := shouldKeepAlive(headers)
		if keepAlive {
			resp.Headers.Set("Connection", "keep-alive")
		} else {
			resp.Headers.Set("Connection", "close")
		}

		if err := WriteResponse(conn, resp); err != nil {
			if cfg.OpenLog {
				log.WithError(err).Debug("httpcore: writing response")
			}
			return
		}

		if cfg.OpenLog {
			log.WithFields(logrus.Fields{
				"method": method,
				"url":    urlStr,
				"status": resp.StatusCode,
			}).Info("httpcore: request served")
		}

		if !keepAlive {
			return
		}
	}
}

// shouldKeepAlive implements spec.md §9's documented deviation from
// HTTP/1.1's default-keep-alive rule: the connection is kept open only
// when the client explicitly sends "Connection: keep-alive". Any other
// value, or no Connection header at all, closes after this response —
// matching the source behavior rather than the RFC default.
func shouldKeepAlive(headers *Header) bool {
	return strings.ToLower(strings.TrimSpace(headers.GetDefault("Connection"))) == "keep-alive"
}

func writeSimpleStatus(conn net.Conn, version string, code int) {
	resp := &Response{Version: version, StatusCode: code, Headers: NewHeader()}
	WriteResponse(conn, resp)
}
