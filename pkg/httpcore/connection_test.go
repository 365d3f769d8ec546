package httpcore

import (
	"bufio"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/watt-toolkit/forge/internal/logx"
)

func TestServeConnHandlesSingleRequestThenCloses(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	router := NewRouter()
	router.Route([]string{GET}, "/hello").Reg(func(req *Request, res *Response) {
		res.Status(200).WriteString("hi")
	})

	cfg := DefaultConfig()
	cfg.UploadDirectory = t.TempDir()

	done := make(chan struct{})
	go func() {
		ServeConn(server, router, cfg, logx.New(false))
		close(done)
	}()

	client.SetDeadline(time.Now().Add(5 * time.Second))
	io.WriteString(client, "GET /hello HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n")

	reader := bufio.NewReader(client)
	statusLine, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading status line: %v", err)
	}
	if !strings.HasPrefix(statusLine, "HTTP/1.1 200") {
		t.Fatalf("status line = %q, want 200", statusLine)
	}

	body, _ := io.ReadAll(reader)
	if !strings.HasSuffix(string(body), "hi") {
		t.Fatalf("response body = %q, want suffix hi", body)
	}

	<-done
}

func TestServeConnKeepAliveServesSecondRequest(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	router := NewRouter()
	count := 0
	router.Route([]string{GET}, "/ping").Reg(func(req *Request, res *Response) {
		count++
		res.Status(200).WriteString("pong")
	})

	cfg := DefaultConfig()
	cfg.UploadDirectory = t.TempDir()

	done := make(chan struct{})
	go func() {
		ServeConn(server, router, cfg, logx.New(false))
		close(done)
	}()

	client.SetDeadline(time.Now().Add(5 * time.Second))
	reader := bufio.NewReader(client)

	io.WriteString(client, "GET /ping HTTP/1.1\r\nHost: x\r\nConnection: keep-alive\r\n\r\n")
	line1, _ := reader.ReadString('\n')
	if !strings.HasPrefix(line1, "HTTP/1.1 200") {
		t.Fatalf("first response status = %q", line1)
	}
	drainHeaders(t, reader)
	readExactN(t, reader, 4) // "pong"

	io.WriteString(client, "GET /ping HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n")
	line2, _ := reader.ReadString('\n')
	if !strings.HasPrefix(line2, "HTTP/1.1 200") {
		t.Fatalf("second response status = %q", line2)
	}

	<-done
	if count != 2 {
		t.Fatalf("handler invoked %d times, want 2", count)
	}
}

func drainHeaders(t *testing.T, r *bufio.Reader) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("draining headers: %v", err)
		}
		if line == "\r\n" {
			return
		}
	}
}

func readExactN(t *testing.T, r *bufio.Reader, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Fatalf("reading %d bytes: %v", n, err)
	}
	return buf
}
