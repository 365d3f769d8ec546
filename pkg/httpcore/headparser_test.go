package httpcore

import (
	"strings"
	"testing"
)

func TestReadHeadSplitsHeadAndLeftover(t *testing.T) {
	raw := "GET /x HTTP/1.1\r\nHost: a\r\n\r\nBODYBYTES"
	head, leftover, err := readHead(strings.NewReader(raw), 8, 4096)
	if err != nil {
		t.Fatalf("readHead error = %v", err)
	}
	if string(head) != "GET /x HTTP/1.1\r\nHost: a" {
		t.Fatalf("head = %q", head)
	}
	// With 8-byte reads the terminator arrives in the read that ends at
	// byte 32, so only "BODY" has been read past it.
	if string(leftover) != "BODY" {
		t.Fatalf("leftover = %q", leftover)
	}
}

func TestReadHeadTooLarge(t *testing.T) {
	raw := "GET /x HTTP/1.1\r\nHost: " + strings.Repeat("a", 200) + "\r\n\r\n"
	_, _, err := readHead(strings.NewReader(raw), 8, 16)
	if err != ErrHeadTooLarge {
		t.Fatalf("err = %v, want ErrHeadTooLarge", err)
	}
}

func TestReadHeadConnectionLostBeforeTerminator(t *testing.T) {
	raw := "GET /x HTTP/1.1\r\nHost: a"
	_, _, err := readHead(strings.NewReader(raw), 8, 4096)
	if err != ErrConnectionLost {
		t.Fatalf("err = %v, want ErrConnectionLost", err)
	}
}

func TestParseHeadRequestLineAndHeaders(t *testing.T) {
	head := []byte("get /a/b?x=1 HTTP/1.1\r\nHost: example.com\r\nX-Trace: abc")
	method, url, version, headers, err := parseHead(head)
	if err != nil {
		t.Fatalf("parseHead error = %v", err)
	}
	if method != "GET" {
		t.Fatalf("method = %q, want GET", method)
	}
	if url != "/a/b?x=1" {
		t.Fatalf("url = %q", url)
	}
	if version != "HTTP/1.1" {
		t.Fatalf("version = %q", version)
	}
	if v, _ := headers.Get("host"); v != "example.com" {
		t.Fatalf("Host header = %q", v)
	}
	if v, _ := headers.Get("X-Trace"); v != "abc" {
		t.Fatalf("X-Trace header = %q", v)
	}
}

func TestParseHeadMalformedRequestLine(t *testing.T) {
	_, _, _, _, err := parseHead([]byte("NOTAVALIDLINE"))
	if err != ErrMalformedHead {
		t.Fatalf("err = %v, want ErrMalformedHead", err)
	}
}

func TestParseHeadMalformedHeaderLine(t *testing.T) {
	_, _, _, _, err := parseHead([]byte("GET / HTTP/1.1\r\nNoColonHere"))
	if err != ErrMalformedHead {
		t.Fatalf("err = %v, want ErrMalformedHead", err)
	}
}
