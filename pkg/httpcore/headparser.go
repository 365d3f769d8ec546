package httpcore

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

var headBufferPool bytebufferpool.Pool

var headTerminator = []byte("\r\n\r\n")

// readHead implements spec.md §4.1: it reads from r into a growable
// buffer, growing by growSize bytes per short read, until it finds
// "\r\n\r\n". It returns the head bytes (excluding the terminator) and
// any bytes already read past the terminator (the initial body
// segment). The scratch buffer is pooled via bytebufferpool; the
// returned slices are always fresh copies so the pooled buffer can be
// reused immediately.
func readHead(r io.Reader, growSize, maxHeaderSize int) (head, leftover []byte, err error) {
	if growSize <= 0 {
		growSize = 4096
	}

	buf := headBufferPool.Get()
	defer headBufferPool.Put(buf)

	chunk := make([]byte, growSize)
	for {
		n, rerr := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if n == 0 && rerr != nil {
			return nil, nil, ErrConnectionLost
		}

		data := buf.Bytes()
		if idx := bytes.Index(data, headTerminator); idx >= 0 {
			if idx > maxHeaderSize {
				return nil, nil, ErrHeadTooLarge
			}
			if !utf8.Valid(data[:idx]) {
				return nil, nil, ErrMalformedHead
			}
			head = append([]byte(nil), data[:idx]...)
			if rest := data[idx+len(headTerminator):]; len(rest) > 0 {
				leftover = append([]byte(nil), rest...)
			}
			return head, leftover, nil
		}

		if len(data) > maxHeaderSize {
			return nil, nil, ErrHeadTooLarge
		}
		if n == 0 {
			// rerr == nil here per the check above, but a zero-byte read
			// with no error and no progress means the peer is gone.
			return nil, nil, ErrConnectionLost
		}
		if rerr != nil {
			return nil, nil, ErrConnectionLost
		}
	}
}

// parseHead splits head bytes into method, URL, version, and headers
// per spec.md §4.1: the first line is "METHOD SP URL SP VERSION";
// subsequent lines are "NAME: VALUE", trimmed on both sides. A header
// line lacking ':' is a protocol error.
func parseHead(head []byte) (method, url, version string, headers *Header, err error) {
	lines := strings.Split(string(head), "\r\n")
	if len(lines) == 0 {
		return "", "", "", nil, ErrMalformedHead
	}

	requestLine := strings.Fields(lines[0])
	if len(requestLine) != 3 {
		return "", "", "", nil, ErrMalformedHead
	}

	headers = NewHeader()
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			return "", "", "", nil, ErrMalformedHead
		}
		headers.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	return strings.ToUpper(requestLine[0]), requestLine[1], requestLine[2], headers, nil
}
