package httpcore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// byteRange is a resolved, inclusive [start, end] window into a file,
// plus the file's total size (needed for Content-Range).
type byteRange struct {
	start, end, size int64
}

// parseRange implements spec.md §4.5's range grammar: "bytes=a-b",
// "bytes=a-" (from a to EOF), and "bytes=-n" (last n bytes). Any other
// shape, or a range outside [0, size), is unsatisfiable.
func parseRange(header string, size int64) (byteRange, bool) {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) || size <= 0 {
		return byteRange{}, false
	}
	spec := strings.TrimPrefix(header, prefix)
	// Only the first range of a possibly comma-separated set is honored.
	if i := strings.IndexByte(spec, ','); i >= 0 {
		spec = spec[:i]
	}

	startStr, endStr, found := strings.Cut(spec, "-")
	if !found {
		return byteRange{}, false
	}

	switch {
	case startStr == "" && endStr != "":
		// suffix form: last n bytes.
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n <= 0 || n > size {
			return byteRange{}, false
		}
		return byteRange{start: size - n, end: size - 1, size: size}, true

	case startStr != "" && endStr == "":
		start, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil || start < 0 || start >= size {
			return byteRange{}, false
		}
		return byteRange{start: start, end: size - 1, size: size}, true

	case startStr != "" && endStr != "":
		start, err1 := strconv.ParseInt(startStr, 10, 64)
		end, err2 := strconv.ParseInt(endStr, 10, 64)
		if err1 != nil || err2 != nil || start < 0 || end < start || end >= size {
			return byteRange{}, false
		}
		return byteRange{start: start, end: end, size: size}, true

	default:
		return byteRange{}, false
	}
}

// WriteResponse serializes resp to w: status line, headers, blank
// line, then body. HEAD requests suppress the body but not
// Content-Length/Content-Type. File bodies stream lazily in
// cfg.ChunkSize slices rather than being read fully into memory.
func WriteResponse(w io.Writer, resp *Response) error {
	bw := bufio.NewWriter(w)

	if resp.failed {
		resp.StatusCode = 404
		return writeNoBody(bw, resp)
	}

	switch resp.bodyKind {
	case responseBodyNone:
		return writeNoBody(bw, resp)
	case responseBodyMemory:
		return writeMemoryBody(bw, resp)
	case responseBodyFile:
		return writeFileBody(bw, resp)
	default:
		return writeNoBody(bw, resp)
	}
}

func writeStatusAndHeaders(bw *bufio.Writer, resp *Response, extraHeaders map[string]string) error {
	if _, err := fmt.Fprintf(bw, "%s %d %s\r\n", resp.Version, resp.StatusCode, ReasonPhrase(resp.StatusCode)); err != nil {
		return err
	}
	resp.Headers.Range(func(name, value string) {
		fmt.Fprintf(bw, "%s: %s\r\n", name, value)
	})
	for name, value := range extraHeaders {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", name, value); err != nil {
			return err
		}
	}
	_, err := bw.WriteString("\r\n")
	return err
}

func writeNoBody(bw *bufio.Writer, resp *Response) error {
	if err := writeStatusAndHeaders(bw, resp, map[string]string{"Content-Length": "0"}); err != nil {
		return err
	}
	return bw.Flush()
}

func writeMemoryBody(bw *bufio.Writer, resp *Response) error {
	if resp.chunked {
		if err := writeStatusAndHeaders(bw, resp, map[string]string{"Transfer-Encoding": "chunked"}); err != nil {
			return err
		}
		if resp.Method == HEAD {
			return bw.Flush()
		}
		if err := writeChunked(bw, strings.NewReader(string(resp.memory)), resp.chunkSize); err != nil {
			return err
		}
		return bw.Flush()
	}

	if err := writeStatusAndHeaders(bw, resp, map[string]string{"Content-Length": strconv.Itoa(len(resp.memory))}); err != nil {
		return err
	}
	if resp.Method != HEAD {
		if _, err := bw.Write(resp.memory); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeFileBody(bw *bufio.Writer, resp *Response) error {
	f, err := os.Open(resp.filePath)
	if err != nil {
		resp.StatusCode = 404
		return writeNoBody(bw, resp)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		resp.StatusCode = 404
		return writeNoBody(bw, resp)
	}
	size := info.Size()

	var rng byteRange
	hasRange := false
	if resp.rangeOn {
		if h, ok := resp.requestHeaders.Get("Range"); ok {
			r, ok := parseRange(h, size)
			if !ok {
				resp.StatusCode = 416
				return writeNoBody(bw, resp)
			}
			rng = r
			hasRange = true
		}
	}

	extra := map[string]string{}
	var readFrom io.Reader = f
	length := size

	if hasRange {
		resp.StatusCode = 206
		length = rng.end - rng.start + 1
		extra["Content-Range"] = fmt.Sprintf("bytes %d-%d/%d", rng.start, rng.end, rng.size)
		if _, err := f.Seek(rng.start, io.SeekStart); err != nil {
			return err
		}
		readFrom = io.LimitReader(f, length)
	}

	if resp.chunked {
		extra["Transfer-Encoding"] = "chunked"
		if err := writeStatusAndHeaders(bw, resp, extra); err != nil {
			return err
		}
		if resp.Method == HEAD {
			return bw.Flush()
		}
		if err := writeChunked(bw, readFrom, resp.chunkSize); err != nil {
			return err
		}
		return bw.Flush()
	}

	extra["Content-Length"] = strconv.FormatInt(length, 10)
	if err := writeStatusAndHeaders(bw, resp, extra); err != nil {
		return err
	}
	if resp.Method == HEAD {
		return bw.Flush()
	}
	if _, err := io.CopyBuffer(bw, readFrom, make([]byte, resp.chunkSizeOrDefault())); err != nil {
		return err
	}
	return bw.Flush()
}

func (r *Response) chunkSizeOrDefault() int {
	if r.chunkSize > 0 {
		return r.chunkSize
	}
	return 64 * 1024
}

// writeChunked frames r's bytes as HTTP chunked transfer-encoding:
// SIZE-HEX\r\n BYTES \r\n, repeated, terminated by "0\r\n\r\n".
func writeChunked(bw *bufio.Writer, r io.Reader, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = 64 * 1024
	}
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := fmt.Fprintf(bw, "%x\r\n", n); werr != nil {
				return werr
			}
			if _, werr := bw.Write(buf[:n]); werr != nil {
				return werr
			}
			if _, werr := bw.WriteString("\r\n"); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	_, err := bw.WriteString("0\r\n\r\n")
	return err
}
