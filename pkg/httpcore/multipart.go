package httpcore

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// multipartState is the state machine described in spec.md §4.3.
type multipartState int

const (
	stateSeekBoundary multipartState = iota
	stateSeekHeaders
	stateTextBody
	stateFileBody
)

// multipartReader incrementally parses a multipart/form-data body from
// an already-bounded byte stream (the caller enforces Content-Length).
// It grows its working buffer by growSize bytes per short read rather
// than buffering the whole body, mirroring the head parser's strategy
// and spec.md §4.3's spooling requirement for file parts.
type multipartReader struct {
	r         io.Reader
	buf       []byte
	growSize  int
	uploadDir string

	dashB     []byte // "--boundary"
	crlfDashB []byte // "\r\n--boundary"
}

func newMultipartReader(r io.Reader, prefill []byte, growSize int, boundary, uploadDir string) *multipartReader {
	if growSize <= 0 {
		growSize = 4096
	}
	buf := make([]byte, len(prefill))
	copy(buf, prefill)
	return &multipartReader{
		r:         r,
		buf:       buf,
		growSize:  growSize,
		uploadDir: uploadDir,
		dashB:     []byte("--" + boundary),
		crlfDashB: []byte("\r\n--" + boundary),
	}
}

// fill reads more bytes from r until the buffer holds at least min
// bytes or the stream is exhausted. It returns false once the stream
// is exhausted and still short.
func (m *multipartReader) fill(min int) bool {
	for len(m.buf) < min {
		chunk := make([]byte, m.growSize)
		n, err := m.r.Read(chunk)
		if n > 0 {
			m.buf = append(m.buf, chunk[:n]...)
		}
		if n == 0 && err != nil {
			return len(m.buf) >= min
		}
	}
	return true
}

// indexOf grows the buffer as needed while searching for sub. It only
// gives up when the underlying stream is exhausted and sub still
// hasn't appeared — there is no artificial limit on how far it will
// search, since a legitimate boundary search (the marker itself, or a
// header block) simply ends when fill can no longer make progress.
func (m *multipartReader) indexOf(sub []byte) (int, bool) {
	for {
		if i := bytes.Index(m.buf, sub); i >= 0 {
			return i, true
		}
		before := len(m.buf)
		if !m.fill(before + m.growSize) {
			return -1, false
		}
		if len(m.buf) == before {
			return -1, false
		}
	}
}

func (m *multipartReader) consume(n int) {
	m.buf = m.buf[n:]
}

// streamFileBody writes a file part's data to w incrementally as it is
// scanned for the terminating CRLF_DASH_B marker, per spec.md §4.3: the
// algorithm never buffers a whole upload, keeping at most
// growSize+len(crlfDashB) bytes of the part in memory at any time. Any
// '\r' found is a candidate boundary start; bytes before it are always
// safe to flush immediately, since CRLF_DASH_B itself begins with '\r'.
func (m *multipartReader) streamFileBody(w io.Writer) error {
	for {
		i := bytes.IndexByte(m.buf, '\r')
		if i < 0 {
			if len(m.buf) > 0 {
				if _, err := w.Write(m.buf); err != nil {
					return err
				}
				m.buf = m.buf[len(m.buf):]
			}
			if !m.fill(len(m.buf) + m.growSize) {
				return ErrMalformedMultipart
			}
			continue
		}

		if i > 0 {
			if _, err := w.Write(m.buf[:i]); err != nil {
				return err
			}
			m.consume(i)
		}

		if len(m.buf) < len(m.crlfDashB) && !m.fill(len(m.crlfDashB)) {
			return ErrMalformedMultipart
		}

		if bytes.HasPrefix(m.buf, m.crlfDashB) {
			// Only the CRLF is consumed here, matching stateTextBody: the
			// "--boundary..." bytes stay buffered for the next
			// stateSeekBoundary iteration to find at the start of buf.
			m.consume(2)
			return nil
		}

		// The '\r' wasn't the start of the boundary marker; it's part of
		// the file's own data. Flush it and keep scanning from there.
		if _, err := w.Write(m.buf[:1]); err != nil {
			return err
		}
		m.consume(1)
	}
}

// parse runs the full state machine and returns the decoded fields,
// keyed by form field name. On any I/O or protocol error it deletes
// partially-spooled files before returning, per spec.md's invariant
// that no orphaned file remains under upload_directory.
func (m *multipartReader) parse() (map[string]MultipartField, error) {
	fields := make(map[string]MultipartField)
	var spooled []string
	cleanup := func() {
		for _, p := range spooled {
			os.Remove(p)
		}
	}

	formIndex := 0
	state := stateSeekBoundary

	var name, filename, partContentType string
	var isFile bool

	for {
		switch state {
		case stateSeekBoundary:
			idx, ok := m.indexOf(m.dashB)
			if !ok {
				cleanup()
				return nil, ErrMalformedMultipart
			}
			m.consume(idx + len(m.dashB))
			if !m.fill(2) {
				cleanup()
				return nil, ErrMalformedMultipart
			}
			if bytes.HasPrefix(m.buf, []byte("--")) {
				// terminal boundary; nothing more to parse.
				return fields, nil
			}
			if !bytes.HasPrefix(m.buf, []byte("\r\n")) {
				cleanup()
				return nil, ErrMalformedMultipart
			}
			m.consume(2)
			state = stateSeekHeaders

		case stateSeekHeaders:
			idx, ok := m.indexOf([]byte("\r\n\r\n"))
			if !ok {
				cleanup()
				return nil, ErrMalformedMultipart
			}
			headerBlock := string(m.buf[:idx])
			m.consume(idx + 4)

			name, filename, partContentType, isFile = parsePartHeaders(headerBlock)
			if name == "" {
				cleanup()
				return nil, ErrMalformedMultipart
			}

			if isFile {
				state = stateFileBody
			} else {
				state = stateTextBody
			}

		case stateTextBody:
			idx, ok := m.indexOf(m.crlfDashB)
			if !ok {
				cleanup()
				return nil, ErrMalformedMultipart
			}
			value := string(m.buf[:idx])
			m.consume(idx + 2) // leave "--boundary..." for the next seek; skip the CRLF
			fields[name] = MultipartField{IsFile: false, Text: value}
			formIndex++
			state = stateSeekBoundary

		case stateFileBody:
			ext := filepath.Ext(filename)
			spoolName := uuid.New().String() + ext
			spoolPath := filepath.Join(m.uploadDir, spoolName)

			f, err := os.OpenFile(spoolPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				cleanup()
				return nil, fmt.Errorf("httpcore: opening multipart spool file: %w", err)
			}
			spooled = append(spooled, spoolPath)

			if err := m.streamFileBody(f); err != nil {
				f.Close()
				cleanup()
				return nil, err
			}
			if err := f.Close(); err != nil {
				cleanup()
				return nil, fmt.Errorf("httpcore: closing multipart spool file: %w", err)
			}

			fields[name] = MultipartField{
				IsFile: true,
				File: FileUpload{
					FormIndex:   formIndex,
					Filename:    filename,
					Filepath:    spoolPath,
					ContentType: partContentType,
				},
			}
			formIndex++
			state = stateSeekBoundary
		}
	}
}

// parsePartHeaders extracts name, filename, and Content-Type from a
// multipart part's header block (Content-Disposition plus an optional
// Content-Type line). isFile is true when a filename parameter was
// present.
func parsePartHeaders(block string) (name, filename, contentType string, isFile bool) {
	for _, line := range strings.Split(block, "\r\n") {
		header, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		header = strings.TrimSpace(header)
		value = strings.TrimSpace(value)

		switch strings.ToLower(header) {
		case "content-disposition":
			name = dispositionParam(value, "name")
			if fn, ok := dispositionParamOK(value, "filename"); ok {
				filename = fn
				isFile = true
			}
		case "content-type":
			contentType = value
		}
	}
	return name, filename, contentType, isFile
}

func dispositionParam(value, key string) string {
	v, _ := dispositionParamOK(value, key)
	return v
}

// dispositionParamOK extracts key="value" from a Content-Disposition
// header value, tolerating either quoted or bare parameter forms.
func dispositionParamOK(value, key string) (string, bool) {
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		k, v, found := strings.Cut(part, "=")
		if !found || !strings.EqualFold(strings.TrimSpace(k), key) {
			continue
		}
		return strings.Trim(strings.TrimSpace(v), `"`), true
	}
	return "", false
}
