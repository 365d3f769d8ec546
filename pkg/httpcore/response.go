package httpcore

import (
	"fmt"
	"os"

	"github.com/watt-toolkit/forge/pkg/mimetype"
)

// responseBodyKind tags the variant carried by a Response's body
// (spec.md §3, same tagged-union approach as Body).
type responseBodyKind int

const (
	responseBodyNone responseBodyKind = iota
	responseBodyMemory
	responseBodyFile
)

// Response is the outgoing message a handler builds. The zero value is
// not usable; construct one with NewResponse so headers and the status
// code start from sane defaults.
type Response struct {
	Version string
	Method  string

	StatusCode int
	Headers    *Header

	bodyKind responseBodyKind
	memory   []byte
	filePath string
	fileName string

	chunked   bool
	chunkSize int
	rangeOn   bool

	// requestHeaders lets the writer consult the inbound Range header
	// without the Response needing a back-reference to the full Request.
	requestHeaders *Header

	// failed marks a builder call that could not do what it promised
	// (e.g. WriteFile on a path that doesn't exist); the writer emits
	// 404 for these regardless of StatusCode.
	failed bool
}

// NewResponse returns a Response seeded from the originating request's
// headers (for Range negotiation) and the connection's chunk size.
func NewResponse(req *Request, cfg ServerConfig) *Response {
	return &Response{
		Version:        req.Version,
		Method:         req.Method,
		StatusCode:     200,
		Headers:        NewHeader(),
		chunkSize:      cfg.ChunkSize,
		requestHeaders: req.Headers,
	}
}

// WriteString sets a plain-text memory body.
func (r *Response) WriteString(s string) *Response {
	r.bodyKind = responseBodyMemory
	r.memory = []byte(s)
	if !r.Headers.Has("Content-Type") {
		r.Headers.Set("Content-Type", "text/plain; charset=utf-8")
	}
	return r
}

// WriteBinary sets an in-memory binary body with an explicit
// Content-Type.
func (r *Response) WriteBinary(b []byte, contentType string) *Response {
	r.bodyKind = responseBodyMemory
	r.memory = b
	r.Headers.Set("Content-Type", contentType)
	return r
}

// WriteFile sets the body to stream from a file on disk, inferring
// Content-Type from the extension (falling back to content sniffing,
// per the mimetype package). If the file cannot be opened, the
// response degrades to a 404 rather than returning an error to the
// caller, matching spec.md §5's fire-and-forget builder style.
func (r *Response) WriteFile(path string) *Response {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		r.failed = true
		r.StatusCode = 404
		r.bodyKind = responseBodyNone
		return r
	}
	r.bodyKind = responseBodyFile
	r.filePath = path
	r.Headers.Set("Content-Type", mimetype.ByExtensionOrSniff(path))
	return r
}

// WriteState sets the status code and clears any body previously
// attached by WriteString/WriteBinary/WriteFile, per spec.md §4.5's
// write_state(code) contract: status + Content-Length: 0 + body=None.
func (r *Response) WriteState(code int) *Response {
	r.StatusCode = code
	r.bodyKind = responseBodyNone
	r.memory = nil
	r.filePath = ""
	r.failed = false
	return r
}

// Status sets the response status code.
func (r *Response) Status(code int) *Response {
	r.StatusCode = code
	return r
}

// Chunked toggles chunked transfer-encoding for the body.
func (r *Response) Chunked(enable bool) *Response {
	r.chunked = enable
	return r
}

// EnableRange toggles byte-range serving for a file body; the writer
// consults the request's Range header only when this is set.
func (r *Response) EnableRange(enable bool) *Response {
	r.rangeOn = enable
	return r
}

// SpecifyFileName sets Content-Disposition to an attachment with the
// given download filename.
func (r *Response) SpecifyFileName(name string) *Response {
	r.fileName = name
	r.Headers.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	return r
}

// AddHeader sets an arbitrary response header.
func (r *Response) AddHeader(name, value string) *Response {
	r.Headers.Set(name, value)
	return r
}

// RemoveHeader removes a response header.
func (r *Response) RemoveHeader(name string) *Response {
	r.Headers.Remove(name)
	return r
}
