package httpcore

import "errors"

// Protocol and resource-limit errors returned by the head parser and body
// reader. The connection driver logs them if enabled and closes the
// connection without a response, except for ErrBodyTooLarge, which is
// answered with a 413 before the connection is closed.
var (
	// ErrHeadTooLarge means the head section exceeded MaxHeaderSize
	// before the "\r\n\r\n" terminator was found.
	ErrHeadTooLarge = errors.New("httpcore: head section exceeds max header size")

	// ErrConnectionLost means a read returned zero bytes before the head
	// was complete, or the stream ended before Content-Length body bytes
	// had arrived.
	ErrConnectionLost = errors.New("httpcore: connection closed before the request was fully read")

	// ErrMalformedHead means the head bytes were not valid UTF-8, the
	// request line did not have three space-separated fields, or a
	// header line lacked a colon.
	ErrMalformedHead = errors.New("httpcore: malformed request head")

	// ErrInvalidContentLength means Content-Length was present but not a
	// parsable non-negative integer.
	ErrInvalidContentLength = errors.New("httpcore: invalid Content-Length")

	// ErrBodyTooLarge means a non-multipart body would exceed
	// MaxBodySize.
	ErrBodyTooLarge = errors.New("httpcore: body exceeds max body size")

	// ErrMalformedMultipart means the multipart/form-data stream did not
	// follow the boundary framing the state machine expects.
	ErrMalformedMultipart = errors.New("httpcore: malformed multipart body")
)
