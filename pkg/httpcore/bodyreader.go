package httpcore

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// multipartBoundaryPrefix is the parameter name carrying the boundary
// token in a multipart/form-data Content-Type header.
const multipartBoundaryPrefix = "boundary="

// readBody implements spec.md §4.2's Content-Length/Content-Type
// dispatch table. r must yield exactly the bytes still owed by the
// connection; prefill holds any body bytes already pulled in past the
// head terminator while scanning for "\r\n\r\n".
func readBody(r io.Reader, headers *Header, prefill []byte, cfg ServerConfig) (Body, error) {
	clStr, hasCL := headers.Get("Content-Length")
	if !hasCL {
		return Body{Kind: BodyNone}, nil
	}

	length, err := strconv.Atoi(strings.TrimSpace(clStr))
	if err != nil || length < 0 {
		return Body{Kind: BodyBad}, ErrInvalidContentLength
	}
	if length == 0 {
		return Body{Kind: BodyNone}, nil
	}

	contentType, hasCT := headers.Get("Content-Type")
	if !hasCT {
		return Body{Kind: BodyBad}, nil
	}

	switch {
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		raw, err := readExactly(r, prefill, length, cfg.MaxBodySize)
		if err != nil {
			return bodyForReadError(err), err
		}
		return Body{Kind: BodyURLForm, Form: decodeURLForm(string(raw))}, nil

	case strings.HasPrefix(contentType, "multipart/form-data"):
		boundary := multipartBoundary(contentType)
		if boundary == "" {
			return Body{Kind: BodyBad}, ErrMalformedMultipart
		}
		bounded := io.LimitReader(r, int64(length)-int64(len(prefill)))
		mr := newMultipartReader(bounded, prefill, cfg.ReadBuffIncreaseSize, boundary, cfg.UploadDirectory)
		fields, err := mr.parse()
		if err != nil {
			return Body{Kind: BodyBad}, err
		}
		return Body{Kind: BodyMulti, Multi: fields}, nil

	default:
		raw, err := readExactly(r, prefill, length, cfg.MaxBodySize)
		if err != nil {
			return bodyForReadError(err), err
		}
		if !utf8.Valid(raw) {
			return Body{Kind: BodyBad}, nil
		}
		return Body{Kind: BodyText, Text: string(raw)}, nil
	}
}

// bodyForReadError maps a readExactly failure to the Body.Kind the
// connection driver keys off of: only ErrBodyTooLarge yields
// BodyTooLarge (which triggers a 413 response); any other failure
// (e.g. the peer hanging up mid-body) yields BodyBad, and the
// connection driver closes without attempting a response for those.
func bodyForReadError(err error) Body {
	if err == ErrBodyTooLarge {
		return Body{Kind: BodyTooLarge}
	}
	return Body{Kind: BodyBad}
}

// readExactly returns exactly length bytes of body, using prefill
// before pulling more from r, and fails with ErrBodyTooLarge if length
// exceeds maxBodySize.
func readExactly(r io.Reader, prefill []byte, length, maxBodySize int) ([]byte, error) {
	if length > maxBodySize {
		return nil, ErrBodyTooLarge
	}

	out := make([]byte, length)
	n := copy(out, prefill)
	if n < length {
		if _, err := io.ReadFull(r, out[n:]); err != nil {
			return nil, ErrConnectionLost
		}
	}
	return out, nil
}

// multipartBoundary extracts the boundary token from a multipart
// Content-Type header value.
func multipartBoundary(contentType string) string {
	for _, part := range strings.Split(contentType, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, multipartBoundaryPrefix) {
			return strings.Trim(part[len(multipartBoundaryPrefix):], `"`)
		}
	}
	return ""
}
