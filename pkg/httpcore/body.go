package httpcore

import "strings"

// BodyKind tags the variant carried by a Body (spec.md §3's "tagged
// variant"). Modeling the body this way — an explicit enum plus
// per-kind payload fields — avoids the pointer-chased class hierarchy
// spec.md §9 warns against for BodyContent.
type BodyKind int

const (
	// BodyNone means the request carried no body (no Content-Length, or
	// Content-Length: 0).
	BodyNone BodyKind = iota
	// BodyText means the body was read as raw bytes and decoded as
	// UTF-8 text; set for any Content-Type other than url-form or
	// multipart/form-data, per spec.md §9's documented (if surprising)
	// contract.
	BodyText
	// BodyURLForm means Content-Type was
	// application/x-www-form-urlencoded and the body decoded into
	// Form.
	BodyURLForm
	// BodyMulti means Content-Type was multipart/form-data and the body
	// streamed into Multi, spooling any file parts to disk.
	BodyMulti
	// BodyBad means the body was present but could not be parsed
	// (missing Content-Type with a positive length, or non-UTF-8 bytes
	// for a text body).
	BodyBad
	// BodyTooLarge means a non-multipart body would have exceeded
	// ServerConfig.MaxBodySize; the connection is closed without
	// invoking a handler.
	BodyTooLarge
)

// FileUpload describes one spooled file part of a multipart/form-data
// body. The file named by Filepath is fully written before the handler
// runs; its lifetime thereafter belongs to the application (spec.md
// §6's filesystem contract).
type FileUpload struct {
	// FormIndex is the ordinal position of this part among all parts of
	// the multipart body (spec.md §3's form_indice).
	FormIndex int
	// Filename is the original client-supplied filename from the part's
	// Content-Disposition header.
	Filename string
	// Filepath is upload_directory + "/" + uuid + ext(Filename).
	Filepath string
	// ContentType is the part's own Content-Type header, if present.
	ContentType string
}

// MultipartField is one value of a multipart/form-data body: either a
// plain text field or a spooled file upload.
type MultipartField struct {
	IsFile bool
	Text   string
	File   FileUpload
}

// Body is the tagged-union request body described by spec.md §3.
// Exactly one of Text, Form, or Multi is meaningful, selected by Kind.
type Body struct {
	Kind  BodyKind
	Text  string
	Form  map[string]string
	Multi map[string]MultipartField
}

// decodeURLForm implements spec.md §4.2's url-form decoding: split on
// '&', each element split on the first '='; pairs with an empty key or
// empty value are dropped. Percent-decoding is deliberately NOT
// performed — spec.md §9 documents this as matching the source rather
// than RFC 3986, and leaves it to callers to decode further if needed.
func decodeURLForm(raw string) map[string]string {
	form := make(map[string]string)
	if raw == "" {
		return form
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" || value == "" {
			continue
		}
		form[key] = value
	}
	return form
}
