package httpcore

import (
	"net/url"
	"strings"
)

// Request is the fully-parsed inbound message handed to route handlers.
type Request struct {
	Method  string
	URL     string
	Version string
	Headers *Header
	Body    Body
}

// GetHeader returns a request header value (case-insensitive).
func (r *Request) GetHeader(name string) (string, bool) {
	return r.Headers.Get(name)
}

// GetHeaderString returns a request header value or "" if absent.
func (r *Request) GetHeaderString(name string) string {
	return r.Headers.GetDefault(name)
}

// GetMethod returns the request method.
func (r *Request) GetMethod() string { return r.Method }

// GetUrl returns the raw request target, including any query string.
func (r *Request) GetUrl() string { return r.URL }

// GetVersion returns the request's declared HTTP version string.
func (r *Request) GetVersion() string { return r.Version }

// HasBody reports whether the request carried a recognized, non-empty
// body (spec.md §3: anything other than BodyNone/BodyBad/BodyTooLarge).
func (r *Request) HasBody() bool {
	switch r.Body.Kind {
	case BodyText, BodyURLForm, BodyMulti:
		return true
	default:
		return false
	}
}

// PlainBody returns the raw text body when Kind is BodyText, and ""
// otherwise.
func (r *Request) PlainBody() string {
	if r.Body.Kind == BodyText {
		return r.Body.Text
	}
	return ""
}

// path splits URL into the path component, discarding any query string.
func (r *Request) path() string {
	p := r.URL
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

// GetParams parses the request target's query string and returns it as
// a name->value map. Percent-decoding follows net/url, unlike the
// deliberately-unescaped form body decoding in decodeURLForm (spec.md
// §9 distinguishes the two).
func (r *Request) GetParams() map[string]string {
	out := make(map[string]string)
	i := strings.IndexByte(r.URL, '?')
	if i < 0 {
		return out
	}
	values, err := url.ParseQuery(r.URL[i+1:])
	if err != nil {
		return out
	}
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// GetParam returns a single query-string parameter.
func (r *Request) GetParam(name string) (string, bool) {
	v, ok := r.GetParams()[name]
	return v, ok
}

// GetQueries returns the form fields of the body: for BodyURLForm, the
// key/value pairs exactly as sent, without percent-decoding; for
// BodyMulti, the text-only parts (file parts are reachable only via
// GetFile/GetFiles).
func (r *Request) GetQueries() map[string]string {
	out := make(map[string]string)
	switch r.Body.Kind {
	case BodyURLForm:
		for k, v := range r.Body.Form {
			out[k] = v
		}
	case BodyMulti:
		for k, f := range r.Body.Multi {
			if !f.IsFile {
				out[k] = f.Text
			}
		}
	}
	return out
}

// GetQuery returns a single body form field. Url-form values are not
// percent-decoded ("a%20b" stays "a%20b"), unlike GetParam.
func (r *Request) GetQuery(name string) (string, bool) {
	v, ok := r.GetQueries()[name]
	return v, ok
}

// GetFiles returns every spooled file upload from a multipart body,
// keyed by form field name.
func (r *Request) GetFiles() map[string]FileUpload {
	out := make(map[string]FileUpload)
	if r.Body.Kind != BodyMulti {
		return out
	}
	for k, f := range r.Body.Multi {
		if f.IsFile {
			out[k] = f.File
		}
	}
	return out
}

// GetFile returns a single spooled file upload by form field name.
func (r *Request) GetFile(name string) (FileUpload, bool) {
	f, ok := r.GetFiles()[name]
	return f, ok
}
