package httpcore

import "testing"

func TestRouterExactMatch(t *testing.T) {
	rt := NewRouter()
	called := false
	rt.Route([]string{GET}, "/hello").Reg(func(req *Request, res *Response) {
		called = true
	})

	req := &Request{Method: GET, URL: "/hello"}
	resp := &Response{}
	rt.Dispatch(req, resp)

	if !called {
		t.Fatal("exact-match handler was not invoked")
	}
}

func TestRouterWildcardMatch(t *testing.T) {
	rt := NewRouter()
	var gotPath string
	rt.Route([]string{GET}, "/static/*").Reg(func(req *Request, res *Response) {
		gotPath = req.URL
	})

	req := &Request{Method: GET, URL: "/static/css/app.css"}
	resp := &Response{}
	rt.Dispatch(req, resp)

	if gotPath != "/static/css/app.css" {
		t.Fatalf("wildcard handler got path %q", gotPath)
	}
}

func TestRouterFallsBackToNotFound(t *testing.T) {
	rt := NewRouter()

	req := &Request{Method: GET, URL: "/nope"}
	resp := &Response{Headers: NewHeader()}
	rt.Dispatch(req, resp)

	if resp.StatusCode != 404 {
		t.Fatalf("StatusCode = %d, want 404", resp.StatusCode)
	}
}

func TestRouterMiddlewareShortCircuits(t *testing.T) {
	rt := NewRouter()
	handlerCalled := false

	mw := []Middleware{
		func(req *Request, res *Response) bool {
			res.Status(401)
			return false
		},
	}
	rt.Route([]string{GET}, "/secret").RegWithMiddlewares(mw, func(req *Request, res *Response) {
		handlerCalled = true
	})

	req := &Request{Method: GET, URL: "/secret"}
	resp := &Response{Headers: NewHeader()}
	rt.Dispatch(req, resp)

	if handlerCalled {
		t.Fatal("handler ran despite middleware returning false")
	}
	if resp.StatusCode != 401 {
		t.Fatalf("StatusCode = %d, want 401", resp.StatusCode)
	}
}

func TestRouterBareWildcardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering a bare \"/*\" route did not panic")
		}
	}()

	rt := NewRouter()
	rt.Route([]string{GET}, "/*").Reg(func(req *Request, res *Response) {})
}
