package httpcore

import "strings"

// Handler runs application logic for a matched route.
type Handler func(*Request, *Response)

// Middleware runs before a Handler in registration order. Returning
// false short-circuits the chain: neither later middlewares nor the
// handler run, and whatever the middleware already wrote to Response
// is sent as-is.
type Middleware func(*Request, *Response) bool

type routeEntry struct {
	handler     Handler
	middlewares []Middleware
}

// Router holds the registration table: exact paths, wildcard prefixes
// ("/static/*"), and the fallback invoked when nothing matches.
type Router struct {
	exact    map[string]map[string]routeEntry
	wildcard map[string]map[string]routeEntry
	notFound routeEntry
}

// NewRouter returns a Router with the default not-found handler
// installed (spec.md's reserved NEVER_FOUND_FOR_ALL fallback): a plain
// 404 with no body, used whenever no route registers its own.
func NewRouter() *Router {
	return &Router{
		exact:    make(map[string]map[string]routeEntry),
		wildcard: make(map[string]map[string]routeEntry),
		notFound: routeEntry{handler: defaultNotFound},
	}
}

func defaultNotFound(req *Request, resp *Response) {
	resp.WriteState(404)
}

// SetNotFound overrides the fallback handler invoked when no route
// matches.
func (rt *Router) SetNotFound(h Handler) {
	rt.notFound = routeEntry{handler: h}
}

// RouteBuilder is the fluent handle returned by Route, mirroring the
// source API's route(methods, path).reg(handler) shape.
type RouteBuilder struct {
	router  *Router
	methods []string
	path    string
}

// Route begins registering one or more methods against path. path may
// end in "/*" to match any suffix under a prefix; a bare "/*" is
// rejected (Reg/RegWithMiddlewares panics) since it would shadow every
// route including the not-found fallback — a programmer mistake, not a
// runtime condition.
func (rt *Router) Route(methods []string, path string) *RouteBuilder {
	return &RouteBuilder{router: rt, methods: methods, path: path}
}

// Reg registers handler with no middlewares.
func (b *RouteBuilder) Reg(h Handler) {
	b.RegWithMiddlewares(nil, h)
}

// RegWithMiddlewares registers handler behind the given middleware
// chain, run in order before handler.
func (b *RouteBuilder) RegWithMiddlewares(mw []Middleware, h Handler) {
	if b.path == "/*" {
		panic("httpcore: refusing to register a bare \"/*\" wildcard route")
	}

	entry := routeEntry{handler: h, middlewares: mw}

	if strings.HasSuffix(b.path, "/*") {
		prefix := strings.TrimSuffix(b.path, "/*")
		table, ok := b.router.wildcard[prefix]
		if !ok {
			table = make(map[string]routeEntry)
			b.router.wildcard[prefix] = table
		}
		for _, m := range b.methods {
			table[m] = entry
		}
		return
	}

	table, ok := b.router.exact[b.path]
	if !ok {
		table = make(map[string]routeEntry)
		b.router.exact[b.path] = table
	}
	for _, m := range b.methods {
		table[m] = entry
	}
}

// lookup resolves method+path to a route entry: exact match first,
// then the longest matching wildcard prefix, then the not-found
// fallback.
func (rt *Router) lookup(method, path string) routeEntry {
	if table, ok := rt.exact[path]; ok {
		if entry, ok := table[method]; ok {
			return entry
		}
	}

	bestLen := -1
	var best routeEntry
	found := false
	for prefix, table := range rt.wildcard {
		if path != prefix && !strings.HasPrefix(path, prefix+"/") {
			continue
		}
		entry, ok := table[method]
		if !ok {
			continue
		}
		if len(prefix) > bestLen {
			bestLen = len(prefix)
			best = entry
			found = true
		}
	}
	if found {
		return best
	}

	return rt.notFound
}

// Middlewares builds a middleware chain from a literal list of
// functions. The original source's inject_middlewares! macro assembled
// a Vec<Arc<dyn MiddleWare>> the same way; Go has no macros, so this is
// a small variadic helper doing the equivalent job for
// RegWithMiddlewares call sites.
func Middlewares(fns ...Middleware) []Middleware {
	return fns
}

// Dispatch runs the middleware chain and handler matched for
// method+path against req/resp. It is the single entry point the
// connection driver calls per request.
func (rt *Router) Dispatch(req *Request, resp *Response) {
	entry := rt.lookup(req.Method, req.path())
	for _, mw := range entry.middlewares {
		if !mw(req, resp) {
			return
		}
	}
	entry.handler(req, resp)
}
