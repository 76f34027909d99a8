package router

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Observer receives one call per served request. route is the registered
// pattern that matched, or "unmatched".
type Observer interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

type route struct {
	method  string
	pattern string
	handler HandlerFunc
}

type mount struct {
	prefix  string
	handler http.Handler
}

// Router matches METHOD + path against registered patterns. A "*" segment
// matches exactly one path segment; use Handle for prefix mounts. Exact
// routes win, then wildcard routes in registration order, then mounts.
type Router struct {
	routes   map[string]HandlerFunc // key = METHOD:PATH
	paths    map[string]bool        // track registered paths
	wildcard []route
	mounts   []mount
	log      *slog.Logger
	observer Observer
}

type Option func(*Router)

// WithLogger sets the access logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.log = l }
}

// WithObserver reports every request to o.
func WithObserver(o Observer) Option {
	return func(r *Router) { r.observer = o }
}

func New(opts ...Option) *Router {
	r := &Router{
		routes: make(map[string]HandlerFunc),
		paths:  make(map[string]bool),
		log:    slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ServeHTTP dispatches the request and writes one access log line.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	pattern := r.dispatch(lrw, req)

	duration := time.Since(start)
	r.log.Info("request",
		"method", req.Method,
		"path", req.URL.Path,
		"route", pattern,
		"status", lrw.statusCode,
		"duration", duration,
	)
	if r.observer != nil {
		r.observer.ObserveRequest(req.Method, pattern, lrw.statusCode, duration)
	}
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) string {
	path := req.URL.Path
	if h, ok := r.routes[req.Method+":"+path]; ok {
		h(w, req)
		return path
	}

	pathMatched := r.paths[path]
	for _, rt := range r.wildcard {
		if !matchWildcardRoute(path, rt.pattern) {
			continue
		}
		if rt.method == req.Method {
			rt.handler(w, req)
			return rt.pattern
		}
		pathMatched = true
	}

	for _, m := range r.mounts {
		if strings.HasPrefix(path, m.prefix) {
			m.handler.ServeHTTP(w, req)
			return m.prefix
		}
	}

	if pathMatched {
		// Path exists but method not allowed
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	} else {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
	return "unmatched"
}

// matchWildcardRoute checks if a request path matches a wildcard route pattern
func matchWildcardRoute(requestPath, routePattern string) bool {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	if len(requestSegments) != len(routeSegments) {
		return false
	}
	for i, routeSegment := range routeSegments {
		if routeSegment == "*" {
			// Wildcard matches any non-empty segment
			if requestSegments[i] == "" {
				return false
			}
			continue
		}
		if requestSegments[i] != routeSegment {
			return false
		}
	}
	return true
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	if strings.Contains(path, "*") {
		r.wildcard = append(r.wildcard, route{method: method, pattern: path, handler: handler})
		return
	}
	r.routes[method+":"+path] = handler
	r.paths[path] = true
}

func (r *Router) GET(path string, handler HandlerFunc)   { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)  { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)   { r.register(http.MethodPut, path, handler) }
func (r *Router) PATCH(path string, handler HandlerFunc) { r.register(http.MethodPatch, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Handle mounts h for every method under prefix. Mounts are tried after
// routes, in registration order.
func (r *Router) Handle(prefix string, h http.Handler) {
	r.mounts = append(r.mounts, mount{prefix: prefix, handler: h})
}

// Routes lists the registered METHOD:PATH keys, exact routes first.
func (r *Router) Routes() []string {
	out := make([]string, 0, len(r.routes)+len(r.wildcard))
	for k := range r.routes {
		out = append(out, k)
	}
	for _, rt := range r.wildcard {
		out = append(out, rt.method+":"+rt.pattern)
	}
	return out
}

// Server returns an http.Server serving the router on addr.
func (r *Router) Server(addr string, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}
