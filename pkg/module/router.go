package module

import (
	"net/http"
	"strings"
)

// Router dispatches a request, after dropping any trailing slash, to the
// module mounted at its first path segment. Otherwise a pattern registered
// with HandleNative serves it, and anything left goes to the root module
// when one is mounted.
type Router struct {
	modules map[string]*Module
	native  *http.ServeMux
	root    *Module
}

func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// HandleNative registers a ServeMux pattern outside any module, such as a health probe.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers m at its prefix, replacing any module already there.
func (r *Router) Mount(m *Module) {
	r.modules[m.prefix] = m
}

// MountRoot sets the module that receives otherwise unmatched requests.
func (r *Router) MountRoot(m *Module) {
	r.root = m
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = strings.TrimRight(p, "/")
		if req.URL.Path == "" {
			req.URL.Path = "/"
		}
	}

	if m, ok := r.modules[segment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}

	if r.root != nil {
		if _, pattern := r.native.Handler(req); pattern == "" {
			r.root.Serve(w, req)
			return
		}
	}

	r.native.ServeHTTP(w, req)
}
