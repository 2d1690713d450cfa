// Package module mounts HTTP handlers under a single path segment, each with
// its own middleware chain, plus an optional root module for everything else.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/groundtruth/pkg/middleware"
)

// Module serves a handler beneath prefix. The prefix is removed from the
// request path before the handler sees it, so a module mounted at
// "/saved_images" receives "/a/b.png" for "/saved_images/a/b.png".
type Module struct {
	prefix  string
	handler http.Handler
	chain   middleware.Chain
}

// New returns a module for prefix, which must be a single segment such as
// "/saved_images". It panics otherwise.
func New(prefix string, handler http.Handler) *Module {
	if len(prefix) < 2 || segment(prefix) != prefix {
		panic(fmt.Sprintf("module: prefix must be a single path segment, got %q", prefix))
	}
	return &Module{prefix: prefix, handler: handler}
}

// NewRoot returns a module that sees request paths unchanged.
// Mount it with Router.MountRoot.
func NewRoot(handler http.Handler) *Module {
	return &Module{handler: handler}
}

// Prefix is empty for a root module.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module's chain.
func (m *Module) Use(mw ...middleware.Func) {
	m.chain.Use(mw...)
}

// Handler is the module handler wrapped in its middleware, without prefix handling.
func (m *Module) Handler() http.Handler {
	return m.chain.Then(m.handler)
}

// Serve strips the prefix from req and dispatches through the chain.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	if m.prefix != "" {
		req = stripped(req, m.prefix)
	}
	m.Handler().ServeHTTP(w, req)
}

func stripped(req *http.Request, prefix string) *http.Request {
	rest := strings.TrimPrefix(req.URL.Path, prefix)
	if rest == "" {
		rest = "/"
	}

	r := req.Clone(req.Context())
	r.URL.Path = rest
	r.URL.RawPath = ""
	return r
}

// segment returns the first path segment of p with its leading slash:
// "/a/b" yields "/a" and "/" yields "/".
func segment(p string) string {
	rest, ok := strings.CutPrefix(p, "/")
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(rest, "/")
	return "/" + first
}
