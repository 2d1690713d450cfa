// Package middleware provides the HTTP wrappers shared by every module:
// request logging, panic recovery and CORS, plus the Chain that orders them.
package middleware

import "net/http"

// Func wraps an http.Handler.
type Func func(http.Handler) http.Handler

// Chain is an ordered middleware list. The first entry is the outermost
// wrapper and therefore sees the request first.
type Chain []Func

// Use appends fns to the chain. Nil entries are ignored.
func (c *Chain) Use(fns ...Func) {
	for _, fn := range fns {
		if fn != nil {
			*c = append(*c, fn)
		}
	}
}

// Then wraps h with every middleware in the chain.
func (c Chain) Then(h http.Handler) http.Handler {
	for i := len(c) - 1; i >= 0; i-- {
		h = c[i](h)
	}
	return h
}
