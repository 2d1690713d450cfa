// Package openapi models the OpenAPI 3.1 document describing the HTTP API
// and serves it as static JSON.
package openapi

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
)

// Spec is the root of an OpenAPI 3.1 document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// New starts a document from cfg with the shared components in place.
func New(cfg Config, version string) *Spec {
	s := &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:       cfg.Title,
			Version:     version,
			Description: cfg.Description,
		},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
	for _, u := range cfg.Servers {
		s.AddServer(u)
	}
	return s
}

func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddOperation sets op as the method handler documented on path.
// It panics on a method other than GET or POST.
func (s *Spec) AddOperation(method, path string, op *Operation) {
	item := s.Paths[path]
	if item == nil {
		item = new(PathItem)
		s.Paths[path] = item
	}

	slot := item.slot(method)
	if slot == nil {
		panic(fmt.Sprintf("openapi: cannot document %s %s", method, path))
	}
	*slot = op
}

// Operation looks up the operation documented for method on path.
func (s *Spec) Operation(method, path string) *Operation {
	item := s.Paths[path]
	if item == nil {
		return nil
	}
	if slot := item.slot(method); slot != nil {
		return *slot
	}
	return nil
}

// Operations calls fn for every documented operation.
func (s *Spec) Operations(fn func(op *Operation)) {
	for _, item := range s.Paths {
		for _, op := range []*Operation{item.Get, item.Post} {
			if op != nil {
				fn(op)
			}
		}
	}
}

// ServeSpec serves the encoded document with a content-hash ETag, answering
// a matching If-None-Match with 304.
func ServeSpec(doc []byte) http.HandlerFunc {
	sum := sha256.Sum256(doc)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(doc)
	}
}
