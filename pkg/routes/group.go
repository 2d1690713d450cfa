package routes

import "net/http"

// Group organizes routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	Walk(func(r Route, path string) {
		mux.HandleFunc(r.Method+" "+path, r.Handler)
	}, groups...)
}

// Walk calls fn for every route in groups with the route's full path,
// depth first in declaration order.
func Walk(fn func(r Route, path string), groups ...Group) {
	for _, group := range groups {
		walkGroup(fn, "", group)
	}
}

func walkGroup(fn func(Route, string), parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		fn(route, fullPrefix+route.Pattern)
	}
	for _, child := range group.Children {
		walkGroup(fn, fullPrefix, child)
	}
}
