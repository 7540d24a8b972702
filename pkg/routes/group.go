package routes

import "net/http"

// Group collects routes that share a path prefix. Children inherit the
// accumulated prefix of every parent.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", g)
	}
}

// NewMux returns a fresh ServeMux holding the routes in groups.
func NewMux(groups ...Group) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, groups...)
	return mux
}

func register(mux *http.ServeMux, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.pattern(prefix), r.Handler)
	}
	for _, child := range g.Children {
		register(mux, prefix, child)
	}
}
