package api

import "github.com/JaimeStill/flames/internal/results"

// Domain holds the domain systems served by the API. The HTML site shares
// them so both surfaces write to the same store.
type Domain struct {
	Results results.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Results: results.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
