package results

import (
	"context"

	"github.com/JaimeStill/flames/pkg/pagination"
)

// System defines the public contract for result operations.
type System interface {
	Handler() *Handler

	// Play validates the names, computes their label, and stores the outcome.
	Play(ctx context.Context, cmd PlayCommand) (*Result, error)

	// Insert stores a computed result and returns its new id.
	Insert(ctx context.Context, r Result) (int64, error)

	// ListAll returns every stored result, newest first.
	ListAll(ctx context.Context) ([]Result, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Result], error)

	Find(ctx context.Context, id int64) (*Result, error)
}
