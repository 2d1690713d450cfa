package classifications

import (
	"context"

	"github.com/JaimeStill/groundtruth/pkg/pagination"
)

// System defines the public contract for classification domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	// Upsert records cmd for its issuer and filepath, registering the issuer
	// and overwriting any earlier judgment in one transaction.
	Upsert(ctx context.Context, cmd UpsertCommand) (UpsertResult, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Classification], error)
}
