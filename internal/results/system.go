package results

import "context"

// System defines the public contract for reporting.
type System interface {
	Handler() *Handler

	// Report returns every resolved judgment whose issuer is assigned the
	// judged item, ordered by filepath then issuer, byte-wise ascending.
	Report(ctx context.Context) ([]Result, error)

	Stats(ctx context.Context) (*Stats, error)
}
