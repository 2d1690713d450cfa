package workitems

import "context"

// System defines the public contract for serving work.
type System interface {
	Handler() *Handler

	// FetchWork returns every item eligible for annotator in a fresh random
	// order. An empty annotator yields an empty result.
	FetchWork(ctx context.Context, annotator string) ([]WorkItem, error)
}
