package annotators

import "context"

// System defines the public contract for the annotator registry.
type System interface {
	Handler() *Handler

	// EnsureRegistered records name if it is not already known.
	EnsureRegistered(ctx context.Context, name string) error

	// List returns every known issuer in byte-wise ascending order.
	List(ctx context.Context) ([]string, error)
}
