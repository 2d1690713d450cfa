package assignments

import "context"

// System defines the public contract for the assignment registry.
type System interface {
	Handler() *Handler

	// ForAnnotator returns the filepaths assigned to annotator, sorted ascending.
	// An empty result means the annotator is unrestricted.
	ForAnnotator(ctx context.Context, annotator string) ([]string, error)

	HasAssignments(ctx context.Context, annotator string) (bool, error)

	// Replace swaps annotator's assignments for filepaths in one transaction.
	Replace(ctx context.Context, annotator string, filepaths []string) (ImportResult, error)

	// Import adds every pair in set in one transaction. With replace, each
	// annotator named in set first loses their existing assignments.
	Import(ctx context.Context, set Set, replace bool) (ImportResult, error)
}
