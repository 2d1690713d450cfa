// Package assignments owns the per-annotator allow-lists that restrict which
// catalog items an annotator is served and which of their labels are reported.
package assignments

// Set maps an annotator to the filepaths assigned to them.
type Set map[string][]string

// ImportResult summarizes an Import.
type ImportResult struct {
	Annotators int   `json:"annotators"`
	Inserted   int64 `json:"inserted"`
	Removed    int64 `json:"removed"`
}
