// Package workitems serves catalog items to annotators, excluding the items
// they have already resolved and honoring their assignments.
package workitems

// WorkItem is a catalog entry awaiting classification. Catalog rows are written
// by the upstream extraction pipeline and are never modified here.
type WorkItem struct {
	ID             int64   `json:"id"`
	FullFilepath   string  `json:"full_filepath"`
	ExtractedText  string  `json:"extracted_text"`
	Script         *string `json:"script"`
	Referrer       *string `json:"referrer"`
	ScreenshotPath *string `json:"screenshot_path"`
	RecordingPath  *string `json:"recording_path"`
}
