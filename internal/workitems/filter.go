package workitems

import (
	"github.com/JaimeStill/groundtruth/pkg/query"
)

// FilterMode selects which restrictions apply when fetching work.
type FilterMode int

const (
	// FilterNone applies when no annotator is known. No work is served.
	FilterNone FilterMode = iota
	// FilterAnnotator excludes items the annotator has resolved.
	FilterAnnotator
	// FilterAssigned additionally restricts items to the annotator's assignments.
	FilterAssigned
)

func (m FilterMode) String() string {
	switch m {
	case FilterNone:
		return "none"
	case FilterAnnotator:
		return "annotator"
	case FilterAssigned:
		return "assigned"
	default:
		return "unknown"
	}
}

// SelectMode picks the filter mode for an annotator.
func SelectMode(annotator string, hasAssignments bool) FilterMode {
	switch {
	case annotator == "":
		return FilterNone
	case hasAssignments:
		return FilterAssigned
	default:
		return FilterAnnotator
	}
}

var projection = query.
	NewProjectionMap("image_texts", "it").
	Project("id", "ID").
	Project("full_filepath", "FullFilepath").
	Project("extracted_text", "ExtractedText").
	Project("script", "Script").
	Project("referrer", "Referrer").
	Project("screenshot_path", "ScreenshotPath").
	Project("recording_path", "RecordingPath")

var defaultSort = query.SortField{Field: "ID"}

const resolvedByAnnotator = `SELECT 1 FROM image_saved_data isd
	WHERE isd.full_filepath = it.full_filepath
	AND isd.classification_issuer = ?
	AND isd.is_suspected_ad_manual IS NOT NULL`

const assignedToAnnotator = `SELECT 1 FROM user_assignments ua
	WHERE ua.full_filepath = it.full_filepath
	AND ua.classification_issuer = ?`

// buildQuery returns the eligible-items query for mode. ok is false for
// FilterNone, which never reaches storage.
func buildQuery(mode FilterMode, annotator string) (sql string, args []any, ok bool) {
	if mode == FilterNone {
		return "", nil, false
	}

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereNotExists(resolvedByAnnotator, annotator)

	if mode == FilterAssigned {
		qb.WhereExists(assignedToAnnotator, annotator)
	}

	sql, args = qb.Build()
	return sql, args, true
}
