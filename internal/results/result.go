// Package results reports resolved judgments on assigned items and
// summary counts over the labeling tables.
package results

// Result is one resolved judgment in the report. IsSuspectedAdManual is 1 for
// ad and 0 for not-ad.
type Result struct {
	FullFilepath         string `json:"full_filepath"`
	IsSuspectedAdManual  int    `json:"is_suspected_ad_manual"`
	ClassificationIssuer string `json:"classification_issuer"`
}

// Stats summarizes the labeling tables.
type Stats struct {
	Items           int `json:"items"`
	Classifications int `json:"classifications"`
	Resolved        int `json:"resolved"`
	Flagged         int `json:"flagged"`
	Annotators      int `json:"annotators"`
	Assignments     int `json:"assignments"`
}
