// Package classifications stores annotator judgments. Each (issuer, filepath)
// pair holds at most one row, overwritten in place on every submission.
package classifications

import (
	"time"

	"github.com/google/uuid"
)

// Classification is a stored judgment for one item by one issuer.
type Classification struct {
	ID                   uuid.UUID `json:"id"`
	ClassificationIssuer string    `json:"classification_issuer"`
	FullFilepath         string    `json:"full_filepath"`
	Label                Label     `json:"is_suspected_ad_manual"`
	FlagIssue            bool      `json:"flag_issue"`
	Notes                *string   `json:"notes"`
	IsAdMarker           bool      `json:"is_ad_marker"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UpsertCommand carries a submitted judgment. Classification is a pointer so
// that an absent or null label is distinguishable from an explicit one.
// An empty ClassificationIssuer is recorded under the configured default issuer.
type UpsertCommand struct {
	Filepath             string  `json:"filepath"`
	Classification       *Label  `json:"classification"`
	ClassificationIssuer string  `json:"classification_issuer"`
	FlagIssue            bool    `json:"flag_issue"`
	Notes                *string `json:"notes"`
	IsAdMarker           bool    `json:"is_ad_marker"`
}

// Validate reports ErrValidation when filepath or classification is missing.
func (c UpsertCommand) Validate() error {
	if c.Filepath == "" {
		return ErrMissingFilepath
	}
	if c.Classification == nil {
		return ErrMissingLabel
	}
	return nil
}

// UpsertResult reports how many rows a write touched.
type UpsertResult struct {
	RowsAffected int64 `json:"updated"`
}

// UpdateResponse is the body returned by a successful submission.
type UpdateResponse struct {
	Success bool  `json:"success"`
	Updated int64 `json:"updated"`
}
