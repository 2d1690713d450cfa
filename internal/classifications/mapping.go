package classifications

import (
	"database/sql"
	"net/url"
	"strconv"

	"github.com/JaimeStill/groundtruth/pkg/query"
	"github.com/JaimeStill/groundtruth/pkg/repository"
)

var projection = query.
	NewProjectionMap("image_saved_data", "isd").
	Project("id", "ID").
	Project("classification_issuer", "ClassificationIssuer").
	Project("full_filepath", "FullFilepath").
	Project("is_suspected_ad_manual", "Label").
	Project("flag_issue", "FlagIssue").
	Project("notes", "Notes").
	Project("is_ad_marker", "IsAdMarker").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored. Filepath uses case-insensitive contains matching;
// the rest match exactly. An Unresolved label matches rows with no label.
type Filters struct {
	ClassificationIssuer *string `json:"classification_issuer,omitempty"`
	Filepath             *string `json:"filepath,omitempty"`
	Label                *Label  `json:"label,omitempty"`
	FlagIssue            *bool   `json:"flag_issue,omitempty"`
	IsAdMarker           *bool   `json:"is_ad_marker,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("ClassificationIssuer", f.ClassificationIssuer).
		WhereContains("FullFilepath", f.Filepath).
		WhereEquals("FlagIssue", f.FlagIssue).
		WhereEquals("IsAdMarker", f.IsAdMarker)

	if f.Label != nil {
		b.WhereNullable("Label", f.Label.column())
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("classification_issuer"); v != "" {
		f.ClassificationIssuer = &v
	}

	if v := values.Get("filepath"); v != "" {
		f.Filepath = &v
	}

	if v := values.Get("label"); v != "" {
		if l, err := ParseLabel(v); err == nil {
			f.Label = &l
		}
	}

	if v := values.Get("flag_issue"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.FlagIssue = &b
		}
	}

	if v := values.Get("is_ad_marker"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IsAdMarker = &b
		}
	}

	return f
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var c Classification
	var label sql.NullInt64

	err := s.Scan(
		&c.ID,
		&c.ClassificationIssuer,
		&c.FullFilepath,
		&label,
		&c.FlagIssue,
		&c.Notes,
		&c.IsAdMarker,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}

	c.Label = labelFromColumn(label)
	return c, nil
}
