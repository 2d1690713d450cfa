package classifications

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Label is the ternary judgment on an item.
type Label int8

const (
	Unresolved Label = -1
	NotAd      Label = 0
	Ad         Label = 1
)

// Resolved reports whether l counts as a final judgment.
func (l Label) Resolved() bool {
	return l == Ad || l == NotAd
}

func (l Label) String() string {
	switch l {
	case Ad:
		return "ad"
	case NotAd:
		return "not-ad"
	default:
		return "unresolved"
	}
}

// ParseLabel accepts 1, 0, -1, true, false, ad, not-ad, and unresolved.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "ad":
		return Ad, nil
	case "0", "false", "not-ad", "not_ad", "notad":
		return NotAd, nil
	case "-1", "unresolved", "unknown":
		return Unresolved, nil
	}
	return Unresolved, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
}

// MarshalJSON renders ad and not-ad as 1 and 0, and unresolved as null.
func (l Label) MarshalJSON() ([]byte, error) {
	if !l.Resolved() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalJSON accepts a number, boolean, or string form. See ParseLabel.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}

	parsed, err := ParseLabel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// column returns the stored form: 1, 0, or NULL.
func (l Label) column() any {
	if !l.Resolved() {
		return nil
	}
	return int64(l)
}

func labelFromColumn(v sql.NullInt64) Label {
	if !v.Valid {
		return Unresolved
	}
	if v.Int64 == 0 {
		return NotAd
	}
	return Ad
}
