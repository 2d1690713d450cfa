// Package annotators maintains the registry of known classification issuers
// and resolves the issuer a request acts on behalf of.
package annotators

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Anonymous is the issuer recorded for submissions that name no one.
const Anonymous = "anonymous"

// Normalize trims surrounding whitespace and applies Unicode NFC so that
// visually identical identities map to the same registry row.
func Normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
