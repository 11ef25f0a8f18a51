// internal/app/system/normalize/normalize.go

// Package normalize centralizes input normalization so every boundary
// (ingestion, roster comparison, lookup) agrees on the canonical form.
package normalize

import (
	"strings"
	"unicode"
)

// CohortID canonicalizes a free-text cohort identifier: every Unicode
// whitespace character is stripped and the remainder is upper-cased, so
// "dev 101", " DEV 101 " and "DEV101" all key the same record.
//
// It is pure and total (empty in, empty out) and idempotent. Raw cohort
// names must never be used as store keys; run them through here first.
func CohortID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// QueryParam trims surrounding whitespace from a URL query parameter.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Name trims surrounding whitespace but preserves interior spacing and
// case. Used for display fields like professor names.
func Name(s string) string {
	return strings.TrimSpace(s)
}
