// Package names canonicalizes free-text company names so that records
// coming from student submissions and bulk imports can be matched
// against the company registry.
package names

import (
	"strings"
	"unicode"
)

// suffixTokens are corporate suffixes that carry no identity. One table
// is used everywhere a company name is matched.
var suffixTokens = map[string]struct{}{
	"ltd":          {},
	"limited":      {},
	"pvt":          {},
	"private":      {},
	"inc":          {},
	"llp":          {},
	"llc":          {},
	"co":           {},
	"corp":         {},
	"corporation":  {},
	"technologies": {},
	"technology":   {},
	"solutions":    {},
}

// Normalize maps a raw company name to its canonical comparison key:
// lowercased, suffix tokens dropped, all whitespace and punctuation
// removed. Two names with the same key are treated as the same company.
func Normalize(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, f := range fields {
		if _, skip := suffixTokens[f]; skip {
			continue
		}
		b.WriteString(f)
	}

	// A name made up entirely of suffix tokens ("Co Ltd") would
	// otherwise collapse to the empty key and collide with everything.
	if b.Len() == 0 {
		return strings.Join(fields, "")
	}
	return b.String()
}

// IsRemoteURL reports whether s is a fully-qualified http(s) URL, as
// opposed to a legacy relative asset path.
func IsRemoteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
