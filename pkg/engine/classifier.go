package engine

import "strings"

// IsMathQuery reports whether the query structurally looks like arithmetic:
// it starts with "=" after trimming, or contains any operator character.
// The check is purely advisory and only switches the final ordering policy;
// it never rejects or reroutes a query.
func IsMathQuery(query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}
	if strings.HasPrefix(q, "=") {
		return true
	}
	return strings.ContainsAny(q, "+-*/%()")
}
