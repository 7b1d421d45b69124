// Package classify derives labels and scores from a posting's text fields.
//
// Every rule is a lower-cased substring match, not a word-boundary match:
// "lead" also hits "leadership" and "ops" hits "workshops". Changing that
// would change stored labels, so the quirk is kept on purpose.
package classify

import "strings"

// containsAny reports whether any keyword occurs in text. text must already
// be lower-cased.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// countHits returns how many distinct keywords occur in text.
func countHits(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
