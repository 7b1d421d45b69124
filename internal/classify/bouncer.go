package classify

import "strings"

// opsKeywords disqualify an "enablement" title outright: these are ops/admin
// roles that borrow the word.
var opsKeywords = []string{
	"deal desk", "revops", "revenue operations", "sales operations",
	"crm admin", "salesforce", "quota", "pipeline", "forecasting",
}

// learningKeywords are required in the title, or failing that the
// description, for an "enablement" role to count as L&D.
var learningKeywords = []string{
	"training", "learning", "facilitation", "coaching", "onboarding",
	"curriculum", "content", "instructional", "development",
}

// NeedsBouncer reports whether the title is subject to the enablement gate.
func NeedsBouncer(title string) bool {
	return strings.Contains(strings.ToLower(title), "enablement")
}

// IsValidEnablement is the secondary gate for titles containing
// "enablement". An ops keyword in the title rejects without reading the
// description.
func IsValidEnablement(title, description string) bool {
	titleLower := strings.ToLower(title)
	if containsAny(titleLower, opsKeywords) {
		return false
	}
	if containsAny(titleLower, learningKeywords) {
		return true
	}
	if description == "" {
		return false
	}
	return containsAny(strings.ToLower(description), learningKeywords)
}
