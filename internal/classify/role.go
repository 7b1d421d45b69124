package classify

import "strings"

// roleKeywords mark a title as belonging to the L&D domain.
var roleKeywords = []string{
	"training", "trainer", "learning", "l&d", "instructional", "curriculum",
	"enablement", "coaching", "onboarding", "facilitat", "lms",
	"elearning", "e-learning", "talent development", "organizational development",
	"education",
}

// IsValidRole returns true when the title mentions at least one L&D keyword.
// Empty titles are never valid.
func IsValidRole(title string) bool {
	if title == "" {
		return false
	}
	return containsAny(strings.ToLower(title), roleKeywords)
}
