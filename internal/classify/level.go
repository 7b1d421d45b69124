package classify

import (
	"strings"

	"ldexchange/jobboard/internal/model"
)

var managementKeywords = []string{"manager", "director", "vp", "chief", "head", "lead"}

// Level returns Management+ when the title carries a seniority keyword and
// Individual Contributor otherwise, including for empty titles.
func Level(title string) model.Level {
	if title == "" {
		return model.LevelIC
	}
	if containsAny(strings.ToLower(title), managementKeywords) {
		return model.LevelManagement
	}
	return model.LevelIC
}
