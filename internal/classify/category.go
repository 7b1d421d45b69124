package classify

import (
	"strings"

	"ldexchange/jobboard/internal/model"
)

type categoryRule struct {
	category model.Category
	keywords []string
}

// categoryRules are evaluated in order; the first match wins.
var categoryRules = []categoryRule{
	{model.CategoryInstructionalDesign, []string{"instructional", "curriculum", "elearning", "storyline"}},
	{model.CategoryTrainingDelivery, []string{"trainer", "facilitation", "onboarding"}},
	{model.CategoryEnablement, []string{"enablement"}},
	{model.CategoryOpsAnalytics, []string{"analyst", "lms", "ops", "admin"}},
}

// Category assigns the closed 5-way category from the title.
func Category(title string) model.Category {
	if title == "" {
		return model.CategoryGeneral
	}
	titleLower := strings.ToLower(title)
	for _, r := range categoryRules {
		if containsAny(titleLower, r.keywords) {
			return r.category
		}
	}
	return model.CategoryGeneral
}
