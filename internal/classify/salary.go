package classify

import (
	"fmt"
	"math"
	"strings"
)

// FormatSalary renders an aggregator salary range for display, e.g.
// "$95K - $120K/yr". It returns nil when neither bound is present. NaN
// bounds count as absent. The currency is accepted but not rendered.
func FormatSalary(minAmount, maxAmount *float64, interval, _ string) *string {
	lo := presentAmount(minAmount)
	hi := presentAmount(maxAmount)
	if lo == nil && hi == nil {
		return nil
	}

	var s string
	switch {
	case lo != nil && hi != nil:
		s = formatAmount(*lo) + " - " + formatAmount(*hi)
	case lo != nil:
		s = formatAmount(*lo) + "+"
	default:
		s = "Up to " + formatAmount(*hi)
	}
	s += intervalSuffix(interval)
	return &s
}

func presentAmount(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	return v
}

// formatAmount renders thousands as "$95K" and smaller values as "$45".
// Halves round to even.
func formatAmount(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("$%dK", int64(math.RoundToEven(v/1000)))
	}
	return fmt.Sprintf("$%d", int64(math.RoundToEven(v)))
}

func intervalSuffix(interval string) string {
	i := strings.ToLower(interval)
	switch {
	case strings.Contains(i, "year"):
		return "/yr"
	case strings.Contains(i, "hour"):
		return "/hr"
	case strings.Contains(i, "month"):
		return "/mo"
	}
	return ""
}
