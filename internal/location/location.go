// Package location decides whether a posting's location satisfies a set of
// user-selected locations.
//
// A posting matches when, for any selected location, one of these holds:
//
//	broad     the posting says remote / USA / nationwide / anywhere
//	contains  the posting's location contains the selection
//	region    both map to the same coarse region (only "florida" today)
//
// An empty selection matches everything.
package location

import "strings"

// BroadMarkers denote a wide geography that satisfies any location filter.
var BroadMarkers = []string{"united states", "usa", "remote", "nationwide", "anywhere"}

// IsBroad reports whether a location string denotes a wide geography.
func IsBroad(loc string) bool {
	if loc == "" {
		return false
	}
	l := strings.ToLower(loc)
	for _, b := range BroadMarkers {
		if strings.Contains(l, b) {
			return true
		}
	}
	return false
}

// Region maps a location to a coarse region tag, or "" when none applies.
func Region(loc string) string {
	l := strings.ToLower(loc)
	if strings.Contains(l, ", fl") || strings.Contains(l, "florida") {
		return "florida"
	}
	return ""
}

// Matches reports whether postingLoc passes the selection.
func Matches(postingLoc string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if postingLoc == "" {
		return false
	}
	if IsBroad(postingLoc) {
		return true
	}

	postingLower := strings.ToLower(postingLoc)
	postingRegion := Region(postingLoc)
	for _, sel := range selected {
		if strings.Contains(postingLower, strings.ToLower(sel)) {
			return true
		}
		if r := Region(sel); r != "" && r == postingRegion {
			return true
		}
	}
	return false
}
