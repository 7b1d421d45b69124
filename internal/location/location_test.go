package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ldexchange/jobboard/internal/location"
)

func TestMatches(t *testing.T) {
	cases := []struct {
		name     string
		posting  string
		selected []string
		want     bool
	}{
		{"empty selection matches all", "Remote", nil, true},
		{"empty selection matches empty location", "", []string{}, true},
		{"broad override", "Remote - USA", []string{"Orlando, FL"}, true},
		{"broad united states", "United States", []string{"Austin, TX"}, true},
		{"broad anywhere", "Anywhere", []string{"Orlando, FL"}, true},
		{"same region", "Orlando, FL", []string{"Tampa, FL"}, true},
		{"state-only posting surfaces for a city", "Florida", []string{"Orlando, FL"}, true},
		{"direct containment", "Orlando, FL 32801", []string{"Orlando, FL"}, true},
		{"containment is case-insensitive", "ORLANDO, FL", []string{"orlando"}, true},
		{"different state", "Austin, TX", []string{"Orlando, FL"}, false},
		{"any selection may match", "Austin, TX", []string{"Orlando, FL", "Austin"}, true},
		{"missing location with selection", "", []string{"Orlando, FL"}, false},
		{"no region on either side", "Austin, TX", []string{"Dallas, TX"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, location.Matches(c.posting, c.selected))
		})
	}
}

func TestIsBroad(t *testing.T) {
	assert.True(t, location.IsBroad("Nationwide"))
	assert.True(t, location.IsBroad("Remote"))
	assert.True(t, location.IsBroad("Chicago, IL (USA)"))
	assert.False(t, location.IsBroad("Orlando, FL"))
	assert.False(t, location.IsBroad(""))
}

func TestRegion(t *testing.T) {
	assert.Equal(t, "florida", location.Region("Maitland, FL"))
	assert.Equal(t, "florida", location.Region("Central Florida"))
	assert.Equal(t, "", location.Region("Austin, TX"))
	assert.Equal(t, "", location.Region(""))
}
