package classify

import (
	"strings"

	"ldexchange/jobboard/internal/model"
)

// Specialty is one dashboard tile. Specialties are display statistics only;
// they are never stored and never filter the job table.
type Specialty struct {
	Name     string
	Keywords []string
}

// Specialties is the ordered tile list. "id " keeps its trailing space.
var Specialties = []Specialty{
	{"Instructional Design", []string{"instructional design", "id ", "curriculum design"}},
	{"E-Learning Development", []string{"e-learning", "elearning", "digital learning", "online learning"}},
	{"Training & Facilitation", []string{"training", "facilitator", "trainer", "facilitation"}},
	{"Learning Management", []string{"learning management", "lms", "learning admin"}},
	{"Curriculum Development", []string{"curriculum", "course design", "content develop"}},
	{"Corporate Training", []string{"corporate training", "corporate learning", "workplace learning"}},
	{"Learning Technology", []string{"learning tech", "edtech", "learning system", "learning platform"}},
	{"Talent Development", []string{"talent develop", "talent management", "l&d manager", "learning director"}},
}

// SpecialtyCount is the number of records matching one specialty.
type SpecialtyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MatchesSpecialty reports whether any of the specialty's keywords appears
// in the title or the description.
func MatchesSpecialty(s Specialty, title, description string) bool {
	t := strings.ToLower(title)
	d := strings.ToLower(description)
	for _, kw := range s.Keywords {
		if strings.Contains(t, kw) || strings.Contains(d, kw) {
			return true
		}
	}
	return false
}

// CountBySpecialty counts records per specialty. A record may count toward
// several specialties.
func CountBySpecialty(records []model.JobRecord) []SpecialtyCount {
	counts := make([]SpecialtyCount, len(Specialties))
	for i, s := range Specialties {
		counts[i].Name = s.Name
		for _, r := range records {
			if MatchesSpecialty(s, r.Title, r.Description) {
				counts[i].Count++
			}
		}
	}
	return counts
}
