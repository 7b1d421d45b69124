package view

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"ldexchange/jobboard/internal/classify"
	"ldexchange/jobboard/internal/model"
)

// TopCompaniesN is how many companies Stats ranks.
const TopCompaniesN = 10

// Count is one labelled bucket.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats are the aggregates shown next to a filtered listing.
type Stats struct {
	Total         int                       `json:"total"`
	NewToday      int                       `json:"newToday"`
	Remote        int                       `json:"remote"`
	Companies     int                       `json:"companies"`
	WithSalary    int                       `json:"withSalary"`
	WithoutSalary int                       `json:"withoutSalary"`
	ByLevel       []Count                   `json:"byLevel"`
	ByCategory    []Count                   `json:"byCategory"`
	TopCompanies  []Count                   `json:"topCompanies"`
	Specialties   []classify.SpecialtyCount `json:"specialties"`
}

// Landing is the summary shown on the home page, always over the whole
// record set.
type Landing struct {
	Total       int                       `json:"total"`
	Companies   int                       `json:"companies"`
	Remote      int                       `json:"remote"`
	NewToday    int                       `json:"newToday"`
	Specialties []classify.SpecialtyCount `json:"specialties"`
}

// ComputeStats aggregates records. "Today" is the calendar date of now in
// now's location.
func ComputeStats(records []model.JobRecord, now time.Time) Stats {
	st := Stats{
		Total:        len(records),
		ByLevel:      make([]Count, len(model.Levels)),
		ByCategory:   make([]Count, len(model.Categories)),
		TopCompanies: topCompanies(records, TopCompaniesN),
		Specialties:  classify.CountBySpecialty(records),
	}
	for i, l := range model.Levels {
		st.ByLevel[i].Name = string(l)
	}
	for i, c := range model.Categories {
		st.ByCategory[i].Name = string(c)
	}

	companies := make(map[string]struct{})
	for _, r := range records {
		if isToday(r.CreatedAt, now) {
			st.NewToday++
		}
		if IsRemote(r.Location) {
			st.Remote++
		}
		if r.Company != "" {
			companies[r.Company] = struct{}{}
		}
		if r.Salary != nil {
			st.WithSalary++
		} else {
			st.WithoutSalary++
		}
		if i := slices.Index(model.Levels, r.Level); i >= 0 {
			st.ByLevel[i].Count++
		}
		if i := slices.Index(model.Categories, r.Category); i >= 0 {
			st.ByCategory[i].Count++
		}
	}
	st.Companies = len(companies)
	return st
}

// ComputeLanding aggregates the landing page numbers.
func ComputeLanding(records []model.JobRecord, now time.Time) Landing {
	st := ComputeStats(records, now)
	return Landing{
		Total:       st.Total,
		Companies:   st.Companies,
		Remote:      st.Remote,
		NewToday:    st.NewToday,
		Specialties: st.Specialties,
	}
}

// IsRemote reports whether a location mentions remote work.
func IsRemote(loc string) bool {
	return strings.Contains(strings.ToLower(loc), "remote")
}

func isToday(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	t = t.In(now.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// topCompanies ranks companies by record count, ties broken by name.
func topCompanies(records []model.JobRecord, n int) []Count {
	byName := make(map[string]int)
	for _, r := range records {
		if r.Company != "" {
			byName[r.Company]++
		}
	}
	out := make([]Count, 0, len(byName))
	for name, c := range byName {
		out = append(out, Count{Name: name, Count: c})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
