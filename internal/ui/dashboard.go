// Package ui renders job board views and run summaries in the terminal.
package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"ldexchange/jobboard/internal/ingest"
	"ldexchange/jobboard/internal/leads"
	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/view"
)

// MaxRows caps the job table so a large store stays readable.
const MaxRows = 50

// RenderView prints the stats panels, specialty bars and the job table.
func RenderView(v view.View, now time.Time) error {
	pterm.DefaultHeader.WithFullWidth().Println("L&D Job Board")

	st := v.Stats
	panels := pterm.Panels{{
		{Data: statBox("Jobs", st.Total)},
		{Data: statBox("New today", st.NewToday)},
		{Data: statBox("Remote", st.Remote)},
		{Data: statBox("Companies", st.Companies)},
		{Data: statBox("With salary", st.WithSalary)},
	}}
	if err := pterm.DefaultPanel.WithPanels(panels).Render(); err != nil {
		return err
	}

	if bars := specialtyBars(st); len(bars) > 0 {
		pterm.DefaultSection.Println("Specialties")
		if err := pterm.DefaultBarChart.WithBars(bars).WithHorizontal().WithShowValue().Render(); err != nil {
			return err
		}
	}

	if len(st.TopCompanies) > 0 {
		pterm.DefaultSection.Println("Top companies")
		items := make([]pterm.BulletListItem, len(st.TopCompanies))
		for i, c := range st.TopCompanies {
			items[i] = pterm.BulletListItem{Level: 0, Text: fmt.Sprintf("%s (%d)", c.Name, c.Count)}
		}
		if err := pterm.DefaultBulletList.WithItems(items).Render(); err != nil {
			return err
		}
	}

	pterm.DefaultSection.Println("Jobs")
	if len(v.Jobs) == 0 {
		pterm.Info.Println("No jobs match these filters.")
		return nil
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(JobTable(v.Jobs, now, MaxRows)).Render(); err != nil {
		return err
	}
	if len(v.Jobs) > MaxRows {
		pterm.Info.Printfln("Showing %d of %d jobs.", MaxRows, len(v.Jobs))
	}
	return nil
}

func statBox(label string, n int) string {
	return pterm.DefaultBox.WithTitle(label).Sprint(pterm.Bold.Sprint(humanize.Comma(int64(n))))
}

func specialtyBars(st view.Stats) pterm.Bars {
	var bars pterm.Bars
	for _, s := range st.Specialties {
		if s.Count > 0 {
			bars = append(bars, pterm.Bar{Label: s.Name, Value: s.Count})
		}
	}
	return bars
}

// JobTable builds the table rows (header first) for at most limit jobs.
func JobTable(jobs []model.JobRecord, now time.Time, limit int) pterm.TableData {
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	data := pterm.TableData{{"Title", "Company", "Location", "Level", "Category", "Salary", "Added"}}
	for _, j := range jobs {
		data = append(data, []string{
			j.Title,
			j.Company,
			j.Location,
			LevelLabel(j.Level),
			string(j.Category),
			SalaryLabel(j.Salary),
			humanize.RelTime(j.CreatedAt, now, "ago", "from now"),
		})
	}
	return data
}

// LevelLabel colours management roles.
func LevelLabel(l model.Level) string {
	if l == model.LevelManagement {
		return pterm.LightMagenta(string(l))
	}
	return string(l)
}

// SalaryLabel renders a salary or a dim placeholder.
func SalaryLabel(s *string) string {
	if s == nil {
		return pterm.Gray("n/a")
	}
	return pterm.Green(*s)
}

// RenderSummary prints the counters of an ingestion run.
func RenderSummary(s ingest.Summary) error {
	pterm.DefaultSection.Println("Scrape complete")
	data := pterm.TableData{
		{"Run", s.RunID},
		{"Searches", strconv.Itoa(s.Pairs)},
		{"Failed searches", strconv.Itoa(s.FailedPairs)},
		{"Total fetched", strconv.Itoa(s.Fetched)},
		{"New jobs added", strconv.Itoa(s.New)},
		{"Skipped (duplicate)", strconv.Itoa(s.Duplicate)},
		{"Skipped (invalid role)", strconv.Itoa(s.Invalid)},
		{"Skipped (bouncer)", strconv.Itoa(s.Bouncer)},
		{"Duration", s.Duration().Round(time.Millisecond).String()},
	}
	return pterm.DefaultTable.WithData(data).WithBoxed().Render()
}

// LeadsTable builds the table rows (header first) for the top leads.
func LeadsTable(top []leads.Lead) pterm.TableData {
	data := pterm.TableData{{"#", "Score", "Title", "Company", "Location", "URL"}}
	for i, l := range top {
		data = append(data, []string{
			strconv.Itoa(i + 1), strconv.Itoa(l.Score), l.Title, l.Company, l.Location, l.URL,
		})
	}
	return data
}

// RenderLeads prints the leads summary and the top entries.
func RenderLeads(res leads.Result, top []leads.Lead) error {
	pterm.DefaultSection.Println("Final summary")
	summary := pterm.TableData{
		{"Total raw jobs found", humanize.Comma(int64(res.Raw))},
		{"After deduplication", humanize.Comma(int64(res.Deduped))},
		{"After smart filtering", humanize.Comma(int64(len(res.Leads)))},
		{"Failed searches", strconv.Itoa(res.Failed)},
	}
	if err := pterm.DefaultTable.WithData(summary).WithBoxed().Render(); err != nil {
		return err
	}
	if len(top) == 0 {
		pterm.Warning.Println("No leads passed the filter.")
		return nil
	}
	pterm.DefaultSection.Printfln("Top %d leads", len(top))
	return pterm.DefaultTable.WithHasHeader().WithData(LeadsTable(top)).Render()
}
