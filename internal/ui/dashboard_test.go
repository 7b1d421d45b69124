package ui_test

import (
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldexchange/jobboard/internal/leads"
	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/ui"
)

func init() {
	pterm.DisableColor()
}

func TestJobTable(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	salary := "$80K+"
	jobs := []model.JobRecord{
		{Title: "Instructional Design Manager", Company: "Globex", Location: "Remote",
			Level: model.LevelManagement, Category: model.CategoryInstructionalDesign,
			Salary: &salary, CreatedAt: now.Add(-3 * time.Hour)},
		{Title: "Corporate Trainer", Company: "Acme", Location: "Orlando, FL",
			Level: model.LevelIC, Category: model.CategoryTrainingDelivery, CreatedAt: now.Add(-48 * time.Hour)},
	}

	data := ui.JobTable(jobs, now, 10)
	require.Len(t, data, 3)
	assert.Equal(t, "Title", data[0][0])
	assert.Equal(t, []string{
		"Instructional Design Manager", "Globex", "Remote", "Management+",
		"Instructional Design", "$80K+", "3 hours ago",
	}, data[1])
	assert.Equal(t, "n/a", data[2][5])
	assert.Equal(t, "2 days ago", data[2][6])

	assert.Len(t, ui.JobTable(jobs, now, 1), 2)
}

func TestLeadsTable(t *testing.T) {
	data := ui.LeadsTable([]leads.Lead{
		{Posting: model.Posting{Title: "Training Manager", Company: "Acme", Location: "Remote", URL: "u1"}, Score: 40},
	})
	require.Len(t, data, 2)
	assert.Equal(t, []string{"1", "40", "Training Manager", "Acme", "Remote", "u1"}, data[1])
}
