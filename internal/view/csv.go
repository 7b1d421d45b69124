package view

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"ldexchange/jobboard/internal/model"
)

// CSVHeader is the export column order.
var CSVHeader = []string{
	"id", "title", "company", "location", "date_posted", "job_url",
	"level", "category", "salary", "created_at",
}

// WriteCSV writes a header row and one row per record.
func WriteCSV(w io.Writer, jobs []model.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, j := range jobs {
		var datePosted, salary string
		if j.DatePosted != nil {
			datePosted = j.DatePosted.Format(time.DateOnly)
		}
		if j.Salary != nil {
			salary = *j.Salary
		}
		row := []string{
			strconv.FormatInt(j.ID, 10), j.Title, j.Company, j.Location, datePosted, j.URL,
			string(j.Level), string(j.Category), salary, j.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", j.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
