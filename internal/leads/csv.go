package leads

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"ldexchange/jobboard/internal/classify"
)

// CSVHeader is the leads export column order.
var CSVHeader = []string{
	"score", "title", "company", "location", "date_posted", "job_url", "salary",
}

// WriteCSV writes a header row and one row per lead.
func WriteCSV(w io.Writer, leads []Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write leads header: %w", err)
	}
	for _, l := range leads {
		var salary string
		if s := classify.FormatSalary(l.MinAmount, l.MaxAmount, l.Interval, l.Currency); s != nil {
			salary = *s
		}
		row := []string{
			strconv.Itoa(l.Score), l.Title, l.Company, l.Location, l.DatePosted, l.URL, salary,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write lead %s: %w", l.URL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes leads to path, replacing any existing file.
func WriteCSVFile(path string, leads []Lead) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return WriteCSV(f, leads)
}
