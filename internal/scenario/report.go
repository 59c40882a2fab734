package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSVReport writes one row per scenario result to filename, creating
// its directory if necessary, in the same incremental-CSV style the
// teacher's tester writer uses for lookup results.
func WriteCSVReport(filename string, results []Result) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("scenario: cannot create directory %q: %w", dir, err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("scenario: cannot create report file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"scenario", "passed", "detail"}); err != nil {
		return fmt.Errorf("scenario: cannot write header: %w", err)
	}
	for _, r := range results {
		row := []string{r.Name, fmt.Sprintf("%t", r.Passed), r.Detail}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("scenario: cannot write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("scenario: flush error: %w", err)
	}
	return nil
}
