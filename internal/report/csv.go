/*
Package report writes extraction results to CSV.
*/
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"
)

// Header is the first row of every report.
var Header = []string{
	"Company",
	"CIK",
	"Filing Date",
	"Accession Number",
	"Document URL",
	"Product Keyword",
	"Product Name",
	"Product Context",
}

// WriteCSV replaces the file at path with one row per result. The file is
// written to a sibling temp file first and renamed into place, so readers never
// see a partial report.
func WriteCSV(path string, results []types.Result) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := w.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", r.Key(), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move report into place at %s: %w", path, err)
	}
	return nil
}

func row(r types.Result) []string {
	return []string{
		r.Company,
		r.CIK,
		r.FilingDate,
		r.AccessionNumber,
		r.DocumentURL,
		r.Keyword,
		r.ProductName,
		r.Context,
	}
}
