package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"hydrocli/internal/errors"
	"hydrocli/internal/hydro"
)

// WriteCSVDir writes CSV mirrors of every output table into dir, one file
// per workbook sheet.
func WriteCSVDir(dir string, res *hydro.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create CSV output directory", err)
	}

	cols := res.Columns()
	tables := map[string][][]string{
		SheetMain:           buildMainTable(res.Standard, cols),
		SheetMainRaw:        buildMainTable(res.Reference, cols),
		SheetPeaks:          buildPeaksTable(res.Peaks),
		SheetYearSummary:    buildYearSummaryTable(res.StandardSummary, cols),
		SheetYearSummaryRaw: buildYearSummaryTable(res.ReferenceSummary, cols),
	}

	for name, rows := range tables {
		path := filepath.Join(dir, name+".csv")
		if err := writeCSV(path, rows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create CSV file %s", path), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError("failed to write CSV row", err)
		}
	}
	return nil
}
