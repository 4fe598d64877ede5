// Package exporter writes the engine's result set to report files: one Excel
// workbook with the full sheet set, and CSV mirrors of the same tables. All
// values arrive pre-rounded; the exporter only renders them.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"hydrocli/internal/errors"
	"hydrocli/internal/hydro"
)

// Sheet names of the output workbook.
const (
	SheetMain           = "main"
	SheetMainRaw        = "main_raw_rank"
	SheetPeaks          = "peaks"
	SheetYearSummary    = "year_summary"
	SheetYearSummaryRaw = "year_summary_raw"
)

// WriteWorkbook writes the full result set to a single workbook: the two
// annotated tables, the peak table, and both transposed year summaries.
func WriteWorkbook(path string, res *hydro.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	cols := res.Columns()
	sheets := []struct {
		name string
		rows [][]string
	}{
		{SheetMain, buildMainTable(res.Standard, cols)},
		{SheetMainRaw, buildMainTable(res.Reference, cols)},
		{SheetPeaks, buildPeaksTable(res.Peaks)},
		{SheetYearSummary, buildYearSummaryTable(res.StandardSummary, cols)},
		{SheetYearSummaryRaw, buildYearSummaryTable(res.ReferenceSummary, cols)},
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return errors.NewStorageError("failed to name output sheet", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return errors.NewStorageError("failed to create output sheet", err)
			}
		}
		if err := writeSheet(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save output workbook", err).
			WithContext("path", path)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.NewStorageError("failed to address output cell", err)
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write row to sheet %s", sheet), err)
		}
	}
	return nil
}
