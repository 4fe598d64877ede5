// Package loader reads hourly and daily observation workbooks into the
// engine's observation tables. Column selection is fixed: the first column is
// the timestamp, the second the value; everything else is ignored.
package loader

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"hydrocli/internal/errors"
	"hydrocli/internal/hydro"
)

// AllPeriodSheet is the combined sheet the upstream database export carries
// when the full period fits in one sheet.
const AllPeriodSheet = "全期間"

// yearSheetSuffix marks the per-year sheets used when no combined sheet
// exists.
const yearSheetSuffix = "年"

// inputPrecision is the decimal quantization applied to every loaded value.
const inputPrecision = 3

// Source names the observation table being loaded, for error reporting.
type Source string

const (
	SourceHourly Source = "hourly"
	SourceDaily  Source = "daily"
)

// timestampLayouts are the spreadsheet timestamp renderings the loader
// accepts, most specific first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/1/2 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
}

// missingMarkers are the cell contents that mean "no value" rather than a
// malformed number.
var missingMarkers = map[string]bool{
	"":    true,
	"-":   true,
	"--":  true,
	"---": true,
}

// LoadHourly reads the hourly observation workbook.
func LoadHourly(path string) ([]hydro.Observation, error) {
	return loadWorkbook(path, SourceHourly)
}

// LoadDaily reads the daily observation workbook.
func LoadDaily(path string) ([]hydro.Observation, error) {
	return loadWorkbook(path, SourceDaily)
}

func loadWorkbook(path string, src Source) ([]hydro.Observation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open %s workbook", src), err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets, err := observationSheets(f)
	if err != nil {
		return nil, err
	}

	var obs []hydro.Observation
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("failed to read sheet %s", sheet), err)
		}
		for i, row := range rows {
			if i == 0 || isBlankRow(row) {
				continue
			}
			ts, err := parseTimestamp(cellAt(row, 0))
			if err != nil {
				return nil, errors.NewMalformedRowError(string(src), i, err).
					WithContext("sheet", sheet)
			}
			v, err := parseValue(cellAt(row, 1))
			if err != nil {
				return nil, errors.NewMalformedRowError(string(src), i, err).
					WithContext("sheet", sheet)
			}
			obs = append(obs, hydro.Observation{Timestamp: ts, Value: v})
		}
	}

	slog.Debug("loaded observation workbook",
		slog.String("path", path),
		slog.String("source", string(src)),
		slog.Int("rows", len(obs)),
		slog.Int("sheets", len(sheets)))
	return obs, nil
}

// observationSheets applies the sheet-selection policy: prefer the combined
// all-period sheet, otherwise concatenate the per-year sheets in workbook
// order.
func observationSheets(f *excelize.File) ([]string, error) {
	names := f.GetSheetList()
	for _, name := range names {
		if name == AllPeriodSheet {
			return []string{name}, nil
		}
	}
	var yearly []string
	for _, name := range names {
		if strings.HasSuffix(name, yearSheetSuffix) {
			yearly = append(yearly, name)
		}
	}
	if len(yearly) == 0 {
		return nil, errors.NewValidationError("no observation sheet found in workbook")
	}
	return yearly, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseTimestamp accepts the common spreadsheet timestamp layouts plus raw
// Excel serial numbers, rounded to the second.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp cell")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		ts, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid excel serial date %q: %w", s, err)
		}
		return ts.Round(time.Second).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// parseValue coerces a value cell to a quantized decimal or the explicit
// missing marker. Anything else is a malformed row.
func parseValue(s string) (hydro.Value, error) {
	if missingMarkers[s] {
		return hydro.Missing(), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return hydro.Missing(), fmt.Errorf("unparseable value %q: %w", s, err)
	}
	return hydro.Num(d).Round(inputPrecision), nil
}
