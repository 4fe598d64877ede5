package exporter

import (
	"fmt"

	"hydrocli/internal/hydro"
)

// buildMainTable renders one rule set's annotated table, header first.
func buildMainTable(t hydro.Table, cols []hydro.Column) [][]string {
	header := []string{"hydro_date", "year", "count_non_null"}
	for _, col := range cols {
		header = append(header, col.String())
	}
	for _, col := range cols {
		header = append(header, "rank_"+columnSuffix(col))
	}
	for _, col := range cols {
		for _, cat := range hydro.Categories {
			header = append(header, fmt.Sprintf("ikyo_%s_%s", cat, columnSuffix(col)))
		}
	}

	rows := [][]string{header}
	for i := range t.Rows {
		row := &t.Rows[i]
		out := []string{formatDay(row.Day), formatInt(row.Year)}
		if row.HasHourly {
			out = append(out, formatInt(row.CountNonNull))
		} else {
			out = append(out, "")
		}
		for _, col := range cols {
			out = append(out, formatValue(row.ColumnValue(col), statPrecision))
		}
		for _, col := range cols {
			out = append(out, formatRank(row.Rank(col)))
		}
		for _, col := range cols {
			ikyo := row.Ikyo(col)
			for _, cat := range hydro.Categories {
				out = append(out, formatValue(ikyo.Get(cat), statPrecision))
			}
		}
		rows = append(rows, out)
	}
	return rows
}

// buildPeaksTable renders the peak table, header first.
func buildPeaksTable(peaks []hydro.PeakRow) [][]string {
	rows := [][]string{{"hydro_date", "peak_max_value", "peak_max_time"}}
	for _, p := range peaks {
		rows = append(rows, []string{
			formatDay(p.Day),
			formatValue(p.MaxValue, peakPrecision),
			formatTime(p.MaxTime),
		})
	}
	return rows
}

// buildYearSummaryTable renders the per-year summary transposed: one row per
// metric, one column per year. The transpose is presentation only.
func buildYearSummaryTable(summaries []hydro.YearSummaryRow, cols []hydro.Column) [][]string {
	header := []string{"metric"}
	for _, s := range summaries {
		header = append(header, formatInt(s.Year))
	}
	table := [][]string{header}

	addRow := func(name string, cell func(s hydro.YearSummaryRow) string) {
		row := []string{name}
		for _, s := range summaries {
			row = append(row, cell(s))
		}
		table = append(table, row)
	}

	colSummary := func(s hydro.YearSummaryRow, col hydro.Column) *hydro.ColumnSummary {
		switch col {
		case hydro.VariableDenominator:
			return &s.Variable
		case hydro.FixedDenominator:
			return &s.Fixed
		default:
			return s.Daily
		}
	}

	for _, col := range cols {
		col := col
		addRow("missing_"+columnSuffix(col), func(s hydro.YearSummaryRow) string {
			if cs := colSummary(s, col); cs != nil {
				return formatInt(cs.Missing)
			}
			return ""
		})
	}
	for _, col := range cols {
		col := col
		addRow("mean_"+columnSuffix(col), func(s hydro.YearSummaryRow) string {
			if cs := colSummary(s, col); cs != nil {
				return formatValue(cs.Mean, statPrecision)
			}
			return ""
		})
	}

	addRow("max_hourly_value", func(s hydro.YearSummaryRow) string { return formatValue(s.MaxHourly, statPrecision) })
	addRow("max_hourly_time", func(s hydro.YearSummaryRow) string { return formatTime(s.MaxHourlyTime) })
	addRow("min_hourly_value", func(s hydro.YearSummaryRow) string { return formatValue(s.MinHourly, statPrecision) })
	addRow("min_hourly_time", func(s hydro.YearSummaryRow) string { return formatTime(s.MinHourlyTime) })

	for _, col := range cols {
		for _, cat := range hydro.Categories {
			col, cat := col, cat
			addRow(fmt.Sprintf("rank_used_ikyo_%s_%s", cat, columnSuffix(col)), func(s hydro.YearSummaryRow) string {
				if cs := colSummary(s, col); cs != nil {
					return formatRank(cs.RankUsed.Get(cat))
				}
				return ""
			})
		}
	}
	for _, col := range cols {
		for _, cat := range hydro.Categories {
			col, cat := col, cat
			addRow(fmt.Sprintf("ikyo_%s_%s", cat, columnSuffix(col)), func(s hydro.YearSummaryRow) string {
				if cs := colSummary(s, col); cs != nil {
					return formatValue(cs.Ikyo.Get(cat), statPrecision)
				}
				return ""
			})
		}
	}
	return table
}
