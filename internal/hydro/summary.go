package hydro

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Summarize rolls the annotated table up into one row per year: missing
// counts and decimal means per column, the flow-duration values attached to
// the rows plus the effective ranks recomputed for audit, and — once per
// year — the extreme hourly values with their timestamps. Hourly extremes
// bucket by the raw timestamp's calendar year, not the hydro day.
func Summarize(rows []AnnotatedRow, hourly []Observation, cols []Column, strat Strategy) []YearSummaryRow {
	byYear := make(map[int][]int)
	years := make([]int, 0)
	for i := range rows {
		y := rows[i].Year
		if _, seen := byYear[y]; !seen {
			years = append(years, y)
		}
		byYear[y] = append(byYear[y], i)
	}
	sort.Ints(years)

	extremes := hourlyExtremes(hourly)

	summaries := make([]YearSummaryRow, 0, len(years))
	for _, year := range years {
		idxs := byYear[year]
		sum := YearSummaryRow{Year: year, DaysInYear: DaysInYear(year)}

		for _, col := range cols {
			cs := summarizeColumn(rows, idxs, col, sum.DaysInYear, strat)
			switch col {
			case VariableDenominator:
				sum.Variable = cs
			case FixedDenominator:
				sum.Fixed = cs
			case DailyValue:
				daily := cs
				sum.Daily = &daily
			}
		}

		if ext, ok := extremes[year]; ok {
			sum.MaxHourly = ext.max.Round(outputPrecision)
			sum.MaxHourlyTime = ext.maxTime
			sum.MinHourly = ext.min.Round(outputPrecision)
			sum.MinHourlyTime = ext.minTime
		}
		summaries = append(summaries, sum)
	}
	return summaries
}

func summarizeColumn(rows []AnnotatedRow, idxs []int, col Column, daysInYear int, strat Strategy) ColumnSummary {
	cs := ColumnSummary{}
	count := 0
	var sum decimal.Decimal
	for _, i := range idxs {
		v := rows[i].ColumnValue(col)
		if !v.Valid() {
			cs.Missing++
			continue
		}
		count++
		sum = sum.Add(v.Decimal())
	}
	if count > 0 {
		cs.Mean = Num(sum.Div(decimal.NewFromInt(int64(count)))).Round(outputPrecision)
	}

	cs.Ikyo = rows[idxs[0]].Ikyo(col)
	for _, cat := range Categories {
		if rk, ok := EffectiveRank(cat.BaseRank(), daysInYear, cs.Missing, strat); ok {
			cs.RankUsed.set(cat, &rk)
		}
	}
	return cs
}

type yearExtremes struct {
	max     Value
	maxTime *time.Time
	min     Value
	minTime *time.Time
}

func hourlyExtremes(hourly []Observation) map[int]yearExtremes {
	extremes := make(map[int]yearExtremes)
	for _, obs := range hourly {
		if !obs.Value.Valid() {
			continue
		}
		year := obs.Timestamp.Year()
		ext := extremes[year]
		ts := obs.Timestamp
		if !ext.max.Valid() || obs.Value.Cmp(ext.max) > 0 ||
			(obs.Value.Cmp(ext.max) == 0 && ts.Before(*ext.maxTime)) {
			ext.max = obs.Value
			ext.maxTime = &ts
		}
		if !ext.min.Valid() || obs.Value.Cmp(ext.min) < 0 ||
			(obs.Value.Cmp(ext.min) == 0 && ts.Before(*ext.minTime)) {
			ext.min = obs.Value
			ext.minTime = &ts
		}
		extremes[year] = ext
	}
	return extremes
}
