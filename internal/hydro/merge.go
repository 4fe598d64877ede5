package hydro

import (
	"sort"
	"time"
)

// Merge outer-joins the hourly aggregate with the daily table on the
// hydrological day key. Days present on only one side keep the other side's
// fields missing. The daily value is re-quantized to 2 decimals here because
// its upstream precision may differ. Rows come back sorted by day with the
// grouping year derived once.
func Merge(aggs []DailyAggregate, daily []Observation) []MergedRow {
	dailyByDay := make(map[time.Time]Value, len(daily))
	for _, obs := range daily {
		dailyByDay[DayOf(obs.Timestamp, false)] = obs.Value
	}

	rows := make(map[time.Time]MergedRow, len(aggs)+len(dailyByDay))
	for _, agg := range aggs {
		rows[agg.Day] = MergedRow{
			Day:          agg.Day,
			HasHourly:    true,
			CountNonNull: agg.CountNonNull,
			VariableAvg:  agg.VariableAvg,
			FixedAvg:     agg.FixedAvg,
		}
	}
	for day, v := range dailyByDay {
		row := rows[day]
		row.Day = day
		row.Daily = v.Round(outputPrecision)
		rows[day] = row
	}

	merged := make([]MergedRow, 0, len(rows))
	for _, row := range rows {
		row.Year = row.Day.Year()
		merged = append(merged, row)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Day.Before(merged[j].Day) })
	return merged
}
