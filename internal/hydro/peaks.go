package hydro

import (
	"sort"
	"time"
)

// Peaks finds, per hydrological day, the maximum hourly value and the
// original timestamp at which it occurred, ties broken by earliest
// occurrence. Days whose hours are all missing produce a row with a missing
// peak. Rows come back sorted by day.
func Peaks(hourly []Observation) []PeakRow {
	peaks := make(map[time.Time]PeakRow)
	for _, obs := range hourly {
		day := DayOf(obs.Timestamp, true)
		row, seen := peaks[day]
		if !seen {
			row = PeakRow{Day: day}
		}
		if obs.Value.Valid() {
			better := !row.MaxValue.Valid() ||
				obs.Value.Cmp(row.MaxValue) > 0 ||
				(obs.Value.Cmp(row.MaxValue) == 0 && obs.Timestamp.Before(*row.MaxTime))
			if better {
				ts := obs.Timestamp
				row.MaxValue = obs.Value
				row.MaxTime = &ts
			}
		}
		peaks[day] = row
	}

	out := make([]PeakRow, 0, len(peaks))
	for _, row := range peaks {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}
