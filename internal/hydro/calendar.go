package hydro

import "time"

// outputPrecision is the decimal precision of every derived statistic.
const outputPrecision = 2

// DayOf derives the hydrological day key for a timestamp. Hourly series are
// shifted back by one hour before truncating, so the hour slots running
// 01:00 through 00:00 of the next day all land on the date the slots begin.
// Daily series truncate directly. Timestamps are treated as naive local
// time; no zone conversion happens here.
func DayOf(ts time.Time, hourly bool) time.Time {
	if hourly {
		ts = ts.Add(-time.Hour)
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

// DaysInYear returns 366 for leap years, 365 otherwise.
func DaysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
