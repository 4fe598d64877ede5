package exporter

import (
	"fmt"
	"time"

	"hydrocli/internal/hydro"
)

// Output precisions per field family. Derived statistics carry 2 decimals,
// raw hourly peaks keep the loader's 3. The exporter renders at these
// precisions and never re-rounds.
const (
	statPrecision = 2
	peakPrecision = 3
)

const (
	dayFormat  = "2006-01-02"
	timeFormat = "2006-01-02 15:04"
)

// formatValue renders a value at the given precision, or "" when missing.
func formatValue(v hydro.Value, places int32) string {
	if !v.Valid() {
		return ""
	}
	return v.Decimal().StringFixed(places)
}

// formatRank renders an optional integer rank.
func formatRank(rk *int) string {
	if rk == nil {
		return ""
	}
	return fmt.Sprintf("%d", *rk)
}

// formatInt renders a plain integer.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatDay renders a hydrological day key.
func formatDay(d time.Time) string {
	return d.Format(dayFormat)
}

// formatTime renders an optional timestamp.
func formatTime(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(timeFormat)
}

// columnSuffix is the column tag used in output headers.
func columnSuffix(c hydro.Column) string {
	switch c {
	case hydro.VariableDenominator:
		return "var_den"
	case hydro.FixedDenominator:
		return "fixed_den"
	case hydro.DailyValue:
		return "daily_value"
	default:
		return "unknown"
	}
}
