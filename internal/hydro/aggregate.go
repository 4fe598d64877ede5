package hydro

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// hoursPerDay is the fixed denominator of the gated daily average.
const hoursPerDay = 24

// Aggregate collapses hourly observations into one row per hydrological day,
// sorted by day. The variable-denominator average is the mean over the hours
// actually present; the fixed-denominator average is only materialized when
// all 24 hourly slots are present. Both are rounded half-up to 2 decimals.
func Aggregate(hourly []Observation) []DailyAggregate {
	type bucket struct {
		count int
		sum   decimal.Decimal
	}
	buckets := make(map[time.Time]*bucket)

	for _, obs := range hourly {
		day := DayOf(obs.Timestamp, true)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		if obs.Value.Valid() {
			b.count++
			b.sum = b.sum.Add(obs.Value.Decimal())
		}
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	aggs := make([]DailyAggregate, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		agg := DailyAggregate{Day: day, CountNonNull: b.count}
		if b.count > 0 {
			agg.VariableAvg = Num(b.sum.Div(decimal.NewFromInt(int64(b.count)))).Round(outputPrecision)
		}
		if b.count == hoursPerDay {
			agg.FixedAvg = Num(b.sum.Div(decimal.NewFromInt(hoursPerDay))).Round(outputPrecision)
		}
		aggs = append(aggs, agg)
	}
	return aggs
}
