package hydro

import "sort"

// referenceYearDays is the reference year length the canonical flow-duration
// ranks are defined on.
const referenceYearDays = 365

// EffectiveRank maps a canonical base rank to the rank actually used for one
// year. Under a scaling strategy the base rank is stretched to the year's
// length and shrunk for missing days, flooring at each step and never going
// below 1. The second return is false when the year is undefined for the
// strategy: gated out by the missing threshold, or entirely missing.
func EffectiveRank(base, daysInYear, missing int, strat Strategy) (int, bool) {
	if strat.MissingThreshold > 0 && missing >= strat.MissingThreshold {
		return 0, false
	}
	if missing >= daysInYear {
		return 0, false
	}
	rank := base
	if strat.ScaleRanks {
		rank = base * daysInYear / referenceYearDays
		validDays := daysInYear - missing
		rank = rank * validDays / daysInYear
	}
	if rank < 1 {
		rank = 1
	}
	return rank, true
}

// AddFlowDurations computes the four flow-duration values per (year, column)
// under the given strategy, broadcasts them onto every row of the year, and
// returns the audit records. The value at an effective rank is the rank-th
// largest non-missing entry of the year; a rank beyond the non-missing count
// yields a missing value while the rank itself is still recorded.
func AddFlowDurations(rows []AnnotatedRow, cols []Column, strat Strategy, rs RuleSet) []FlowDurationValue {
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

	var audit []FlowDurationValue
	for _, col := range cols {
		for _, year := range years {
			idxs := byYear[year]
			missing := 0
			var sorted []Value
			for _, i := range idxs {
				v := rows[i].ColumnValue(col)
				if v.Valid() {
					sorted = append(sorted, v)
				} else {
					missing++
				}
			}
			sort.Slice(sorted, func(a, b int) bool { return sorted[a].Cmp(sorted[b]) > 0 })

			for _, cat := range Categories {
				fd := FlowDurationValue{Year: year, Column: col, RuleSet: rs, Category: cat}
				if rk, ok := EffectiveRank(cat.BaseRank(), DaysInYear(year), missing, strat); ok {
					fd.RankUsed = &rk
					if rk <= len(sorted) {
						fd.Value = sorted[rk-1]
					}
				}
				for _, i := range idxs {
					rows[i].setIkyo(col, cat, fd.Value)
				}
				audit = append(audit, fd)
			}
		}
	}
	return audit
}
