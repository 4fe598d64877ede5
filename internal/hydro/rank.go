package hydro

import "sort"

// rankEntry is one row of a (year, column) ranking problem.
type rankEntry struct {
	idx int   // index into the annotated rows
	val Value // column value rounded to output precision
	key Value // shared tie key (TieBySharedKey only)
}

// Rank attaches within-year ranks for every target column under the given
// strategy. Rank 1 is the largest value; equal rounded values receive
// distinct, sequential ranks in tie-break order. Rows with a missing value
// are ranked after the present ones, so every row of a year carries a rank
// unless the missing-count gate blanks the whole (year, column).
func Rank(rows []MergedRow, cols []Column, strat Strategy) []AnnotatedRow {
	annotated := make([]AnnotatedRow, len(rows))
	for i, row := range rows {
		annotated[i] = AnnotatedRow{MergedRow: row}
	}

	byYear := groupByYear(rows)
	for _, col := range cols {
		for _, idxs := range byYear {
			rankYearColumn(annotated, idxs, col, strat)
		}
	}
	return annotated
}

// groupByYear maps each year to the row indices belonging to it, preserving
// the merged table's day order.
func groupByYear(rows []MergedRow) map[int][]int {
	byYear := make(map[int][]int)
	for i, row := range rows {
		byYear[row.Year] = append(byYear[row.Year], i)
	}
	return byYear
}

func rankYearColumn(annotated []AnnotatedRow, idxs []int, col Column, strat Strategy) {
	var present, absent []rankEntry
	for _, i := range idxs {
		e := rankEntry{idx: i, val: annotated[i].ColumnValue(col).Round(outputPrecision)}
		if strat.TieBreak == TieBySharedKey {
			e.key = annotated[i].VariableAvg.Round(outputPrecision)
		}
		if e.val.Valid() {
			present = append(present, e)
		} else {
			absent = append(absent, e)
		}
	}

	if strat.MissingThreshold > 0 && len(absent) >= strat.MissingThreshold {
		return // whole (year, column) stays blank
	}

	sort.Slice(present, func(a, b int) bool {
		ea, eb := present[a], present[b]
		if c := ea.val.Cmp(eb.val); c != 0 {
			return c > 0 // larger value ranks first
		}
		return tieLess(annotated, ea, eb, strat)
	})
	sort.Slice(absent, func(a, b int) bool {
		return tieLess(annotated, absent[a], absent[b], strat)
	})

	rank := 1
	for _, e := range append(present, absent...) {
		rk := rank
		annotated[e.idx].setRank(col, &rk)
		rank++
	}
}

// tieLess orders equal-valued rows. The shared-key variant sorts missing keys
// after present ones; the hydro day settles whatever remains so the ordering
// is fully deterministic.
func tieLess(annotated []AnnotatedRow, a, b rankEntry, strat Strategy) bool {
	if strat.TieBreak == TieBySharedKey {
		switch {
		case a.key.Valid() && b.key.Valid():
			if c := a.key.Cmp(b.key); c != 0 {
				return c < 0
			}
		case a.key.Valid():
			return true
		case b.key.Valid():
			return false
		}
	}
	return annotated[a.idx].Day.Before(annotated[b.idx].Day)
}
