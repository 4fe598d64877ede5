package hydro

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column identifies one of the ranked source columns of the merged table.
type Column int

const (
	// VariableDenominator is the daily mean over the hours actually present.
	VariableDenominator Column = iota
	// FixedDenominator is the daily mean that is only valid when all 24
	// hourly values are present.
	FixedDenominator
	// DailyValue is the independently observed daily series.
	DailyValue
)

// String returns the column name used in output tables.
func (c Column) String() string {
	switch c {
	case VariableDenominator:
		return "avg_var_den"
	case FixedDenominator:
		return "avg_fixed_den"
	case DailyValue:
		return "daily_value"
	default:
		return "unknown"
	}
}

// RuleSet selects one of the two parallel computation policies.
type RuleSet int

const (
	// RuleStandard gates ranking on the missing-day threshold and scales
	// flow-duration ranks for leap years and missing days.
	RuleStandard RuleSet = iota
	// RuleReference ranks every year, ties broken by a shared key, and uses
	// the canonical flow-duration ranks unscaled.
	RuleReference
)

// String returns the rule set name used in output tables.
func (r RuleSet) String() string {
	switch r {
	case RuleStandard:
		return "standard"
	case RuleReference:
		return "reference"
	default:
		return "unknown"
	}
}

// TieBreak selects how equal rounded values are ordered within a year.
type TieBreak int

const (
	// TieByDay orders equal values by hydro day ascending.
	TieByDay TieBreak = iota
	// TieBySharedKey orders equal values by the row's rounded
	// variable-denominator average, so all three columns rank against a
	// common reference signal.
	TieBySharedKey
)

// Strategy parameterizes the ranking and flow-duration algorithms. Both rule
// sets run the same code paths with different strategy values.
type Strategy struct {
	// MissingThreshold blanks a (year, column) whose missing count reaches
	// it. Zero or negative disables the gate.
	MissingThreshold int
	TieBreak         TieBreak
	// ScaleRanks applies leap-year and missing-day scaling to the canonical
	// flow-duration ranks.
	ScaleRanks bool
}

// DefaultMissingThreshold is the missing-day count at which the standard
// rules blank a year.
const DefaultMissingThreshold = 11

// Category identifies one of the four canonical flow-duration levels.
type Category int

const (
	High Category = iota
	Normal
	Low
	Drought
)

// Categories lists all flow-duration categories in canonical order.
var Categories = [...]Category{High, Normal, Low, Drought}

// String returns the category name used in output tables.
func (c Category) String() string {
	switch c {
	case High:
		return "high"
	case Normal:
		return "normal"
	case Low:
		return "low"
	case Drought:
		return "drought"
	default:
		return "unknown"
	}
}

// BaseRank returns the category's canonical rank on a 365-day reference year.
func (c Category) BaseRank() int {
	switch c {
	case High:
		return 95
	case Normal:
		return 185
	case Low:
		return 275
	case Drought:
		return 355
	default:
		return 0
	}
}

// Value is an optional exact decimal quantity. The zero value is missing.
type Value struct {
	dec   decimal.Decimal
	valid bool
}

// Num wraps a decimal as a present value.
func Num(d decimal.Decimal) Value {
	return Value{dec: d, valid: true}
}

// FromFloat converts a float64 to a present value.
func FromFloat(f float64) Value {
	return Num(decimal.NewFromFloat(f))
}

// Missing returns the explicit no-value marker.
func Missing() Value {
	return Value{}
}

// Valid reports whether the value is present.
func (v Value) Valid() bool {
	return v.valid
}

// Decimal returns the underlying decimal. Only meaningful when Valid.
func (v Value) Decimal() decimal.Decimal {
	return v.dec
}

// Float64 returns the value as a float64, or NaN-free zero when missing.
func (v Value) Float64() float64 {
	if !v.valid {
		return 0
	}
	f, _ := v.dec.Float64()
	return f
}

// Round quantizes the value to the given number of decimal places with ties
// rounding away from zero (round-half-up). Missing stays missing.
func (v Value) Round(places int32) Value {
	if !v.valid {
		return v
	}
	return Num(v.dec.Round(places))
}

// Cmp compares two present values; the caller must check Valid first.
func (v Value) Cmp(o Value) int {
	return v.dec.Cmp(o.dec)
}

// String renders the value, or the empty string when missing.
func (v Value) String() string {
	if !v.valid {
		return ""
	}
	return v.dec.String()
}

// Observation is a single (timestamp, value) pair from the loader. Values
// arrive quantized to 3 decimal places.
type Observation struct {
	Timestamp time.Time
	Value     Value
}

// DailyAggregate is one hydrological day of collapsed hourly observations.
type DailyAggregate struct {
	Day          time.Time
	CountNonNull int
	VariableAvg  Value
	FixedAvg     Value
}

// MergedRow is one hydrological day present in either the hourly aggregate or
// the daily table. Missing inputs leave the corresponding fields missing.
type MergedRow struct {
	Day          time.Time
	Year         int
	HasHourly    bool
	CountNonNull int
	VariableAvg  Value
	FixedAvg     Value
	Daily        Value
}

// ColumnValue returns the row's value for the given source column.
func (r MergedRow) ColumnValue(c Column) Value {
	switch c {
	case VariableDenominator:
		return r.VariableAvg
	case FixedDenominator:
		return r.FixedAvg
	case DailyValue:
		return r.Daily
	default:
		return Missing()
	}
}

// CategoryValues holds one value per flow-duration category.
type CategoryValues struct {
	High    Value
	Normal  Value
	Low     Value
	Drought Value
}

// Get returns the value for a category.
func (cv CategoryValues) Get(c Category) Value {
	switch c {
	case High:
		return cv.High
	case Normal:
		return cv.Normal
	case Low:
		return cv.Low
	case Drought:
		return cv.Drought
	default:
		return Missing()
	}
}

func (cv *CategoryValues) set(c Category, v Value) {
	switch c {
	case High:
		cv.High = v
	case Normal:
		cv.Normal = v
	case Low:
		cv.Low = v
	case Drought:
		cv.Drought = v
	}
}

// CategoryRanks holds one effective rank per flow-duration category. A nil
// rank means the category was undefined for the year (gated or fully missing).
type CategoryRanks struct {
	High    *int
	Normal  *int
	Low     *int
	Drought *int
}

// Get returns the rank for a category.
func (cr CategoryRanks) Get(c Category) *int {
	switch c {
	case High:
		return cr.High
	case Normal:
		return cr.Normal
	case Low:
		return cr.Low
	case Drought:
		return cr.Drought
	default:
		return nil
	}
}

func (cr *CategoryRanks) set(c Category, rk *int) {
	switch c {
	case High:
		cr.High = rk
	case Normal:
		cr.Normal = rk
	case Low:
		cr.Low = rk
	case Drought:
		cr.Drought = rk
	}
}

// AnnotatedRow is a merged row with the ranks and flow-duration values of one
// rule set attached. Flow-duration values repeat on every row of a year.
type AnnotatedRow struct {
	MergedRow
	RankVariable *int
	RankFixed    *int
	RankDaily    *int
	IkyoVariable CategoryValues
	IkyoFixed    CategoryValues
	IkyoDaily    CategoryValues
}

// Rank returns the row's rank for the given column, or nil when blanked.
func (r *AnnotatedRow) Rank(c Column) *int {
	switch c {
	case VariableDenominator:
		return r.RankVariable
	case FixedDenominator:
		return r.RankFixed
	case DailyValue:
		return r.RankDaily
	default:
		return nil
	}
}

func (r *AnnotatedRow) setRank(c Column, rk *int) {
	switch c {
	case VariableDenominator:
		r.RankVariable = rk
	case FixedDenominator:
		r.RankFixed = rk
	case DailyValue:
		r.RankDaily = rk
	}
}

// Ikyo returns the flow-duration values attached for the given column.
func (r *AnnotatedRow) Ikyo(c Column) CategoryValues {
	switch c {
	case VariableDenominator:
		return r.IkyoVariable
	case FixedDenominator:
		return r.IkyoFixed
	case DailyValue:
		return r.IkyoDaily
	default:
		return CategoryValues{}
	}
}

func (r *AnnotatedRow) setIkyo(c Column, cat Category, v Value) {
	switch c {
	case VariableDenominator:
		r.IkyoVariable.set(cat, v)
	case FixedDenominator:
		r.IkyoFixed.set(cat, v)
	case DailyValue:
		r.IkyoDaily.set(cat, v)
	}
}

// FlowDurationValue is the audit record for one (year, column, rule set,
// category) cell: the value picked and the effective rank actually used.
type FlowDurationValue struct {
	Year     int
	Column   Column
	RuleSet  RuleSet
	Category Category
	Value    Value
	RankUsed *int
}

// PeakRow is the per-day maximum hourly value and the timestamp at which it
// occurred. Both are missing when the day has no present hourly values.
type PeakRow struct {
	Day      time.Time
	MaxValue Value
	MaxTime  *time.Time
}

// ColumnSummary is one source column's slice of a year summary row.
type ColumnSummary struct {
	Missing  int
	Mean     Value
	Ikyo     CategoryValues
	RankUsed CategoryRanks
}

// YearSummaryRow aggregates one year of output for one rule set. Daily is nil
// in hourly-only mode.
type YearSummaryRow struct {
	Year          int
	DaysInYear    int
	Variable      ColumnSummary
	Fixed         ColumnSummary
	Daily         *ColumnSummary
	MaxHourly     Value
	MaxHourlyTime *time.Time
	MinHourly     Value
	MinHourlyTime *time.Time
}

// Table is the fully annotated merged table for one rule set.
type Table struct {
	RuleSet RuleSet
	Rows    []AnnotatedRow
}

// Result is the full output set of one engine invocation.
type Result struct {
	Standard         Table
	Reference        Table
	FlowDurations    []FlowDurationValue
	Peaks            []PeakRow
	StandardSummary  []YearSummaryRow
	ReferenceSummary []YearSummaryRow
	HasDaily         bool
}

// Columns returns the source columns the result covers.
func (r *Result) Columns() []Column {
	if r.HasDaily {
		return []Column{VariableDenominator, FixedDenominator, DailyValue}
	}
	return []Column{VariableDenominator, FixedDenominator}
}
