package hydro

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydrocli/internal/errors"
)

// fullYearHourly builds a complete hourly series covering every hydro day of
// 2019 with a constant value: 8760 observations from 2019-01-01 01:00 through
// 2020-01-01 00:00.
func fullYearHourly(value float64) []Observation {
	start := time.Date(2019, 1, 1, 1, 0, 0, 0, time.UTC)
	obs := make([]Observation, 0, 365*24)
	for i := 0; i < 365*24; i++ {
		obs = append(obs, Observation{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Value:     FromFloat(value),
		})
	}
	return obs
}

func fullYearDaily(value float64) []Observation {
	day := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]Observation, 0, 365)
	for i := 0; i < 365; i++ {
		obs = append(obs, Observation{Timestamp: day, Value: FromFloat(value)})
		day = day.AddDate(0, 0, 1)
	}
	return obs
}

func TestEngineRunFullYear(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil)
	res, err := eng.Run(context.Background(), fullYearHourly(2.0), fullYearDaily(3.0))
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.HasDaily)
	assert.Len(t, res.Columns(), 3)
	require.Len(t, res.Standard.Rows, 365)
	require.Len(t, res.Reference.Rows, 365)

	// constant values tie everywhere, so standard ranks run 1..365 by day
	seen := make(map[int]bool)
	for i := range res.Standard.Rows {
		row := &res.Standard.Rows[i]
		assert.Equal(t, 24, row.CountNonNull)
		rk := row.Rank(VariableDenominator)
		require.NotNil(t, rk)
		assert.Equal(t, i+1, *rk)
		seen[*rk] = true
		require.NotNil(t, row.Rank(DailyValue))
	}
	assert.Len(t, seen, 365, "ranks must form a permutation")

	// 3 columns, 4 categories, 2 rule sets, 1 year
	assert.Len(t, res.FlowDurations, 24)
	for _, fd := range res.FlowDurations {
		assert.Equal(t, 2019, fd.Year)
		require.NotNil(t, fd.RankUsed)
		assert.Equal(t, fd.Category.BaseRank(), *fd.RankUsed)
		require.True(t, fd.Value.Valid())
	}

	require.Len(t, res.Peaks, 365)
	for _, p := range res.Peaks {
		require.True(t, p.MaxValue.Valid())
		assert.Equal(t, "2", p.MaxValue.Decimal().String())
		require.NotNil(t, p.MaxTime)
	}

	require.Len(t, res.StandardSummary, 1)
	s := res.StandardSummary[0]
	assert.Equal(t, 2019, s.Year)
	assert.Equal(t, 0, s.Variable.Missing)
	assert.Equal(t, 0, s.Fixed.Missing)
	assert.Equal(t, "2.00", s.Variable.Mean.Decimal().StringFixed(2))
	assert.Equal(t, "2.00", s.Fixed.Mean.Decimal().StringFixed(2))
	require.NotNil(t, s.Daily)
	assert.Equal(t, 0, s.Daily.Missing)
	assert.Equal(t, "3.00", s.Daily.Mean.Decimal().StringFixed(2))
	assert.Equal(t, "2.00", s.MaxHourly.Decimal().StringFixed(2))
	assert.Equal(t, "2.00", s.MinHourly.Decimal().StringFixed(2))

	require.Len(t, res.ReferenceSummary, 1)
	ref := res.ReferenceSummary[0]
	require.True(t, ref.Variable.Ikyo.Normal.Valid())
	assert.Equal(t, "2", ref.Variable.Ikyo.Normal.Decimal().String())
}

func TestEngineRunHourlyOnly(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil)
	res, err := eng.Run(context.Background(), fullYearHourly(1.0), nil)
	require.NoError(t, err)

	assert.False(t, res.HasDaily)
	assert.Len(t, res.Columns(), 2)
	assert.Len(t, res.FlowDurations, 16)
	for i := range res.Standard.Rows {
		assert.Nil(t, res.Standard.Rows[i].Rank(DailyValue))
		assert.False(t, res.Standard.Rows[i].Daily.Valid())
	}
	require.Len(t, res.StandardSummary, 1)
	assert.Nil(t, res.StandardSummary[0].Daily)
}

func TestEngineRunEmptyHourlyIsFatal(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil)
	res, err := eng.Run(context.Background(), nil, fullYearDaily(1.0))
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyInput))
}

func TestEngineDefaultsMissingThreshold(t *testing.T) {
	eng := NewEngine(Config{}, nil)
	assert.Equal(t, DefaultMissingThreshold, eng.cfg.MissingThreshold)
}
