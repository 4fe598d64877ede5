package loader

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hydrocli/internal/errors"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadHourlyAllPeriodSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		AllPeriodSheet: {
			{"timestamp", "value"},
			{"2020-01-01 01:00", 1.2345},
			{"2020-01-01 02:00", "---"},
			{"2020-01-01 03:00", 2.5},
		},
	})

	obs, err := LoadHourly(path)
	require.NoError(t, err)
	require.Len(t, obs, 3)

	assert.Equal(t, time.Date(2020, 1, 1, 1, 0, 0, 0, time.UTC), obs[0].Timestamp)
	require.True(t, obs[0].Value.Valid())
	assert.Equal(t, "1.235", obs[0].Value.Decimal().StringFixed(3)) // quantized half-up

	assert.False(t, obs[1].Value.Valid())

	require.True(t, obs[2].Value.Valid())
	assert.Equal(t, "2.500", obs[2].Value.Decimal().StringFixed(3))
}

func TestLoadDailyYearSheets(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"2019年": {
			{"date", "value"},
			{"2019-12-31", 4.0},
		},
		"2020年": {
			{"date", "value"},
			{"2020-01-01", 5.0},
		},
	})

	obs, err := LoadDaily(path)
	require.NoError(t, err)
	assert.Len(t, obs, 2)
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		AllPeriodSheet: {
			{"timestamp", "value"},
			{"2020-01-01 01:00", "n/a"},
		},
	})

	_, err := LoadHourly(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestLoadRejectsMalformedTimestamp(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		AllPeriodSheet: {
			{"timestamp", "value"},
			{"first of january", 1.0},
		},
	})

	_, err := LoadHourly(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestLoadRequiresObservationSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"notes": {
			{"timestamp", "value"},
		},
	})

	_, err := LoadHourly(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestParseTimestampSerialNumber(t *testing.T) {
	// 43831.0416666667 is 2020-01-01 01:00 as an Excel serial date.
	ts, err := parseTimestamp("43831.0416666667")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2020, 1, 1, 1, 0, 0, 0, time.UTC), ts, time.Second)
}

func TestLoadSkipsBlankRows(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		AllPeriodSheet: {
			{"timestamp", "value"},
			{"2020-01-01 01:00", 1.0},
			{"", ""},
		},
	})

	obs, err := LoadHourly(path)
	require.NoError(t, err)
	assert.Len(t, obs, 1)
}
