package config

// File naming conventions shared by the CLI's station discovery and the
// exporter's default output names.
const (
	// HourlyFileMarker tags the hourly observation workbook of a station.
	HourlyFileMarker = "_H"
	// DailyFileMarker tags the daily observation workbook of a station.
	DailyFileMarker = "_D"
	// WorkbookExtension is the only input format the loader accepts.
	WorkbookExtension = ".xlsx"
	// StatsFileSuffix names the per-station output workbook.
	StatsFileSuffix = "_stats.xlsx"
)
