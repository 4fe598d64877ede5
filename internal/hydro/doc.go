// Package hydro implements the post-processing statistics engine for
// hydrological time series. It consumes two already-parsed observation
// tables (hourly and daily), collapses the hourly series into hydrological
// days, outer-joins the result with the daily series, assigns within-year
// ranks under two rule sets, derives flow-duration reference values, extracts
// daily peaks, and rolls everything up into per-year summaries.
//
// The engine is pure: it performs no I/O, holds no state between invocations,
// and is safe to run concurrently on independent inputs. Loading workbooks
// and writing report files belong to the loader and exporter packages.
package hydro
