// Command postprocess computes the post-processing statistics workbook for
// one station or for every station pair found in a directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"hydrocli/internal/config"
	"hydrocli/internal/exporter"
	"hydrocli/internal/hydro"
	"hydrocli/internal/infrastructure"
	"hydrocli/internal/loader"
)

// station is one unit of work: an hourly workbook with an optional daily
// companion.
type station struct {
	Name       string
	HourlyPath string
	DailyPath  string
}

func main() {
	hourFile := flag.String("hour-file", "", "hourly observation workbook (single-station mode)")
	dailyFile := flag.String("daily-file", "", "daily observation workbook (optional, single-station mode)")
	in := flag.String("in", "", "input directory of *_H*/*_D* station workbooks (directory mode)")
	out := flag.String("out", "", "output workbook path (single-station) or directory (directory mode)")
	csvDir := flag.String("csv-dir", "", "also write CSV mirrors of every output table under this directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging:    config.LoggingConfig{Level: "info", Output: "console"},
			Processing: config.ProcessingConfig{MissingThreshold: hydro.DefaultMissingThreshold, MaxParallelStations: 1},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	start := time.Now()
	switch {
	case *hourFile != "":
		st := station{
			Name:       stationName(filepath.Base(*hourFile)),
			HourlyPath: *hourFile,
			DailyPath:  *dailyFile,
		}
		outPath := *out
		if outPath == "" {
			outPath = filepath.Join(filepath.Dir(*hourFile), st.Name+config.StatsFileSuffix)
		}
		if err := processStation(ctx, logger, cfg, st, outPath, *csvDir); err != nil {
			logger.Error("station processing failed",
				slog.String("station", st.Name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	case *in != "":
		outDir := *out
		if outDir == "" {
			outDir = cfg.Paths.ReportsDir
		}
		if err := processDirectory(ctx, logger, cfg, *in, outDir, *csvDir); err != nil {
			logger.Error("directory processing failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "either -hour-file or -in is required")
		flag.Usage()
		os.Exit(2)
	}

	logger.InfoContext(ctx, "postprocess finished",
		slog.Duration("duration", time.Since(start)))
}

// processDirectory discovers every station pair under dir and processes them
// concurrently, one engine invocation per station.
func processDirectory(ctx context.Context, logger *slog.Logger, cfg *config.Config, dir, outDir, csvDir string) error {
	stations, err := discoverStations(dir)
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		return fmt.Errorf("no station workbooks found in %s", dir)
	}
	logger.InfoContext(ctx, "discovered stations",
		slog.String("dir", dir),
		slog.Int("count", len(stations)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Processing.MaxParallelStations)
	for _, st := range stations {
		st := st
		g.Go(func() error {
			outPath := filepath.Join(outDir, st.Name+config.StatsFileSuffix)
			stationCSV := ""
			if csvDir != "" {
				stationCSV = filepath.Join(csvDir, st.Name)
			}
			return processStation(gctx, logger, cfg, st, outPath, stationCSV)
		})
	}
	return g.Wait()
}

// processStation runs the full load, compute, export cycle for one station.
func processStation(ctx context.Context, logger *slog.Logger, cfg *config.Config, st station, outPath, csvDir string) error {
	logger.InfoContext(ctx, "processing station",
		slog.String("station", st.Name),
		slog.String("hourly", st.HourlyPath),
		slog.String("daily", st.DailyPath))

	hourly, err := loader.LoadHourly(st.HourlyPath)
	if err != nil {
		return err
	}
	var daily []hydro.Observation
	if st.DailyPath != "" {
		if daily, err = loader.LoadDaily(st.DailyPath); err != nil {
			return err
		}
	}

	engine := hydro.NewEngine(hydro.Config{MissingThreshold: cfg.Processing.MissingThreshold}, logger)
	res, err := engine.Run(ctx, hourly, daily)
	if err != nil {
		return err
	}

	if err := exporter.WriteWorkbook(outPath, res); err != nil {
		return err
	}
	if csvDir != "" {
		if err := exporter.WriteCSVDir(csvDir, res); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "station completed",
		slog.String("station", st.Name),
		slog.String("output", outPath))
	return nil
}

// discoverStations pairs the hourly and daily workbooks of a directory by
// station name. A station needs an hourly workbook; the daily one is
// optional. Stations come back sorted by name.
func discoverStations(dir string) ([]station, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	hourly := make(map[string]string)
	daily := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), config.WorkbookExtension) {
			continue
		}
		path := filepath.Join(dir, name)
		switch {
		case strings.Contains(name, config.HourlyFileMarker):
			hourly[stationName(name)] = path
		case strings.Contains(name, config.DailyFileMarker):
			daily[stationName(name)] = path
		}
	}

	stations := make([]station, 0, len(hourly))
	for name, path := range hourly {
		stations = append(stations, station{
			Name:       name,
			HourlyPath: path,
			DailyPath:  daily[name],
		})
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].Name < stations[j].Name })
	return stations, nil
}

// stationName strips the hourly/daily marker and everything after it from a
// workbook file name. "Foo_H_2020.xlsx" and "Foo_D_2020.xlsx" both map to
// station "Foo".
func stationName(file string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	for _, marker := range []string{config.HourlyFileMarker, config.DailyFileMarker} {
		if i := strings.Index(base, marker); i >= 0 {
			return base[:i]
		}
	}
	return base
}
