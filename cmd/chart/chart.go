// Renders throughput and cost charts for the most recently archived
// benchmark run. The archive backend and codec are selected through the
// environment, same as for the benchmark binaries.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/boreq/errors"
	"github.com/boreq/pmem_benchmark"
	"github.com/boreq/pmem_benchmark/chart"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	archiveDir = "results/archive"
	chartsDir  = "results/charts"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	logger := pmem_benchmark.NewLogger(slog.LevelInfo)

	store, err := pmem_benchmark.OpenRunStoreFromEnv(archiveDir)
	if err != nil {
		return errors.Wrap(err, "error opening the run store")
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		return errors.Wrap(err, "error listing the runs")
	}

	if len(runs) == 0 {
		return errors.New("the archive contains no runs")
	}

	lastRun := runs[len(runs)-1]
	title := fmt.Sprintf("run recorded at %s", lastRun.RecordedAt.Format("2006-01-02 15:04:05"))

	if err := pmem_benchmark.EnsureResultsDir(chartsDir); err != nil {
		return errors.Wrap(err, "error creating the charts directory")
	}

	throughputChart, err := chart.MakeThroughputChart(title, lastRun.Results)
	if err != nil {
		return errors.Wrap(err, "error creating the throughput chart")
	}

	if err := renderChart(throughputChart, path.Join(chartsDir, "throughput.png")); err != nil {
		return errors.Wrap(err, "error rendering the throughput chart")
	}

	for _, counter := range chart.Counters() {
		costChart, err := chart.MakeCostChart(title, lastRun.Results, counter)
		if err != nil {
			return errors.Wrap(err, "error creating a cost chart")
		}

		filename := fmt.Sprintf("cost_%s.png", counter)
		if err := renderChart(costChart, path.Join(chartsDir, filename)); err != nil {
			return errors.Wrap(err, "error rendering a cost chart")
		}
	}

	logger.Info("charts rendered", "directory", chartsDir, "recorded_at", lastRun.RecordedAt)

	return nil
}

func renderChart(c gochart.BarChart, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "error creating the file")
	}
	defer f.Close()

	return errors.Wrap(c.Render(gochart.PNG, f), "error rendering")
}
