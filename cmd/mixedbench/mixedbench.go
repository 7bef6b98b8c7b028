// Mixed-workload benchmark: every variant runs once per write ratio over a
// large leaf, each (variant, ratio) pair seeing the identical sequence for
// its ratio. Emits the variant,write_ratio,ops,throughput_ops_sec,Nw,Nclf,Nmf
// table and archives the run.
package main

import (
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/boreq/errors"
	"github.com/boreq/pmem_benchmark"
)

const (
	leafCapacity = 1 << 17
	prefillCount = 5000
	opCount      = 100000
	seed         = 123

	resultsDir = "results"
	archiveDir = "results/archive"
	csvName    = "mixed_metrics.csv"
)

var writeRatios = []float64{0.9, 0.5, 0.1, 0.0}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	logger := pmem_benchmark.NewLogger(slog.LevelInfo)

	spec := pmem_benchmark.WorkloadSpec{
		PrefillCount: prefillCount,
		OpCount:      opCount,
		Seed:         seed,
	}

	cfg := pmem_benchmark.RunConfig{
		LeafCapacity: leafCapacity,
	}

	logger.Info("starting the mixed benchmark",
		"leaf_capacity", leafCapacity,
		"prefill", prefillCount,
		"ops", opCount,
		"write_ratios", writeRatios,
	)

	results, err := pmem_benchmark.RunMixedSweep(pmem_benchmark.DefaultVariants(), cfg, spec, writeRatios)
	if err != nil {
		return errors.Wrap(err, "error running the sweep")
	}

	for _, result := range results {
		logger.Info("variant finished",
			"variant", result.Variant,
			"write_ratio", result.WriteRatio,
			"throughput_ops_sec", result.ThroughputOpsPerSec,
			"writes", result.Cost.Writes,
			"flushes", result.Cost.Flushes,
			"fences", result.Cost.Fences,
		)
	}

	if err := pmem_benchmark.EnsureResultsDir(resultsDir); err != nil {
		return errors.Wrap(err, "error creating the results directory")
	}

	f, err := os.Create(path.Join(resultsDir, csvName))
	if err != nil {
		return errors.Wrap(err, "error creating the csv file")
	}
	defer f.Close()

	if err := pmem_benchmark.WriteMixedMetrics(f, results); err != nil {
		return errors.Wrap(err, "error writing the metrics")
	}

	if err := pmem_benchmark.WriteMixedMetrics(os.Stdout, results); err != nil {
		return errors.Wrap(err, "error echoing the metrics")
	}

	if err := archiveRun(spec, results); err != nil {
		return errors.Wrap(err, "error archiving the run")
	}

	return nil
}

func archiveRun(spec pmem_benchmark.WorkloadSpec, results []pmem_benchmark.RunResult) error {
	store, err := pmem_benchmark.OpenRunStoreFromEnv(archiveDir)
	if err != nil {
		return errors.Wrap(err, "error opening the run store")
	}
	defer store.Close()

	_, err = store.Append(pmem_benchmark.ArchivedRun{
		RecordedAt:   time.Now().UTC(),
		Workload:     spec,
		LeafCapacity: leafCapacity,
		Results:      results,
	})
	return errors.Wrap(err, "error appending the run")
}
