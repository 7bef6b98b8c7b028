// Insert-burst benchmark: a small leaf prefilled to ~70% takes a pure insert
// workload, every variant over the identical key sequence. Emits the
// variant,throughput_ops_sec,Nw,Nclf,Nmf,search_hits table and archives the
// run.
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
	leafCapacity     = 32
	prefillCount     = leafCapacity * 7 / 10
	opCount          = 100000
	searchSampleSize = 5000
	seed             = 123

	resultsDir = "results"
	archiveDir = "results/archive"
	csvName    = "insert_metrics.csv"
	traceName  = "insert_workload.trace"
)

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
		WriteRatio:   1.0,
		Seed:         seed,
	}

	cfg := pmem_benchmark.RunConfig{
		LeafCapacity:     leafCapacity,
		SearchSampleSize: searchSampleSize,
	}

	logger.Info("starting the insert benchmark",
		"leaf_capacity", leafCapacity,
		"prefill", prefillCount,
		"ops", opCount,
	)

	results, err := pmem_benchmark.RunVariants(pmem_benchmark.DefaultVariants(), cfg, spec)
	if err != nil {
		return errors.Wrap(err, "error running the variants")
	}

	for _, result := range results {
		logger.Info("variant finished",
			"variant", result.Variant,
			"throughput_ops_sec", result.ThroughputOpsPerSec,
			"writes", result.Cost.Writes,
			"flushes", result.Cost.Flushes,
			"fences", result.Cost.Fences,
			"search_hits", result.SearchHits,
			"search_samples", result.SearchSamples,
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

	if err := pmem_benchmark.WriteInsertMetrics(f, results); err != nil {
		return errors.Wrap(err, "error writing the metrics")
	}

	if err := pmem_benchmark.WriteInsertMetrics(os.Stdout, results); err != nil {
		return errors.Wrap(err, "error echoing the metrics")
	}

	if err := archiveRun(spec, results); err != nil {
		return errors.Wrap(err, "error archiving the run")
	}

	if err := exportTrace(spec, logger); err != nil {
		return errors.Wrap(err, "error exporting the trace")
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

func exportTrace(spec pmem_benchmark.WorkloadSpec, logger *slog.Logger) error {
	dir, ok := pmem_benchmark.TraceDirFromEnv()
	if !ok {
		return nil
	}

	codec, err := pmem_benchmark.CodecFromEnv()
	if err != nil {
		return errors.Wrap(err, "error selecting the codec")
	}

	generator, err := pmem_benchmark.NewWorkloadGenerator(spec)
	if err != nil {
		return errors.Wrap(err, "error creating the workload generator")
	}

	if err := pmem_benchmark.EnsureResultsDir(dir); err != nil {
		return errors.Wrap(err, "error creating the trace directory")
	}

	filename := path.Join(dir, traceName)
	if err := pmem_benchmark.WriteTraceFile(filename, pmem_benchmark.RecordTrace(generator), codec); err != nil {
		return errors.Wrap(err, "error writing the trace file")
	}

	logger.Info("trace exported", "file", filename)
	return nil
}
