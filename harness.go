package pmem_benchmark

import (
	"time"

	"github.com/boreq/errors"
)

// RunConfig fixes the leaf shape and the size of the post-run search sample
// for one benchmark run. SearchSampleSize of zero disables the correctness
// check.
type RunConfig struct {
	LeafCapacity     int
	SearchSampleSize int
}

// RunBenchmark executes one full run of a variant: prefill the leaf (costs
// counted, time not), drain the operation stream inside the timed window,
// then replay a sample of the attempted inserts as searches to count hits.
// The run can't fail; overflowing the leaf is a silent no-op by contract.
func RunBenchmark(variant Variant, cfg RunConfig, w Workload) RunResult {
	leaf := NewLeafNode(cfg.LeafCapacity)
	strategy := variant.New(leaf)
	meter := NewMeter()

	for _, key := range w.PrefillKeys() {
		strategy.Insert(key, meter)
	}

	sample := make([]uint64, 0, cfg.SearchSampleSize)
	ops := 0
	stream := w.Operations()

	start := time.Now()
	for {
		op, ok := stream.Next()
		if !ok {
			break
		}

		if op.Write {
			strategy.Insert(op.Key, meter)
			if len(sample) < cap(sample) {
				sample = append(sample, op.Key)
			}
		} else {
			strategy.Search(op.Key, meter)
		}
		ops++
	}
	elapsed := time.Since(start).Seconds()

	throughput := 0.0
	if elapsed > 0 {
		throughput = float64(ops) / elapsed
	}

	hits := 0
	for _, key := range sample {
		if strategy.Search(key, meter) {
			hits++
		}
	}

	return RunResult{
		Variant:             variant.Name,
		WriteRatio:          w.Spec().WriteRatio,
		Ops:                 ops,
		ThroughputOpsPerSec: throughput,
		Cost:                meter.Snapshot(),
		SearchHits:          hits,
		SearchSamples:       len(sample),
	}
}

// RunVariants runs every variant against the same spec, constructing a fresh
// generator per variant so each one sees the identical sequences.
func RunVariants(variants []Variant, cfg RunConfig, spec WorkloadSpec) ([]RunResult, error) {
	results := make([]RunResult, 0, len(variants))

	for _, variant := range variants {
		generator, err := NewWorkloadGenerator(spec)
		if err != nil {
			return nil, errors.Wrap(err, "error creating the workload generator")
		}

		results = append(results, RunBenchmark(variant, cfg, generator))
	}

	return results, nil
}

// RunMixedSweep repeats RunVariants once per write ratio, ratio-major, the
// order the mixed-metrics table is reported in.
func RunMixedSweep(variants []Variant, cfg RunConfig, base WorkloadSpec, writeRatios []float64) ([]RunResult, error) {
	var results []RunResult

	for _, ratio := range writeRatios {
		spec := base
		spec.WriteRatio = ratio

		ratioResults, err := RunVariants(variants, cfg, spec)
		if err != nil {
			return nil, errors.Wrap(err, "error running the variants")
		}

		results = append(results, ratioResults...)
	}

	return results, nil
}
