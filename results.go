package pmem_benchmark

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/boreq/errors"
)

// RunResult is the record one benchmark run produces: the variant that ran,
// the workload shape it saw, how fast the timed window went and what the
// meter accumulated over the whole run, prefill included.
type RunResult struct {
	Variant             string       `json:"variant"`
	WriteRatio          float64      `json:"write_ratio"`
	Ops                 int          `json:"ops"`
	ThroughputOpsPerSec float64      `json:"throughput_ops_sec"`
	Cost                CostSnapshot `json:"cost"`
	SearchHits          int          `json:"search_hits"`
	SearchSamples       int          `json:"search_samples"`
}

// WriteInsertMetrics emits the insert-burst table:
// variant,throughput_ops_sec,Nw,Nclf,Nmf,search_hits.
func WriteInsertMetrics(w io.Writer, results []RunResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"variant", "throughput_ops_sec", "Nw", "Nclf", "Nmf", "search_hits"}); err != nil {
		return errors.Wrap(err, "error writing the header")
	}

	for _, r := range results {
		record := []string{
			r.Variant,
			formatThroughput(r.ThroughputOpsPerSec),
			strconv.FormatUint(r.Cost.Writes, 10),
			strconv.FormatUint(r.Cost.Flushes, 10),
			strconv.FormatUint(r.Cost.Fences, 10),
			strconv.Itoa(r.SearchHits),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "error writing a record")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "error flushing the writer")
}

// WriteMixedMetrics emits the mixed-workload table:
// variant,write_ratio,ops,throughput_ops_sec,Nw,Nclf,Nmf.
func WriteMixedMetrics(w io.Writer, results []RunResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"variant", "write_ratio", "ops", "throughput_ops_sec", "Nw", "Nclf", "Nmf"}); err != nil {
		return errors.Wrap(err, "error writing the header")
	}

	for _, r := range results {
		record := []string{
			r.Variant,
			strconv.FormatFloat(r.WriteRatio, 'g', -1, 64),
			strconv.Itoa(r.Ops),
			formatThroughput(r.ThroughputOpsPerSec),
			strconv.FormatUint(r.Cost.Writes, 10),
			strconv.FormatUint(r.Cost.Flushes, 10),
			strconv.FormatUint(r.Cost.Fences, 10),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "error writing a record")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "error flushing the writer")
}

func formatThroughput(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// EnsureResultsDir creates the output directory if it doesn't exist yet.
func EnsureResultsDir(dir string) error {
	return errors.Wrap(os.MkdirAll(dir, 0700), "error creating the results directory")
}
