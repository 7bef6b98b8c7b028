// Lists the archived benchmark runs kept by the benchmark binaries.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/boreq/errors"
	"github.com/boreq/pmem_benchmark"
)

const archiveDir = "results/archive"

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	store, err := pmem_benchmark.OpenRunStoreFromEnv(archiveDir)
	if err != nil {
		return errors.Wrap(err, "error opening the run store")
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		return errors.Wrap(err, "error listing the runs")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "id\trecorded_at\tleaf_capacity\tprefill\tops\twrite_ratio\trows")

	for id, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%g\t%d\n",
			id,
			run.RecordedAt.Format("2006-01-02 15:04:05"),
			run.LeafCapacity,
			run.Workload.PrefillCount,
			run.Workload.OpCount,
			run.Workload.WriteRatio,
			len(run.Results),
		)
	}

	return errors.Wrap(w.Flush(), "error flushing the writer")
}
