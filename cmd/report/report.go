package main

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/boreq/errors"
	"github.com/boreq/pmem_benchmark/report"
	gochart "github.com/wcharczuk/go-chart/v2"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	results, err := report.GetBenchResults(os.Stdin)
	if err != nil {
		return errors.Wrap(err, "error getting bench results")
	}

	directory := path.Join(
		"results",
		fmt.Sprintf("%s-%s-%s", results.Cpu, results.Goarch, results.Goos),
	)

	if err := os.RemoveAll(directory); err != nil {
		return errors.Wrap(err, "error removing directory")
	}

	if err := os.MkdirAll(directory, 0700); err != nil {
		return errors.Wrap(err, "error recreating directory")
	}

	readmeBuffer := bytes.NewBuffer(nil)
	readmeBuffer.WriteString("# Results\n")
	readmeBuffer.WriteString("```\n")
	readmeBuffer.WriteString(fmt.Sprintf("goarch=%s\n", results.Goarch))
	readmeBuffer.WriteString(fmt.Sprintf("goos=%s\n", results.Goos))
	readmeBuffer.WriteString(fmt.Sprintf("cpu=%s\n", results.Cpu))
	readmeBuffer.WriteString("```\n")

	readmeBuffer.WriteString("## Performance\n")

	for _, result := range results.PerformanceResults {
		resultsChart, err := report.MakePerformanceResultChart(result)
		if err != nil {
			return errors.Wrap(err, "error creating chart")
		}

		filename := chartFilename(result.BenchmarkName)

		if err := renderChart(resultsChart, path.Join(directory, filename)); err != nil {
			return errors.Wrap(err, "error rendering the chart")
		}

		readmeBuffer.WriteString(fmt.Sprintf("### %s\n", result.BenchmarkName))
		readmeBuffer.WriteString(fmt.Sprintf("![](./%s)\n", filename))
		readmeBuffer.WriteString("```\n")
		sort.Slice(result.Variants, func(i, j int) bool {
			return result.Variants[i].NsOp < result.Variants[j].NsOp
		})
		for _, variant := range result.Variants {
			readmeBuffer.WriteString(fmt.Sprintf("%25s = %.0f ns per op\n", variant.VariantName, variant.NsOp))
		}
		readmeBuffer.WriteString("```\n")
	}

	readmeBuffer.WriteString("## Cost\n")
	readmeBuffer.WriteString("\n")
	readmeBuffer.WriteString("Simulated persistence costs accumulated per timed operation: word writes (Nw), cache-line flushes (Nclf) and durability fences (Nmf). Reads are modeled as wear-free so the search-heavy benchmarks approach zero.")
	readmeBuffer.WriteString("\n")

	costUnits := []report.CostUnit{
		report.CostUnitWrites,
		report.CostUnitFlushes,
		report.CostUnitFences,
	}

	for _, result := range results.CostResults {
		readmeBuffer.WriteString(fmt.Sprintf("### %s\n", result.BenchmarkName))

		for _, unit := range costUnits {
			resultsChart, err := report.MakeCostResultChart(result, unit)
			if err != nil {
				return errors.Wrap(err, "error creating chart")
			}

			filename := chartFilename(fmt.Sprintf("%s-%s", result.BenchmarkName, unitSlug(unit)))

			if err := renderChart(resultsChart, path.Join(directory, filename)); err != nil {
				return errors.Wrap(err, "error rendering the chart")
			}

			readmeBuffer.WriteString(fmt.Sprintf("![](./%s)\n", filename))
		}

		readmeBuffer.WriteString("```\n")
		for _, variant := range result.Variants {
			readmeBuffer.WriteString(fmt.Sprintf(
				"%25s = %.2f writes, %.2f flushes, %.2f fences per op\n",
				variant.VariantName, variant.WritesOp, variant.FlushesOp, variant.FencesOp,
			))
		}
		readmeBuffer.WriteString("```\n")
	}

	readmeFile, err := os.Create(path.Join(directory, "README.md"))
	if err != nil {
		return errors.Wrap(err, "error creating readme")
	}

	if _, err := readmeBuffer.WriteTo(readmeFile); err != nil {
		return errors.Wrap(err, "error writing to readme file")
	}

	return nil
}

func renderChart(resultsChart gochart.BarChart, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "error creating chart file")
	}
	defer f.Close()

	return errors.Wrap(resultsChart.Render(gochart.PNG, f), "error rendering")
}

func chartFilename(name string) string {
	return fmt.Sprintf(
		"%s.png",
		strings.Replace(name, string(os.PathSeparator), "-", -1),
	)
}

func unitSlug(unit report.CostUnit) string {
	return strings.Replace(string(unit), " ", "-", -1)
}
