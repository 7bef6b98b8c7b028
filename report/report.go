package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/boreq/errors"
	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/tools/benchmark/parse"
)

type BenchResults struct {
	Goos               string
	Goarch             string
	Cpu                string
	PerformanceResults []PerformanceBenchResult
	CostResults        []CostBenchResult
}

type PerformanceBenchResult struct {
	BenchmarkName string
	Variants      []VariantPerformanceBenchResult
}

type CostBenchResult struct {
	BenchmarkName string
	Variants      []VariantCostBenchResult
}

type VariantPerformanceBenchResult struct {
	VariantName string
	NsOp        float64
}

type VariantCostBenchResult struct {
	VariantName string
	WritesOp    float64
	FlushesOp   float64
	FencesOp    float64
}

// GetBenchResults parses the output of go test -bench run over the variant
// family: the goos/goarch/cpu preamble, the ns/op figures and the
// writes/flushes/fences per-op metrics the benchmarks report.
func GetBenchResults(r io.Reader) (BenchResults, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return BenchResults{}, errors.Wrap(err, "error reading all")
	}

	var result BenchResults

	scan := bufio.NewScanner(bytes.NewReader(b))
	for scan.Scan() {
		parseLine(scan.Text(), &result)
	}

	if err := scan.Err(); err != nil {
		return BenchResults{}, errors.Wrap(err, "scan error")
	}

	if result.Cpu == "" || result.Goarch == "" || result.Goos == "" {
		return BenchResults{}, fmt.Errorf("missing execution environment info in output: '%+v'", result)
	}

	performanceResults, err := getPerformanceBenchResults(bytes.NewReader(b))
	if err != nil {
		return BenchResults{}, errors.Wrap(err, "error getting performance results")
	}

	costResults, err := getCostBenchResults(bytes.NewReader(b))
	if err != nil {
		return BenchResults{}, errors.Wrap(err, "error getting cost results")
	}

	result.PerformanceResults = performanceResults
	result.CostResults = costResults

	return result, err
}

const lineSep = ":"

func parseLine(line string, result *BenchResults) error {
	splitLine := strings.SplitN(line, lineSep, 2)
	if len(splitLine) != 2 {
		return errors.New("invalid number of strings")
	}

	key := splitLine[0]
	value := strings.TrimSpace(splitLine[1])

	switch key {
	case "goos":
		result.Goos = value
	case "goarch":
		result.Goarch = value
	case "cpu":
		result.Cpu = value
	default:
		return errors.New("unknown line")
	}

	return nil
}

func getPerformanceBenchResults(r io.Reader) ([]PerformanceBenchResult, error) {
	var results []PerformanceBenchResult

	set, err := parse.ParseSet(r)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing set")
	}

	for _, benchmarks := range set {
		for _, benchmark := range benchmarks {
			if !strings.HasPrefix(benchmark.Name, "BenchmarkPerformance") {
				continue
			}

			variantName, benchmarkName, err := ParseBenchmarkName(benchmark.Name)
			if err != nil {
				return nil, errors.Wrap(err, "error parsing benchmark name")
			}

			bench, ok := findPerformanceBenchmark(results, benchmarkName)
			if !ok {
				results = append(results, PerformanceBenchResult{
					BenchmarkName: benchmarkName,
					Variants:      nil,
				})
				bench = &results[len(results)-1]
			}

			bench.Variants = append(bench.Variants, VariantPerformanceBenchResult{
				VariantName: variantName,
				NsOp:        benchmark.NsPerOp,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].BenchmarkName < results[j].BenchmarkName
	})

	for _, result := range results {
		sort.Slice(result.Variants, func(i, j int) bool {
			return result.Variants[i].VariantName < result.Variants[j].VariantName
		})
	}

	return results, nil
}

// getCostBenchResults scans the raw benchmark lines for the custom
// writes/op, flushes/op and fences/op metrics which the standard parser
// doesn't understand.
func getCostBenchResults(r io.Reader) ([]CostBenchResult, error) {
	var results []CostBenchResult

	scan := bufio.NewScanner(r)
	for scan.Scan() {
		fields := strings.Fields(scan.Text())
		if len(fields) < 4 {
			continue
		}

		benchName := fields[0]
		if !strings.HasPrefix(benchName, "BenchmarkPerformance") {
			continue
		}

		variantName, benchmarkName, err := ParseBenchmarkName(benchName)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing benchmark name")
		}

		variantResult := VariantCostBenchResult{VariantName: variantName}
		found := false

		for i := 2; i+1 < len(fields); i += 2 {
			value, unit := fields[i], fields[i+1]

			var target *float64
			switch unit {
			case "writes/op":
				target = &variantResult.WritesOp
			case "flushes/op":
				target = &variantResult.FlushesOp
			case "fences/op":
				target = &variantResult.FencesOp
			default:
				continue
			}

			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Wrap(err, "error parsing value")
			}

			*target = f
			found = true
		}

		if !found {
			continue
		}

		bench, ok := findCostBenchmark(results, benchmarkName)
		if !ok {
			results = append(results, CostBenchResult{
				BenchmarkName: benchmarkName,
				Variants:      nil,
			})
			bench = &results[len(results)-1]
		}

		bench.Variants = append(bench.Variants, variantResult)
	}

	if err := scan.Err(); err != nil {
		return nil, errors.Wrap(err, "scan error")
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].BenchmarkName < results[j].BenchmarkName
	})

	for _, result := range results {
		sort.Slice(result.Variants, func(i, j int) bool {
			return result.Variants[i].VariantName < result.Variants[j].VariantName
		})
	}

	return results, nil
}

const (
	chartWidth    = 2000
	chartBarWidth = 300
)

func MakePerformanceResultChart(result PerformanceBenchResult) (chart.BarChart, error) {
	graph := chart.BarChart{
		Title: result.BenchmarkName,
		Background: chart.Style{
			Padding: chart.Box{
				Top: 40,
			},
		},
		Height:   512,
		BarWidth: chartBarWidth,
		Width:    chartWidth,
		YAxis: chart.YAxis{
			Name: "ns per op",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 0,
			},
		},
	}

	for _, variant := range result.Variants {
		graph.Bars = append(graph.Bars, chart.Value{
			Label: variant.VariantName,
			Value: variant.NsOp,
		})

		if v := variant.NsOp * 1.1; v > graph.YAxis.Range.GetMax() {
			graph.YAxis.Range.SetMax(v)
		}
	}

	return graph, nil
}

type CostUnit string

const (
	CostUnitWrites  CostUnit = "writes per op"
	CostUnitFlushes CostUnit = "flushes per op"
	CostUnitFences  CostUnit = "fences per op"
)

func MakeCostResultChart(result CostBenchResult, unit CostUnit) (chart.BarChart, error) {
	graph := chart.BarChart{
		Title: fmt.Sprintf("%s (%s)", result.BenchmarkName, unit),
		Background: chart.Style{
			Padding: chart.Box{
				Top: 40,
			},
		},
		Height:   512,
		BarWidth: chartBarWidth,
		Width:    chartWidth,
		YAxis: chart.YAxis{
			Name: string(unit),
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 0,
			},
		},
	}

	for _, variant := range result.Variants {
		var value float64
		switch unit {
		case CostUnitWrites:
			value = variant.WritesOp
		case CostUnitFlushes:
			value = variant.FlushesOp
		case CostUnitFences:
			value = variant.FencesOp
		default:
			return chart.BarChart{}, errors.New("unknown cost unit")
		}

		graph.Bars = append(graph.Bars, chart.Value{
			Label: variant.VariantName,
			Value: value,
		})

		if v := value * 1.1; v > graph.YAxis.Range.GetMax() {
			graph.YAxis.Range.SetMax(v)
		}
	}

	return graph, nil
}

// ParseBenchmarkName splits BenchmarkPerformance/<variant>/<benchmark> into
// its variant and benchmark parts.
func ParseBenchmarkName(name string) (string, string, error) {
	split := strings.SplitN(name, "/", 3)
	if len(split) != 3 {
		return "", "", errors.New("invalid name")
	}

	return split[1], split[2], nil
}

func findPerformanceBenchmark(results []PerformanceBenchResult, benchmarkName string) (*PerformanceBenchResult, bool) {
	for i := range results {
		if results[i].BenchmarkName == benchmarkName {
			return &results[i], true
		}
	}
	return nil, false
}

func findCostBenchmark(results []CostBenchResult, benchmarkName string) (*CostBenchResult, bool) {
	for i := range results {
		if results[i].BenchmarkName == benchmarkName {
			return &results[i], true
		}
	}
	return nil, false
}
