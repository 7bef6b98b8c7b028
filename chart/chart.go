// Package chart renders bar charts of archived benchmark runs: the
// throughput and the accumulated write/flush/fence counts of every variant
// that took part in a run.
package chart

import (
	"fmt"

	"github.com/boreq/errors"
	"github.com/boreq/pmem_benchmark"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth    = 2000
	chartBarWidth = 300
	chartHeight   = 512
)

type Counter string

const (
	CounterWrites  Counter = "Nw"
	CounterFlushes Counter = "Nclf"
	CounterFences  Counter = "Nmf"
)

func Counters() []Counter {
	return []Counter{CounterWrites, CounterFlushes, CounterFences}
}

// MakeThroughputChart plots ops per second per variant for the rows of one
// run, which must all share a write ratio.
func MakeThroughputChart(title string, results []pmem_benchmark.RunResult) (chart.BarChart, error) {
	if len(results) == 0 {
		return chart.BarChart{}, errors.New("no results")
	}

	graph := newBarChart(title, "ops per second")

	for _, result := range results {
		addBar(&graph, result.Variant, result.ThroughputOpsPerSec)
	}

	return graph, nil
}

// MakeCostChart plots one of the accumulated cost counters per variant.
func MakeCostChart(title string, results []pmem_benchmark.RunResult, counter Counter) (chart.BarChart, error) {
	if len(results) == 0 {
		return chart.BarChart{}, errors.New("no results")
	}

	graph := newBarChart(fmt.Sprintf("%s (%s)", title, counter), string(counter))

	for _, result := range results {
		var value float64
		switch counter {
		case CounterWrites:
			value = float64(result.Cost.Writes)
		case CounterFlushes:
			value = float64(result.Cost.Flushes)
		case CounterFences:
			value = float64(result.Cost.Fences)
		default:
			return chart.BarChart{}, errors.New("unknown counter")
		}

		addBar(&graph, result.Variant, value)
	}

	return graph, nil
}

func newBarChart(title string, yAxisName string) chart.BarChart {
	return chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{
				Top: 40,
			},
		},
		Height:   chartHeight,
		BarWidth: chartBarWidth,
		Width:    chartWidth,
		YAxis: chart.YAxis{
			Name: yAxisName,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 0,
			},
		},
	}
}

func addBar(graph *chart.BarChart, label string, value float64) {
	graph.Bars = append(graph.Bars, chart.Value{
		Label: label,
		Value: value,
	})

	if v := value * 1.1; v > graph.YAxis.Range.GetMax() {
		graph.YAxis.Range.SetMax(v)
	}
}
