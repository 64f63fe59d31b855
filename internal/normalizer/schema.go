// Package normalizer provides the common shape for cost data from any
// source and the folding of raw rows into that shape.
package normalizer

import "sort"

// CostRow represents a single raw billing record from a source (live or
// mock): an amount, the label of the period it belongs to, and the
// resource group it is attributed to.
type CostRow struct {
	Amount      float64 `json:"amount"`
	PeriodLabel string  `json:"period_label"`
	GroupKey    string  `json:"group_key"`
}

// CostSeries is a labeled time series of cost per period. Labels and Costs
// are index-aligned and chronological in source order.
type CostSeries struct {
	Labels []string  `json:"labels"`
	Costs  []float64 `json:"costs"`
}

// Len returns the number of periods in the series.
func (s CostSeries) Len() int {
	return len(s.Labels)
}

// Total returns the unrounded sum of all period costs.
func (s CostSeries) Total() float64 {
	var total float64
	for _, c := range s.Costs {
		total += c
	}
	return total
}

// GroupDistribution maps a group key (resource group) to its cumulative
// cost across all processed rows.
type GroupDistribution map[string]float64

// Sorted returns the distribution's keys and values as index-aligned
// slices in ascending key order, a stable order for serialization.
func (d GroupDistribution) Sorted() ([]string, []float64) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = d[k]
	}
	return keys, values
}
