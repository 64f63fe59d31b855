package normalizer

import (
	"github.com/lvonguyen/azure-cost-dashboard/internal/timeframe"
)

// MonthlyReducer selects how rows sharing a monthly period label are
// coalesced into one series entry.
type MonthlyReducer string

const (
	// ReduceKeepFirst keeps only the first sample seen for each distinct
	// month label. This mirrors the upstream dashboard's behavior, where
	// monthly data is sampled once per label rather than summed.
	ReduceKeepFirst MonthlyReducer = "keep-first"

	// ReduceSum adds every row's amount into its month's bucket.
	ReduceSum MonthlyReducer = "sum"
)

// Aggregator folds raw cost rows into a series and a per-group
// distribution.
type Aggregator struct {
	monthly MonthlyReducer
}

// NewAggregator creates an Aggregator. An empty reducer defaults to
// ReduceKeepFirst.
func NewAggregator(monthly MonthlyReducer) *Aggregator {
	if monthly == "" {
		monthly = ReduceKeepFirst
	}
	return &Aggregator{monthly: monthly}
}

// Aggregate folds rows into an ordered cost series plus a group-key
// distribution. Rows must arrive pre-ordered chronologically; no sorting
// happens here.
//
// Daily and Weekly granularity keep every row as its own period, labels
// and amounts verbatim in input order. Monthly granularity coalesces rows
// sharing a period label according to the configured reducer.
//
// The distribution accumulates every row's amount into its group key
// regardless of granularity or reducer, so for live data the distribution
// totals always match the full row set even when the monthly series
// drops repeat samples. Empty group keys are aggregated like any other.
func (a *Aggregator) Aggregate(rows []CostRow, granularity timeframe.Granularity) (CostSeries, GroupDistribution) {
	series := CostSeries{
		Labels: make([]string, 0, len(rows)),
		Costs:  make([]float64, 0, len(rows)),
	}
	dist := make(GroupDistribution)

	monthIndex := make(map[string]int)

	for _, row := range rows {
		dist[row.GroupKey] += row.Amount

		if granularity != timeframe.GranularityMonthly {
			series.Labels = append(series.Labels, row.PeriodLabel)
			series.Costs = append(series.Costs, row.Amount)
			continue
		}

		if i, seen := monthIndex[row.PeriodLabel]; seen {
			if a.monthly == ReduceSum {
				series.Costs[i] += row.Amount
			}
			continue
		}

		monthIndex[row.PeriodLabel] = len(series.Labels)
		series.Labels = append(series.Labels, row.PeriodLabel)
		series.Costs = append(series.Costs, row.Amount)
	}

	return series, dist
}
