package providers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/lvonguyen/azure-cost-dashboard/internal/metrics"
	"github.com/lvonguyen/azure-cost-dashboard/internal/normalizer"
	"github.com/lvonguyen/azure-cost-dashboard/internal/timeframe"
)

// CostRange bounds the uniform draw for one generated amount.
type CostRange struct {
	Min float64
	Max float64
}

// DefaultCostRange returns the per-granularity bounds used when no range
// is configured.
func DefaultCostRange(granularity timeframe.Granularity) CostRange {
	switch granularity {
	case timeframe.GranularityWeekly:
		return CostRange{Min: 1000, Max: 1800}
	case timeframe.GranularityMonthly:
		return CostRange{Min: 4000, Max: 8000}
	default:
		return CostRange{Min: 150, Max: 250}
	}
}

// Fixed fractions of the series total allocated to each synthetic
// resource group. The mock path does not attribute cost per row; this
// percentage split deliberately differs from the live path's true
// per-group sums.
var mockDistributionSplit = []struct {
	Group    string
	Fraction float64
}{
	{"rg-prod-01", 0.60},
	{"rg-dev-01", 0.25},
	{"rg-staging-01", 0.15},
}

// MockGenerator produces synthetic cost rows over a date range, honoring
// the same bucket semantics as the aggregator: one row per day or week,
// and for monthly ranges one row per distinct calendar month.
type MockGenerator struct {
	rng *rand.Rand
}

// NewMockGenerator creates a generator. Pass a seeded rand for
// deterministic output; nil uses a time-seeded source.
func NewMockGenerator(rng *rand.Rand) *MockGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockGenerator{rng: rng}
}

// Name returns the source name.
func (g *MockGenerator) Name() string {
	return "mock"
}

// FetchRows implements RowSource using the default cost range for the
// range's granularity.
func (g *MockGenerator) FetchRows(_ context.Context, dr timeframe.DateRange) ([]normalizer.CostRow, error) {
	return g.Generate(dr, DefaultCostRange(dr.Granularity)), nil
}

// Generate walks the inclusive date range with a period-sized step and
// emits one row per period with an amount drawn uniformly from costs,
// rounded to 2 decimals. Generated rows carry no group key; the mock
// distribution is allocated from the total instead, see Distribution.
func (g *MockGenerator) Generate(dr timeframe.DateRange, costs CostRange) []normalizer.CostRow {
	var rows []normalizer.CostRow

	switch dr.Granularity {
	case timeframe.GranularityWeekly:
		for date := dr.Start; !date.After(dr.End); date = date.AddDate(0, 0, 7) {
			rows = append(rows, normalizer.CostRow{
				Amount:      g.amount(costs),
				PeriodLabel: weekLabel(date),
			})
		}
	case timeframe.GranularityMonthly:
		seen := make(map[string]bool)
		for date := dr.Start; !date.After(dr.End); date = date.AddDate(0, 0, 1) {
			label := date.Format("January 2006")
			if seen[label] {
				continue
			}
			seen[label] = true
			rows = append(rows, normalizer.CostRow{
				Amount:      g.amount(costs),
				PeriodLabel: label,
			})
		}
	default:
		for date := dr.Start; !date.After(dr.End); date = date.AddDate(0, 0, 1) {
			rows = append(rows, normalizer.CostRow{
				Amount:      g.amount(costs),
				PeriodLabel: date.Format("2006-01-02"),
			})
		}
	}

	return rows
}

// Distribution allocates a series total to the synthetic resource groups
// as fixed percentages (60/25/15), each rounded to 2 decimals.
func (g *MockGenerator) Distribution(total float64) normalizer.GroupDistribution {
	dist := make(normalizer.GroupDistribution, len(mockDistributionSplit))
	for _, split := range mockDistributionSplit {
		dist[split.Group] = metrics.Round2(total * split.Fraction)
	}
	return dist
}

func (g *MockGenerator) amount(costs CostRange) float64 {
	return metrics.Round2(costs.Min + g.rng.Float64()*(costs.Max-costs.Min))
}

// weekLabel formats a date as "Week NN, YYYY" using Monday-based
// week-of-year numbering, where days before the year's first Monday fall
// in week 0.
func weekLabel(date time.Time) string {
	yday := date.YearDay() - 1
	weekday := (int(date.Weekday()) + 6) % 7 // Monday = 0
	week := (yday + 7 - weekday) / 7
	return fmt.Sprintf("Week %02d, %d", week, date.Year())
}
