// Package metrics derives summary financial metrics from a cost series.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/lvonguyen/azure-cost-dashboard/internal/normalizer"
	"github.com/lvonguyen/azure-cost-dashboard/internal/timeframe"
)

// Metrics holds the derived summary values for one reporting window.
// All values are rounded to 2 fractional digits, half away from zero.
type Metrics struct {
	TotalCost             float64 `json:"total_cost"`
	AveragePerPeriod      float64 `json:"average_daily_cost"`
	ForecastedMonthlyCost float64 `json:"forecasted_monthly_cost"`
}

// Derive computes total, average-per-period and forecasted monthly cost
// from a series. The forecast is a flat linear extrapolation: only daily
// data is treated as a sub-month run rate worth scaling to 30 days; for
// weekly and monthly timeframes (and for empty series) the forecast is
// just the total. Pure function: same series, same output.
func Derive(series normalizer.CostSeries, tf timeframe.Timeframe) Metrics {
	count := series.Len()
	if count == 0 {
		return Metrics{}
	}

	total := series.Total()
	average := total / float64(count)

	forecast := total
	if tf == timeframe.Daily {
		forecast = average * 30
	}

	return Metrics{
		TotalCost:             Round2(total),
		AveragePerPeriod:      Round2(average),
		ForecastedMonthlyCost: Round2(forecast),
	}
}

// Round2 rounds a cost to 2 fractional digits, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
