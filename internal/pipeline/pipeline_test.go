package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/lvonguyen/azure-cost-dashboard/internal/normalizer"
	"github.com/lvonguyen/azure-cost-dashboard/internal/providers"
	"github.com/lvonguyen/azure-cost-dashboard/internal/timeframe"
)

type fakeSource struct {
	rows []normalizer.CostRow
	err  error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchRows(context.Context, timeframe.DateRange) ([]normalizer.CostRow, error) {
	return f.rows, f.err
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	}
}

func newTestPipeline() *Pipeline {
	return New(
		normalizer.NewAggregator(normalizer.ReduceKeepFirst),
		providers.NewMockGenerator(rand.New(rand.NewSource(7))),
		nil,
	).WithClock(fixedClock())
}

func TestRun_LiveDailyRows(t *testing.T) {
	live := &fakeSource{rows: []normalizer.CostRow{
		{Amount: 10, PeriodLabel: "d1", GroupKey: "rgA"},
		{Amount: 20, PeriodLabel: "d1", GroupKey: "rgB"},
		{Amount: 5, PeriodLabel: "d1", GroupKey: "rgA"},
	}}

	report, err := newTestPipeline().Run(context.Background(), "daily", false, live)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if want := []string{"d1", "d1", "d1"}; !reflect.DeepEqual(report.SpendingTrend.Labels, want) {
		t.Errorf("trend labels = %v, want %v", report.SpendingTrend.Labels, want)
	}
	if want := []float64{10, 20, 5}; !reflect.DeepEqual(report.SpendingTrend.Data, want) {
		t.Errorf("trend data = %v, want %v", report.SpendingTrend.Data, want)
	}
	if report.SpendingTrend.Title != "Daily Spending Trend" {
		t.Errorf("trend title = %q", report.SpendingTrend.Title)
	}

	// Live distribution holds true per-group sums, keys sorted.
	if want := []string{"rgA", "rgB"}; !reflect.DeepEqual(report.ResourceDistribution.Labels, want) {
		t.Errorf("distribution labels = %v, want %v", report.ResourceDistribution.Labels, want)
	}
	if want := []float64{15, 20}; !reflect.DeepEqual(report.ResourceDistribution.Data, want) {
		t.Errorf("distribution data = %v, want %v", report.ResourceDistribution.Data, want)
	}

	if report.TotalCost != 35 {
		t.Errorf("total = %v, want 35", report.TotalCost)
	}
	if report.AverageDailyCost != 11.67 {
		t.Errorf("average = %v, want 11.67", report.AverageDailyCost)
	}
	if report.ForecastedMonthlyCost != 350 {
		t.Errorf("forecast = %v, want 350", report.ForecastedMonthlyCost)
	}
}

func TestRun_InvalidTimeframe(t *testing.T) {
	_, err := newTestPipeline().Run(context.Background(), "yearly", true, nil)
	if !errors.Is(err, timeframe.ErrInvalidTimeframe) {
		t.Errorf("error = %v, want ErrInvalidTimeframe", err)
	}
}

func TestRun_EmptyLiveResultIsNoData(t *testing.T) {
	_, err := newTestPipeline().Run(context.Background(), "daily", false, &fakeSource{})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}
}

func TestRun_UpstreamFailurePropagates(t *testing.T) {
	live := &fakeSource{err: &providers.UpstreamError{StatusCode: 502, Message: "bad gateway"}}

	_, err := newTestPipeline().Run(context.Background(), "daily", false, live)

	var upstream *providers.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want UpstreamError", err)
	}
	if upstream.StatusCode != 502 {
		t.Errorf("status = %d, want 502", upstream.StatusCode)
	}
}

func TestRun_MockDailyReport(t *testing.T) {
	report, err := newTestPipeline().Run(context.Background(), "daily", true, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := len(report.SpendingTrend.Labels); got != 30 {
		t.Errorf("trend has %d periods, want 30", got)
	}
	if got := len(report.SpendingTrend.Data); got != len(report.SpendingTrend.Labels) {
		t.Errorf("labels/costs length mismatch: %d != %d", len(report.SpendingTrend.Labels), got)
	}

	// Mock distribution is the fixed 60/25/15 split, not per-row sums.
	if want := []string{"rg-dev-01", "rg-prod-01", "rg-staging-01"}; !reflect.DeepEqual(report.ResourceDistribution.Labels, want) {
		t.Errorf("distribution labels = %v, want %v", report.ResourceDistribution.Labels, want)
	}

	var raw float64
	for _, c := range report.SpendingTrend.Data {
		raw += c
	}
	var distSum float64
	for _, v := range report.ResourceDistribution.Data {
		distSum += v
	}
	if diff := distSum - raw; diff > 0.02 || diff < -0.02 {
		t.Errorf("distribution sum %v differs from series total %v", distSum, raw)
	}
}

func TestRun_MockIgnoredWhenLiveRequested(t *testing.T) {
	live := &fakeSource{rows: []normalizer.CostRow{
		{Amount: 1, PeriodLabel: "d1", GroupKey: "rgA"},
	}}

	report, err := newTestPipeline().Run(context.Background(), "daily", false, live)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(report.SpendingTrend.Data) != 1 {
		t.Errorf("live path returned %d periods, want the fake source's 1", len(report.SpendingTrend.Data))
	}
}

func TestReport_Series(t *testing.T) {
	report := &Report{SpendingTrend: ChartData{
		Labels: []string{"a", "b"},
		Data:   []float64{1, 2},
	}}

	series := report.Series()
	if !reflect.DeepEqual(series.Labels, []string{"a", "b"}) || !reflect.DeepEqual(series.Costs, []float64{1, 2}) {
		t.Errorf("Series() = %+v", series)
	}
}
