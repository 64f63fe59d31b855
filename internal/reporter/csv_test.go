package reporter

import (
	"strings"
	"testing"

	"github.com/lvonguyen/azure-cost-dashboard/internal/normalizer"
)

func TestWriteSeriesCSV(t *testing.T) {
	series := normalizer.CostSeries{
		Labels: []string{"2025-06-01", "2025-06-02", "2025-06-03"},
		Costs:  []float64{199.5, 210, 180.25},
	}

	var buf strings.Builder
	if err := WriteSeriesCSV(&buf, series); err != nil {
		t.Fatalf("WriteSeriesCSV returned error: %v", err)
	}

	want := "Date,Cost\n" +
		"2025-06-01,199.50\n" +
		"2025-06-02,210.00\n" +
		"2025-06-03,180.25\n"
	if buf.String() != want {
		t.Errorf("CSV output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteSeriesCSV_EmptySeriesWritesHeaderOnly(t *testing.T) {
	var buf strings.Builder
	if err := WriteSeriesCSV(&buf, normalizer.CostSeries{}); err != nil {
		t.Fatalf("WriteSeriesCSV returned error: %v", err)
	}
	if buf.String() != "Date,Cost\n" {
		t.Errorf("CSV output = %q, want header only", buf.String())
	}
}

func TestWriteSeriesCSV_QuotesLabelsWithCommas(t *testing.T) {
	series := normalizer.CostSeries{
		Labels: []string{"Week 01, 2025"},
		Costs:  []float64{1000},
	}

	var buf strings.Builder
	if err := WriteSeriesCSV(&buf, series); err != nil {
		t.Fatalf("WriteSeriesCSV returned error: %v", err)
	}
	if buf.String() != "Date,Cost\n\"Week 01, 2025\",1000.00\n" {
		t.Errorf("CSV output = %q", buf.String())
	}
}

func TestRenderDashboard(t *testing.T) {
	var buf strings.Builder
	if err := RenderDashboard(&buf, DashboardPage{Title: "Azure Cost Dashboard"}); err != nil {
		t.Fatalf("RenderDashboard returned error: %v", err)
	}

	out := buf.String()
	for _, fragment := range []string{"<title>Azure Cost Dashboard</title>", "/api/cost-data", "/export-csv"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("dashboard page missing %q", fragment)
		}
	}
}
