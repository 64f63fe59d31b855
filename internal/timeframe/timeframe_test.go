package timeframe

import (
	"errors"
	"testing"
	"time"
)

var today = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestResolve_SupportedTokens(t *testing.T) {
	tests := []struct {
		token           string
		wantDays        int
		wantGranularity Granularity
	}{
		{"daily", 29, GranularityDaily},
		{"weekly", 77, GranularityWeekly},
		{"monthly", 365, GranularityMonthly},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			dr, err := Resolve(tt.token, today)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.token, err)
			}
			if !dr.End.Equal(today) {
				t.Errorf("end = %v, want %v", dr.End, today)
			}
			if got := dr.Days(); got != tt.wantDays {
				t.Errorf("range spans %d days, want %d", got, tt.wantDays)
			}
			if dr.Granularity != tt.wantGranularity {
				t.Errorf("granularity = %q, want %q", dr.Granularity, tt.wantGranularity)
			}
			if dr.Start.After(dr.End) {
				t.Errorf("start %v is after end %v", dr.Start, dr.End)
			}
		})
	}
}

func TestResolve_InvalidTokens(t *testing.T) {
	for _, token := range []string{"yearly", "Daily", "DAILY", "hourly", "", "daily "} {
		t.Run("token="+token, func(t *testing.T) {
			_, err := Resolve(token, today)
			if !errors.Is(err, ErrInvalidTimeframe) {
				t.Errorf("Resolve(%q) error = %v, want ErrInvalidTimeframe", token, err)
			}
		})
	}
}

func TestResolve_PureGivenFixedToday(t *testing.T) {
	first, err := Resolve("daily", today)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	second, err := Resolve("daily", today)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if first != second {
		t.Errorf("Resolve is not pure: %v != %v", first, second)
	}
}

func TestParse_RejectsCaseVariants(t *testing.T) {
	if _, err := Parse("Weekly"); !errors.Is(err, ErrInvalidTimeframe) {
		t.Errorf("Parse(\"Weekly\") error = %v, want ErrInvalidTimeframe", err)
	}
	tf, err := Parse("weekly")
	if err != nil {
		t.Fatalf("Parse(\"weekly\") returned error: %v", err)
	}
	if tf != Weekly {
		t.Errorf("Parse(\"weekly\") = %q, want %q", tf, Weekly)
	}
}
