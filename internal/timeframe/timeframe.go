// Package timeframe maps reporting timeframes to concrete date ranges.
package timeframe

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeframe is returned for any timeframe token outside
// {daily, weekly, monthly}. The match is case-sensitive.
var ErrInvalidTimeframe = errors.New("invalid timeframe")

// Timeframe is the user-selected reporting granularity.
type Timeframe string

const (
	Daily   Timeframe = "daily"
	Weekly  Timeframe = "weekly"
	Monthly Timeframe = "monthly"
)

// Granularity is the bucket size used to group raw cost rows. The values
// match the Azure Cost Management granularity tokens.
type Granularity string

const (
	GranularityDaily   Granularity = "Daily"
	GranularityWeekly  Granularity = "Weekly"
	GranularityMonthly Granularity = "Monthly"
)

// DateRange is an inclusive reporting window with its bucket size.
type DateRange struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

// Days returns the number of calendar days between Start and End.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Parse validates a timeframe token.
func Parse(token string) (Timeframe, error) {
	switch Timeframe(token) {
	case Daily, Weekly, Monthly:
		return Timeframe(token), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeframe, token)
	}
}

// Resolve maps a timeframe token to its date range and granularity:
// daily covers 30 inclusive days, weekly 12 weekly buckets, monthly the
// trailing 365 days. Pure given a fixed today.
func Resolve(token string, today time.Time) (DateRange, error) {
	tf, err := Parse(token)
	if err != nil {
		return DateRange{}, err
	}

	switch tf {
	case Daily:
		return DateRange{
			Start:       today.AddDate(0, 0, -29),
			End:         today,
			Granularity: GranularityDaily,
		}, nil
	case Weekly:
		return DateRange{
			Start:       today.AddDate(0, 0, -7*11),
			End:         today,
			Granularity: GranularityWeekly,
		}, nil
	default: // Monthly
		return DateRange{
			Start:       today.AddDate(0, 0, -365),
			End:         today,
			Granularity: GranularityMonthly,
		}, nil
	}
}

// Title returns the display title for the spending trend chart,
// e.g. "Daily Spending Trend".
func (t Timeframe) Title() string {
	switch t {
	case Daily:
		return "Daily Spending Trend"
	case Weekly:
		return "Weekly Spending Trend"
	case Monthly:
		return "Monthly Spending Trend"
	default:
		return "Spending Trend"
	}
}
