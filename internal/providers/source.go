// Package providers implements the sources of raw cost rows: the live
// Azure Cost Management API and a synthetic generator.
package providers

import (
	"context"
	"fmt"

	"github.com/lvonguyen/azure-cost-dashboard/internal/normalizer"
	"github.com/lvonguyen/azure-cost-dashboard/internal/timeframe"
)

// RowSource yields a fully-materialized, chronologically ordered row set
// for a date range, or an explicit failure. Never a partial result.
type RowSource interface {
	Name() string
	FetchRows(ctx context.Context, dr timeframe.DateRange) ([]normalizer.CostRow, error)
}

// UpstreamError reports a non-success status or malformed payload from
// the live billing source. It is surfaced as-is for diagnostics; retry
// policy, if any, belongs to the transport layer.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream billing request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream billing request failed: %s", e.Message)
}
