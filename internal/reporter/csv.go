// Package reporter shapes pipeline output for export and presentation.
package reporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/lvonguyen/azure-cost-dashboard/internal/normalizer"
)

// WriteSeriesCSV writes a cost series as two columns, Date and Cost, with
// one header row and one row per period in series order.
func WriteSeriesCSV(w io.Writer, series normalizer.CostSeries) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Date", "Cost"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, label := range series.Labels {
		row := []string{label, fmt.Sprintf("%.2f", series.Costs[i])}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
