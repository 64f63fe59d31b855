package providers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"

	"github.com/lvonguyen/azure-cost-dashboard/internal/normalizer"
	"github.com/lvonguyen/azure-cost-dashboard/internal/timeframe"
)

// AzureConfig holds the service principal and scope for the Cost
// Management query.
type AzureConfig struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	SubscriptionID string
}

// AzureCostSource retrieves cost rows from the Azure Cost Management
// Query API, aggregated by Sum(Cost) and grouped by resource group.
type AzureCostSource struct {
	client         *armcostmanagement.QueryClient
	subscriptionID string
}

// NewAzureCostSource creates a live source using client-secret
// credentials. Credential construction is local; no network call happens
// until FetchRows.
func NewAzureCostSource(cfg AzureConfig) (*AzureCostSource, error) {
	cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	client, err := armcostmanagement.NewQueryClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	return &AzureCostSource{
		client:         client,
		subscriptionID: cfg.SubscriptionID,
	}, nil
}

// Name returns the source name.
func (s *AzureCostSource) Name() string {
	return "azure-cost-management"
}

// FetchRows queries actual usage cost for the range and returns one row
// per (period, resource group) in API order.
func (s *AzureCostSource) FetchRows(ctx context.Context, dr timeframe.DateRange) ([]normalizer.CostRow, error) {
	scope := fmt.Sprintf("/subscriptions/%s", s.subscriptionID)
	granularity := armcostmanagement.GranularityType(dr.Granularity)

	query := armcostmanagement.QueryDefinition{
		Type:      toPtr(armcostmanagement.ExportTypeUsage),
		Timeframe: toPtr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &dr.Start,
			To:   &dr.End,
		},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: &granularity,
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     toPtr("Cost"),
					Function: toPtr(armcostmanagement.FunctionTypeSum),
				},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Type: toPtr(armcostmanagement.QueryColumnTypeDimension),
					Name: toPtr("ResourceGroup"),
				},
			},
		},
	}

	result, err := s.client.Usage(ctx, scope, query, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			return nil, &UpstreamError{
				StatusCode: respErr.StatusCode,
				Message:    respErr.Error(),
			}
		}
		return nil, &UpstreamError{Message: err.Error()}
	}

	if result.Properties == nil || result.Properties.Rows == nil {
		return nil, &UpstreamError{Message: "query response has no rows payload"}
	}

	rows := make([]normalizer.CostRow, 0, len(result.Properties.Rows))
	for _, row := range result.Properties.Rows {
		if len(row) < 3 {
			continue
		}

		// Row layout: [cost, period, resourceGroup, currency]
		cost, _ := row[0].(float64)
		group, _ := row[2].(string)

		rows = append(rows, normalizer.CostRow{
			Amount:      cost,
			PeriodLabel: periodLabel(row[1], dr.Granularity),
			GroupKey:    group,
		})
	}

	return rows, nil
}

// periodLabel normalizes the period column of a query result row. Daily
// and weekly results carry a numeric UsageDate (yyyymmdd); monthly
// results carry a BillingMonth timestamp string.
func periodLabel(v interface{}, granularity timeframe.Granularity) string {
	switch period := v.(type) {
	case float64:
		date, err := time.Parse("20060102", strconv.FormatInt(int64(period), 10))
		if err != nil {
			return strconv.FormatInt(int64(period), 10)
		}
		return formatPeriod(date, granularity)
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if date, err := time.Parse(layout, period); err == nil {
				return formatPeriod(date, granularity)
			}
		}
		return period
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatPeriod(date time.Time, granularity timeframe.Granularity) string {
	if granularity == timeframe.GranularityMonthly {
		return date.Format("January 2006")
	}
	return date.Format("2006-01-02")
}

func toPtr[T any](v T) *T {
	return &v
}
