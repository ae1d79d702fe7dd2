package stats

import (
	"context"
	"fmt"

	"github.com/rpattn/adstats/internal/repository"

	"github.com/shopspring/decimal"
)

// MetricColumn pairs an aggregated metric key with its display label.
type MetricColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// MetricColumns is the static list of aggregated numeric metrics.
var MetricColumns = []MetricColumn{
	{Key: "impressions", Label: "Impressions (Impr)"},
}

// YearStats carries the summed metric totals for one year, aligned with
// MetricColumns.
type YearStats struct {
	Year   int               `json:"year"`
	Totals []decimal.Decimal `json:"totals"`
}

// Service aggregates persisted campaign records by year.
type Service struct {
	recordRepo repository.CampaignRecordRepository
}

// NewService creates a new aggregation service.
func NewService(recordRepo repository.CampaignRecordRepository) *Service {
	return &Service{recordRepo: recordRepo}
}

// AggregatedStats returns per-year metric totals ordered by year alongside
// the metric column list. The result reflects the persisted state at call
// time; nothing is cached.
func (s *Service) AggregatedStats(ctx context.Context) ([]MetricColumn, []YearStats, error) {
	totals, err := s.recordRepo.SumImpressionsByYear(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load year totals: %w", err)
	}

	years := make([]YearStats, len(totals))
	for i, total := range totals {
		years[i] = YearStats{
			Year:   total.Year,
			Totals: []decimal.Decimal{total.Impressions},
		}
	}

	return MetricColumns, years, nil
}
