package stats

import (
	"context"
	"testing"

	"github.com/rpattn/adstats/internal/domain"
	"github.com/rpattn/adstats/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestAggregatedStatsEmpty(t *testing.T) {
	service := NewService(&stubRecordRepo{})

	columns, years, err := service.AggregatedStats(context.Background())
	if err != nil {
		t.Fatalf("aggregated stats returned error: %v", err)
	}

	if len(columns) != 1 || columns[0].Key != "impressions" {
		t.Fatalf("unexpected metric columns: %+v", columns)
	}
	if len(years) != 0 {
		t.Fatalf("expected empty year list, got %+v", years)
	}
}

func TestAggregatedStatsTwoYears(t *testing.T) {
	repo := &stubRecordRepo{
		totals: []domain.YearTotal{
			{Year: 2020, Impressions: decimal.NewFromInt(500)},
			{Year: 2021, Impressions: decimal.NewFromInt(3000)},
		},
	}
	service := NewService(repo)

	_, years, err := service.AggregatedStats(context.Background())
	if err != nil {
		t.Fatalf("aggregated stats returned error: %v", err)
	}

	if len(years) != 2 {
		t.Fatalf("expected 2 year groups, got %d", len(years))
	}
	if years[0].Year != 2020 || years[1].Year != 2021 {
		t.Fatalf("expected years ordered, got %+v", years)
	}
	if len(years[0].Totals) != 1 || !years[0].Totals[0].Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected totals for 2020: %+v", years[0].Totals)
	}
	if !years[1].Totals[0].Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("unexpected totals for 2021: %+v", years[1].Totals)
	}
}

type stubRecordRepo struct {
	totals []domain.YearTotal
}

func (s *stubRecordRepo) CreateBatch(ctx context.Context, records []domain.CampaignRecord) (int64, error) {
	return int64(len(records)), nil
}

func (s *stubRecordRepo) SumImpressionsByYear(ctx context.Context) ([]domain.YearTotal, error) {
	return s.totals, nil
}

func (s *stubRecordRepo) CountByFile(ctx context.Context, fileID uuid.UUID) (int64, error) {
	return 0, nil
}

var _ repository.CampaignRecordRepository = (*stubRecordRepo)(nil)
