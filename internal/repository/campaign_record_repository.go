package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/adstats/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type campaignRecordRepository struct {
	db DBTX
}

// NewCampaignRecordRepository wires a repository over a pool or transaction.
func NewCampaignRecordRepository(db DBTX) CampaignRecordRepository {
	return &campaignRecordRepository{db: db}
}

var campaignRecordColumns = []string{
	"file_id", "year", "advertiser", "brand", "start_date", "end_date",
	"format_type", "platform", "impressions",
}

// CreateBatch bulk-inserts accepted rows via COPY. Records are immutable
// after insertion.
func (r *campaignRecordRepository) CreateBatch(ctx context.Context, records []domain.CampaignRecord) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("campaign record repository not initialized")
	}
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(records))
	for _, record := range records {
		impressions, err := numericFromDecimal(record.Impressions)
		if err != nil {
			return 0, fmt.Errorf("failed to encode impressions: %w", err)
		}
		rows = append(rows, []any{
			record.FileID,
			record.Year,
			record.Advertiser,
			record.Brand,
			pgtype.Date{Time: record.StartDate, Valid: true},
			pgtype.Date{Time: record.EndDate, Valid: true},
			record.FormatType,
			record.Platform,
			impressions,
		})
	}

	inserted, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"campaign_records"},
		campaignRecordColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert campaign records: %w", err)
	}

	return inserted, nil
}

// SumImpressionsByYear groups persisted records by year and sums the
// impressions metric, nulls contributing zero. The query always reflects
// the current persisted state; nothing is cached.
func (r *campaignRecordRepository) SumImpressionsByYear(ctx context.Context) ([]domain.YearTotal, error) {
	if r.db == nil {
		return nil, fmt.Errorf("campaign record repository not initialized")
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT year, COALESCE(SUM(impressions), 0)
		 FROM campaign_records
		 WHERE year IS NOT NULL
		 GROUP BY year
		 ORDER BY year`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate campaign records: %w", err)
	}
	defer rows.Close()

	totals := []domain.YearTotal{}
	for rows.Next() {
		var (
			total domain.YearTotal
			sum   pgtype.Numeric
		)
		if scanErr := rows.Scan(&total.Year, &sum); scanErr != nil {
			return nil, fmt.Errorf("failed to scan year total: %w", scanErr)
		}
		total.Impressions = decimalFromNumeric(sum)
		totals = append(totals, total)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate year totals: %w", rowsErr)
	}

	return totals, nil
}

func (r *campaignRecordRepository) CountByFile(ctx context.Context, fileID uuid.UUID) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("campaign record repository not initialized")
	}

	var count int64
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM campaign_records WHERE file_id = $1`,
		fileID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count campaign records: %w", err)
	}

	return count, nil
}

func numericFromDecimal(d decimal.NullDecimal) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if !d.Valid {
		return n, nil
	}
	if err := n.Scan(d.Decimal.String()); err != nil {
		return n, err
	}
	return n, nil
}

func decimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
