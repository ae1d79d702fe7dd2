package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampaignRecord is one accepted row from an uploaded file. Records are
// bulk-inserted after validation and never mutated; start date <= end date
// holds for every persisted record.
type CampaignRecord struct {
	ID          uuid.UUID           `json:"id"`
	FileID      uuid.UUID           `json:"file_id"`
	Year        int                 `json:"year"`
	Advertiser  string              `json:"advertiser"`
	Brand       string              `json:"brand"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	FormatType  string              `json:"format_type"`
	Platform    string              `json:"platform"`
	Impressions decimal.NullDecimal `json:"impressions"`
	CreatedAt   time.Time           `json:"created_at"`
}

// YearTotal is the summed impressions metric for one campaign year.
type YearTotal struct {
	Year        int             `json:"year"`
	Impressions decimal.Decimal `json:"impressions"`
}
