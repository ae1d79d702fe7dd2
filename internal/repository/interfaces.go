package repository

import (
	"context"

	"github.com/rpattn/adstats/internal/domain"

	"github.com/google/uuid"
)

// FinalizeParams carries the single terminal write applied to an uploaded
// file record once processing ends.
type FinalizeParams struct {
	Status         domain.FileStatus
	RowsProcessed  *int
	SkippedRowsLog string
}

// UploadedFileRepository defines the interface for file-level records.
type UploadedFileRepository interface {
	Create(ctx context.Context, file domain.UploadedFile) (domain.UploadedFile, error)
	Finalize(ctx context.Context, id uuid.UUID, params FinalizeParams) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.UploadedFile, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.UploadedFile, error)
}

// CampaignRecordRepository defines the interface for accepted row records.
type CampaignRecordRepository interface {
	CreateBatch(ctx context.Context, records []domain.CampaignRecord) (int64, error)
	SumImpressionsByYear(ctx context.Context) ([]domain.YearTotal, error)
	CountByFile(ctx context.Context, fileID uuid.UUID) (int64, error)
}

// UploadLogRepository records processing events for the admin audit view.
type UploadLogRepository interface {
	Record(ctx context.Context, entry domain.UploadLogEntry) error
	List(ctx context.Context, fileID uuid.UUID, limit int, offset int) ([]domain.UploadLogEntry, error)
}
