package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/rpattn/adstats/internal/domain"
	"github.com/rpattn/adstats/internal/repository"

	"github.com/google/uuid"
)

// Service turns uploaded campaign files into persisted records. Each upload
// is parsed, validated, and written synchronously within one call; the
// file record moves through exactly one processing -> success|error
// transition and is finalized in a single write.
type Service struct {
	fileRepo   repository.UploadedFileRepository
	recordRepo repository.CampaignRecordRepository
	logRepo    repository.UploadLogRepository
	atomic     repository.Atomic
}

// NewService creates a new upload service.
func NewService(
	fileRepo repository.UploadedFileRepository,
	recordRepo repository.CampaignRecordRepository,
	logRepo repository.UploadLogRepository,
	atomic repository.Atomic,
) *Service {
	return &Service{
		fileRepo:   fileRepo,
		recordRepo: recordRepo,
		logRepo:    logRepo,
		atomic:     atomic,
	}
}

// Outcome is the tri-state result returned to the caller: accepted with a
// summary message, or rejected with the classified error message.
type Outcome struct {
	Accepted  bool   `json:"accepted"`
	Message   string `json:"message"`
	HardError bool   `json:"hardError"`
}

// ProcessUpload validates the file content and persists the outcome. The
// file-level record is created first so failures stay auditable, then
// accepted rows are bulk-inserted, then the file record receives its final
// status, row count, and skip log in one write. A returned error means
// persistence itself failed; parse and validation failures come back as a
// rejected Outcome.
func (s *Service) ProcessUpload(ctx context.Context, userID uuid.UUID, content []byte, filename string) (Outcome, error) {
	if userID == uuid.Nil {
		return Outcome{}, errors.New("user id is required")
	}
	if strings.TrimSpace(filename) == "" {
		return Outcome{}, errors.New("filename is required")
	}

	result := ParseAndValidate(content, filename)

	file := domain.UploadedFile{
		UserID:   userID,
		Filename: filename,
		FileSize: int64(len(content)),
		Status:   domain.FileStatusProcessing,
	}
	if !result.OK {
		file.Status = domain.FileStatusError
		file.ErrorKind = result.ErrKind
		file.ErrorMessage = result.ErrMessage
	}

	created, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create file record: %w", err)
	}

	if !result.OK {
		if err := s.fileRepo.Finalize(ctx, created.ID, repository.FinalizeParams{
			Status: domain.FileStatusError,
		}); err != nil {
			return Outcome{}, fmt.Errorf("failed to finalize file record: %w", err)
		}
		s.recordLog(ctx, created, nil, fmt.Sprintf("upload rejected (%s): %s", result.ErrKind, result.ErrMessage))
		log.Printf("[UPLOAD] rejected %s (%s): %s", filename, result.ErrKind, result.ErrMessage)
		return Outcome{Accepted: false, Message: result.ErrMessage, HardError: true}, nil
	}

	records := make([]domain.CampaignRecord, len(result.Rows))
	for i, row := range result.Rows {
		records[i] = domain.CampaignRecord{
			FileID:      created.ID,
			Year:        row.Year,
			Advertiser:  row.Advertiser,
			Brand:       row.Brand,
			StartDate:   row.StartDate,
			EndDate:     row.EndDate,
			FormatType:  row.FormatType,
			Platform:    row.Platform,
			Impressions: row.Impressions,
		}
	}

	// The bulk insert and the success finalize commit together, so a failed
	// finalize cannot leave records under a file still marked processing.
	rowsProcessed := len(records)
	err = s.atomic.InTx(ctx, func(files repository.UploadedFileRepository, recordsRepo repository.CampaignRecordRepository) error {
		if _, txErr := recordsRepo.CreateBatch(ctx, records); txErr != nil {
			return fmt.Errorf("failed to insert campaign records: %w", txErr)
		}
		if txErr := files.Finalize(ctx, created.ID, repository.FinalizeParams{
			Status:         domain.FileStatusSuccess,
			RowsProcessed:  &rowsProcessed,
			SkippedRowsLog: formatSkipLog(result.Skipped),
		}); txErr != nil {
			return fmt.Errorf("failed to finalize file record: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	for _, skip := range result.Skipped {
		rowNum := skip.RowNum
		s.recordLog(ctx, created, &rowNum, fmt.Sprintf("skipped row (%s): %s", skip.Reason, skip.Detail))
		log.Printf("[UPLOAD] skipped row %d of %s (%s): %s", skip.RowNum, filename, skip.Reason, skip.Detail)
	}

	message := fmt.Sprintf("Processed %d rows.", rowsProcessed)
	if len(result.Skipped) > 0 {
		message += fmt.Sprintf(" Skipped %d rows (see the admin log).", len(result.Skipped))
	}

	return Outcome{Accepted: true, Message: message, HardError: false}, nil
}

// formatSkipLog renders the newline-delimited audit text stored on the file
// record, one line per rejected row. Empty when nothing was skipped.
func formatSkipLog(skipped []domain.SkippedRow) string {
	if len(skipped) == 0 {
		return ""
	}
	lines := make([]string, len(skipped))
	for i, skip := range skipped {
		lines[i] = fmt.Sprintf("Row %d: %s", skip.RowNum, skip.Detail)
	}
	return strings.Join(lines, "\n")
}

func (s *Service) recordLog(ctx context.Context, file domain.UploadedFile, rowNumber *int, message string) {
	if s.logRepo == nil || message == "" {
		return
	}
	entry := domain.UploadLogEntry{
		FileID:   file.ID,
		Filename: file.Filename,
		Message:  message,
	}
	if rowNumber != nil {
		entry.RowNumber = rowNumber
	}
	if err := s.logRepo.Record(ctx, entry); err != nil {
		log.Printf("[UPLOAD] failed to record upload log for %s: %v", file.Filename, err)
	}
}
