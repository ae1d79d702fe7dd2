package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/adstats/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type uploadLogRepository struct {
	db DBTX
}

// NewUploadLogRepository wires a repository over a pool or transaction.
func NewUploadLogRepository(db DBTX) UploadLogRepository {
	return &uploadLogRepository{db: db}
}

func (r *uploadLogRepository) Record(ctx context.Context, entry domain.UploadLogEntry) error {
	if r.db == nil {
		return fmt.Errorf("upload log repository not initialized")
	}

	var rowNumber any
	if entry.RowNumber != nil {
		rowNumber = *entry.RowNumber
	}

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO upload_logs (file_id, filename, row_number, message)
		 VALUES ($1, $2, $3, $4)`,
		entry.FileID,
		entry.Filename,
		rowNumber,
		entry.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to record upload log: %w", err)
	}

	return nil
}

func (r *uploadLogRepository) List(ctx context.Context, fileID uuid.UUID, limit int, offset int) ([]domain.UploadLogEntry, error) {
	if r.db == nil {
		return nil, fmt.Errorf("upload log repository not initialized")
	}

	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, file_id, filename, row_number, message, created_at
		 FROM upload_logs
		 WHERE file_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		fileID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.UploadLogEntry{}
	for rows.Next() {
		var (
			entry     domain.UploadLogEntry
			rowNumber pgtype.Int4
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.FileID,
			&entry.Filename,
			&rowNumber,
			&entry.Message,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan upload log: %w", scanErr)
		}

		if rowNumber.Valid {
			value := int(rowNumber.Int32)
			entry.RowNumber = &value
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}

		logs = append(logs, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate upload logs: %w", rowsErr)
	}

	return logs, nil
}
