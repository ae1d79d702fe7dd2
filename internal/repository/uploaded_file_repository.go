package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/adstats/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type uploadedFileRepository struct {
	db DBTX
}

// NewUploadedFileRepository wires a repository over a pool or transaction.
func NewUploadedFileRepository(db DBTX) UploadedFileRepository {
	return &uploadedFileRepository{db: db}
}

func (r *uploadedFileRepository) Create(ctx context.Context, file domain.UploadedFile) (domain.UploadedFile, error) {
	if r.db == nil {
		return domain.UploadedFile{}, fmt.Errorf("uploaded file repository not initialized")
	}
	if !file.Status.Valid() {
		return domain.UploadedFile{}, fmt.Errorf("invalid file status %q", file.Status)
	}

	var errorKind, errorMessage any
	if file.ErrorKind != "" {
		errorKind = string(file.ErrorKind)
	}
	if file.ErrorMessage != "" {
		errorMessage = file.ErrorMessage
	}

	err := r.db.QueryRow(
		ctx,
		`INSERT INTO uploaded_files (user_id, filename, status, error_kind, error_message, file_size, skipped_rows_log)
		 VALUES ($1, $2, $3, $4, $5, $6, '')
		 RETURNING id, uploaded_at`,
		file.UserID,
		file.Filename,
		string(file.Status),
		errorKind,
		errorMessage,
		file.FileSize,
	).Scan(&file.ID, &file.UploadedAt)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("failed to create uploaded file: %w", err)
	}

	return file, nil
}

func (r *uploadedFileRepository) Finalize(ctx context.Context, id uuid.UUID, params FinalizeParams) error {
	if r.db == nil {
		return fmt.Errorf("uploaded file repository not initialized")
	}
	if !params.Status.Valid() {
		return fmt.Errorf("invalid file status %q", params.Status)
	}

	var rowsProcessed any
	if params.RowsProcessed != nil {
		rowsProcessed = *params.RowsProcessed
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE uploaded_files
		 SET status = $2, rows_processed = $3, skipped_rows_log = $4
		 WHERE id = $1`,
		id,
		string(params.Status),
		rowsProcessed,
		params.SkippedRowsLog,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize uploaded file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("uploaded file %s not found", id)
	}

	return nil
}

func (r *uploadedFileRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.UploadedFile, error) {
	if r.db == nil {
		return domain.UploadedFile{}, fmt.Errorf("uploaded file repository not initialized")
	}

	row := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, filename, uploaded_at, status, error_kind, error_message, file_size, rows_processed, skipped_rows_log
		 FROM uploaded_files
		 WHERE id = $1`,
		id,
	)

	file, err := scanUploadedFile(row)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("failed to get uploaded file: %w", err)
	}
	return file, nil
}

func (r *uploadedFileRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.UploadedFile, error) {
	if r.db == nil {
		return nil, fmt.Errorf("uploaded file repository not initialized")
	}

	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, filename, uploaded_at, status, error_kind, error_message, file_size, rows_processed, skipped_rows_log
		 FROM uploaded_files
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC
		 LIMIT $2 OFFSET $3`,
		userID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaded files: %w", err)
	}
	defer rows.Close()

	files := []domain.UploadedFile{}
	for rows.Next() {
		file, scanErr := scanUploadedFile(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan uploaded file: %w", scanErr)
		}
		files = append(files, file)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate uploaded files: %w", rowsErr)
	}

	return files, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUploadedFile(row rowScanner) (domain.UploadedFile, error) {
	var (
		file          domain.UploadedFile
		status        string
		errorKind     pgtype.Text
		errorMessage  pgtype.Text
		uploadedAt    pgtype.Timestamptz
		rowsProcessed pgtype.Int4
	)

	if err := row.Scan(
		&file.ID,
		&file.UserID,
		&file.Filename,
		&uploadedAt,
		&status,
		&errorKind,
		&errorMessage,
		&file.FileSize,
		&rowsProcessed,
		&file.SkippedRowsLog,
	); err != nil {
		return domain.UploadedFile{}, err
	}

	file.Status = domain.FileStatus(status)
	if errorKind.Valid {
		file.ErrorKind = domain.ErrorKind(errorKind.String)
	}
	if errorMessage.Valid {
		file.ErrorMessage = errorMessage.String
	}
	if uploadedAt.Valid {
		file.UploadedAt = uploadedAt.Time
	}
	if rowsProcessed.Valid {
		value := int(rowsProcessed.Int32)
		file.RowsProcessed = &value
	}

	return file, nil
}
