package domain

import (
	"time"

	"github.com/google/uuid"
)

// FileStatus is the lifecycle state of an uploaded file. Every upload is
// created as processing and moves exactly once to success or error.
type FileStatus string

const (
	FileStatusProcessing FileStatus = "processing"
	FileStatusSuccess    FileStatus = "success"
	FileStatusError      FileStatus = "error"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusProcessing, FileStatusSuccess, FileStatusError:
		return true
	}
	return false
}

// ErrorKind classifies why an entire upload was rejected.
type ErrorKind string

const (
	ErrorKindValidation      ErrorKind = "validation"
	ErrorKindFormat          ErrorKind = "format"
	ErrorKindStructure       ErrorKind = "structure"
	ErrorKindRequiredColumns ErrorKind = "required_columns"
	ErrorKindEmptyDates      ErrorKind = "empty_dates"
	ErrorKindDateFormat      ErrorKind = "date_format"
	ErrorKindDateLogic       ErrorKind = "date_logic"
	ErrorKindNumeric         ErrorKind = "numeric"
	ErrorKindOther           ErrorKind = "other"
)

// Known reports whether the kind belongs to the persisted enum surface.
// Some kinds are reserved for rules that no current path produces; stored
// historical values still have to round-trip.
func (k ErrorKind) Known() bool {
	switch k {
	case ErrorKindValidation, ErrorKindFormat, ErrorKindStructure,
		ErrorKindRequiredColumns, ErrorKindEmptyDates, ErrorKindDateFormat,
		ErrorKindDateLogic, ErrorKindNumeric, ErrorKindOther:
		return true
	}
	return false
}

// UploadedFile is the file-level record created for every upload attempt.
type UploadedFile struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Filename       string     `json:"filename"`
	UploadedAt     time.Time  `json:"uploaded_at"`
	Status         FileStatus `json:"status"`
	ErrorKind      ErrorKind  `json:"error_kind,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	FileSize       int64      `json:"file_size"`
	RowsProcessed  *int       `json:"rows_processed,omitempty"`
	SkippedRowsLog string     `json:"skipped_rows_log"`
}

// SkipReason classifies a single rejected row. Row-level rejections never
// fail the file; they only reduce the accepted-row count.
type SkipReason string

const (
	SkipInvalidStart  SkipReason = "invalid_start"
	SkipInvalidEnd    SkipReason = "invalid_end"
	SkipStartAfterEnd SkipReason = "start_gt_end"
)

// SkippedRow describes one rejected row. RowNum is the 1-indexed physical
// row in the source file, accounting for the header line.
type SkippedRow struct {
	RowNum int        `json:"row_num"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail"`
}
