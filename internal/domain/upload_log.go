package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadLogEntry captures row level issues that occur while processing an
// upload. Entries back the administrative audit view.
type UploadLogEntry struct {
	ID        uuid.UUID `json:"id"`
	FileID    uuid.UUID `json:"file_id"`
	Filename  string    `json:"filename"`
	RowNumber *int      `json:"row_number,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
