package repository

import (
	"context"

	"github.com/rpattn/adstats/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the querying surface the repositories run on. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so the same repository code works inside and
// outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Atomic runs a unit of repository work inside one database transaction.
// The repositories passed to fn are bound to the transaction; if fn returns
// an error the transaction rolls back and none of its writes persist.
type Atomic interface {
	InTx(ctx context.Context, fn func(files UploadedFileRepository, records CampaignRecordRepository) error) error
}

type pgxAtomic struct {
	conn *db.Connection
}

// NewAtomic wires an Atomic backed by the connection's transaction helper.
func NewAtomic(conn *db.Connection) Atomic {
	return &pgxAtomic{conn: conn}
}

func (a *pgxAtomic) InTx(ctx context.Context, fn func(files UploadedFileRepository, records CampaignRecordRepository) error) error {
	return a.conn.WithTx(ctx, func(tx pgx.Tx) error {
		return fn(NewUploadedFileRepository(tx), NewCampaignRecordRepository(tx))
	})
}
