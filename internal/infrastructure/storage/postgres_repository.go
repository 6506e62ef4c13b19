package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"ChannelSnapshot/internal/domain"
	"ChannelSnapshot/internal/ports"
)

const snapshotsTable = "channel_snapshots"

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS channel_snapshots (
	id           UUID PRIMARY KEY,
	channel_id   TEXT NOT NULL,
	checksum     TEXT NOT NULL,
	payload      JSONB NOT NULL,
	generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresRepository keeps the history of generated snapshots in Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.SnapshotRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates the snapshots table when it is missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

// LatestChecksum returns the checksum of the channel's most recent snapshot.
func (r *PostgresRepository) LatestChecksum(ctx context.Context, channelID string) (string, bool, error) {
	if r.db == nil {
		return "", false, nil
	}

	query, args, err := r.builder.
		Select("checksum").
		From(snapshotsTable).
		Where(sq.Eq{"channel_id": channelID}).
		OrderBy("generated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build latest checksum query: %w", err)
	}

	var checksum string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query latest checksum: %w", err)
	}
	return checksum, true, nil
}

// SaveSnapshot inserts one snapshot run, assigning an id when missing.
func (r *PostgresRepository) SaveSnapshot(ctx context.Context, record domain.SnapshotRecord) error {
	if r.db == nil {
		return nil
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query, args, err := r.builder.
		Insert(snapshotsTable).
		Columns("id", "channel_id", "checksum", "payload", "generated_at").
		Values(record.ID, record.ChannelID, record.Checksum, string(record.Payload), record.GeneratedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build snapshot insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}
