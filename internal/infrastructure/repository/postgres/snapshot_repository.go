package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/snapshot"
	qb "github.com/SiddigHope/sanfpl/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) UpsertMany(ctx context.Context, items []snapshot.Payload) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert snapshots: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := snapshotInsertModel{
			Source:      item.Source,
			EntityType:  item.EntityType,
			EntityKey:   item.EntityKey,
			Payload:     item.PayloadJSON,
			PayloadHash: item.PayloadHash,
			FetchedAt:   item.FetchedAt,
		}

		query, args, err := qb.InsertModel("api_snapshots", insertModel, `ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at`)
		if err != nil {
			return fmt.Errorf("build upsert snapshot query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert snapshot entity=%s key=%s: %w", item.EntityType, item.EntityKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert snapshots tx: %w", err)
	}

	return nil
}

func (r *SnapshotRepository) Latest(ctx context.Context, source, entityType, entityKey string) (snapshot.Payload, bool, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row, `
SELECT source, entity_type, entity_key, payload, payload_hash, fetched_at
FROM api_snapshots
WHERE source = $1 AND entity_type = $2 AND entity_key = $3`, source, entityType, entityKey)
	if err != nil {
		if isNotFound(err) {
			return snapshot.Payload{}, false, nil
		}
		return snapshot.Payload{}, false, fmt.Errorf("select snapshot entity=%s key=%s: %w", entityType, entityKey, err)
	}

	return snapshot.Payload{
		Source:      row.Source,
		EntityType:  row.EntityType,
		EntityKey:   row.EntityKey,
		PayloadJSON: row.Payload,
		PayloadHash: row.PayloadHash,
		FetchedAt:   row.FetchedAt,
	}, true, nil
}

type snapshotInsertModel struct {
	Source      string    `db:"source"`
	EntityType  string    `db:"entity_type"`
	EntityKey   string    `db:"entity_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}

type snapshotRow struct {
	Source      string    `db:"source"`
	EntityType  string    `db:"entity_type"`
	EntityKey   string    `db:"entity_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}
