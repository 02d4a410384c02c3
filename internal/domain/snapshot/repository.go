package snapshot

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Payload) error
	Latest(ctx context.Context, source, entityType, entityKey string) (Payload, bool, error)
}
