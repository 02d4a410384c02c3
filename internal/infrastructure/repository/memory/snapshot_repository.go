package memory

import (
	"context"
	"sync"

	"github.com/SiddigHope/sanfpl/internal/domain/snapshot"
)

// SnapshotRepository keeps the latest payload per entity in process
// memory. It backs deployments that run without a database.
type SnapshotRepository struct {
	mu     sync.RWMutex
	latest map[string]snapshot.Payload
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{latest: make(map[string]snapshot.Payload)}
}

func snapshotKey(source, entityType, entityKey string) string {
	return source + "|" + entityType + "|" + entityKey
}

func (r *SnapshotRepository) UpsertMany(_ context.Context, items []snapshot.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.latest[snapshotKey(item.Source, item.EntityType, item.EntityKey)] = item
	}
	return nil
}

func (r *SnapshotRepository) Latest(_ context.Context, source, entityType, entityKey string) (snapshot.Payload, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.latest[snapshotKey(source, entityType, entityKey)]
	return payload, ok, nil
}
