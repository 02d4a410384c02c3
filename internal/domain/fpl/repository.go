package fpl

import "context"

// DataSource supplies the raw upstream collections the engine consumes.
// Implementations: the live API client and the seeded offline source.
type DataSource interface {
	Bootstrap(ctx context.Context) (Bootstrap, error)
	Fixtures(ctx context.Context) ([]Fixture, error)
	// EntryPicks returns false without error when the entry has no
	// picks for the gameweek.
	EntryPicks(ctx context.Context, entryID, gameweek int) (PickSet, bool, error)
	ElementSummary(ctx context.Context, playerID int) (ElementSummary, error)
}
