package snapshot

import "time"

const (
	SourceFPL = "fpl"

	EntityBootstrap = "bootstrap"
	EntityFixtures  = "fixtures"
	EntityPicks     = "entry_picks"
)

type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}
