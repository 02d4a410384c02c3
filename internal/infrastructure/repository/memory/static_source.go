package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

// StaticSource serves seeded game data without touching the upstream
// API. It backs offline mode and the service tests.
type StaticSource struct {
	mu        sync.RWMutex
	bootstrap fpl.Bootstrap
	fixtures  []fpl.Fixture
	picks     map[int]fpl.PickSet
	summaries map[int]fpl.ElementSummary
}

func NewStaticSource(bootstrap fpl.Bootstrap, fixtures []fpl.Fixture, picks map[int]fpl.PickSet) *StaticSource {
	if picks == nil {
		picks = make(map[int]fpl.PickSet)
	}
	return &StaticSource{
		bootstrap: bootstrap,
		fixtures:  fixtures,
		picks:     picks,
		summaries: make(map[int]fpl.ElementSummary),
	}
}

// NewSeededSource builds a StaticSource from the bundled demo season.
func NewSeededSource() *StaticSource {
	return NewStaticSource(SeedBootstrap(), SeedFixtures(), SeedEntryPicks())
}

func (s *StaticSource) Bootstrap(_ context.Context) (fpl.Bootstrap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := fpl.Bootstrap{
		Players:   append([]fpl.Player(nil), s.bootstrap.Players...),
		Teams:     append([]fpl.Team(nil), s.bootstrap.Teams...),
		Gameweeks: append([]fpl.Gameweek(nil), s.bootstrap.Gameweeks...),
	}
	return out, nil
}

func (s *StaticSource) Fixtures(_ context.Context) ([]fpl.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]fpl.Fixture(nil), s.fixtures...), nil
}

func (s *StaticSource) EntryPicks(_ context.Context, entryID, gameweek int) (fpl.PickSet, bool, error) {
	if entryID <= 0 || gameweek <= 0 {
		return fpl.PickSet{}, false, fmt.Errorf("entry id and gameweek must be greater than zero")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	picks, ok := s.picks[entryID]
	if !ok {
		return fpl.PickSet{}, false, nil
	}
	return picks, true, nil
}

// ElementSummary synthesizes a flat history from the player's season
// totals when no explicit summary is registered.
func (s *StaticSource) ElementSummary(_ context.Context, playerID int) (fpl.ElementSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if summary, ok := s.summaries[playerID]; ok {
		return summary, nil
	}

	player, ok := s.bootstrap.PlayerByID(playerID)
	if !ok {
		return fpl.ElementSummary{}, nil
	}

	gamesPlayed := player.Minutes / 90
	if gamesPlayed < 1 {
		gamesPlayed = 1
	}
	history := make([]fpl.PlayerHistoryEntry, 0, gamesPlayed)
	for round := 1; round <= gamesPlayed; round++ {
		history = append(history, fpl.PlayerHistoryEntry{
			Gameweek:    round,
			TotalPoints: player.TotalPoints / gamesPlayed,
			Minutes:     90,
			Value:       player.NowCost,
		})
	}
	return fpl.ElementSummary{History: history}, nil
}

// SetElementSummary registers an explicit summary for a player.
func (s *StaticSource) SetElementSummary(playerID int, summary fpl.ElementSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[playerID] = summary
}
