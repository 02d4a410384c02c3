package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
	"github.com/SiddigHope/sanfpl/internal/domain/snapshot"
	"github.com/SiddigHope/sanfpl/internal/platform/cache"
	sonic "github.com/bytedance/sonic"
	"github.com/sourcegraph/conc/pool"
)

const gameDataCacheKey = "fpl:gamedata"

// GameData bundles the upstream collections every evaluation needs.
type GameData struct {
	Bootstrap fpl.Bootstrap
	Fixtures  []fpl.Fixture
}

// DataService loads and caches the upstream game data, and archives
// each fresh fetch as a snapshot for audit and offline replay.
type DataService struct {
	source       fpl.DataSource
	snapshotRepo snapshot.Repository
	store        *cache.Store
	logger       *slog.Logger
	now          func() time.Time
}

func NewDataService(
	source fpl.DataSource,
	snapshotRepo snapshot.Repository,
	store *cache.Store,
	logger *slog.Logger,
) *DataService {
	if logger == nil {
		logger = slog.Default()
	}

	return &DataService{
		source:       source,
		snapshotRepo: snapshotRepo,
		store:        store,
		logger:       logger,
		now:          time.Now,
	}
}

// GameData returns the cached bootstrap and fixtures, fetching both in
// parallel on a cache miss.
func (s *DataService) GameData(ctx context.Context) (GameData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.GameData")
	defer span.End()

	value, err := s.store.GetOrLoad(ctx, gameDataCacheKey, func(ctx context.Context) (any, error) {
		return s.loadGameData(ctx)
	})
	if err != nil {
		return GameData{}, err
	}

	data, ok := value.(GameData)
	if !ok {
		return GameData{}, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return data, nil
}

func (s *DataService) loadGameData(ctx context.Context) (GameData, error) {
	var (
		bootstrap fpl.Bootstrap
		fixtures  []fpl.Fixture
	)

	group := pool.New().WithContext(ctx).WithCancelOnError()
	group.Go(func(ctx context.Context) error {
		loaded, err := s.source.Bootstrap(ctx)
		if err != nil {
			return fmt.Errorf("load bootstrap: %w", err)
		}
		bootstrap = loaded
		return nil
	})
	group.Go(func(ctx context.Context) error {
		loaded, err := s.source.Fixtures(ctx)
		if err != nil {
			return fmt.Errorf("load fixtures: %w", err)
		}
		fixtures = loaded
		return nil
	})
	if err := group.Wait(); err != nil {
		return GameData{}, err
	}

	s.archive(ctx,
		buildSnapshot(snapshot.EntityBootstrap, "static", bootstrap, s.now().UTC()),
		buildSnapshot(snapshot.EntityFixtures, "season", fixtures, s.now().UTC()),
	)

	return GameData{Bootstrap: bootstrap, Fixtures: fixtures}, nil
}

// CurrentGameweek resolves the active round from the cached bootstrap.
func (s *DataService) CurrentGameweek(ctx context.Context) (fpl.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.CurrentGameweek")
	defer span.End()

	data, err := s.GameData(ctx)
	if err != nil {
		return fpl.Gameweek{}, err
	}

	gameweek, ok := data.Bootstrap.CurrentGameweek()
	if !ok {
		return fpl.Gameweek{}, fmt.Errorf("%w: no current gameweek in the calendar", ErrNotFound)
	}
	return gameweek, nil
}

// EntryPicks fetches a manager's squad for a gameweek and archives it.
func (s *DataService) EntryPicks(ctx context.Context, entryID, gameweek int) (fpl.PickSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.EntryPicks")
	defer span.End()

	if entryID <= 0 {
		return fpl.PickSet{}, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}
	if gameweek <= 0 {
		return fpl.PickSet{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	picks, found, err := s.source.EntryPicks(ctx, entryID, gameweek)
	if err != nil {
		return fpl.PickSet{}, fmt.Errorf("load entry picks: %w", err)
	}
	if !found {
		return fpl.PickSet{}, fmt.Errorf("%w: no picks for entry=%d gameweek=%d", ErrNotFound, entryID, gameweek)
	}

	entityKey := fmt.Sprintf("entry=%d;gameweek=%d", entryID, gameweek)
	s.archive(ctx, buildSnapshot(snapshot.EntityPicks, entityKey, picks, s.now().UTC()))

	return picks, nil
}

// ElementSummary fetches a player's match history.
func (s *DataService) ElementSummary(ctx context.Context, playerID int) (fpl.ElementSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.ElementSummary")
	defer span.End()

	if playerID <= 0 {
		return fpl.ElementSummary{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	summary, err := s.source.ElementSummary(ctx, playerID)
	if err != nil {
		return fpl.ElementSummary{}, fmt.Errorf("load element summary: %w", err)
	}
	return summary, nil
}

// Invalidate drops the cached game data so the next read refetches.
func (s *DataService) Invalidate(ctx context.Context) {
	s.store.Delete(ctx, gameDataCacheKey)
}

// archive persists fetched payloads; failures are logged and do not
// fail the read path.
func (s *DataService) archive(ctx context.Context, items ...snapshot.Payload) {
	if s.snapshotRepo == nil {
		return
	}

	valid := make([]snapshot.Payload, 0, len(items))
	for _, item := range items {
		if item.PayloadJSON == "" {
			continue
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return
	}

	if err := s.snapshotRepo.UpsertMany(ctx, valid); err != nil {
		s.logger.WarnContext(ctx, "archive snapshots failed", "count", len(valid), "error", err)
	}
}

func buildSnapshot(entityType, entityKey string, payload any, fetchedAt time.Time) snapshot.Payload {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return snapshot.Payload{}
	}

	hash := sha256.Sum256(raw)
	return snapshot.Payload{
		Source:      snapshot.SourceFPL,
		EntityType:  entityType,
		EntityKey:   entityKey,
		PayloadJSON: string(raw),
		PayloadHash: hex.EncodeToString(hash[:]),
		FetchedAt:   fetchedAt,
	}
}
