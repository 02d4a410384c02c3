package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
	"github.com/panjf2000/ants/v2"
)

const (
	SortByPredicted = "predicted"
	SortByCaptain   = "captain"
	SortByForm      = "form"
	SortByValue     = "value"

	defaultPlayerLimit  = 50
	maxPlayerLimit      = 1000
	enrichmentChunkSize = 64
)

// ListPlayersInput narrows and orders the evaluated player pool.
type ListPlayersInput struct {
	Position string
	TeamID   int
	Search   string
	SortBy   string
	Limit    int
}

// PlayerDetail is one player with the derived scores and the
// match-by-match season history.
type PlayerDetail struct {
	Player     evaluation.EnrichedPlayer
	ValueScore float64
	History    []fpl.PlayerHistoryEntry
}

type PlayerService struct {
	data       *DataService
	heuristics evaluation.Heuristics
	workers    int
	logger     *slog.Logger
}

func NewPlayerService(data *DataService, heuristics evaluation.Heuristics, workers int, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 4
	}

	return &PlayerService{
		data:       data,
		heuristics: heuristics,
		workers:    workers,
		logger:     logger,
	}
}

// ListPlayers evaluates the full player pool against the current
// gameweek, then filters, sorts, and truncates it.
func (s *PlayerService) ListPlayers(ctx context.Context, input ListPlayersInput) ([]evaluation.EnrichedPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	input.Position = strings.TrimSpace(input.Position)
	input.Search = strings.TrimSpace(input.Search)
	input.SortBy = strings.TrimSpace(strings.ToLower(input.SortBy))

	var positionFilter fpl.Position
	if input.Position != "" {
		parsed, ok := fpl.ParsePosition(input.Position)
		if !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, input.Position)
		}
		positionFilter = parsed
	}
	if input.SortBy == "" {
		input.SortBy = SortByPredicted
	}
	switch input.SortBy {
	case SortByPredicted, SortByCaptain, SortByForm, SortByValue:
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, input.SortBy)
	}
	if input.Limit <= 0 {
		input.Limit = defaultPlayerLimit
	}
	if input.Limit > maxPlayerLimit {
		input.Limit = maxPlayerLimit
	}

	enriched, err := s.evaluatePool(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]evaluation.EnrichedPlayer, 0, len(enriched))
	search := strings.ToLower(input.Search)
	for _, player := range enriched {
		if positionFilter != "" && player.Position != positionFilter {
			continue
		}
		if input.TeamID > 0 && player.TeamID != input.TeamID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(player.WebName), search) {
			continue
		}
		filtered = append(filtered, player)
	}

	sortPlayers(filtered, input.SortBy)

	if len(filtered) > input.Limit {
		filtered = filtered[:input.Limit]
	}
	return filtered, nil
}

// GetPlayer evaluates one player and attaches the season history.
func (s *PlayerService) GetPlayer(ctx context.Context, playerID int) (PlayerDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	if playerID <= 0 {
		return PlayerDetail{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	data, err := s.data.GameData(ctx)
	if err != nil {
		return PlayerDetail{}, err
	}

	player, ok := data.Bootstrap.PlayerByID(playerID)
	if !ok {
		return PlayerDetail{}, fmt.Errorf("%w: player id %d", ErrNotFound, playerID)
	}

	gameweek, ok := data.Bootstrap.CurrentGameweek()
	if !ok {
		return PlayerDetail{}, fmt.Errorf("%w: no current gameweek in the calendar", ErrNotFound)
	}

	enriched := evaluation.EnrichPlayer(player, data.Bootstrap.Teams, data.Fixtures, gameweek.ID, s.heuristics)

	summary, err := s.data.ElementSummary(ctx, playerID)
	if err != nil {
		// History is supplementary; serve the evaluation without it.
		s.logger.WarnContext(ctx, "element summary unavailable", "player_id", playerID, "error", err)
		summary = fpl.ElementSummary{}
	}

	return PlayerDetail{
		Player:     enriched,
		ValueScore: evaluation.ValueScore(player),
		History:    summary.History,
	}, nil
}

// evaluatePool enriches the full pool with a bounded worker pool, one
// chunk per task, preserving input order.
func (s *PlayerService) evaluatePool(ctx context.Context) ([]evaluation.EnrichedPlayer, error) {
	data, err := s.data.GameData(ctx)
	if err != nil {
		return nil, err
	}

	gameweek, ok := data.Bootstrap.CurrentGameweek()
	if !ok {
		return nil, fmt.Errorf("%w: no current gameweek in the calendar", ErrNotFound)
	}

	players := data.Bootstrap.Players
	out := make([]evaluation.EnrichedPlayer, len(players))

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for start := 0; start < len(players); start += enrichmentChunkSize {
		end := start + enrichmentChunkSize
		if end > len(players) {
			end = len(players)
		}

		start, end := start, end
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			for i := start; i < end; i++ {
				out[i] = evaluation.EnrichPlayer(players[i], data.Bootstrap.Teams, data.Fixtures, gameweek.ID, s.heuristics)
			}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit enrichment chunk: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}

func sortPlayers(players []evaluation.EnrichedPlayer, sortBy string) {
	sort.SliceStable(players, func(i, j int) bool {
		switch sortBy {
		case SortByCaptain:
			return players[i].CaptainScore > players[j].CaptainScore
		case SortByForm:
			return fpl.ParseDecimal(players[i].Form) > fpl.ParseDecimal(players[j].Form)
		case SortByValue:
			return evaluation.ValueScore(players[i].Player) > evaluation.ValueScore(players[j].Player)
		default:
			return players[i].PredictedPoints > players[j].PredictedPoints
		}
	})
}
