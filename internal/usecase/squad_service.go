package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
)

// SquadAnalysis is an entry's squad rebuilt into the strongest legal
// lineup, with the armband picks and an overall rating.
type SquadAnalysis struct {
	EntryID     int
	Gameweek    int
	Formation   string
	Starting    []evaluation.EnrichedPlayer
	Bench       []evaluation.EnrichedPlayer
	Captain     evaluation.EnrichedPlayer
	ViceCaptain evaluation.EnrichedPlayer
	Rating      int
	Bank        int
	TeamValue   int
	TotalPoints int
	OverallRank int
}

// SquadPlan is a what-if optimization over an arbitrary 15-player
// pick list, without any entry bookkeeping attached.
type SquadPlan struct {
	Gameweek    int
	Formation   string
	Starting    []evaluation.EnrichedPlayer
	Bench       []evaluation.EnrichedPlayer
	Captain     evaluation.EnrichedPlayer
	ViceCaptain evaluation.EnrichedPlayer
	Rating      int
}

type SquadService struct {
	data       *DataService
	heuristics evaluation.Heuristics
	logger     *slog.Logger
}

func NewSquadService(data *DataService, heuristics evaluation.Heuristics, logger *slog.Logger) *SquadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SquadService{
		data:       data,
		heuristics: heuristics,
		logger:     logger,
	}
}

// Analyze fetches the entry's current squad and optimizes it into the
// requested formation. An empty formation uses the default.
func (s *SquadService) Analyze(ctx context.Context, entryID int, formation string) (SquadAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Analyze")
	defer span.End()

	if entryID <= 0 {
		return SquadAnalysis{}, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}
	formation = strings.TrimSpace(formation)

	data, err := s.data.GameData(ctx)
	if err != nil {
		return SquadAnalysis{}, err
	}

	gameweek, ok := data.Bootstrap.CurrentGameweek()
	if !ok {
		return SquadAnalysis{}, fmt.Errorf("%w: no current gameweek in the calendar", ErrNotFound)
	}

	picks, err := s.data.EntryPicks(ctx, entryID, gameweek.ID)
	if err != nil {
		return SquadAnalysis{}, err
	}

	squad := make([]evaluation.EnrichedPlayer, 0, len(picks.Picks))
	for _, pick := range picks.Picks {
		player, found := data.Bootstrap.PlayerByID(pick.PlayerID)
		if !found {
			return SquadAnalysis{}, fmt.Errorf("%w: pick references unknown player id %d", ErrNotFound, pick.PlayerID)
		}
		squad = append(squad, evaluation.EnrichPlayer(player, data.Bootstrap.Teams, data.Fixtures, gameweek.ID, s.heuristics))
	}

	optimized, err := evaluation.Optimize(squad, formation, s.heuristics)
	if err != nil {
		if stderrors.Is(err, evaluation.ErrBadFormation) || stderrors.Is(err, evaluation.ErrSquadIncomplete) {
			return SquadAnalysis{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return SquadAnalysis{}, fmt.Errorf("optimize squad: %w", err)
	}

	s.logger.InfoContext(ctx, "squad analyzed",
		"entry_id", entryID,
		"gameweek", gameweek.ID,
		"formation", optimized.Formation,
		"captain_id", optimized.Captain.ID,
	)

	return SquadAnalysis{
		EntryID:     entryID,
		Gameweek:    gameweek.ID,
		Formation:   optimized.Formation,
		Starting:    optimized.Starting,
		Bench:       optimized.Bench,
		Captain:     optimized.Captain,
		ViceCaptain: optimized.ViceCaptain,
		Rating:      evaluation.Rating(optimized.Starting, s.heuristics),
		Bank:        picks.EntryHistory.Bank,
		TeamValue:   picks.EntryHistory.Value,
		TotalPoints: picks.EntryHistory.TotalPoints,
		OverallRank: picks.EntryHistory.OverallRank,
	}, nil
}

// Plan optimizes an arbitrary pick list against the current gameweek.
// Unknown player ids are rejected rather than skipped so a typo does
// not silently shrink the squad.
func (s *SquadService) Plan(ctx context.Context, playerIDs []int, formation string) (SquadPlan, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Plan")
	defer span.End()

	if len(playerIDs) == 0 {
		return SquadPlan{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}
	formation = strings.TrimSpace(formation)

	data, err := s.data.GameData(ctx)
	if err != nil {
		return SquadPlan{}, err
	}

	gameweek, ok := data.Bootstrap.CurrentGameweek()
	if !ok {
		return SquadPlan{}, fmt.Errorf("%w: no current gameweek in the calendar", ErrNotFound)
	}

	seen := make(map[int]struct{}, len(playerIDs))
	squad := make([]evaluation.EnrichedPlayer, 0, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			return SquadPlan{}, fmt.Errorf("%w: duplicate player id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}

		player, found := data.Bootstrap.PlayerByID(id)
		if !found {
			return SquadPlan{}, fmt.Errorf("%w: unknown player id %d", ErrNotFound, id)
		}
		squad = append(squad, evaluation.EnrichPlayer(player, data.Bootstrap.Teams, data.Fixtures, gameweek.ID, s.heuristics))
	}

	optimized, err := evaluation.Optimize(squad, formation, s.heuristics)
	if err != nil {
		if stderrors.Is(err, evaluation.ErrBadFormation) || stderrors.Is(err, evaluation.ErrSquadIncomplete) {
			return SquadPlan{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return SquadPlan{}, fmt.Errorf("optimize squad: %w", err)
	}

	return SquadPlan{
		Gameweek:    gameweek.ID,
		Formation:   optimized.Formation,
		Starting:    optimized.Starting,
		Bench:       optimized.Bench,
		Captain:     optimized.Captain,
		ViceCaptain: optimized.ViceCaptain,
		Rating:      evaluation.Rating(optimized.Starting, s.heuristics),
	}, nil
}
