package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
)

// TransferAdvice is the recommended moves for an entry plus the budget
// they were judged against.
type TransferAdvice struct {
	EntryID   int
	Gameweek  int
	Bank      int
	Transfers []evaluation.Transfer
}

type TransferService struct {
	data       *DataService
	heuristics evaluation.Heuristics
	logger     *slog.Logger
}

func NewTransferService(data *DataService, heuristics evaluation.Heuristics, logger *slog.Logger) *TransferService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TransferService{
		data:       data,
		heuristics: heuristics,
		logger:     logger,
	}
}

// Recommend evaluates the entry's squad against the full pool and
// proposes affordable upgrades for flagged players.
func (s *TransferService) Recommend(ctx context.Context, entryID int) (TransferAdvice, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Recommend")
	defer span.End()

	if entryID <= 0 {
		return TransferAdvice{}, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}

	data, err := s.data.GameData(ctx)
	if err != nil {
		return TransferAdvice{}, err
	}

	gameweek, ok := data.Bootstrap.CurrentGameweek()
	if !ok {
		return TransferAdvice{}, fmt.Errorf("%w: no current gameweek in the calendar", ErrNotFound)
	}

	picks, err := s.data.EntryPicks(ctx, entryID, gameweek.ID)
	if err != nil {
		return TransferAdvice{}, err
	}

	owned := make([]evaluation.EnrichedPlayer, 0, len(picks.Picks))
	for _, pick := range picks.Picks {
		player, found := data.Bootstrap.PlayerByID(pick.PlayerID)
		if !found {
			return TransferAdvice{}, fmt.Errorf("%w: pick references unknown player id %d", ErrNotFound, pick.PlayerID)
		}
		owned = append(owned, evaluation.EnrichPlayer(player, data.Bootstrap.Teams, data.Fixtures, gameweek.ID, s.heuristics))
	}

	pool := evaluation.EnrichAll(data.Bootstrap.Players, data.Bootstrap.Teams, data.Fixtures, gameweek.ID, s.heuristics)

	bank := picks.EntryHistory.Bank
	transfers := evaluation.Recommend(owned, pool, data.Fixtures, bank, s.heuristics)

	s.logger.InfoContext(ctx, "transfers recommended",
		"entry_id", entryID,
		"gameweek", gameweek.ID,
		"count", len(transfers),
	)

	return TransferAdvice{
		EntryID:   entryID,
		Gameweek:  gameweek.ID,
		Bank:      bank,
		Transfers: transfers,
	}, nil
}
