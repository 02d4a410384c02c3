package usecase

import (
	"context"
	"log/slog"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

// PriceMovement is one player's price trajectory, ready for display.
type PriceMovement struct {
	PlayerID     int
	WebName      string
	TeamShort    string
	Position     fpl.Position
	NowCost      int
	SelectedBy   string
	NetTransfers int
	Status       evaluation.TrendStatus
	Progress     float64
}

type PriceService struct {
	data       *DataService
	heuristics evaluation.Heuristics
	logger     *slog.Logger
}

func NewPriceService(data *DataService, heuristics evaluation.Heuristics, logger *slog.Logger) *PriceService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PriceService{
		data:       data,
		heuristics: heuristics,
		logger:     logger,
	}
}

// Movements predicts a price trend for every player and returns the
// list ranked by urgency. Stable players are filtered out unless
// includeStable is set.
func (s *PriceService) Movements(ctx context.Context, includeStable bool, limit int) ([]PriceMovement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PriceService.Movements")
	defer span.End()

	data, err := s.data.GameData(ctx)
	if err != nil {
		return nil, err
	}

	predictions := make([]evaluation.PricePrediction, 0, len(data.Bootstrap.Players))
	playerByID := make(map[int]fpl.Player, len(data.Bootstrap.Players))
	for _, player := range data.Bootstrap.Players {
		prediction := evaluation.PredictPriceChange(player, s.heuristics)
		if !includeStable && prediction.Status == evaluation.TrendStable {
			continue
		}
		predictions = append(predictions, prediction)
		playerByID[player.ID] = player
	}

	evaluation.RankPricePredictions(predictions)

	if limit > 0 && len(predictions) > limit {
		predictions = predictions[:limit]
	}

	out := make([]PriceMovement, 0, len(predictions))
	for _, prediction := range predictions {
		player := playerByID[prediction.PlayerID]
		teamShort := ""
		if team, ok := data.Bootstrap.TeamByID(player.TeamID); ok {
			teamShort = team.ShortName
		}
		position, _ := fpl.PositionFromCode(player.PositionCode)

		out = append(out, PriceMovement{
			PlayerID:     player.ID,
			WebName:      player.WebName,
			TeamShort:    teamShort,
			Position:     position,
			NowCost:      player.NowCost,
			SelectedBy:   player.SelectedByPercent,
			NetTransfers: player.TransfersInEvent - player.TransfersOutEvent,
			Status:       prediction.Status,
			Progress:     prediction.Progress,
		})
	}
	return out, nil
}
