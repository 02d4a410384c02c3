package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
)

const dashboardListSize = 5

// ValuePick pairs a player with the points-per-million value score.
type ValuePick struct {
	Player evaluation.EnrichedPlayer
	Value  float64
}

// Dashboard is the gameweek overview: the active round, the strongest
// captain options, the best value picks, and imminent price risers.
type Dashboard struct {
	Gameweek     int
	GameweekName string
	Deadline     time.Time
	TopCaptains  []evaluation.EnrichedPlayer
	TopValue     []ValuePick
	PriceRisers  []PriceMovement
}

type DashboardService struct {
	players *PlayerService
	prices  *PriceService
	data    *DataService
	logger  *slog.Logger
}

func NewDashboardService(data *DataService, players *PlayerService, prices *PriceService, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}

	return &DashboardService{
		players: players,
		prices:  prices,
		data:    data,
		logger:  logger,
	}
}

func (s *DashboardService) Get(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	gameweek, err := s.data.CurrentGameweek(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	captains, err := s.players.ListPlayers(ctx, ListPlayersInput{
		SortBy: SortByCaptain,
		Limit:  dashboardListSize,
	})
	if err != nil {
		return Dashboard{}, err
	}

	valuePicks, err := s.players.ListPlayers(ctx, ListPlayersInput{
		SortBy: SortByValue,
		Limit:  dashboardListSize,
	})
	if err != nil {
		return Dashboard{}, err
	}

	topValue := make([]ValuePick, 0, len(valuePicks))
	for _, pick := range valuePicks {
		topValue = append(topValue, ValuePick{
			Player: pick,
			Value:  evaluation.ValueScore(pick.Player),
		})
	}

	movements, err := s.prices.Movements(ctx, false, 0)
	if err != nil {
		return Dashboard{}, err
	}
	risers := make([]PriceMovement, 0, dashboardListSize)
	for _, movement := range movements {
		if movement.Status != evaluation.TrendRiseSoon && movement.Status != evaluation.TrendRising {
			continue
		}
		risers = append(risers, movement)
		if len(risers) == dashboardListSize {
			break
		}
	}

	return Dashboard{
		Gameweek:     gameweek.ID,
		GameweekName: gameweek.Name,
		Deadline:     gameweek.DeadlineTime,
		TopCaptains:  captains,
		TopValue:     topValue,
		PriceRisers:  risers,
	}, nil
}
