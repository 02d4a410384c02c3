package httpapi

import (
	"context"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
	"github.com/SiddigHope/sanfpl/internal/usecase"
)

type gameweekDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Deadline  string `json:"deadline"`
	IsCurrent bool   `json:"isCurrent"`
	IsNext    bool   `json:"isNext"`
	Finished  bool   `json:"finished"`
}

type playerDTO struct {
	ID                int     `json:"id"`
	WebName           string  `json:"webName"`
	Team              string  `json:"team"`
	Position          string  `json:"position"`
	Price             float64 `json:"price"`
	Form              string  `json:"form"`
	PointsPerGame     string  `json:"pointsPerGame"`
	SelectedBy        string  `json:"selectedBy"`
	TotalPoints       int     `json:"totalPoints"`
	Status            string  `json:"status"`
	News              string  `json:"news,omitempty"`
	ChanceOfPlaying   *int    `json:"chanceOfPlaying,omitempty"`
	FixtureDifficulty int     `json:"fixtureDifficulty"`
	PredictedPoints   float64 `json:"predictedPoints"`
	CaptainScore      float64 `json:"captainScore"`
}

type playerDetailDTO struct {
	Player     playerDTO        `json:"player"`
	ValueScore float64          `json:"valueScore"`
	History    []playerRoundDTO `json:"history"`
}

type playerRoundDTO struct {
	Gameweek       int  `json:"gameweek"`
	OpponentTeamID int  `json:"opponentTeamId"`
	WasHome        bool `json:"wasHome"`
	Points         int  `json:"points"`
	Minutes        int  `json:"minutes"`
	Goals          int  `json:"goals"`
	Assists        int  `json:"assists"`
	CleanSheets    int  `json:"cleanSheets"`
	Bonus          int  `json:"bonus"`
	Value          int  `json:"value"`
}

type priceMovementDTO struct {
	PlayerID     int     `json:"playerId"`
	WebName      string  `json:"webName"`
	Team         string  `json:"team"`
	Position     string  `json:"position"`
	Price        float64 `json:"price"`
	SelectedBy   string  `json:"selectedBy"`
	NetTransfers int     `json:"netTransfers"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"`
}

type squadAnalysisDTO struct {
	EntryID     int         `json:"entryId"`
	Gameweek    int         `json:"gameweek"`
	Formation   string      `json:"formation"`
	Starting    []playerDTO `json:"starting"`
	Bench       []playerDTO `json:"bench"`
	Captain     playerDTO   `json:"captain"`
	ViceCaptain playerDTO   `json:"viceCaptain"`
	Rating      int         `json:"rating"`
	Bank        float64     `json:"bank"`
	TeamValue   float64     `json:"teamValue"`
	TotalPoints int         `json:"totalPoints"`
	OverallRank int         `json:"overallRank"`
}

type squadPlanDTO struct {
	Gameweek    int         `json:"gameweek"`
	Formation   string      `json:"formation"`
	Starting    []playerDTO `json:"starting"`
	Bench       []playerDTO `json:"bench"`
	Captain     playerDTO   `json:"captain"`
	ViceCaptain playerDTO   `json:"viceCaptain"`
	Rating      int         `json:"rating"`
}

type transferDTO struct {
	Sell   playerDTO `json:"sell"`
	Buy    playerDTO `json:"buy"`
	Reason string    `json:"reason"`
}

type transferAdviceDTO struct {
	EntryID   int           `json:"entryId"`
	Gameweek  int           `json:"gameweek"`
	Bank      float64       `json:"bank"`
	Transfers []transferDTO `json:"transfers"`
}

type valuePickDTO struct {
	Player playerDTO `json:"player"`
	Value  float64   `json:"value"`
}

type dashboardDTO struct {
	Gameweek     int                `json:"gameweek"`
	GameweekName string             `json:"gameweekName"`
	Deadline     string             `json:"deadline"`
	TopCaptains  []playerDTO        `json:"topCaptains"`
	TopValue     []valuePickDTO     `json:"topValue"`
	PriceRisers  []priceMovementDTO `json:"priceRisers"`
}

func gameweekToDTO(ctx context.Context, v fpl.Gameweek) gameweekDTO {
	ctx, span := startSpan(ctx, "httpapi.gameweekToDTO")
	defer span.End()

	return gameweekDTO{
		ID:        v.ID,
		Name:      v.Name,
		Deadline:  v.DeadlineTime.UTC().Format(time.RFC3339),
		IsCurrent: v.IsCurrent,
		IsNext:    v.IsNext,
		Finished:  v.Finished,
	}
}

func playerToDTO(ctx context.Context, v evaluation.EnrichedPlayer) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:                v.ID,
		WebName:           v.WebName,
		Team:              v.TeamShort,
		Position:          string(v.Position),
		Price:             v.PriceMillions(),
		Form:              v.Form,
		PointsPerGame:     v.PointsPerGame,
		SelectedBy:        v.SelectedByPercent,
		TotalPoints:       v.TotalPoints,
		Status:            v.Status,
		News:              v.News,
		ChanceOfPlaying:   v.ChanceOfPlayingNextRound,
		FixtureDifficulty: v.FixtureDifficulty,
		PredictedPoints:   v.PredictedPoints,
		CaptainScore:      v.CaptainScore,
	}
}

func playersToDTO(ctx context.Context, items []evaluation.EnrichedPlayer) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(ctx, item))
	}
	return out
}

func playerHistoryToDTO(ctx context.Context, history []fpl.PlayerHistoryEntry) []playerRoundDTO {
	ctx, span := startSpan(ctx, "httpapi.playerHistoryToDTO")
	defer span.End()

	out := make([]playerRoundDTO, 0, len(history))
	for _, entry := range history {
		out = append(out, playerRoundDTO{
			Gameweek:       entry.Gameweek,
			OpponentTeamID: entry.OpponentTeamID,
			WasHome:        entry.WasHome,
			Points:         entry.TotalPoints,
			Minutes:        entry.Minutes,
			Goals:          entry.GoalsScored,
			Assists:        entry.Assists,
			CleanSheets:    entry.CleanSheets,
			Bonus:          entry.Bonus,
			Value:          entry.Value,
		})
	}
	return out
}

func priceMovementToDTO(ctx context.Context, v usecase.PriceMovement) priceMovementDTO {
	ctx, span := startSpan(ctx, "httpapi.priceMovementToDTO")
	defer span.End()

	return priceMovementDTO{
		PlayerID:     v.PlayerID,
		WebName:      v.WebName,
		Team:         v.TeamShort,
		Position:     string(v.Position),
		Price:        float64(v.NowCost) / 10.0,
		SelectedBy:   v.SelectedBy,
		NetTransfers: v.NetTransfers,
		Status:       string(v.Status),
		Progress:     v.Progress,
	}
}

func priceMovementsToDTO(ctx context.Context, items []usecase.PriceMovement) []priceMovementDTO {
	out := make([]priceMovementDTO, 0, len(items))
	for _, item := range items {
		out = append(out, priceMovementToDTO(ctx, item))
	}
	return out
}
