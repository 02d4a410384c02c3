package evaluation

import (
	"errors"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

var (
	ErrSquadIncomplete = errors.New("squad does not cover the required positions")
	ErrBadFormation    = errors.New("invalid formation")
)

// EnrichedPlayer is a raw player plus the derived scoring fields. It is
// rebuilt from scratch on every evaluation and never mutated afterwards.
type EnrichedPlayer struct {
	fpl.Player

	TeamShort         string
	Position          fpl.Position
	FixtureDifficulty int
	PredictedPoints   float64
	CaptainScore      float64
}

// OptimizedSquad is a legal 15-player split into a formation-conformant
// starting XI, the four-player bench, and the armband holders.
type OptimizedSquad struct {
	Formation   string
	Starting    []EnrichedPlayer
	Bench       []EnrichedPlayer
	Captain     EnrichedPlayer
	ViceCaptain EnrichedPlayer
}

// TrendStatus classifies a player's price trajectory for the current event.
type TrendStatus string

const (
	TrendRiseSoon       TrendStatus = "rise_soon"
	TrendRising         TrendStatus = "rising"
	TrendDropSoon       TrendStatus = "drop_soon"
	TrendDropping       TrendStatus = "dropping"
	TrendAlreadyRaised  TrendStatus = "already_raised"
	TrendAlreadyDropped TrendStatus = "already_dropped"
	TrendStable         TrendStatus = "stable"
)

var trendPriority = map[TrendStatus]int{
	TrendRiseSoon:       0,
	TrendRising:         1,
	TrendDropSoon:       2,
	TrendDropping:       3,
	TrendAlreadyRaised:  4,
	TrendAlreadyDropped: 5,
	TrendStable:         6,
}

// Priority orders statuses for display; lower sorts first.
func (s TrendStatus) Priority() int {
	priority, ok := trendPriority[s]
	if !ok {
		return len(trendPriority)
	}
	return priority
}

func ParseTrendStatus(raw string) (TrendStatus, bool) {
	status := TrendStatus(raw)
	_, ok := trendPriority[status]
	return status, ok
}

// PricePrediction pairs a player with a trend status and a progress
// fraction in [0,1]; 1 means the threshold is met or already crossed.
type PricePrediction struct {
	PlayerID int
	Status   TrendStatus
	Progress float64
}

// Transfer proposes swapping an owned underperformer for an affordable
// replacement in the same position.
type Transfer struct {
	Sell   EnrichedPlayer
	Buy    EnrichedPlayer
	Reason string
}
