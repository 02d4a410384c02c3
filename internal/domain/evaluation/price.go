package evaluation

import (
	"math"
	"sort"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

// PredictPriceChange classifies a player's price trajectory from this
// event's transfer volume and ownership. Rules apply in strict order; the
// small-signal filter runs before the already-changed check, so a quiet
// day after a real price move still reads stable. That ordering matches
// the shipped product and is covered by tests; do not reorder.
func PredictPriceChange(player fpl.Player, h Heuristics) PricePrediction {
	net := player.TransfersInEvent - player.TransfersOutEvent

	ownership := fpl.ParseDecimal(player.SelectedByPercent) / 100
	if ownership <= 0 {
		ownership = h.Price.FallbackOwnership
	}

	scale := ownership / h.Price.OwnershipPivot
	if scale < h.Price.OwnershipFloorFactor {
		scale = h.Price.OwnershipFloorFactor
	}
	riseThreshold := maxInt(h.Price.RiseFloor, int(math.Round(float64(h.Price.RiseBaseVolume)*scale)))
	dropThreshold := maxInt(h.Price.DropFloor, int(math.Round(float64(h.Price.DropBaseVolume)*scale)))

	noiseBand := maxInt(h.Price.NoiseFloor, int(math.Round(ownership*h.Price.NoiseOwnershipScale)))
	if absInt(net) < noiseBand {
		return PricePrediction{PlayerID: player.ID, Status: TrendStable}
	}

	if player.CostChangeEvent > 0 {
		return PricePrediction{PlayerID: player.ID, Status: TrendAlreadyRaised, Progress: 1}
	}
	if player.CostChangeEvent < 0 {
		return PricePrediction{PlayerID: player.ID, Status: TrendAlreadyDropped, Progress: 1}
	}

	riseRatio := float64(net) / float64(riseThreshold)
	dropRatio := float64(-net) / float64(dropThreshold)

	switch {
	case riseRatio >= 1:
		return PricePrediction{PlayerID: player.ID, Status: TrendRiseSoon, Progress: 1}
	case dropRatio >= 1:
		return PricePrediction{PlayerID: player.ID, Status: TrendDropSoon, Progress: 1}
	case riseRatio > 0:
		return PricePrediction{PlayerID: player.ID, Status: TrendRising, Progress: clamp01(riseRatio)}
	case dropRatio > 0:
		return PricePrediction{PlayerID: player.ID, Status: TrendDropping, Progress: clamp01(dropRatio)}
	default:
		return PricePrediction{PlayerID: player.ID, Status: TrendStable}
	}
}

// RankPricePredictions sorts in place for display: imminent rises first,
// then the rest by status priority, ties broken by progress descending.
func RankPricePredictions(predictions []PricePrediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].Status.Priority() != predictions[j].Status.Priority() {
			return predictions[i].Status.Priority() < predictions[j].Status.Priority()
		}
		return predictions[i].Progress > predictions[j].Progress
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
