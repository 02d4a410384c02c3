package evaluation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

const (
	DefaultFormation = "3-4-3"
	squadSize        = 15
	startingSize     = 11
)

// Optimize partitions a legal 15-player squad into the best starting XI
// for the formation plus the bench, and assigns the armbands. Within each
// position players are ranked by predicted points with ties keeping their
// original order. The bench keeps the GK/DEF/MID/FWD position order, with
// the reserve goalkeeper first.
func Optimize(players []EnrichedPlayer, formation string, h Heuristics) (OptimizedSquad, error) {
	if strings.TrimSpace(formation) == "" {
		formation = DefaultFormation
	}
	defenders, midfielders, forwards, err := parseFormation(formation)
	if err != nil {
		return OptimizedSquad{}, err
	}

	if len(players) != squadSize {
		return OptimizedSquad{}, fmt.Errorf("%w: got %d players, need %d", ErrSquadIncomplete, len(players), squadSize)
	}

	byPosition := map[fpl.Position][]EnrichedPlayer{}
	for _, player := range players {
		byPosition[player.Position] = append(byPosition[player.Position], player)
	}
	for position := range byPosition {
		group := byPosition[position]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PredictedPoints > group[j].PredictedPoints
		})
	}

	required := map[fpl.Position]int{
		fpl.PositionGoalkeeper: 2,
		fpl.PositionDefender:   defenders,
		fpl.PositionMidfielder: midfielders,
		fpl.PositionForward:    forwards,
	}
	for position, minimum := range required {
		if len(byPosition[position]) < minimum {
			return OptimizedSquad{}, fmt.Errorf("%w: need %d %s, have %d",
				ErrSquadIncomplete, minimum, position, len(byPosition[position]))
		}
	}

	starting := make([]EnrichedPlayer, 0, startingSize)
	starting = append(starting, byPosition[fpl.PositionGoalkeeper][0])
	starting = append(starting, byPosition[fpl.PositionDefender][:defenders]...)
	starting = append(starting, byPosition[fpl.PositionMidfielder][:midfielders]...)
	starting = append(starting, byPosition[fpl.PositionForward][:forwards]...)

	bench := make([]EnrichedPlayer, 0, squadSize-startingSize)
	bench = append(bench, byPosition[fpl.PositionGoalkeeper][1:]...)
	bench = append(bench, byPosition[fpl.PositionDefender][defenders:]...)
	bench = append(bench, byPosition[fpl.PositionMidfielder][midfielders:]...)
	bench = append(bench, byPosition[fpl.PositionForward][forwards:]...)

	captain, vice := selectArmbands(starting)

	return OptimizedSquad{
		Formation:   formation,
		Starting:    starting,
		Bench:       bench,
		Captain:     captain,
		ViceCaptain: vice,
	}, nil
}

// Rating reduces a starting XI to a percentage against the assumption
// that h.Rating.PointsCeiling per player is excellent. It is deliberately
// not clamped: a lineup projected above the ceiling reads over 100. An
// empty lineup rates 0.
func Rating(starting []EnrichedPlayer, h Heuristics) int {
	if len(starting) == 0 {
		return 0
	}

	totalPredicted := 0.0
	for _, player := range starting {
		totalPredicted += player.PredictedPoints
	}
	totalPossible := float64(len(starting)) * h.Rating.PointsCeiling

	return int(math.Round(totalPredicted / totalPossible * 100))
}

// parseFormation decodes the "D-M-F" outfield counts. The goalkeeper slot
// is implicit and not part of the string.
func parseFormation(formation string) (defenders, midfielders, forwards int, err error) {
	parts := strings.Split(strings.TrimSpace(formation), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q is not D-M-F", ErrBadFormation, formation)
	}

	counts := make([]int, 3)
	for i, part := range parts {
		value, parseErr := strconv.Atoi(strings.TrimSpace(part))
		if parseErr != nil || value < 1 {
			return 0, 0, 0, fmt.Errorf("%w: %q is not D-M-F", ErrBadFormation, formation)
		}
		counts[i] = value
	}

	if counts[0]+counts[1]+counts[2] != startingSize-1 {
		return 0, 0, 0, fmt.Errorf("%w: %q outfield counts must sum to %d", ErrBadFormation, formation, startingSize-1)
	}

	return counts[0], counts[1], counts[2], nil
}

// selectArmbands picks the top two captain scores from the starting XI.
// Strict comparisons keep the first occurrence on ties.
func selectArmbands(starting []EnrichedPlayer) (captain, vice EnrichedPlayer) {
	bestIdx, secondIdx := -1, -1
	for i, player := range starting {
		switch {
		case bestIdx == -1 || player.CaptainScore > starting[bestIdx].CaptainScore:
			secondIdx = bestIdx
			bestIdx = i
		case secondIdx == -1 || player.CaptainScore > starting[secondIdx].CaptainScore:
			secondIdx = i
		}
	}
	if bestIdx >= 0 {
		captain = starting[bestIdx]
	}
	if secondIdx >= 0 {
		vice = starting[secondIdx]
	}
	return captain, vice
}
