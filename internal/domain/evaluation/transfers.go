package evaluation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

// Recommend scans the owned squad for underperformers and proposes the
// best affordable same-position replacement from the pool for each, in
// the order the owned players appear, capped at h.Transfers.MaxResults.
// Difficulty here is the windowed mean over upcoming fixtures, not the
// single-gameweek rating carried on the enriched players.
func Recommend(owned, pool []EnrichedPlayer, fixtures []fpl.Fixture, bank int, h Heuristics) []Transfer {
	ownedIDs := make(map[int]struct{}, len(owned))
	for _, player := range owned {
		ownedIDs[player.ID] = struct{}{}
	}

	windowByTeam := make(map[int]float64)
	teamWindow := func(teamID int) float64 {
		if difficulty, ok := windowByTeam[teamID]; ok {
			return difficulty
		}
		difficulty := WindowDifficulty(fixtures, teamID, h)
		windowByTeam[teamID] = difficulty
		return difficulty
	}

	out := make([]Transfer, 0, h.Transfers.MaxResults)
	for _, sell := range owned {
		if len(out) >= h.Transfers.MaxResults {
			break
		}

		threshold, ok := h.Transfers.Thresholds[sell.Position]
		if !ok {
			continue
		}

		form := fpl.ParseDecimal(sell.Form)
		difficulty := teamWindow(sell.TeamID)

		poorForm := form < threshold.PoorForm
		injuryRisk := sell.ChanceOfPlayingNextRound != nil &&
			float64(*sell.ChanceOfPlayingNextRound) < threshold.InjuryChance
		hardRun := difficulty >= threshold.HardDifficulty
		if !poorForm && !injuryRisk && !hardRun {
			continue
		}

		buy, found := bestReplacement(sell, pool, ownedIDs, teamWindow, bank, h)
		if !found {
			continue
		}

		out = append(out, Transfer{
			Sell:   sell,
			Buy:    buy,
			Reason: transferReason(sell, buy, poorForm, injuryRisk, hardRun),
		})
	}

	return out
}

// bestReplacement filters the pool to affordable same-position upgrades
// with strong form and an easy run, then takes the highest form.
func bestReplacement(
	sell EnrichedPlayer,
	pool []EnrichedPlayer,
	ownedIDs map[int]struct{},
	teamWindow func(int) float64,
	bank int,
	h Heuristics,
) (EnrichedPlayer, bool) {
	budget := bank + sell.NowCost

	candidates := make([]EnrichedPlayer, 0, 8)
	for _, candidate := range pool {
		if candidate.Position != sell.Position || candidate.ID == sell.ID {
			continue
		}
		if _, owned := ownedIDs[candidate.ID]; owned {
			continue
		}

		threshold, ok := h.Transfers.Thresholds[candidate.Position]
		if !ok {
			continue
		}
		if fpl.ParseDecimal(candidate.Form) <= threshold.PoorForm+h.Transfers.CandidateFormEdge {
			continue
		}
		if teamWindow(candidate.TeamID) >= h.Transfers.EasyFixtureCeiling {
			continue
		}
		if candidate.NowCost > budget {
			continue
		}
		candidates = append(candidates, candidate)
	}
	if len(candidates) == 0 {
		return EnrichedPlayer{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return fpl.ParseDecimal(candidates[i].Form) > fpl.ParseDecimal(candidates[j].Form)
	})
	return candidates[0], true
}

func transferReason(sell, buy EnrichedPlayer, poorForm, injuryRisk, hardRun bool) string {
	triggers := make([]string, 0, 3)
	if poorForm {
		triggers = append(triggers, fmt.Sprintf("poor form (%s)", strings.TrimSpace(sell.Form)))
	}
	if injuryRisk && sell.ChanceOfPlayingNextRound != nil {
		triggers = append(triggers, fmt.Sprintf("injury risk (%d%% chance of playing)", *sell.ChanceOfPlayingNextRound))
	}
	if hardRun {
		triggers = append(triggers, "tough fixtures ahead")
	}

	return fmt.Sprintf("%s: %s. %s offers better form (%s) with easier fixtures.",
		sell.WebName, strings.Join(triggers, ", "), buy.WebName, strings.TrimSpace(buy.Form))
}
