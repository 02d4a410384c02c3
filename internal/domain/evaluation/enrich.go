package evaluation

import (
	"math"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

// ResolveDifficulty returns the per-side rating of the team's fixture in
// the given gameweek. Absent data degrades to the neutral default.
func ResolveDifficulty(fixtures []fpl.Fixture, teamID, gameweek int, h Heuristics) int {
	for _, fixture := range fixtures {
		if fixture.Gameweek != gameweek || !fixture.Involves(teamID) {
			continue
		}
		return fixture.DifficultyFor(teamID)
	}
	return h.DefaultDifficulty
}

// WindowDifficulty averages the per-side rating over the team's next
// unfinished fixtures, in the order supplied, capped at h.FixtureWindow.
// The mean stays fractional; callers compare it against fractional
// thresholds. An empty window degrades to the neutral default.
func WindowDifficulty(fixtures []fpl.Fixture, teamID int, h Heuristics) float64 {
	total := 0
	count := 0
	for _, fixture := range fixtures {
		if fixture.Finished || !fixture.Involves(teamID) {
			continue
		}
		total += fixture.DifficultyFor(teamID)
		count++
		if count == h.FixtureWindow {
			break
		}
	}
	if count == 0 {
		return float64(h.DefaultDifficulty)
	}
	return float64(total) / float64(count)
}

// PredictPoints estimates next-gameweek points from season form and
// points per game, discounted by fixture difficulty. The result keeps one
// fractional digit and is deliberately not floored at zero; pathological
// negative inputs propagate.
func PredictPoints(player fpl.Player, difficulty float64, h Heuristics) float64 {
	form := fpl.ParseDecimal(player.Form)

	gamesPlayed := player.Minutes / h.Points.MinutesPerMatch
	if gamesPlayed < 1 {
		gamesPlayed = 1
	}
	pointsPerGame := float64(player.TotalPoints) / float64(gamesPlayed)

	base := (form*h.Points.FormWeight + pointsPerGame) / (h.Points.FormWeight + 1)
	factor := (h.Points.DifficultyCeiling - difficulty) / h.Points.DifficultyRange

	return round1(base * factor)
}

// CaptainScore ranks a player for the armband. Higher is better; the
// scale is only meaningful relative to other players.
func CaptainScore(player fpl.Player, predicted, difficulty float64, h Heuristics) float64 {
	form := fpl.ParseDecimal(player.Form)
	chance := 100.0
	if player.ChanceOfPlayingNextRound != nil {
		chance = float64(*player.ChanceOfPlayingNextRound)
	}

	score := form*h.Captain.Form +
		predicted*h.Captain.Predicted -
		difficulty*h.Captain.Difficulty +
		(chance/100)*h.Captain.Availability

	return round2(score)
}

// EnrichPlayer resolves the team short name and position label, then
// derives difficulty, predicted points, and captain score in that order.
// A missing team degrades to an empty short name.
func EnrichPlayer(player fpl.Player, teams []fpl.Team, fixtures []fpl.Fixture, gameweek int, h Heuristics) EnrichedPlayer {
	teamShort := ""
	for _, team := range teams {
		if team.ID == player.TeamID {
			teamShort = team.ShortName
			break
		}
	}

	position, _ := fpl.PositionFromCode(player.PositionCode)

	difficulty := ResolveDifficulty(fixtures, player.TeamID, gameweek, h)
	predicted := PredictPoints(player, float64(difficulty), h)
	captain := CaptainScore(player, predicted, float64(difficulty), h)

	return EnrichedPlayer{
		Player:            player,
		TeamShort:         teamShort,
		Position:          position,
		FixtureDifficulty: difficulty,
		PredictedPoints:   predicted,
		CaptainScore:      captain,
	}
}

// EnrichAll maps EnrichPlayer over the pool. Output order matches input
// order; entries are independent of one another.
func EnrichAll(players []fpl.Player, teams []fpl.Team, fixtures []fpl.Fixture, gameweek int, h Heuristics) []EnrichedPlayer {
	out := make([]EnrichedPlayer, len(players))
	for i, player := range players {
		out[i] = EnrichPlayer(player, teams, fixtures, gameweek, h)
	}
	return out
}

// ValueScore is form per million of price, the cheap-differential metric
// used by the dashboard listings.
func ValueScore(player fpl.Player) float64 {
	price := player.PriceMillions()
	if price <= 0 {
		return 0
	}
	return round2(fpl.ParseDecimal(player.Form) / price)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
