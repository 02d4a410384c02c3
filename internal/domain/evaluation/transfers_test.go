package evaluation

import (
	"strings"
	"testing"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

func transferPlayer(id, teamID int, position fpl.Position, form string, cost int) EnrichedPlayer {
	return EnrichedPlayer{
		Player: fpl.Player{
			ID:      id,
			WebName: "P" + form,
			TeamID:  teamID,
			Form:    form,
			NowCost: cost,
		},
		Position: position,
	}
}

// transferFixtures gives team 1 a hard run (mean 4.5), team 2 an easy
// run (mean 2.0), and team 3 a middling run (mean 3.0).
func transferFixtures() []fpl.Fixture {
	return []fpl.Fixture{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 9, HomeDifficulty: 5},
		{ID: 2, HomeTeamID: 9, AwayTeamID: 1, AwayDifficulty: 4},
		{ID: 3, HomeTeamID: 2, AwayTeamID: 9, HomeDifficulty: 2},
		{ID: 4, HomeTeamID: 9, AwayTeamID: 2, AwayDifficulty: 2},
		{ID: 5, HomeTeamID: 3, AwayTeamID: 9, HomeDifficulty: 3},
		{ID: 6, HomeTeamID: 9, AwayTeamID: 3, AwayDifficulty: 3},
	}
}

func TestRecommend(t *testing.T) {
	h := DefaultHeuristics()
	fixtures := transferFixtures()

	t.Run("flags poor form and picks the best affordable upgrade", func(t *testing.T) {
		sell := transferPlayer(1, 3, fpl.PositionMidfielder, "1.0", 60)
		pool := []EnrichedPlayer{
			transferPlayer(20, 2, fpl.PositionMidfielder, "6.0", 75),
			transferPlayer(21, 2, fpl.PositionMidfielder, "7.5", 120),
			transferPlayer(22, 2, fpl.PositionForward, "8.0", 70),
		}

		transfers := Recommend([]EnrichedPlayer{sell}, pool, fixtures, 20, h)
		if len(transfers) != 1 {
			t.Fatalf("unexpected transfer count: got=%d want=%d", len(transfers), 1)
		}
		// 7.5 form is out of budget (120 > 60+20), so 6.0 wins.
		if transfers[0].Buy.ID != 20 {
			t.Fatalf("unexpected replacement: got=%d want=%d", transfers[0].Buy.ID, 20)
		}
		if !strings.Contains(transfers[0].Reason, "poor form (1.0)") {
			t.Fatalf("reason missing the form trigger: %q", transfers[0].Reason)
		}
		if !strings.Contains(transfers[0].Reason, "better form (6.0)") {
			t.Fatalf("reason missing the upgrade form: %q", transfers[0].Reason)
		}
	})

	t.Run("flags injury risk", func(t *testing.T) {
		chance := 50
		sell := transferPlayer(1, 3, fpl.PositionForward, "6.0", 80)
		sell.ChanceOfPlayingNextRound = &chance
		pool := []EnrichedPlayer{transferPlayer(30, 2, fpl.PositionForward, "6.5", 80)}

		transfers := Recommend([]EnrichedPlayer{sell}, pool, fixtures, 0, h)
		if len(transfers) != 1 {
			t.Fatalf("unexpected transfer count: got=%d want=%d", len(transfers), 1)
		}
		if !strings.Contains(transfers[0].Reason, "injury risk (50% chance of playing)") {
			t.Fatalf("reason missing the injury trigger: %q", transfers[0].Reason)
		}
	})

	t.Run("flags a tough run of fixtures", func(t *testing.T) {
		sell := transferPlayer(1, 1, fpl.PositionDefender, "5.0", 50)
		pool := []EnrichedPlayer{transferPlayer(40, 2, fpl.PositionDefender, "5.5", 50)}

		transfers := Recommend([]EnrichedPlayer{sell}, pool, fixtures, 0, h)
		if len(transfers) != 1 {
			t.Fatalf("unexpected transfer count: got=%d want=%d", len(transfers), 1)
		}
		if !strings.Contains(transfers[0].Reason, "tough fixtures ahead") {
			t.Fatalf("reason missing the fixture trigger: %q", transfers[0].Reason)
		}
	})

	t.Run("settled players produce no suggestions", func(t *testing.T) {
		owned := []EnrichedPlayer{
			transferPlayer(1, 2, fpl.PositionMidfielder, "6.0", 60),
			transferPlayer(2, 2, fpl.PositionForward, "7.0", 90),
		}
		pool := []EnrichedPlayer{transferPlayer(50, 2, fpl.PositionMidfielder, "9.0", 60)}

		transfers := Recommend(owned, pool, fixtures, 100, h)
		if len(transfers) != 0 {
			t.Fatalf("unexpected suggestions for a settled squad: %+v", transfers)
		}
	})

	t.Run("rejects replacements with a hard run", func(t *testing.T) {
		sell := transferPlayer(1, 3, fpl.PositionMidfielder, "1.0", 60)
		pool := []EnrichedPlayer{transferPlayer(60, 1, fpl.PositionMidfielder, "9.0", 60)}

		transfers := Recommend([]EnrichedPlayer{sell}, pool, fixtures, 0, h)
		if len(transfers) != 0 {
			t.Fatalf("expected no transfer into a hard run, got %+v", transfers)
		}
	})

	t.Run("rejects replacements without a clear form edge", func(t *testing.T) {
		sell := transferPlayer(1, 3, fpl.PositionMidfielder, "1.0", 60)
		// 5.5 is not strictly above the 4.0 + 1.5 bar.
		pool := []EnrichedPlayer{transferPlayer(61, 2, fpl.PositionMidfielder, "5.5", 60)}

		transfers := Recommend([]EnrichedPlayer{sell}, pool, fixtures, 0, h)
		if len(transfers) != 0 {
			t.Fatalf("expected no transfer without a form edge, got %+v", transfers)
		}
	})

	t.Run("never suggests buying an owned player", func(t *testing.T) {
		sell := transferPlayer(1, 3, fpl.PositionMidfielder, "1.0", 60)
		owned2 := transferPlayer(2, 2, fpl.PositionMidfielder, "8.0", 60)
		pool := []EnrichedPlayer{owned2}

		transfers := Recommend([]EnrichedPlayer{sell, owned2}, pool, fixtures, 0, h)
		if len(transfers) != 0 {
			t.Fatalf("suggested an owned player: %+v", transfers)
		}
	})

	t.Run("caps the number of suggestions", func(t *testing.T) {
		var owned []EnrichedPlayer
		for i := 1; i <= 8; i++ {
			owned = append(owned, transferPlayer(i, 3, fpl.PositionMidfielder, "1.0", 60))
		}
		var pool []EnrichedPlayer
		for i := 101; i <= 110; i++ {
			pool = append(pool, transferPlayer(i, 2, fpl.PositionMidfielder, "7.0", 60))
		}

		transfers := Recommend(owned, pool, fixtures, 0, h)
		if len(transfers) != h.Transfers.MaxResults {
			t.Fatalf("unexpected cap: got=%d want=%d", len(transfers), h.Transfers.MaxResults)
		}
	})
}
