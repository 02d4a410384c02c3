package fpl

import (
	"testing"
	"time"
)

func TestPositionFromCode(t *testing.T) {
	cases := map[int]Position{
		1: PositionGoalkeeper,
		2: PositionDefender,
		3: PositionMidfielder,
		4: PositionForward,
	}
	for code, want := range cases {
		got, ok := PositionFromCode(code)
		if !ok || got != want {
			t.Fatalf("code %d: got=%q ok=%v want=%q", code, got, ok, want)
		}
	}
	if _, ok := PositionFromCode(5); ok {
		t.Fatalf("expected unknown code to fail")
	}
}

func TestParsePosition(t *testing.T) {
	if got, ok := ParsePosition(" mid "); !ok || got != PositionMidfielder {
		t.Fatalf("unexpected parse: got=%q ok=%v", got, ok)
	}
	if _, ok := ParsePosition("striker"); ok {
		t.Fatalf("expected unknown position to fail")
	}
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"5.5", 5.5},
		{" 5.5 ", 5.5},
		{"-1.2", -1.2},
		{"", 0},
		{"n/a", 0},
	}
	for _, tc := range cases {
		if got := ParseDecimal(tc.raw); got != tc.want {
			t.Fatalf("parse %q: got=%v want=%v", tc.raw, got, tc.want)
		}
	}
}

func TestPlayerPriceMillions(t *testing.T) {
	player := Player{NowCost: 125}
	if got := player.PriceMillions(); got != 12.5 {
		t.Fatalf("unexpected price: got=%v want=%v", got, 12.5)
	}
}

func TestFixtureDifficultyFor(t *testing.T) {
	fixture := Fixture{HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 2, AwayDifficulty: 4}

	if !fixture.Involves(1) || !fixture.Involves(2) || fixture.Involves(3) {
		t.Fatalf("unexpected involvement: %+v", fixture)
	}
	if got := fixture.DifficultyFor(1); got != 2 {
		t.Fatalf("home difficulty: got=%d want=%d", got, 2)
	}
	if got := fixture.DifficultyFor(2); got != 4 {
		t.Fatalf("away difficulty: got=%d want=%d", got, 4)
	}
	if got := fixture.DifficultyFor(3); got != 0 {
		t.Fatalf("uninvolved team difficulty: got=%d want=%d", got, 0)
	}
}

func TestBootstrapCurrentGameweek(t *testing.T) {
	deadline := time.Date(2026, 8, 15, 17, 30, 0, 0, time.UTC)

	t.Run("prefers the current flag", func(t *testing.T) {
		bootstrap := Bootstrap{Gameweeks: []Gameweek{
			{ID: 1, Finished: true},
			{ID: 2, IsCurrent: true, DeadlineTime: deadline},
			{ID: 3, IsNext: true},
		}}
		gw, ok := bootstrap.CurrentGameweek()
		if !ok || gw.ID != 2 {
			t.Fatalf("unexpected gameweek: got=%d ok=%v want=%d", gw.ID, ok, 2)
		}
	})

	t.Run("falls back to the next flag before the season", func(t *testing.T) {
		bootstrap := Bootstrap{Gameweeks: []Gameweek{
			{ID: 1, IsNext: true, DeadlineTime: deadline},
			{ID: 2},
		}}
		gw, ok := bootstrap.CurrentGameweek()
		if !ok || gw.ID != 1 {
			t.Fatalf("unexpected gameweek: got=%d ok=%v want=%d", gw.ID, ok, 1)
		}
	})

	t.Run("reports absence", func(t *testing.T) {
		if _, ok := (Bootstrap{}).CurrentGameweek(); ok {
			t.Fatalf("expected no gameweek on an empty calendar")
		}
	})
}

func TestBootstrapLookups(t *testing.T) {
	bootstrap := Bootstrap{
		Players: []Player{{ID: 7, WebName: "Son"}},
		Teams:   []Team{{ID: 6, ShortName: "TOT"}},
	}

	if team, ok := bootstrap.TeamByID(6); !ok || team.ShortName != "TOT" {
		t.Fatalf("unexpected team lookup: got=%+v ok=%v", team, ok)
	}
	if _, ok := bootstrap.TeamByID(99); ok {
		t.Fatalf("expected missing team to fail")
	}
	if player, ok := bootstrap.PlayerByID(7); !ok || player.WebName != "Son" {
		t.Fatalf("unexpected player lookup: got=%+v ok=%v", player, ok)
	}
	if _, ok := bootstrap.PlayerByID(99); ok {
		t.Fatalf("expected missing player to fail")
	}
}
