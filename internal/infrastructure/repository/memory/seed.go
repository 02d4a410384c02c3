package memory

import (
	"fmt"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
)

// DemoEntryID is the manager entry bundled with the demo season.
const DemoEntryID = 1

func SeedTeams() []fpl.Team {
	return []fpl.Team{
		{ID: 1, Name: "Arsenal", ShortName: "ARS", Code: 3},
		{ID: 2, Name: "Liverpool", ShortName: "LIV", Code: 14},
		{ID: 3, Name: "Manchester City", ShortName: "MCI", Code: 43},
		{ID: 4, Name: "Chelsea", ShortName: "CHE", Code: 8},
		{ID: 5, Name: "Tottenham", ShortName: "TOT", Code: 6},
		{ID: 6, Name: "Newcastle", ShortName: "NEW", Code: 4},
	}
}

func seedPlayer(id int, name string, teamID, positionCode, nowCost int, form string, totalPoints, minutes int) fpl.Player {
	return fpl.Player{
		ID:                id,
		WebName:           name,
		TeamID:            teamID,
		PositionCode:      positionCode,
		NowCost:           nowCost,
		Form:              form,
		SelectedByPercent: "15.0",
		TotalPoints:       totalPoints,
		Minutes:           minutes,
		Status:            "a",
	}
}

func SeedPlayers() []fpl.Player {
	players := []fpl.Player{
		// Demo squad, IDs 1..15.
		seedPlayer(1, "Raya", 1, 1, 56, "4.2", 38, 630),
		seedPlayer(2, "Alisson", 2, 1, 55, "3.6", 32, 630),
		seedPlayer(3, "Saliba", 1, 2, 62, "4.8", 41, 630),
		seedPlayer(4, "Gabriel", 1, 2, 61, "4.5", 39, 630),
		seedPlayer(5, "Van Dijk", 2, 2, 64, "4.1", 36, 630),
		seedPlayer(6, "Trippier", 6, 2, 58, "3.2", 28, 540),
		seedPlayer(7, "James", 4, 2, 54, "2.1", 18, 405),
		seedPlayer(8, "Saka", 1, 3, 102, "7.4", 58, 610),
		seedPlayer(9, "Salah", 2, 3, 131, "8.9", 67, 630),
		seedPlayer(10, "Foden", 3, 3, 94, "6.1", 49, 580),
		seedPlayer(11, "Maddison", 5, 3, 77, "3.4", 29, 490),
		seedPlayer(12, "Gordon", 6, 3, 76, "5.2", 42, 600),
		seedPlayer(13, "Haaland", 3, 4, 151, "9.3", 71, 620),
		seedPlayer(14, "Isak", 6, 4, 93, "6.8", 50, 560),
		seedPlayer(15, "Jackson", 4, 4, 79, "2.8", 24, 470),
		// Pool players outside the demo squad, IDs 16..24.
		seedPlayer(16, "Pickford", 5, 1, 50, "4.0", 34, 630),
		seedPlayer(17, "Porro", 5, 2, 59, "5.4", 40, 630),
		seedPlayer(18, "Ait-Nouri", 3, 2, 60, "5.1", 38, 600),
		seedPlayer(19, "Palmer", 4, 3, 108, "8.2", 62, 625),
		seedPlayer(20, "Eze", 1, 3, 72, "6.0", 44, 570),
		seedPlayer(21, "Rice", 1, 3, 67, "4.9", 37, 630),
		seedPlayer(22, "Watkins", 2, 4, 90, "6.4", 47, 590),
		seedPlayer(23, "Wissa", 6, 4, 68, "5.7", 40, 540),
		seedPlayer(24, "Richarlison", 5, 4, 67, "4.6", 33, 430),
	}

	// Price pressure on the headline picks.
	players[8].TransfersInEvent = 420000
	players[8].SelectedByPercent = "62.1"
	players[12].TransfersInEvent = 310000
	players[12].SelectedByPercent = "55.4"
	players[14].TransfersOutEvent = 180000
	players[14].Form = "2.8"
	players[18].TransfersInEvent = 290000
	players[18].CostChangeEvent = 1

	// An injury doubt in the demo squad.
	chance := 50
	players[10].ChanceOfPlayingNextRound = &chance
	players[10].Status = "d"
	players[10].News = "Knock - 50% chance of playing"

	return players
}

func SeedGameweeks() []fpl.Gameweek {
	gameweeks := make([]fpl.Gameweek, 0, 10)
	for id := 1; id <= 10; id++ {
		deadline := time.Date(2026, 8, 15, 17, 30, 0, 0, time.UTC).AddDate(0, 0, (id-1)*7)
		gameweeks = append(gameweeks, fpl.Gameweek{
			ID:           id,
			Name:         fmt.Sprintf("Gameweek %d", id),
			DeadlineTime: deadline,
			IsCurrent:    id == 7,
			IsNext:       id == 8,
			Finished:     id < 7,
		})
	}
	return gameweeks
}

func SeedBootstrap() fpl.Bootstrap {
	return fpl.Bootstrap{
		Players:   SeedPlayers(),
		Teams:     SeedTeams(),
		Gameweeks: SeedGameweeks(),
	}
}

func SeedFixtures() []fpl.Fixture {
	kickoff := func(day, hour int) *time.Time {
		t := time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
		return &t
	}
	finished := func(id, gameweek, home, away, homeDifficulty, awayDifficulty, homeScore, awayScore int) fpl.Fixture {
		h, a := homeScore, awayScore
		return fpl.Fixture{
			ID: id, Gameweek: gameweek,
			HomeTeamID: home, AwayTeamID: away,
			HomeDifficulty: homeDifficulty, AwayDifficulty: awayDifficulty,
			HomeScore: &h, AwayScore: &a,
			Started: true, Finished: true, ProvisionalDone: true,
		}
	}

	return []fpl.Fixture{
		finished(51, 6, 1, 4, 2, 4, 2, 0),
		finished(52, 6, 2, 3, 4, 4, 1, 1),
		finished(53, 6, 5, 6, 3, 3, 0, 2),
		{ID: 61, Gameweek: 7, HomeTeamID: 1, AwayTeamID: 5, HomeDifficulty: 2, AwayDifficulty: 4, KickoffTime: kickoff(19, 14)},
		{ID: 62, Gameweek: 7, HomeTeamID: 3, AwayTeamID: 2, HomeDifficulty: 4, AwayDifficulty: 4, KickoffTime: kickoff(19, 16)},
		{ID: 63, Gameweek: 7, HomeTeamID: 6, AwayTeamID: 4, HomeDifficulty: 3, AwayDifficulty: 3, KickoffTime: kickoff(20, 14)},
		{ID: 71, Gameweek: 8, HomeTeamID: 5, AwayTeamID: 3, HomeDifficulty: 5, AwayDifficulty: 2, KickoffTime: kickoff(26, 14)},
		{ID: 72, Gameweek: 8, HomeTeamID: 4, AwayTeamID: 1, HomeDifficulty: 4, AwayDifficulty: 2, KickoffTime: kickoff(26, 16)},
		{ID: 73, Gameweek: 8, HomeTeamID: 2, AwayTeamID: 6, HomeDifficulty: 2, AwayDifficulty: 5, KickoffTime: kickoff(27, 14)},
	}
}

func SeedEntryPicks() map[int]fpl.PickSet {
	picks := make([]fpl.Pick, 0, 15)
	for slot := 1; slot <= 15; slot++ {
		pick := fpl.Pick{
			PlayerID:   slot,
			Slot:       slot,
			Multiplier: 1,
		}
		if slot == 9 {
			pick.IsCaptain = true
			pick.Multiplier = 2
		}
		if slot == 13 {
			pick.IsViceCaptain = true
		}
		if slot > 11 {
			pick.Multiplier = 0
		}
		picks = append(picks, pick)
	}

	return map[int]fpl.PickSet{
		DemoEntryID: {
			Picks: picks,
			EntryHistory: fpl.EntryHistory{
				Points:      58,
				TotalPoints: 377,
				Rank:        1250419,
				OverallRank: 984113,
				Bank:        23,
				Value:       1012,
			},
		},
	}
}
