package fpl

import (
	"strconv"
	"strings"
	"time"
)

// Position is the pitch role derived from the upstream element_type code.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

var positionByCode = map[int]Position{
	1: PositionGoalkeeper,
	2: PositionDefender,
	3: PositionMidfielder,
	4: PositionForward,
}

// PositionFromCode maps the 1..4 element_type code to a Position.
// Codes outside 1..4 are a data contract violation upstream; ok is false.
func PositionFromCode(code int) (Position, bool) {
	position, ok := positionByCode[code]
	return position, ok
}

func ParsePosition(raw string) (Position, bool) {
	position := Position(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := AllPositions[position]
	return position, ok
}

// Player is one element row from the bootstrap payload. Decimal stats
// arrive as strings and stay strings here; parsing happens at the point
// of use with ParseDecimal.
type Player struct {
	ID                       int    `json:"id"`
	WebName                  string `json:"web_name"`
	FirstName                string `json:"first_name"`
	SecondName               string `json:"second_name"`
	TeamID                   int    `json:"team"`
	PositionCode             int    `json:"element_type"`
	NowCost                  int    `json:"now_cost"`
	Form                     string `json:"form"`
	PointsPerGame            string `json:"points_per_game"`
	SelectedByPercent        string `json:"selected_by_percent"`
	TotalPoints              int    `json:"total_points"`
	Minutes                  int    `json:"minutes"`
	GoalsScored              int    `json:"goals_scored"`
	Assists                  int    `json:"assists"`
	CleanSheets              int    `json:"clean_sheets"`
	GoalsConceded            int    `json:"goals_conceded"`
	YellowCards              int    `json:"yellow_cards"`
	RedCards                 int    `json:"red_cards"`
	Saves                    int    `json:"saves"`
	Bonus                    int    `json:"bonus"`
	BPS                      int    `json:"bps"`
	Influence                string `json:"influence"`
	Creativity               string `json:"creativity"`
	Threat                   string `json:"threat"`
	Status                   string `json:"status"`
	News                     string `json:"news"`
	ChanceOfPlayingNextRound *int   `json:"chance_of_playing_next_round"`
	TransfersInEvent         int    `json:"transfers_in_event"`
	TransfersOutEvent        int    `json:"transfers_out_event"`
	CostChangeEvent          int    `json:"cost_change_event"`
}

// PriceMillions converts now_cost (tenths of a million) to millions.
func (p Player) PriceMillions() float64 {
	return float64(p.NowCost) / 10.0
}

type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Code      int    `json:"code"`
}

type Fixture struct {
	ID              int        `json:"id"`
	Gameweek        int        `json:"event"`
	HomeTeamID      int        `json:"team_h"`
	AwayTeamID      int        `json:"team_a"`
	HomeDifficulty  int        `json:"team_h_difficulty"`
	AwayDifficulty  int        `json:"team_a_difficulty"`
	HomeScore       *int       `json:"team_h_score"`
	AwayScore       *int       `json:"team_a_score"`
	Started         bool       `json:"started"`
	Finished        bool       `json:"finished"`
	KickoffTime     *time.Time `json:"kickoff_time"`
	ProvisionalDone bool       `json:"finished_provisional"`
}

// Involves reports whether the team plays on either side of the fixture.
func (f Fixture) Involves(teamID int) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// DifficultyFor returns the per-side rating, or 0 when the team is not
// part of the fixture.
func (f Fixture) DifficultyFor(teamID int) int {
	switch teamID {
	case f.HomeTeamID:
		return f.HomeDifficulty
	case f.AwayTeamID:
		return f.AwayDifficulty
	default:
		return 0
	}
}

type Gameweek struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	DeadlineTime time.Time `json:"deadline_time"`
	IsCurrent    bool      `json:"is_current"`
	IsNext       bool      `json:"is_next"`
	Finished     bool      `json:"finished"`
}

// Bootstrap is the combined static payload: the full player pool, the
// team table, and the gameweek calendar.
type Bootstrap struct {
	Players   []Player   `json:"elements"`
	Teams     []Team     `json:"teams"`
	Gameweeks []Gameweek `json:"events"`
}

// CurrentGameweek resolves the active round: the one flagged is_current,
// falling back to is_next before the season starts.
func (b Bootstrap) CurrentGameweek() (Gameweek, bool) {
	for _, gw := range b.Gameweeks {
		if gw.IsCurrent {
			return gw, true
		}
	}
	for _, gw := range b.Gameweeks {
		if gw.IsNext {
			return gw, true
		}
	}
	return Gameweek{}, false
}

func (b Bootstrap) TeamByID(teamID int) (Team, bool) {
	for _, team := range b.Teams {
		if team.ID == teamID {
			return team, true
		}
	}
	return Team{}, false
}

func (b Bootstrap) PlayerByID(playerID int) (Player, bool) {
	for _, player := range b.Players {
		if player.ID == playerID {
			return player, true
		}
	}
	return Player{}, false
}

// Pick is one of the 15 squad slots in an entry's gameweek picks.
type Pick struct {
	PlayerID      int  `json:"element"`
	Slot          int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type EntryHistory struct {
	Points      int `json:"points"`
	TotalPoints int `json:"total_points"`
	Rank        int `json:"rank"`
	OverallRank int `json:"overall_rank"`
	Bank        int `json:"bank"`
	Value       int `json:"value"`
}

type PickSet struct {
	Picks        []Pick       `json:"picks"`
	EntryHistory EntryHistory `json:"entry_history"`
}

// PlayerHistoryEntry is one finished-match row from a player's
// element summary.
type PlayerHistoryEntry struct {
	Gameweek       int    `json:"round"`
	OpponentTeamID int    `json:"opponent_team"`
	WasHome        bool   `json:"was_home"`
	TotalPoints    int    `json:"total_points"`
	Minutes        int    `json:"minutes"`
	GoalsScored    int    `json:"goals_scored"`
	Assists        int    `json:"assists"`
	CleanSheets    int    `json:"clean_sheets"`
	Bonus          int    `json:"bonus"`
	Value          int    `json:"value"`
}

// ElementSummary is the per-player detail payload: match-by-match
// history for the running season.
type ElementSummary struct {
	History []PlayerHistoryEntry `json:"history"`
}

// ParseDecimal parses the upstream decimal-string stats (form, ownership,
// ICT indices). Missing or unparseable values degrade to 0.
func ParseDecimal(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}
