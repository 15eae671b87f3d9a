package models

// Season identifies one supported league-year together with the
// site-specific query parameters needed to build its URLs.
// Immutable once configured.
type Season struct {
	Name               string
	SeasonID           string
	CompetitionGroupID string
	CompetitionID      string
}

// MatchDay is one navigable fixture-list view: a date within a season plus
// the navigation id the site uses to select it.
type MatchDay struct {
	Season string
	Date   string
	NavID  string
}

// RawMatchRecord is one fixture exactly as scraped — one row per match.
// Scores are nil for fixtures that have not been played yet; a zero score
// is a valid played result and must never collapse into "not played".
type RawMatchRecord struct {
	WeekDate    string
	HomeTeam    string
	AwayTeam    string
	HomeScore   *int
	AwayScore   *int
	Season      string
	Competition string
	Location    string
	Kickoff     string
}

// StandingsRecord is one league-table row for a season.
type StandingsRecord struct {
	Position     int
	Team         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
	Season       string
	Competition  string
}

// Role marks which side of the fixture a TeamMatchRecord describes.
type Role string

const (
	RoleHome Role = "Home"
	RoleAway Role = "Away"
)

// Result is the outcome of a match from one team's perspective.
type Result string

const (
	ResultWin      Result = "Win"
	ResultLoss     Result = "Loss"
	ResultDraw     Result = "Draw"
	ResultUnplayed Result = "Unplayed"
)

// TeamMatchRecord is the pivoted, team-centric view of a fixture — two of
// these are produced per RawMatchRecord, one per perspective.
type TeamMatchRecord struct {
	WeekDate      string
	Role          Role
	Team          string
	Opponent      string
	TeamScore     *int
	OpponentScore *int
	Result        Result
	Season        string
	Competition   string
}

// SeasonStatus is the terminal state of one season's scrape.
type SeasonStatus string

const (
	SeasonDone   SeasonStatus = "DONE"
	SeasonFailed SeasonStatus = "FAILED"
)

// SeasonResult holds everything extracted for one season plus its
// per-season accounting.
type SeasonResult struct {
	Season       string
	Status       SeasonStatus
	Matches      []RawMatchRecord
	Standings    []StandingsRecord
	DatesVisited int
	DatesSkipped int
	RowsDropped  int
}

// RunSummary aggregates the accounting of a whole scrape run.
type RunSummary struct {
	MatchesExtracted   int
	StandingsExtracted int
	RowsDropped        int
	DatesSkipped       int
	SeasonsCompleted   int
	SeasonsFailed      []string
	ResultCounts       map[Result]int
	MatchesBySeason    map[string]int
}
