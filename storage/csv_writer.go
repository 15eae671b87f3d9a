package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"hockey-scraper/models"
)

// WriteError reports a serialisation or I/O failure while persisting an
// output file. It is fatal for the run and never retried.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Column orders are fixed: the downstream dashboard consumes these files by
// name and position.
var (
	matchColumns = []string{
		"Week Date", "Home Team", "Away Team", "Home Score", "Away Score",
		"Season", "Competition", "Location", "Kickoff",
	}
	teamMatchColumns = []string{
		"Week Date", "Team Role", "Team", "Opponent", "Team Score",
		"Opponent Score", "Result", "Season", "Competition",
	}
	standingsColumns = []string{
		"Team", "Played", "Won", "Drawn", "Lost", "Points", "Goals For",
		"Goals Against", "Season", "Position", "Goal Difference", "Competition",
	}
)

// WriteMatches serialises raw match records, one row per match. The file is
// created fresh on every call — a run's output fully replaces the previous
// run's, never appends to it.
func WriteMatches(path string, records []models.RawMatchRecord) error {
	rows := make([][]string, 0, len(records))
	for _, m := range records {
		rows = append(rows, []string{
			m.WeekDate, m.HomeTeam, m.AwayTeam,
			formatScore(m.HomeScore), formatScore(m.AwayScore),
			m.Season, m.Competition, m.Location, m.Kickoff,
		})
	}
	return writeCSV(path, matchColumns, rows)
}

// WriteTeamMatches serialises pivoted records, two rows per match.
func WriteTeamMatches(path string, records []models.TeamMatchRecord) error {
	rows := make([][]string, 0, len(records))
	for _, t := range records {
		rows = append(rows, []string{
			t.WeekDate, string(t.Role), t.Team, t.Opponent,
			formatScore(t.TeamScore), formatScore(t.OpponentScore),
			string(t.Result), t.Season, t.Competition,
		})
	}
	return writeCSV(path, teamMatchColumns, rows)
}

// WriteStandings serialises league-table records.
func WriteStandings(path string, records []models.StandingsRecord) error {
	rows := make([][]string, 0, len(records))
	for _, s := range records {
		rows = append(rows, []string{
			s.Team,
			strconv.Itoa(s.Played), strconv.Itoa(s.Won),
			strconv.Itoa(s.Drawn), strconv.Itoa(s.Lost),
			strconv.Itoa(s.Points),
			strconv.Itoa(s.GoalsFor), strconv.Itoa(s.GoalsAgainst),
			s.Season,
			strconv.Itoa(s.Position), strconv.Itoa(s.GoalDiff),
			s.Competition,
		})
	}
	return writeCSV(path, standingsColumns, rows)
}

// writeCSV truncates the file at path and writes header plus rows.
// Intermediate directories are created automatically.
func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return &WriteError{Path: path, Err: err}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return &WriteError{Path: path, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// formatScore renders a score cell: empty for unplayed fixtures so a blank
// never masquerades as a 0-0 result.
func formatScore(s *int) string {
	if s == nil {
		return ""
	}
	return strconv.Itoa(*s)
}
