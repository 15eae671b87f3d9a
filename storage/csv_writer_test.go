package storage

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hockey-scraper/models"
)

func intp(n int) *int { return &n }

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestWriteMatchesBlankVersusZeroScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")

	err := WriteMatches(path, []models.RawMatchRecord{
		{WeekDate: "2024-09-21", HomeTeam: "A", AwayTeam: "B",
			HomeScore: intp(0), AwayScore: intp(0), Season: "s"},
		{WeekDate: "2024-09-28", HomeTeam: "C", AwayTeam: "D", Season: "s", Kickoff: "12:30"},
	})
	if err != nil {
		t.Fatalf("WriteMatches: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows; want header + 2", len(rows))
	}
	if rows[0][0] != "Week Date" || rows[0][5] != "Season" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][3] != "0" || rows[1][4] != "0" {
		t.Errorf("played 0-0 row scores = %q,%q; want \"0\",\"0\"", rows[1][3], rows[1][4])
	}
	if rows[2][3] != "" || rows[2][4] != "" {
		t.Errorf("unplayed row scores = %q,%q; want blank", rows[2][3], rows[2][4])
	}
}

func TestWriteTeamMatchesColumnOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team_matches.csv")

	err := WriteTeamMatches(path, []models.TeamMatchRecord{{
		WeekDate: "21/09/2024", Role: models.RoleHome,
		Team: "Barnes W2", Opponent: "Wimbledon W3",
		TeamScore: intp(2), OpponentScore: intp(1),
		Result: models.ResultWin, Season: "2024-2025",
	}})
	if err != nil {
		t.Fatalf("WriteTeamMatches: %v", err)
	}

	rows := readRows(t, path)
	wantHeader := []string{"Week Date", "Team Role", "Team", "Opponent",
		"Team Score", "Opponent Score", "Result", "Season", "Competition"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q; want %q", i, rows[0][i], col)
		}
	}
	want := []string{"21/09/2024", "Home", "Barnes W2", "Wimbledon W3", "2", "1", "Win", "2024-2025", ""}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row[%d] = %q; want %q", i, rows[1][i], cell)
		}
	}
}

func TestWriteStandings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standings.csv")

	err := WriteStandings(path, []models.StandingsRecord{{
		Position: 1, Team: "Barnes W2", Played: 18, Won: 12, Drawn: 4, Lost: 2,
		GoalsFor: 40, GoalsAgainst: 15, GoalDiff: 25, Points: 40,
		Season: "2024-2025", Competition: "London Women's Premier Division",
	}})
	if err != nil {
		t.Fatalf("WriteStandings: %v", err)
	}

	rows := readRows(t, path)
	if rows[0][0] != "Team" || rows[0][5] != "Points" || rows[0][8] != "Season" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Barnes W2" || rows[1][1] != "18" || rows[1][5] != "40" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestWriteFailureIsWriteError(t *testing.T) {
	dir := t.TempDir()
	// A directory is not a writable file target.
	err := WriteMatches(dir, nil)
	if err == nil {
		t.Fatal("expected error writing to a directory path")
	}

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("err = %T; want *WriteError", err)
	}
}

func TestWriteMatchesOverwritesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")

	first := []models.RawMatchRecord{
		{WeekDate: "d1", HomeTeam: "A", AwayTeam: "B", Season: "s"},
		{WeekDate: "d2", HomeTeam: "C", AwayTeam: "D", Season: "s"},
	}
	if err := WriteMatches(path, first); err != nil {
		t.Fatalf("first write: %v", err)
	}

	second := []models.RawMatchRecord{
		{WeekDate: "d3", HomeTeam: "E", AwayTeam: "F", Season: "s"},
	}
	if err := WriteMatches(path, second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Errorf("got %d rows after rewrite; want header + 1 (no append)", len(rows))
	}
}

func TestReadMatchesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")

	in := []models.RawMatchRecord{
		{WeekDate: "2024-09-21", HomeTeam: "A", AwayTeam: "B",
			HomeScore: intp(2), AwayScore: intp(1),
			Season: "2024-2025", Competition: "comp", Location: "loc", Kickoff: ""},
		{WeekDate: "2024-09-28", HomeTeam: "C", AwayTeam: "D",
			Season: "2024-2025", Kickoff: "14:00"},
	}
	if err := WriteMatches(path, in); err != nil {
		t.Fatalf("WriteMatches: %v", err)
	}

	out, err := ReadMatches(path)
	if err != nil {
		t.Fatalf("ReadMatches: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d matches; want 2", len(out))
	}
	if out[0].HomeScore == nil || *out[0].HomeScore != 2 {
		t.Errorf("first match home score = %v; want 2", out[0].HomeScore)
	}
	if out[1].HomeScore != nil || out[1].AwayScore != nil {
		t.Error("blank score cells must read back as absent, not zero")
	}
	if out[1].Kickoff != "14:00" {
		t.Errorf("kickoff = %q", out[1].Kickoff)
	}
}

func TestReadMatchesMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("Week Date,Home Team\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadMatches(path); err == nil {
		t.Error("expected error for CSV missing required columns")
	}
}
